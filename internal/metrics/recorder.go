package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/limaJavier/eventgrid/pkg/model"
)

const (
	OutcomeSolved        = "solved"
	OutcomeUnsatisfiable = "unsatisfiable"
	OutcomeFailed        = "failed"
)

// Recorder turns scheduler steps into Prometheus metrics kept on a private registry.
// It implements model.Observer and may be shared by concurrent searches
type Recorder struct {
	registry       *prometheus.Registry
	selections     prometheus.Counter
	commits        prometheus.Counter
	retractions    prometheus.Counter
	evaluations    *prometheus.CounterVec
	searchDuration *prometheus.HistogramVec
}

var _ model.Observer = (*Recorder)(nil)

func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()

	selections := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "eventgrid_selections_total",
		Help: "Total number of events selected for placement",
	})

	commits := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "eventgrid_commits_total",
		Help: "Total number of placements committed to the grid",
	})

	retractions := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "eventgrid_retractions_total",
		Help: "Total number of placements retracted from the grid",
	})

	evaluations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "eventgrid_evaluations_total",
		Help: "Total number of constraint evaluations by result",
	}, []string{"result"})

	searchDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "eventgrid_search_duration_seconds",
		Help:    "Duration of searches in seconds by outcome",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})

	registry.MustRegister(selections, commits, retractions, evaluations, searchDuration)

	return &Recorder{
		registry:       registry,
		selections:     selections,
		commits:        commits,
		retractions:    retractions,
		evaluations:    evaluations,
		searchDuration: searchDuration,
	}
}

// Registry exposes the recorder's collectors for gathering
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteToTextfile dumps every metric in the text exposition format
func (r *Recorder) WriteToTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}

func (r *Recorder) Selected(string) {
	r.selections.Inc()
}

func (r *Recorder) Evaluated(_ string, feasible bool) {
	result := "infeasible"
	if feasible {
		result = "feasible"
	}
	r.evaluations.WithLabelValues(result).Inc()
}

func (r *Recorder) Committed(string, model.Placement) {
	r.commits.Inc()
}

func (r *Recorder) Retracted(string, model.Placement) {
	r.retractions.Inc()
}

func (r *Recorder) Finished(_ model.Stats, elapsed time.Duration, err error) {
	r.searchDuration.WithLabelValues(Outcome(err)).Observe(elapsed.Seconds())
}

// Outcome classifies the error returned by a search
func Outcome(err error) string {
	if err == nil {
		return OutcomeSolved
	} else if errors.Is(err, model.ErrUnsatisfiable) {
		return OutcomeUnsatisfiable
	}
	return OutcomeFailed
}
