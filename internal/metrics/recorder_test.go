package metrics

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limaJavier/eventgrid/pkg/model"
)

func TestRecorder(t *testing.T) {
	t.Run("Hooks increment their counters", func(t *testing.T) {
		//** Arrange
		recorder := NewRecorder()

		//** Act
		recorder.Selected("a")
		recorder.Evaluated("a", true)
		recorder.Evaluated("a", false)
		recorder.Evaluated("a", false)
		recorder.Committed("a", model.Placement{})
		recorder.Retracted("a", model.Placement{})
		recorder.Finished(model.Stats{}, time.Millisecond, nil)

		//** Assert
		assert.Equal(t, 1.0, testutil.ToFloat64(recorder.selections))
		assert.Equal(t, 1.0, testutil.ToFloat64(recorder.commits))
		assert.Equal(t, 1.0, testutil.ToFloat64(recorder.retractions))
		assert.Equal(t, 1.0, testutil.ToFloat64(recorder.evaluations.WithLabelValues("feasible")))
		assert.Equal(t, 2.0, testutil.ToFloat64(recorder.evaluations.WithLabelValues("infeasible")))
		assert.Equal(t, 1, testutil.CollectAndCount(recorder.searchDuration))
	})

	t.Run("Scheduler runs are recorded", func(t *testing.T) {
		//** Arrange
		recorder := NewRecorder()
		scheduler := model.NewBacktrackingScheduler(model.BacktrackingConfig{Observer: recorder})
		problem := model.Problem{
			Rooms:       1,
			TimeSlots:   2,
			Events:      []string{"b", "a"},
			Constraints: []model.Constraint{model.NewSequential("b", "a")},
		}

		//** Act
		_, stats, err := scheduler.Build(context.Background(), problem)

		//** Assert
		require.NoError(t, err)
		assert.Equal(t, float64(stats.Selections), testutil.ToFloat64(recorder.selections))
		assert.Equal(t, float64(stats.Commits), testutil.ToFloat64(recorder.commits))
		assert.Equal(t, float64(stats.Retractions), testutil.ToFloat64(recorder.retractions))
		evaluations := testutil.ToFloat64(recorder.evaluations.WithLabelValues("feasible")) +
			testutil.ToFloat64(recorder.evaluations.WithLabelValues("infeasible"))
		assert.Equal(t, float64(stats.Evaluations), evaluations)
	})

	t.Run("Metrics are exported to a textfile", func(t *testing.T) {
		recorder := NewRecorder()
		recorder.Committed("a", model.Placement{})
		recorder.Finished(model.Stats{}, time.Second, model.ErrUnsatisfiable)
		path := filepath.Join(t.TempDir(), "eventgrid.prom")

		require.NoError(t, recorder.WriteToTextfile(path))

		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), "eventgrid_commits_total 1")
		assert.Contains(t, string(content), `eventgrid_search_duration_seconds_count{outcome="unsatisfiable"} 1`)
	})
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, OutcomeSolved, Outcome(nil))
	assert.Equal(t, OutcomeUnsatisfiable, Outcome(&model.UnsatisfiableError{Reason: model.ErrNoFreeCell}))
	assert.Equal(t, OutcomeFailed, Outcome(errors.New("boom")))
	assert.Equal(t, OutcomeFailed, Outcome(context.Canceled))
}
