package model

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const DefaultMaxIterations uint64 = 100_000

// BacktrackingConfig governs the backtracking scheduler
type BacktrackingConfig struct {
	MaxIterations uint64 // Ceiling on select-evaluate-commit/retract cycles; zero means DefaultMaxIterations
	Logger        *zap.Logger
	Observer      Observer
}

type backtrackingScheduler struct {
	maxIterations uint64
	logger        *zap.Logger
	observer      Observer
}

// Returns a scheduler running a chronological backtracking search that undoes exactly one placement per failed attempt.
// Each Build owns its search state, so the scheduler may be shared between goroutines as long as the observer is safe for concurrent use
func NewBacktrackingScheduler(cfg BacktrackingConfig) Scheduler {
	if cfg.MaxIterations == 0 {
		cfg.MaxIterations = DefaultMaxIterations
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Observer == nil {
		cfg.Observer = nopObserver{}
	}
	return &backtrackingScheduler{
		maxIterations: cfg.MaxIterations,
		logger:        cfg.Logger,
		observer:      cfg.Observer,
	}
}

func (scheduler *backtrackingScheduler) Build(ctx context.Context, problem Problem) (*Grid, Stats, error) {
	start := time.Now()
	logger := scheduler.logger.With(zap.String("run_id", uuid.NewString()))
	logger.Debug("search started",
		zap.Int("events", len(problem.Events)),
		zap.Int("constraints", len(problem.Constraints)),
		zap.Uint64("time_slots", problem.TimeSlots),
		zap.Uint64("rooms", problem.Rooms),
	)

	grid, stats, err := scheduler.search(ctx, problem, logger)
	elapsed := time.Since(start)
	scheduler.observer.Finished(stats, elapsed, err)

	fields := []zap.Field{
		zap.Uint64("iterations", stats.Iterations),
		zap.Uint64("commits", stats.Commits),
		zap.Uint64("retractions", stats.Retractions),
		zap.Duration("elapsed", elapsed),
	}
	if err != nil {
		logger.Warn("search failed", append(fields, zap.Error(err))...)
		return nil, stats, err
	}
	logger.Info("search succeeded", fields...)
	return grid, stats, nil
}

func (scheduler *backtrackingScheduler) search(ctx context.Context, problem Problem, logger *zap.Logger) (*Grid, Stats, error) {
	stats := Stats{}

	//** Build search state
	if err := checkDimensions(problem.TimeSlots, problem.Rooms); err != nil {
		return nil, stats, err
	}
	events, err := BuildEvents(problem.Constraints, problem.Events)
	if err != nil {
		return nil, stats, err
	}
	state := newSearchState(events, problem.TimeSlots, problem.Rooms)
	evaluator := newConstraintEvaluator(state, problem.TimeSlots, problem.Rooms)

	var lastReason error
	var lastEvent string

	for !state.done() {
		if err := ctx.Err(); err != nil {
			return nil, stats, fmt.Errorf("search interrupted after %d iterations: %w", stats.Iterations, err)
		} else if stats.Iterations >= scheduler.maxIterations {
			return nil, stats, &UnsatisfiableError{Iterations: stats.Iterations, Event: lastEvent, Reason: lastReason}
		}
		stats.Iterations++

		//** Select
		event, fresh := state.selectEvent()
		if fresh {
			stats.Selections++
			scheduler.observer.Selected(event.Name)
		}

		//** Evaluate
		req, err := evaluator.Evaluate(event)
		stats.Evaluations++
		if err != nil {
			return nil, stats, fmt.Errorf("cannot evaluate event %q: %w", event.Name, err)
		}
		var placement Placement
		if req.feasible() {
			var found bool
			if placement, found = state.findCell(req); !found {
				req.reason = fmt.Errorf("%w: event %q", ErrNoFreeCell, event.Name)
			}
		}
		scheduler.observer.Evaluated(event.Name, req.feasible())

		//** Rewind
		if !req.feasible() {
			lastReason, lastEvent = req.reason, event.Name
			retracted, retractedPlacement, ok := state.retract()
			if !ok { // Nothing is placed, hence no later attempt can see a different grid
				return nil, stats, &UnsatisfiableError{Iterations: stats.Iterations, Event: lastEvent, Reason: lastReason}
			}
			stats.Retractions++
			scheduler.observer.Retracted(retracted, retractedPlacement)
			logger.Debug("retracted",
				zap.String("event", retracted),
				zap.Stringer("placement", retractedPlacement),
				zap.String("blocked", event.Name),
				zap.NamedError("reason", req.reason),
			)
			continue
		}

		//** Place
		state.commit(event.Name, placement)
		stats.Commits++
		scheduler.observer.Committed(event.Name, placement)
		logger.Debug("committed", zap.String("event", event.Name), zap.Stringer("placement", placement))
	}

	return state.grid, stats, nil
}

func (scheduler *backtrackingScheduler) Verify(grid *Grid, problem Problem) bool {
	return verify(grid, problem)
}
