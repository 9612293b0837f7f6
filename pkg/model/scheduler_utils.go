package model

import (
	"fmt"

	"github.com/onsi/gomega/matchers/support/goraph/bipartitegraph"
	"github.com/samber/lo"
)

func verify(grid *Grid, problem Problem) bool {
	if grid == nil || grid.TimeSlots() != problem.TimeSlots || grid.Rooms() != problem.Rooms {
		return false
	}

	//** Every event appears exactly once and nothing else is placed
	occupied := lo.CountBy(lo.Flatten(grid.Rows()), func(cell string) bool { return cell != "" })
	placements := grid.Placements()
	if occupied != len(problem.Events) || len(placements) != len(problem.Events) {
		return false
	}
	if lo.SomeBy(problem.Events, func(event string) bool {
		_, ok := placements[event]
		return !ok
	}) {
		return false
	}

	//** Every constraint holds
	for _, constraint := range problem.Constraints {
		if !satisfied(constraint, placements) {
			return false
		}
	}
	return true
}

func satisfied(constraint Constraint, placements map[string]Placement) bool {
	if len(constraint.Events) == 0 {
		return false
	}
	listed := lo.Map(constraint.Events, func(event string, _ int) Placement { return placements[event] })
	first := listed[0]

	switch constraint.Kind {
	case Sequential:
		// Same room and one time slot after the previous event in the list
		return !lo.SomeBy(lo.Range(len(listed)), func(i int) bool {
			return listed[i].Room != first.Room || uint64(listed[i].Time) != uint64(first.Time)+uint64(i)
		})
	case Concurrent:
		return lo.EveryBy(listed, func(placement Placement) bool { return placement.Room == first.Room })
	case NonConcurrent:
		times := lo.Map(lo.Uniq(constraint.Events), func(event string, _ int) Time { return placements[event].Time })
		return len(lo.Uniq(times)) == len(times)
	case At:
		return lo.EveryBy(listed, func(placement Placement) bool { return placement.Time == constraint.Time })
	case In:
		return lo.EveryBy(listed, func(placement Placement) bool { return placement.Room == constraint.Room })
	}
	return false
}

// Precheck looks for reasons the problem cannot be satisfied without running a search.
// It matches every event to a distinct cell allowed by its At and In constraints and fails if no complete matching exists.
// Passing the precheck does not guarantee the search will succeed
func Precheck(problem Problem) error {
	if err := checkDimensions(problem.TimeSlots, problem.Rooms); err != nil {
		return err
	}
	events, err := BuildEvents(problem.Constraints, problem.Events)
	if err != nil {
		return err
	}

	// A sequence longer than the day cannot fit
	for _, constraint := range problem.Constraints {
		if constraint.Kind == Sequential && uint64(len(constraint.Events)) > problem.TimeSlots {
			return &UnsatisfiableError{Reason: fmt.Errorf("%w: %v spans more than %d time slots", ErrInfeasibleSequentialOffset, constraint, problem.TimeSlots)}
		}
	}

	indexer := newIndexer(problem.TimeSlots, problem.Rooms)
	cells := lo.Map(lo.Range(int(indexer.Cells())), func(cell int, _ int) uint64 { return uint64(cell) })

	// Build neighbors predicate based on fixed times and rooms
	neighbors := func(eventAny any, cellAny any) (bool, error) {
		event := events[eventAny.(string)]
		time, room := indexer.Attributes(cellAny.(uint64))

		return !lo.SomeBy(event.Constraints, func(constraint Constraint) bool {
			return (constraint.Kind == At && constraint.Time != time) || (constraint.Kind == In && constraint.Room != room)
		}), nil
	}

	// Transform events and cells to slices of any
	eventsAny, cellsAny := lo.Map(problem.Events, func(event string, _ int) any { return event }), lo.Map(cells, func(cell uint64, _ int) any { return cell })

	graph, err := bipartitegraph.NewBipartiteGraph(eventsAny, cellsAny, neighbors)
	if err != nil {
		return err
	}

	matching := graph.LargestMatching()

	// Check the matching covers every event
	if len(matching) < len(problem.Events) {
		return &UnsatisfiableError{Reason: fmt.Errorf("%w: only %d of %d events can be given a distinct cell honouring their fixed times and rooms", ErrNoFreeCell, len(matching), len(problem.Events))}
	}
	return nil
}
