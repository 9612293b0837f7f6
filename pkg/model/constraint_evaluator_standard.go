package model

import "fmt"

type constraintEvaluatorStandard struct {
	placements placementLookup
	timeSlots  uint64
	rooms      uint64
}

func (evaluator *constraintEvaluatorStandard) Evaluate(event Event) (requirement, error) {
	req := newRequirement()

	for _, constraint := range event.Constraints {
		var err error
		switch constraint.Kind {
		case Sequential:
			err = evaluator.sequential(&req, event.Name, constraint)
		case Concurrent:
			err = evaluator.concurrent(&req, event.Name, constraint)
		case NonConcurrent:
			evaluator.nonConcurrent(&req, event.Name, constraint)
		case At:
			if req.timeFixed && req.time != constraint.Time {
				req.reason = fmt.Errorf("%w: %v requires time %d but time %d is already required", ErrConflictingRequirement, constraint, constraint.Time, req.time)
			} else {
				req.time, req.timeFixed = constraint.Time, true
			}
		case In:
			if req.roomFixed && req.room != constraint.Room {
				req.reason = fmt.Errorf("%w: %v requires room %d but room %d is already required", ErrConflictingRequirement, constraint, constraint.Room, req.room)
			} else {
				req.room, req.roomFixed = constraint.Room, true
			}
		default:
			return req, fmt.Errorf("%w: %v", ErrUnknownConstraintKind, constraint.Kind)
		}

		if err != nil {
			return req, err
		} else if !req.feasible() { // Stop as soon as the attempt is known to fail
			return req, nil
		}
	}

	// Check the requirements lie within the grid and do not collide with a ban
	if (req.timeFixed && uint64(req.time) >= evaluator.timeSlots) || (req.roomFixed && uint64(req.room) >= evaluator.rooms) {
		req.reason = fmt.Errorf("%w: required time %d and room %d on a %dx%d grid", ErrOutOfBounds, req.time, req.room, evaluator.timeSlots, evaluator.rooms)
	} else if req.timeFixed && req.bannedTimes[req.time] {
		req.reason = fmt.Errorf("%w: time %d", ErrBannedRequirement, req.time)
	} else if req.roomFixed && req.bannedRooms[req.room] {
		req.reason = fmt.Errorf("%w: room %d", ErrBannedRequirement, req.room)
	}

	return req, nil
}

// The event must share the room of every placed event in the list and keep the time offset given by their positions
func (evaluator *constraintEvaluatorStandard) sequential(req *requirement, event string, constraint Constraint) error {
	placingPosition := uint64(constraint.position(event))

	for placedPosition, other := range constraint.Events {
		placement, ok := evaluator.placements.Placement(other)
		if other == event || !ok {
			continue
		}

		// Target time is placement.Time + placingPosition - placedPosition, which must not underflow
		if uint64(placement.Time)+placingPosition < uint64(placedPosition) {
			req.reason = fmt.Errorf("%w: %q would precede time 0 next to %q", ErrInfeasibleSequentialOffset, event, other)
			return nil
		}
		target := Time(uint64(placement.Time) + placingPosition - uint64(placedPosition))
		if uint64(target) >= evaluator.timeSlots {
			req.reason = fmt.Errorf("%w: %q would land on time %d next to %q", ErrInfeasibleSequentialOffset, event, target, other)
			return nil
		}

		if !req.timeFixed && !req.roomFixed {
			req.time, req.timeFixed = target, true
			req.room, req.roomFixed = placement.Room, true
			continue
		}

		// A requirement already exists: agreeing values merge, disagreeing ones cannot be combined
		if (req.timeFixed && req.time != target) || (req.roomFixed && req.room != placement.Room) {
			return fmt.Errorf("%w: %v places %q at %v next to %q, which conflicts with an earlier requirement", ErrUnsupportedConstraintCombination, constraint, event, Placement{Room: placement.Room, Time: target}, other)
		}
		req.time, req.timeFixed = target, true
		req.room, req.roomFixed = placement.Room, true
	}

	return nil
}

// The event must share the room of every placed event in the list
func (evaluator *constraintEvaluatorStandard) concurrent(req *requirement, event string, constraint Constraint) error {
	for _, other := range constraint.Events {
		placement, ok := evaluator.placements.Placement(other)
		if other == event || !ok {
			continue
		}

		if !req.roomFixed {
			req.room, req.roomFixed = placement.Room, true
		} else if req.room != placement.Room {
			return fmt.Errorf("%w: %v requires room %d next to %q but room %d is already required", ErrUnsupportedConstraintCombination, constraint, placement.Room, other, req.room)
		}
	}

	return nil
}

// The event must avoid the time of every placed event in the list
func (evaluator *constraintEvaluatorStandard) nonConcurrent(req *requirement, event string, constraint Constraint) {
	for _, other := range constraint.Events {
		if placement, ok := evaluator.placements.Placement(other); ok && other != event {
			req.bannedTimes[placement.Time] = true
		}
	}
}
