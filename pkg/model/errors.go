package model

import (
	"errors"
	"fmt"
)

// Structural errors. They cannot be repaired by retracting placements and abort the search
var (
	ErrUnknownEventReference            = errors.New("constraint references an unknown event")
	ErrUnsupportedConstraintCombination = errors.New("unsupported constraint combination")
	ErrDuplicateEvent                   = errors.New("duplicate event name")
	ErrEmptyEventName                   = errors.New("event name must not be empty")
	ErrEmptyConstraint                  = errors.New("constraint must reference at least one event")
	ErrInvalidDimensions                = errors.New("rooms and time slots must be greater than zero and span at most MaxCells cells")
	ErrUnknownConstraintKind            = errors.New("unknown constraint kind")
)

// Search infeasibilities. They trigger a retraction and only surface as the reason of an UnsatisfiableError
var (
	ErrInfeasibleSequentialOffset = errors.New("sequential offset falls outside the grid")
	ErrConflictingRequirement     = errors.New("fixed time or room conflicts with an earlier requirement")
	ErrBannedRequirement          = errors.New("required time or room is banned")
	ErrOutOfBounds                = errors.New("required time or room falls outside the grid")
	ErrNoFreeCell                 = errors.New("no free cell reachable by the placement search")
)

var ErrUnsatisfiable = errors.New("problem is unsatisfiable")

type UnsatisfiableError struct {
	Iterations uint64
	Event      string // Event under evaluation when the search gave up
	Reason     error  // Last infeasibility observed
}

func (err *UnsatisfiableError) Error() string {
	if err.Reason == nil {
		return fmt.Sprintf("%v after %d iterations", ErrUnsatisfiable, err.Iterations)
	}
	return fmt.Sprintf("%v after %d iterations (event %q: %v)", ErrUnsatisfiable, err.Iterations, err.Event, err.Reason)
}

func (err *UnsatisfiableError) Unwrap() []error {
	if err.Reason == nil {
		return []error{ErrUnsatisfiable}
	}
	return []error{ErrUnsatisfiable, err.Reason}
}
