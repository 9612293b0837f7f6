package model

import (
	"fmt"
	"math/bits"
)

type Room uint64

type Time uint64

type Placement struct {
	Room Room
	Time Time
}

func (placement Placement) String() string {
	return fmt.Sprintf("(room %d, time %d)", placement.Room, placement.Time)
}

type ConstraintKind int

const (
	Sequential ConstraintKind = iota
	Concurrent
	NonConcurrent
	At
	In
)

var constraintKinds = map[ConstraintKind]string{
	Sequential:    "sequential",
	Concurrent:    "concurrent",
	NonConcurrent: "nonconcurrent",
	At:            "at",
	In:            "in",
}

func (kind ConstraintKind) String() string {
	if name, ok := constraintKinds[kind]; ok {
		return name
	}
	return fmt.Sprintf("ConstraintKind(%d)", int(kind))
}

// Constraint relates an ordered list of events. Time is only meaningful for At and Room is only meaningful for In
type Constraint struct {
	Kind   ConstraintKind
	Events []string
	Time   Time
	Room   Room
}

func NewSequential(events ...string) Constraint {
	return Constraint{Kind: Sequential, Events: events}
}

func NewConcurrent(events ...string) Constraint {
	return Constraint{Kind: Concurrent, Events: events}
}

func NewNonConcurrent(events ...string) Constraint {
	return Constraint{Kind: NonConcurrent, Events: events}
}

func NewAt(time Time, events ...string) Constraint {
	return Constraint{Kind: At, Time: time, Events: events}
}

func NewIn(room Room, events ...string) Constraint {
	return Constraint{Kind: In, Room: room, Events: events}
}

func (constraint Constraint) String() string {
	switch constraint.Kind {
	case At:
		return fmt.Sprintf("%v(%d, %v)", constraint.Kind, constraint.Time, constraint.Events)
	case In:
		return fmt.Sprintf("%v(%d, %v)", constraint.Kind, constraint.Room, constraint.Events)
	default:
		return fmt.Sprintf("%v(%v)", constraint.Kind, constraint.Events)
	}
}

// Returns the position of event within the constraint's list, or -1 if the constraint does not reference it
func (constraint Constraint) position(event string) int {
	for i, name := range constraint.Events {
		if name == event {
			return i
		}
	}
	return -1
}

type Event struct {
	Name        string
	Constraints []Constraint // Subset of the problem's constraints referencing the event, in their original order
}

type Problem struct {
	Rooms       uint64
	TimeSlots   uint64
	Events      []string
	Constraints []Constraint
}

// MaxCells bounds the size of a grid so that its cells can be allocated in memory
const MaxCells uint64 = 1 << 24

// Checks that both dimensions are positive and their product neither overflows nor exceeds MaxCells
func checkDimensions(timeSlots, rooms uint64) error {
	hi, cells := bits.Mul64(timeSlots, rooms)
	if timeSlots == 0 || rooms == 0 || hi != 0 || cells > MaxCells {
		return fmt.Errorf("%w: got %d rooms and %d time slots", ErrInvalidDimensions, rooms, timeSlots)
	}
	return nil
}
