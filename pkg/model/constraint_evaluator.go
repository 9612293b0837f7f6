package model

// requirement accumulates what an event's constraints demand of its placement given the events already placed
type requirement struct {
	time        Time
	room        Room
	timeFixed   bool
	roomFixed   bool
	bannedTimes map[Time]bool
	bannedRooms map[Room]bool
	reason      error // Non-nil if the placement is infeasible
}

func newRequirement() requirement {
	return requirement{
		bannedTimes: make(map[Time]bool),
		bannedRooms: make(map[Room]bool),
	}
}

func (req requirement) feasible() bool {
	return req.reason == nil
}

type constraintEvaluator interface {
	// Evaluates the event's constraints against the events already placed.
	// Infeasibilities are reported through the requirement's reason, whereas the error is reserved for structural problems
	Evaluate(event Event) (requirement, error)
}

// placementLookup exposes the current placement of each event
type placementLookup interface {
	Placement(event string) (Placement, bool)
}

func newConstraintEvaluator(placements placementLookup, timeSlots, rooms uint64) constraintEvaluator {
	return &constraintEvaluatorStandard{
		placements: placements,
		timeSlots:  timeSlots,
		rooms:      rooms,
	}
}
