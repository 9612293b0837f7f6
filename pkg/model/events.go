package model

import (
	"fmt"

	"github.com/samber/lo"
)

// Builds, for each event name, the list of constraints referencing it. Constraints keep their relative order from the master list
func BuildEvents(constraints []Constraint, eventNames []string) (map[string]Event, error) {
	events := make(map[string]Event, len(eventNames))
	for _, name := range eventNames {
		if name == "" {
			return nil, ErrEmptyEventName
		} else if _, ok := events[name]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateEvent, name)
		}
		events[name] = Event{Name: name, Constraints: make([]Constraint, 0)}
	}

	//** Validate kinds and references
	for _, constraint := range constraints {
		if _, ok := constraintKinds[constraint.Kind]; !ok {
			return nil, fmt.Errorf("%w: %v", ErrUnknownConstraintKind, constraint.Kind)
		} else if len(constraint.Events) == 0 {
			return nil, fmt.Errorf("%w: %v", ErrEmptyConstraint, constraint)
		} else if repeated := lo.FindDuplicates(constraint.Events); len(repeated) > 0 {
			return nil, fmt.Errorf("%w: %q listed more than once in %v", ErrDuplicateEvent, repeated[0], constraint)
		}
		unknown, ok := lo.Find(constraint.Events, func(name string) bool {
			_, ok := events[name]
			return !ok
		})
		if ok {
			return nil, fmt.Errorf("%w: %q in %v", ErrUnknownEventReference, unknown, constraint)
		}
	}

	//** Index constraints per event
	for _, name := range eventNames {
		event := events[name]
		event.Constraints = lo.Filter(constraints, func(constraint Constraint, _ int) bool {
			return constraint.position(name) >= 0
		})
		events[name] = event
	}

	return events, nil
}
