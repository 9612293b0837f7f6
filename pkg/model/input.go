package model

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

type RawConstraint struct {
	Kind   string
	Events []string
	Time   *uint64 // Required by "at"
	Room   *uint64 // Required by "in"
}

type RawProblem struct {
	Rooms       uint64
	TimeSlots   uint64 `mapstructure:"timeSlots"`
	Events      []string
	Constraints []RawConstraint
}

var rawConstraintKinds = lo.Invert(constraintKinds)

func ProblemFromJson(file string) (Problem, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return Problem{}, err
	}
	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return Problem{}, err
	}
	return decodeProblem(inputJson)
}

func ProblemFromYaml(file string) (Problem, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return Problem{}, err
	}
	var inputYaml map[string]any
	if err := yaml.Unmarshal(bytes, &inputYaml); err != nil {
		return Problem{}, err
	}
	return decodeProblem(inputYaml)
}

// Picks the decoder from the file extension, defaulting to JSON
func ProblemFromFile(file string) (Problem, error) {
	lower := strings.ToLower(file)
	if strings.HasSuffix(lower, ".yaml") || strings.HasSuffix(lower, ".yml") {
		return ProblemFromYaml(file)
	}
	return ProblemFromJson(file)
}

func decodeProblem(input map[string]any) (Problem, error) {
	var rawProblem RawProblem
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true, // JSON numbers arrive as float64
		Result:           &rawProblem,
	})
	if err != nil {
		return Problem{}, err
	}
	if err := decoder.Decode(input); err != nil {
		return Problem{}, fmt.Errorf("cannot decode problem: %v", err)
	}
	return ProcessRawProblem(rawProblem)
}

func ProcessRawProblem(rawProblem RawProblem) (Problem, error) {
	problem := Problem{
		Rooms:       rawProblem.Rooms,
		TimeSlots:   rawProblem.TimeSlots,
		Events:      rawProblem.Events,
		Constraints: make([]Constraint, 0, len(rawProblem.Constraints)),
	}

	if err := checkDimensions(problem.TimeSlots, problem.Rooms); err != nil {
		return Problem{}, err
	}

	for i, rawConstraint := range rawProblem.Constraints {
		kind, ok := rawConstraintKinds[strings.ToLower(rawConstraint.Kind)]
		if !ok {
			return Problem{}, fmt.Errorf("%w: constraint %d has unknown kind %q, allowed kinds are %v", ErrUnknownConstraintKind, i, rawConstraint.Kind, lo.Values(constraintKinds))
		}

		constraint := Constraint{Kind: kind, Events: rawConstraint.Events}
		switch kind {
		case At:
			if rawConstraint.Time == nil {
				return Problem{}, fmt.Errorf("constraint %d of kind %q must specify a time", i, rawConstraint.Kind)
			}
			constraint.Time = Time(*rawConstraint.Time)
		case In:
			if rawConstraint.Room == nil {
				return Problem{}, fmt.Errorf("constraint %d of kind %q must specify a room", i, rawConstraint.Kind)
			}
			constraint.Room = Room(*rawConstraint.Room)
		}
		problem.Constraints = append(problem.Constraints, constraint)
	}

	// Make sure names and references are sound before any search starts
	if _, err := BuildEvents(problem.Constraints, problem.Events); err != nil {
		return Problem{}, err
	}

	return problem, nil
}
