package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func gridOf(rows [][]string) *Grid {
	grid := NewGrid(uint64(len(rows)), uint64(len(rows[0])))
	for time, row := range rows {
		for room, event := range row {
			if event != "" {
				grid.set(Placement{Room: Room(room), Time: Time(time)}, event)
			}
		}
	}
	return grid
}

func TestVerify(t *testing.T) {
	problem := Problem{
		Rooms:     2,
		TimeSlots: 3,
		Events:    []string{"a", "b", "c"},
		Constraints: []Constraint{
			NewSequential("a", "b"),
			NewNonConcurrent("b", "c"),
			NewIn(1, "c"),
		},
	}

	t.Run("A grid honouring every constraint is valid", func(t *testing.T) {
		assert.True(t, verify(gridOf([][]string{{"a", "c"}, {"b", ""}, {"", ""}}), problem))
	})

	t.Run("Broken constraints are detected", func(t *testing.T) {
		scenarios := map[string][][]string{
			"sequence out of order": {{"b", "c"}, {"a", ""}, {"", ""}},
			"sequence with a gap":   {{"a", "c"}, {"", ""}, {"b", ""}},
			"sequence across rooms": {{"a", "c"}, {"", "b"}, {"", ""}},
			"shared time":           {{"a", ""}, {"b", "c"}, {"", ""}},
			"wrong room":            {{"a", ""}, {"b", ""}, {"c", ""}},
			"missing event":         {{"a", ""}, {"b", ""}, {"", ""}},
			"foreign event":         {{"a", "c"}, {"b", "d"}, {"", ""}},
		}

		for name, rows := range scenarios {
			assert.False(t, verify(gridOf(rows), problem), name)
		}
	})

	t.Run("Grids of another size are invalid", func(t *testing.T) {
		assert.False(t, verify(gridOf([][]string{{"a", "c"}, {"b", ""}}), problem))
		assert.False(t, verify(nil, problem))
	})
}

func TestPrecheck(t *testing.T) {
	t.Run("Satisfiable problems pass", func(t *testing.T) {
		assert.NoError(t, Precheck(workedExample()))
	})

	t.Run("Fixed values outside the grid fail", func(t *testing.T) {
		err := Precheck(Problem{Rooms: 1, TimeSlots: 1, Events: []string{"A"}, Constraints: []Constraint{NewIn(1, "A")}})

		assert.ErrorIs(t, err, ErrUnsatisfiable)
		assert.ErrorIs(t, err, ErrNoFreeCell)
	})

	t.Run("Too many events pinned to the same cell fail", func(t *testing.T) {
		err := Precheck(Problem{
			Rooms:       2,
			TimeSlots:   2,
			Events:      []string{"a", "b", "c"},
			Constraints: []Constraint{NewAt(0, "a", "b", "c")},
		})

		assert.ErrorIs(t, err, ErrUnsatisfiable)
	})

	t.Run("Sequences longer than the grid fail", func(t *testing.T) {
		err := Precheck(Problem{Rooms: 3, TimeSlots: 2, Events: []string{"a", "b", "c"}, Constraints: []Constraint{NewSequential("a", "b", "c")}})

		assert.ErrorIs(t, err, ErrUnsatisfiable)
		assert.ErrorIs(t, err, ErrInfeasibleSequentialOffset)
	})

	t.Run("Structural errors are reported", func(t *testing.T) {
		assert.ErrorIs(t, Precheck(Problem{Rooms: 1, TimeSlots: 1, Events: []string{"a"}, Constraints: []Constraint{NewAt(0, "b")}}), ErrUnknownEventReference)
		assert.ErrorIs(t, Precheck(Problem{TimeSlots: 1}), ErrInvalidDimensions)
		assert.ErrorIs(t, Precheck(Problem{Rooms: 1 << 32, TimeSlots: 1 << 32, Events: []string{"a"}}), ErrInvalidDimensions)
	})
}
