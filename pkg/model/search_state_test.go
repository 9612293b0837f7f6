package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestState(t *testing.T, timeSlots, rooms uint64, names ...string) *searchState {
	t.Helper()
	events, err := BuildEvents(nil, names)
	require.NoError(t, err)
	return newSearchState(events, timeSlots, rooms)
}

// Checks the invariants tying the grid, the event map and the history together
func assertConsistent(t *testing.T, state *searchState) {
	t.Helper()
	placed := 0
	for name, entry := range state.entries {
		if entry.placement == nil {
			continue
		}
		placed++
		event, ok := state.grid.Cell(entry.placement.Time, entry.placement.Room)
		assert.True(t, ok)
		assert.Equal(t, name, event)
	}
	assert.Equal(t, placed, len(state.history))
	assert.Equal(t, placed, len(state.grid.Placements()))
}

func TestSelectEvent(t *testing.T) {
	t.Run("Selection walks the sorted names round-robin", func(t *testing.T) {
		state := newTestState(t, 3, 1, "c", "a", "b")

		event, fresh := state.selectEvent()
		assert.True(t, fresh)
		assert.Equal(t, "a", event.Name)

		// The selected event stays selected until it is committed
		event, fresh = state.selectEvent()
		assert.False(t, fresh)
		assert.Equal(t, "a", event.Name)

		state.commit("a", Placement{Room: 0, Time: 0})
		event, _ = state.selectEvent()
		assert.Equal(t, "b", event.Name)

		state.commit("b", Placement{Room: 0, Time: 1})
		event, _ = state.selectEvent()
		assert.Equal(t, "c", event.Name)
	})

	t.Run("The cursor is not reset after a retraction", func(t *testing.T) {
		state := newTestState(t, 3, 1, "a", "b", "c")

		state.selectEvent()
		state.commit("a", Placement{Room: 0, Time: 0})
		state.selectEvent()
		state.commit("b", Placement{Room: 0, Time: 1})
		state.retract()
		state.retract()

		// The cursor stands after "b", hence "c" comes before "a"
		event, _ := state.selectEvent()
		assert.Equal(t, "c", event.Name)
		state.commit("c", Placement{Room: 0, Time: 0})
		event, _ = state.selectEvent()
		assert.Equal(t, "a", event.Name)
	})
}

func TestRetract(t *testing.T) {
	t.Run("Retraction undoes exactly the latest placement", func(t *testing.T) {
		state := newTestState(t, 2, 2, "a", "b", "c")
		state.commit("a", Placement{Room: 0, Time: 0})
		state.commit("b", Placement{Room: 1, Time: 0})
		state.commit("c", Placement{Room: 1, Time: 1})
		assertConsistent(t, state)
		assert.True(t, state.done())

		//** Act
		event, placement, ok := state.retract()

		//** Assert
		require.True(t, ok)
		assert.Equal(t, "c", event)
		assert.Equal(t, Placement{Room: 1, Time: 1}, placement)
		assert.Len(t, state.history, 2)
		_, placed := state.Placement("c")
		assert.False(t, placed)
		_, occupied := state.grid.Cell(1, 1)
		assert.False(t, occupied)
		assert.False(t, state.done())
		assertConsistent(t, state)
	})

	t.Run("Retracting an empty history does nothing", func(t *testing.T) {
		state := newTestState(t, 1, 1, "a")

		_, _, ok := state.retract()

		assert.False(t, ok)
		assertConsistent(t, state)
	})
}

func TestFindCell(t *testing.T) {
	t.Run("Free dimensions start from the first cell", func(t *testing.T) {
		state := newTestState(t, 2, 2, "a")

		placement, ok := state.findCell(newRequirement())

		assert.True(t, ok)
		assert.Equal(t, Placement{Room: 0, Time: 0}, placement)
	})

	t.Run("Occupied cells advance both cursors", func(t *testing.T) {
		state := newTestState(t, 3, 3, "a", "b")
		state.commit("a", Placement{Room: 0, Time: 0})

		placement, ok := state.findCell(newRequirement())

		assert.True(t, ok)
		assert.Equal(t, Placement{Room: 1, Time: 1}, placement)
	})

	t.Run("Banned times advance the time cursor only", func(t *testing.T) {
		state := newTestState(t, 3, 3, "a")
		req := newRequirement()
		req.bannedTimes[0] = true

		placement, ok := state.findCell(req)

		assert.True(t, ok)
		assert.Equal(t, Placement{Room: 0, Time: 1}, placement)
	})

	t.Run("Fixed dimensions are kept", func(t *testing.T) {
		state := newTestState(t, 3, 3, "a", "b")
		state.commit("a", Placement{Room: 2, Time: 0})
		req := newRequirement()
		req.room, req.roomFixed = 2, true

		placement, ok := state.findCell(req)

		assert.True(t, ok)
		assert.Equal(t, Placement{Room: 2, Time: 1}, placement)
	})

	t.Run("The search is bounded when the diagonal never reaches a free cell", func(t *testing.T) {
		// (0, 1) and (1, 0) are free but the dual cursors only visit (0, 0) and (1, 1)
		state := newTestState(t, 2, 2, "a", "b", "c")
		state.commit("a", Placement{Room: 0, Time: 0})
		state.commit("b", Placement{Room: 1, Time: 1})

		_, ok := state.findCell(newRequirement())

		assert.False(t, ok)
	})
}
