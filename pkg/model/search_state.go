package model

import (
	"log"
	"slices"

	"github.com/samber/lo"
)

type eventEntry struct {
	event     Event
	placement *Placement // Nil while the event is unplaced
}

// searchState is the world a single search mutates: the grid, the event map and the placement history
type searchState struct {
	grid     *Grid
	entries  map[string]*eventEntry
	history  []Placement // Placements in commit order; the top belongs to the most recently placed event
	names    []string    // Event names sorted lexicographically
	cursor   int         // Round-robin position over names
	selected string      // Event under evaluation, empty if none
}

func newSearchState(events map[string]Event, timeSlots, rooms uint64) *searchState {
	names := lo.Keys(events)
	slices.Sort(names)

	entries := make(map[string]*eventEntry, len(events))
	for name, event := range events {
		entries[name] = &eventEntry{event: event}
	}

	return &searchState{
		grid:    NewGrid(timeSlots, rooms),
		entries: entries,
		history: make([]Placement, 0, len(events)),
		names:   names,
	}
}

func (state *searchState) Placement(event string) (Placement, bool) {
	entry, ok := state.entries[event]
	if !ok || entry.placement == nil {
		return Placement{}, false
	}
	return *entry.placement, true
}

func (state *searchState) done() bool {
	return len(state.history) == len(state.names)
}

// Returns the event under evaluation. If there is none, the cursor advances until it finds an unplaced event.
// Must not be called once every event is placed
func (state *searchState) selectEvent() (Event, bool) {
	if state.selected != "" {
		return state.entries[state.selected].event, false
	}

	for {
		name := state.names[state.cursor]
		state.cursor = (state.cursor + 1) % len(state.names)
		if state.entries[name].placement == nil {
			state.selected = name
			return state.entries[name].event, true
		}
	}
}

func (state *searchState) commit(event string, placement Placement) {
	state.grid.set(placement, event)
	state.history = append(state.history, placement)
	state.entries[event].placement = &placement
	state.selected = ""
}

// Undoes the most recent placement. Returns false if there is nothing to undo
func (state *searchState) retract() (string, Placement, bool) {
	if len(state.history) == 0 {
		return "", Placement{}, false
	}

	placement := state.history[len(state.history)-1]
	state.history = state.history[:len(state.history)-1]

	event := state.grid.take(placement)
	entry, ok := state.entries[event]
	if !ok {
		log.Panicf("grid cell %v holds unknown event %q", placement, event)
	}
	entry.placement = nil

	return event, placement, true
}

// Looks for a cell honouring the requirement. Unfixed dimensions are scanned with independent cursors:
// a banned time advances the time cursor, a banned room advances the room cursor and an occupied cell advances both.
// The scan only follows the diagonal-like sequence those rules produce, so it may miss free cells
func (state *searchState) findCell(req requirement) (Placement, bool) {
	timeSlots, rooms := state.grid.TimeSlots(), state.grid.Rooms()
	timeIndex, roomIndex := uint64(0), uint64(0)

	for range (timeSlots + 1) * (rooms + 1) {
		tryTime, tryRoom := Time(timeIndex), Room(roomIndex)
		if req.timeFixed {
			tryTime = req.time
		}
		if req.roomFixed {
			tryRoom = req.room
		}

		if req.bannedTimes[tryTime] {
			timeIndex = (timeIndex + 1) % timeSlots
			continue
		}
		if req.bannedRooms[tryRoom] {
			roomIndex = (roomIndex + 1) % rooms
			continue
		}
		if state.grid.occupied(tryTime, tryRoom) {
			timeIndex = (timeIndex + 1) % timeSlots
			roomIndex = (roomIndex + 1) % rooms
			continue
		}

		return Placement{Room: tryRoom, Time: tryTime}, true
	}

	return Placement{}, false
}
