package model

// Grid is a time-slots x rooms matrix where each cell holds at most one event name
type Grid struct {
	timeSlots uint64
	rooms     uint64
	indexer   indexer
	cells     []string // Empty string stands for an unused cell
}

func NewGrid(timeSlots, rooms uint64) *Grid {
	indexer := newIndexer(timeSlots, rooms)
	return &Grid{
		timeSlots: timeSlots,
		rooms:     rooms,
		indexer:   indexer,
		cells:     make([]string, indexer.Cells()),
	}
}

func (grid *Grid) TimeSlots() uint64 {
	return grid.timeSlots
}

func (grid *Grid) Rooms() uint64 {
	return grid.rooms
}

// Checks whether the (time, room) cell lies within the grid
func (grid *Grid) Contains(time Time, room Room) bool {
	return uint64(time) < grid.timeSlots && uint64(room) < grid.rooms
}

// Returns the event placed at (time, room) and whether the cell is occupied
func (grid *Grid) Cell(time Time, room Room) (string, bool) {
	if !grid.Contains(time, room) {
		return "", false
	}
	event := grid.cells[grid.indexer.Index(time, room)]
	return event, event != ""
}

func (grid *Grid) occupied(time Time, room Room) bool {
	_, ok := grid.Cell(time, room)
	return ok
}

func (grid *Grid) set(placement Placement, event string) {
	grid.cells[grid.indexer.Index(placement.Time, placement.Room)] = event
}

// Empties the cell and returns the event it held
func (grid *Grid) take(placement Placement) string {
	index := grid.indexer.Index(placement.Time, placement.Room)
	event := grid.cells[index]
	grid.cells[index] = ""
	return event
}

// Returns the placement of every event in the grid
func (grid *Grid) Placements() map[string]Placement {
	placements := make(map[string]Placement)
	for index, event := range grid.cells {
		if event == "" {
			continue
		}
		time, room := grid.indexer.Attributes(uint64(index))
		placements[event] = Placement{Room: room, Time: time}
	}
	return placements
}

// Returns a copy of the grid as rows of time slots, where each row has one column per room. Unused cells are empty strings
func (grid *Grid) Rows() [][]string {
	rows := make([][]string, grid.timeSlots)
	for time := range grid.timeSlots {
		rows[time] = make([]string, grid.rooms)
		copy(rows[time], grid.cells[time*grid.rooms:(time+1)*grid.rooms])
	}
	return rows
}
