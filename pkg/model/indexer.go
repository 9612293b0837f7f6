package model

// indexer interface is design to give a unique index to a grid cell and vice versa
type indexer interface {
	// Returns a unique index to a (time, room) cell
	Index(time Time, room Room) uint64
	// Returns the (time, room) cell from a unique index
	Attributes(index uint64) (time Time, room Room)
	// Returns the amount of cells
	Cells() uint64
}

func newIndexer(timeSlots, rooms uint64) indexer {
	return &indexerImplementation{
		timeSlots: timeSlots,
		rooms:     rooms,
	}
}
