package model

// Cells are laid out row-major: all the rooms of time 0 first, then all the rooms of time 1 and so on
type indexerImplementation struct {
	timeSlots uint64
	rooms     uint64
}

func (indexer *indexerImplementation) Index(time Time, room Room) uint64 {
	return uint64(room) + indexer.rooms*uint64(time)
}

func (indexer *indexerImplementation) Attributes(index uint64) (time Time, room Room) {
	room = Room(index % indexer.rooms)
	index = index / indexer.rooms

	time = Time(index % indexer.timeSlots)

	return time, room
}

func (indexer *indexerImplementation) Cells() uint64 {
	return indexer.timeSlots * indexer.rooms
}
