package model

import "time"

// Stats counts the steps taken by a single search
type Stats struct {
	Iterations  uint64
	Selections  uint64
	Evaluations uint64
	Commits     uint64
	Retractions uint64
}

// Observer receives every step of a search as it happens. Hooks run synchronously on the search goroutine
type Observer interface {
	Selected(event string)
	Evaluated(event string, feasible bool)
	Committed(event string, placement Placement)
	Retracted(event string, placement Placement)
	Finished(stats Stats, elapsed time.Duration, err error)
}

type nopObserver struct{}

func (nopObserver) Selected(string) {}
func (nopObserver) Evaluated(string, bool) {}
func (nopObserver) Committed(string, Placement) {}
func (nopObserver) Retracted(string, Placement) {}
func (nopObserver) Finished(Stats, time.Duration, error) {}
