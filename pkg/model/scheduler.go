package model

import "context"

type Scheduler interface {
	// Places every event of the problem on a grid. On failure the grid is nil and the error is one of the package's errors,
	// or the context's error wrapped if the search was interrupted
	Build(ctx context.Context, problem Problem) (grid *Grid, stats Stats, err error)

	// Checks whether the grid places every event of the problem exactly once and honours all of its constraints
	Verify(grid *Grid, problem Problem) bool
}
