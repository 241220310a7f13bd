package i

import (
	"context"

	"github.com/beka-birhanu/gridpath-api/maze"
	"github.com/beka-birhanu/gridpath-api/search"
	"github.com/google/uuid"
)

// SearchSessionManager owns live search runs and advances them on behalf of
// a driver.
type SearchSessionManager interface {
	// NewSession constructs a not-yet-advanced run and returns its handle.
	NewSession(algorithm search.Algorithm, grid *maze.Grid, start, goal maze.Coordinate) (uuid.UUID, error)

	// Advance performs up to the given number of bounded work units and
	// returns the last yielded frame. Advancing a finished run is a no-op
	// returning the final frame.
	Advance(id uuid.UUID, steps int) (*search.Frame, error)

	// Frame returns the most recently yielded frame without advancing.
	Frame(id uuid.UUID) (*search.Frame, error)

	// Abandon discards a run. The engine holds no external resources, so
	// discarding is the whole cancellation story.
	Abandon(id uuid.UUID) error

	// TopRuns lists the best finished runs, fewest steps first.
	TopRuns(ctx context.Context, amount int64) ([]string, error)
}
