/*
Package search implements stepwise grid search.

Seven strategies (breadth-first, depth-first, Dijkstra, A*, greedy
best-first, bidirectional breadth-first and iterative-deepening A*) share a
single contract: a Stepper performs one bounded unit of work per Step call
and yields a Frame describing its progress. The driver owns pacing; a run is
cancelled by simply discarding its Stepper.

Every stepper is a plain state machine. All loop state (queue, stack,
priority queue, visited set, parent map) lives on the stepper struct, so the
run is quiescent and inspectable between calls, and two runs never share
mutable state. Given the same grid, endpoints and algorithm, a run yields an
identical frame sequence every time.
*/
package search

import (
	"errors"
	"fmt"

	"github.com/beka-birhanu/gridpath-api/maze"
)

// Algorithm selects one of the supported search strategies.
type Algorithm string

const (
	BFS              Algorithm = "bfs"
	DFS              Algorithm = "dfs"
	Dijkstra         Algorithm = "dijkstra"
	AStar            Algorithm = "astar"
	Greedy           Algorithm = "greedy"
	BidirectionalBFS Algorithm = "bidirectional"
	IDAStar          Algorithm = "idastar"
)

var (
	// ErrInvalidCoordinate flags a start or goal outside the grid or on a wall.
	ErrInvalidCoordinate = errors.New("invalid coordinate")

	// ErrUnknownAlgorithm flags an algorithm selector with no stepper.
	ErrUnknownAlgorithm = errors.New("unknown algorithm")

	// ErrBrokenChain flags a cycle or dangling pointer in a parent chain. It
	// signals an internal invariant violation and is never expected.
	ErrBrokenChain = errors.New("broken parent chain")
)

// Frame is one externally observable snapshot of search progress.
//
// Path is empty until a solution is known, except for DFS and IDA* whose
// progress frames carry the current exploration branch so backtracking is
// visible. A frame with Done set is final: Path holds the solution if one
// was found and is empty when the search exhausted the grid.
type Frame struct {
	Visited  []maze.Coordinate
	Frontier []maze.Coordinate
	Path     []maze.Coordinate
	Current  *maze.Coordinate
	Done     bool
}

// Stepper advances a single search run one bounded unit of work at a time.
// Once a returned frame has Done set, further Step calls are no-ops that
// return the same final frame.
type Stepper interface {
	Step() (*Frame, error)
}

// New constructs a not-yet-advanced stepper for the given algorithm, bound
// to the grid snapshot and endpoints. It fails with ErrInvalidCoordinate if
// start or goal lies outside the grid or on a wall.
func New(algorithm Algorithm, grid *maze.Grid, start, goal maze.Coordinate) (Stepper, error) {
	for _, c := range []maze.Coordinate{start, goal} {
		if !grid.InBound(c) || grid.IsWall(c) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidCoordinate, c.Key())
		}
	}

	switch algorithm {
	case BFS:
		return newBFSStepper(grid, start, goal), nil
	case DFS:
		return newDFSStepper(grid, start, goal), nil
	case Dijkstra:
		return newWeightedStepper(grid, start, goal, weightedConfig{usePathCost: true, heuristicWeight: 0}), nil
	case AStar:
		return newWeightedStepper(grid, start, goal, weightedConfig{usePathCost: true, heuristicWeight: 1}), nil
	case Greedy:
		return newWeightedStepper(grid, start, goal, weightedConfig{usePathCost: false, heuristicWeight: 1}), nil
	case BidirectionalBFS:
		return newBidiStepper(grid, start, goal), nil
	case IDAStar:
		return newIDAStepper(grid, start, goal), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algorithm)
	}
}
