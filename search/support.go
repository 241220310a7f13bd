package search

import (
	"fmt"
	"math"

	"github.com/beka-birhanu/gridpath-api/maze"
)

// rootSentinel marks a search origin in a parent map.
const rootSentinel = ""

// neighborOffsets is the canonical expansion order: up, down, left, right.
// Deterministic tie-breaking in every strategy depends on this order.
var neighborOffsets = []maze.Coordinate{
	{Col: 0, Row: -1},
	{Col: 0, Row: 1},
	{Col: -1, Row: 0},
	{Col: 1, Row: 0},
}

// neighbors returns the open cells orthogonally adjacent to c, in canonical
// order.
func neighbors(grid *maze.Grid, c maze.Coordinate) []maze.Coordinate {
	result := make([]maze.Coordinate, 0, len(neighborOffsets))
	for _, delta := range neighborOffsets {
		n := maze.Coordinate{Col: c.Col + delta.Col, Row: c.Row + delta.Row}
		if grid.IsOpen(n) {
			result = append(result, n)
		}
	}
	return result
}

// manhattan is the heuristic used throughout: admissible on a 4-connected
// unit-cost grid.
func manhattan(a, b maze.Coordinate) float64 {
	return math.Abs(float64(a.Col-b.Col)) + math.Abs(float64(a.Row-b.Row))
}

// reconstruct walks parent pointers from terminal back to a root and returns
// the coordinate sequence root..terminal. Parent maps are forests by
// construction; a walk longer than the map signals a cycle and fails with
// ErrBrokenChain.
func reconstruct(parents map[string]string, terminal string) ([]maze.Coordinate, error) {
	var path []maze.Coordinate
	current := terminal
	for steps := 0; ; steps++ {
		if steps > len(parents)+1 {
			return nil, fmt.Errorf("%w: cycle at %q", ErrBrokenChain, current)
		}

		c, err := maze.ParseKey(current)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBrokenChain, err)
		}
		path = append(path, c)

		previous, ok := parents[current]
		if !ok || previous == rootSentinel {
			break
		}
		current = previous
	}

	// reverse path
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, nil
}

// copyCoords snapshots a coordinate slice so frames stay valid after the
// stepper mutates its state.
func copyCoords(src []maze.Coordinate) []maze.Coordinate {
	if src == nil {
		return nil
	}
	dst := make([]maze.Coordinate, len(src))
	copy(dst, src)
	return dst
}

// coordRef returns a pointer to a copy of c for use as a frame's Current.
func coordRef(c maze.Coordinate) *maze.Coordinate {
	ref := c
	return &ref
}
