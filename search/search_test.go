package search

import (
	"testing"

	"github.com/beka-birhanu/gridpath-api/maze"
	"github.com/stretchr/testify/assert"
)

var allAlgorithms = []Algorithm{BFS, DFS, Dijkstra, AStar, Greedy, BidirectionalBFS, IDAStar}

// wallColumnRows is a 5x5 grid, open except for a wall column at col 2 that
// stops short of the last row. Every start-to-goal route must pass (2,4).
var wallColumnRows = []string{
	"..#..",
	"..#..",
	"..#..",
	"..#..",
	".....",
}

// corridorRows carves a single snaking corridor, so exactly one path exists
// between (1,1) and (5,5).
var corridorRows = []string{
	"#######",
	"#.....#",
	"#####.#",
	"#.....#",
	"#.#####",
	"#.....#",
	"#######",
}

// enclosedGoalRows fully walls off the goal cell (2,2).
var enclosedGoalRows = []string{
	".....",
	".###.",
	".#.#.",
	".###.",
	".....",
}

func mustParse(t *testing.T, rows []string) *maze.Grid {
	t.Helper()
	grid, err := maze.Parse(rows)
	assert.NoError(t, err)
	return grid
}

// runToCompletion steps a search until its final frame, returning every
// yielded frame.
func runToCompletion(t *testing.T, stepper Stepper) []*Frame {
	t.Helper()
	var frames []*Frame
	for steps := 0; steps < 200000; steps++ {
		frame, err := stepper.Step()
		assert.NoError(t, err)
		frames = append(frames, frame)
		if frame.Done {
			return frames
		}
	}
	t.Fatal("search did not terminate")
	return nil
}

func pathEdges(frames []*Frame) int {
	final := frames[len(frames)-1]
	return len(final.Path) - 1
}

func TestNeighbors(t *testing.T) {
	grid := mustParse(t, []string{
		"...",
		"...",
		"...",
	})

	t.Run("canonical order is up, down, left, right", func(t *testing.T) {
		got := neighbors(grid, maze.Coordinate{Col: 1, Row: 1})
		want := []maze.Coordinate{
			{Col: 1, Row: 0},
			{Col: 1, Row: 2},
			{Col: 0, Row: 1},
			{Col: 2, Row: 1},
		}
		assert.Equal(t, want, got)
	})

	t.Run("filters bounds and walls", func(t *testing.T) {
		walled := mustParse(t, []string{
			".#.",
			"...",
		})
		got := neighbors(walled, maze.Coordinate{Col: 0, Row: 0})
		assert.Equal(t, []maze.Coordinate{{Col: 0, Row: 1}}, got)
	})
}

func TestReconstruct(t *testing.T) {
	t.Run("walks back to the root", func(t *testing.T) {
		parents := map[string]string{
			"0,0": "",
			"1,0": "0,0",
			"1,1": "1,0",
		}
		path, err := reconstruct(parents, "1,1")
		assert.NoError(t, err)
		assert.Equal(t, []maze.Coordinate{{Col: 0, Row: 0}, {Col: 1, Row: 0}, {Col: 1, Row: 1}}, path)
	})

	t.Run("detects cycles", func(t *testing.T) {
		parents := map[string]string{
			"0,0": "1,0",
			"1,0": "0,0",
		}
		_, err := reconstruct(parents, "0,0")
		assert.ErrorIs(t, err, ErrBrokenChain)
	})
}

func TestNewValidation(t *testing.T) {
	grid := mustParse(t, wallColumnRows)

	t.Run("start on a wall", func(t *testing.T) {
		_, err := New(BFS, grid, maze.Coordinate{Col: 2, Row: 1}, maze.Coordinate{Col: 4, Row: 4})
		assert.ErrorIs(t, err, ErrInvalidCoordinate)
	})

	t.Run("goal out of bounds", func(t *testing.T) {
		_, err := New(BFS, grid, maze.Coordinate{Col: 0, Row: 0}, maze.Coordinate{Col: 5, Row: 5})
		assert.ErrorIs(t, err, ErrInvalidCoordinate)
	})

	t.Run("unknown algorithm", func(t *testing.T) {
		_, err := New(Algorithm("simulated-annealing"), grid, maze.Coordinate{Col: 0, Row: 0}, maze.Coordinate{Col: 4, Row: 4})
		assert.ErrorIs(t, err, ErrUnknownAlgorithm)
	})

	t.Run("every selector constructs", func(t *testing.T) {
		for _, algorithm := range allAlgorithms {
			stepper, err := New(algorithm, grid, maze.Coordinate{Col: 0, Row: 0}, maze.Coordinate{Col: 4, Row: 4})
			assert.NoError(t, err)
			assert.NotNil(t, stepper)
		}
	})
}

func TestBFSWallColumnScenario(t *testing.T) {
	grid := mustParse(t, wallColumnRows)
	start := maze.Coordinate{Col: 0, Row: 0}
	goal := maze.Coordinate{Col: 4, Row: 4}

	stepper, err := New(BFS, grid, start, goal)
	assert.NoError(t, err)
	frames := runToCompletion(t, stepper)

	assert.GreaterOrEqual(t, len(frames), 5)
	assert.Equal(t, 8, pathEdges(frames))

	final := frames[len(frames)-1]
	assert.Equal(t, start, final.Path[0])
	assert.Equal(t, goal, final.Path[len(final.Path)-1])
	assert.Contains(t, final.Path, maze.Coordinate{Col: 2, Row: 4})
}

func TestUniqueCorridorAllAlgorithms(t *testing.T) {
	grid := mustParse(t, corridorRows)
	start := maze.Coordinate{Col: 1, Row: 1}
	goal := maze.Coordinate{Col: 5, Row: 5}

	// One route exists, so every strategy must return exactly it.
	for _, algorithm := range allAlgorithms {
		t.Run(string(algorithm), func(t *testing.T) {
			stepper, err := New(algorithm, grid, start, goal)
			assert.NoError(t, err)
			frames := runToCompletion(t, stepper)
			assert.Equal(t, 16, pathEdges(frames))
		})
	}
}

func TestOptimalStrategiesMatchBFS(t *testing.T) {
	grid := mustParse(t, wallColumnRows)
	start := maze.Coordinate{Col: 0, Row: 0}
	goal := maze.Coordinate{Col: 4, Row: 4}

	reference, err := New(BFS, grid, start, goal)
	assert.NoError(t, err)
	want := pathEdges(runToCompletion(t, reference))

	for _, algorithm := range []Algorithm{Dijkstra, AStar, IDAStar} {
		t.Run(string(algorithm), func(t *testing.T) {
			stepper, err := New(algorithm, grid, start, goal)
			assert.NoError(t, err)
			assert.Equal(t, want, pathEdges(runToCompletion(t, stepper)))
		})
	}
}

func TestUnreachableGoal(t *testing.T) {
	grid := mustParse(t, enclosedGoalRows)
	start := maze.Coordinate{Col: 0, Row: 0}
	goal := maze.Coordinate{Col: 2, Row: 2}

	for _, algorithm := range allAlgorithms {
		t.Run(string(algorithm), func(t *testing.T) {
			stepper, err := New(algorithm, grid, start, goal)
			assert.NoError(t, err)
			frames := runToCompletion(t, stepper)

			final := frames[len(frames)-1]
			assert.True(t, final.Done)
			assert.Empty(t, final.Path)
		})
	}
}

func TestStepAfterDoneIsNoOp(t *testing.T) {
	grid := mustParse(t, wallColumnRows)
	start := maze.Coordinate{Col: 0, Row: 0}
	goal := maze.Coordinate{Col: 4, Row: 4}

	for _, algorithm := range allAlgorithms {
		t.Run(string(algorithm), func(t *testing.T) {
			stepper, err := New(algorithm, grid, start, goal)
			assert.NoError(t, err)
			frames := runToCompletion(t, stepper)
			final := frames[len(frames)-1]

			again, err := stepper.Step()
			assert.NoError(t, err)
			assert.Same(t, final, again)
		})
	}
}

func TestVisitedGrowsMonotonically(t *testing.T) {
	grid := mustParse(t, wallColumnRows)
	start := maze.Coordinate{Col: 0, Row: 0}
	goal := maze.Coordinate{Col: 4, Row: 4}

	for _, algorithm := range allAlgorithms {
		t.Run(string(algorithm), func(t *testing.T) {
			stepper, err := New(algorithm, grid, start, goal)
			assert.NoError(t, err)
			frames := runToCompletion(t, stepper)

			previous := 0
			for _, frame := range frames {
				assert.GreaterOrEqual(t, len(frame.Visited), previous)
				previous = len(frame.Visited)
			}
		})
	}
}

func TestFinalPathIsContiguous(t *testing.T) {
	grid := mustParse(t, wallColumnRows)
	start := maze.Coordinate{Col: 0, Row: 0}
	goal := maze.Coordinate{Col: 4, Row: 4}

	for _, algorithm := range allAlgorithms {
		t.Run(string(algorithm), func(t *testing.T) {
			stepper, err := New(algorithm, grid, start, goal)
			assert.NoError(t, err)
			frames := runToCompletion(t, stepper)
			path := frames[len(frames)-1].Path

			assert.NotEmpty(t, path)
			assert.Equal(t, start, path[0])
			assert.Equal(t, goal, path[len(path)-1])

			seen := make(map[string]struct{}, len(path))
			for n, c := range path {
				_, repeated := seen[c.Key()]
				assert.False(t, repeated, "repeated coordinate %s", c.Key())
				seen[c.Key()] = struct{}{}
				if n > 0 {
					assert.Equal(t, 1.0, manhattan(path[n-1], c), "path jump between %v and %v", path[n-1], c)
				}
			}
		})
	}
}

func TestDFSProgressShowsBranch(t *testing.T) {
	grid := mustParse(t, corridorRows)
	start := maze.Coordinate{Col: 1, Row: 1}
	goal := maze.Coordinate{Col: 5, Row: 5}

	stepper, err := New(DFS, grid, start, goal)
	assert.NoError(t, err)
	frames := runToCompletion(t, stepper)

	for _, frame := range frames {
		if frame.Current == nil {
			continue
		}
		assert.NotEmpty(t, frame.Path)
		assert.Equal(t, start, frame.Path[0])
		assert.Equal(t, *frame.Current, frame.Path[len(frame.Path)-1])
	}
}

func TestGreedyFindsSomePath(t *testing.T) {
	grid := mustParse(t, wallColumnRows)
	start := maze.Coordinate{Col: 0, Row: 0}
	goal := maze.Coordinate{Col: 4, Row: 4}

	stepper, err := New(Greedy, grid, start, goal)
	assert.NoError(t, err)
	frames := runToCompletion(t, stepper)
	assert.NotEmpty(t, frames[len(frames)-1].Path)
}

func TestBidirectionalMatchesBFSOnTieFreeGrid(t *testing.T) {
	grid := mustParse(t, corridorRows)
	start := maze.Coordinate{Col: 1, Row: 1}
	goal := maze.Coordinate{Col: 5, Row: 5}

	reference, err := New(BFS, grid, start, goal)
	assert.NoError(t, err)
	want := pathEdges(runToCompletion(t, reference))

	stepper, err := New(BidirectionalBFS, grid, start, goal)
	assert.NoError(t, err)
	assert.Equal(t, want, pathEdges(runToCompletion(t, stepper)))
}

func TestStartEqualsGoal(t *testing.T) {
	grid := mustParse(t, wallColumnRows)
	here := maze.Coordinate{Col: 1, Row: 1}

	for _, algorithm := range allAlgorithms {
		t.Run(string(algorithm), func(t *testing.T) {
			stepper, err := New(algorithm, grid, here, here)
			assert.NoError(t, err)
			frames := runToCompletion(t, stepper)
			assert.Equal(t, []maze.Coordinate{here}, frames[len(frames)-1].Path)
		})
	}
}

func TestDeterministicFrameSequences(t *testing.T) {
	grid := mustParse(t, wallColumnRows)
	start := maze.Coordinate{Col: 0, Row: 0}
	goal := maze.Coordinate{Col: 4, Row: 4}

	for _, algorithm := range allAlgorithms {
		t.Run(string(algorithm), func(t *testing.T) {
			first, err := New(algorithm, grid, start, goal)
			assert.NoError(t, err)
			second, err := New(algorithm, grid, start, goal)
			assert.NoError(t, err)

			firstFrames := runToCompletion(t, first)
			secondFrames := runToCompletion(t, second)

			assert.Equal(t, len(firstFrames), len(secondFrames))
			for n := range firstFrames {
				assert.Equal(t, firstFrames[n], secondFrames[n])
			}
		})
	}
}
