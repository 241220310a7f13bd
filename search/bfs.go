package search

import "github.com/beka-birhanu/gridpath-api/maze"

// bfsStepper expands nodes in FIFO order. Because nodes are dequeued in
// non-decreasing hop distance and a node's parent is fixed at first
// visitation, the final path is a shortest path by edge count.
type bfsStepper struct {
	grid *maze.Grid
	goal maze.Coordinate

	queue        []maze.Coordinate
	visited      map[string]struct{}
	visitedOrder []maze.Coordinate
	parents      map[string]string

	final *Frame
}

func newBFSStepper(grid *maze.Grid, start, goal maze.Coordinate) *bfsStepper {
	b := &bfsStepper{
		grid:    grid,
		goal:    goal,
		visited: make(map[string]struct{}),
		parents: make(map[string]string),
	}
	b.visited[start.Key()] = struct{}{}
	b.visitedOrder = append(b.visitedOrder, start)
	b.parents[start.Key()] = rootSentinel
	b.queue = append(b.queue, start)
	return b
}

func (b *bfsStepper) Step() (*Frame, error) {
	if b.final != nil {
		return b.final, nil
	}

	if len(b.queue) == 0 {
		b.final = b.snapshot(nil, nil)
		return b.final, nil
	}

	current := b.queue[0]
	b.queue = b.queue[1:]

	if current == b.goal {
		path, err := reconstruct(b.parents, current.Key())
		if err != nil {
			return nil, err
		}
		b.final = b.snapshot(path, coordRef(current))
		return b.final, nil
	}

	for _, n := range neighbors(b.grid, current) {
		key := n.Key()
		if _, seen := b.visited[key]; seen {
			continue
		}
		b.visited[key] = struct{}{}
		b.visitedOrder = append(b.visitedOrder, n)
		b.parents[key] = current.Key()
		b.queue = append(b.queue, n)
	}

	return &Frame{
		Visited:  copyCoords(b.visitedOrder),
		Frontier: copyCoords(b.queue),
		Current:  coordRef(current),
	}, nil
}

func (b *bfsStepper) snapshot(path []maze.Coordinate, current *maze.Coordinate) *Frame {
	return &Frame{
		Visited:  copyCoords(b.visitedOrder),
		Frontier: copyCoords(b.queue),
		Path:     path,
		Current:  current,
		Done:     true,
	}
}
