package search

import "github.com/beka-birhanu/gridpath-api/maze"

// dfsStepper expands nodes in LIFO order using an explicit stack so the run
// can be suspended between steps. Neighbors are pushed in reverse canonical
// order, so popping reproduces canonical visitation order. The path of a
// progress frame is the current exploration branch, which makes backtracking
// visible; no shortest-path guarantee.
type dfsStepper struct {
	grid *maze.Grid
	goal maze.Coordinate

	stack        []maze.Coordinate
	visited      map[string]struct{}
	visitedOrder []maze.Coordinate
	parents      map[string]string

	final *Frame
}

func newDFSStepper(grid *maze.Grid, start, goal maze.Coordinate) *dfsStepper {
	d := &dfsStepper{
		grid:    grid,
		goal:    goal,
		visited: make(map[string]struct{}),
		parents: make(map[string]string),
	}
	d.visited[start.Key()] = struct{}{}
	d.visitedOrder = append(d.visitedOrder, start)
	d.parents[start.Key()] = rootSentinel
	d.stack = append(d.stack, start)
	return d
}

func (d *dfsStepper) Step() (*Frame, error) {
	if d.final != nil {
		return d.final, nil
	}

	if len(d.stack) == 0 {
		d.final = &Frame{
			Visited:  copyCoords(d.visitedOrder),
			Frontier: copyCoords(d.stack),
			Done:     true,
		}
		return d.final, nil
	}

	current := d.stack[len(d.stack)-1]
	d.stack = d.stack[:len(d.stack)-1]

	branch, err := reconstruct(d.parents, current.Key())
	if err != nil {
		return nil, err
	}

	if current == d.goal {
		d.final = &Frame{
			Visited:  copyCoords(d.visitedOrder),
			Frontier: copyCoords(d.stack),
			Path:     branch,
			Current:  coordRef(current),
			Done:     true,
		}
		return d.final, nil
	}

	// Newly discovered neighbors are claimed before pushing so the same node
	// never sits on the stack twice.
	nbs := neighbors(d.grid, current)
	for i := len(nbs) - 1; i >= 0; i-- {
		n := nbs[i]
		key := n.Key()
		if _, seen := d.visited[key]; seen {
			continue
		}
		d.visited[key] = struct{}{}
		d.visitedOrder = append(d.visitedOrder, n)
		d.parents[key] = current.Key()
		d.stack = append(d.stack, n)
	}

	return &Frame{
		Visited:  copyCoords(d.visitedOrder),
		Frontier: copyCoords(d.stack),
		Path:     branch,
		Current:  coordRef(current),
	}, nil
}
