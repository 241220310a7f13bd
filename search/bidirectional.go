package search

import "github.com/beka-birhanu/gridpath-api/maze"

// bidiSide is one of the two independent breadth-first waves. The sides
// share no state; each is rooted at its own origin.
type bidiSide struct {
	queue   []maze.Coordinate
	visited map[string]struct{}
	parents map[string]string
}

func newBidiSide(origin maze.Coordinate) *bidiSide {
	s := &bidiSide{
		visited: make(map[string]struct{}),
		parents: make(map[string]string),
	}
	s.visited[origin.Key()] = struct{}{}
	s.parents[origin.Key()] = rootSentinel
	s.queue = append(s.queue, origin)
	return s
}

// bidiStepper runs breadth-first waves from both endpoints, one expansion
// per side per step. A meeting is detected only when a popped node is
// already in the opposite side's visited map; this is not a shortest-path
// certificate in every topology, and is kept as-is to match the reference
// behavior.
type bidiStepper struct {
	grid *maze.Grid

	startSide *bidiSide
	goalSide  *bidiSide

	visitedSet   map[string]struct{} // dedupes the merged discovery order
	visitedOrder []maze.Coordinate

	final *Frame
}

func newBidiStepper(grid *maze.Grid, start, goal maze.Coordinate) *bidiStepper {
	b := &bidiStepper{
		grid:       grid,
		startSide:  newBidiSide(start),
		goalSide:   newBidiSide(goal),
		visitedSet: make(map[string]struct{}),
	}
	b.markVisited(start)
	b.markVisited(goal)
	return b
}

func (b *bidiStepper) markVisited(c maze.Coordinate) {
	key := c.Key()
	if _, seen := b.visitedSet[key]; seen {
		return
	}
	b.visitedSet[key] = struct{}{}
	b.visitedOrder = append(b.visitedOrder, c)
}

func (b *bidiStepper) Step() (*Frame, error) {
	if b.final != nil {
		return b.final, nil
	}

	sides := [2]struct {
		own   *bidiSide
		other *bidiSide
	}{
		{own: b.startSide, other: b.goalSide},
		{own: b.goalSide, other: b.startSide},
	}

	var current *maze.Coordinate
	for _, pair := range sides {
		if len(pair.own.queue) == 0 {
			continue
		}

		popped := pair.own.queue[0]
		pair.own.queue = pair.own.queue[1:]
		current = coordRef(popped)

		if _, met := pair.other.visited[popped.Key()]; met {
			path, err := b.mergedPath(popped)
			if err != nil {
				return nil, err
			}
			b.final = b.snapshot(path, current)
			return b.final, nil
		}

		for _, n := range neighbors(b.grid, popped) {
			key := n.Key()
			if _, seen := pair.own.visited[key]; seen {
				continue
			}
			pair.own.visited[key] = struct{}{}
			pair.own.parents[key] = popped.Key()
			pair.own.queue = append(pair.own.queue, n)
			b.markVisited(n)
		}
	}

	// Both frontiers drained without a meeting: no path exists.
	if current == nil {
		b.final = b.snapshot(nil, nil)
		return b.final, nil
	}

	return &Frame{
		Visited:  copyCoords(b.visitedOrder),
		Frontier: b.frontier(),
		Current:  current,
	}, nil
}

// mergedPath joins start->meeting from the start side with meeting->goal
// from the goal side. The goal-side chain comes out rooted at the goal, so
// it is reversed and its duplicated meeting node dropped before
// concatenation.
func (b *bidiStepper) mergedPath(meeting maze.Coordinate) ([]maze.Coordinate, error) {
	fromStart, err := reconstruct(b.startSide.parents, meeting.Key())
	if err != nil {
		return nil, err
	}
	fromGoal, err := reconstruct(b.goalSide.parents, meeting.Key())
	if err != nil {
		return nil, err
	}

	for i, j := 0, len(fromGoal)-1; i < j; i, j = i+1, j-1 {
		fromGoal[i], fromGoal[j] = fromGoal[j], fromGoal[i]
	}
	return append(fromStart, fromGoal[1:]...), nil
}

func (b *bidiStepper) frontier() []maze.Coordinate {
	result := make([]maze.Coordinate, 0, len(b.startSide.queue)+len(b.goalSide.queue))
	result = append(result, b.startSide.queue...)
	result = append(result, b.goalSide.queue...)
	return result
}

func (b *bidiStepper) snapshot(path []maze.Coordinate, current *maze.Coordinate) *Frame {
	return &Frame{
		Visited:  copyCoords(b.visitedOrder),
		Frontier: b.frontier(),
		Path:     path,
		Current:  current,
		Done:     true,
	}
}
