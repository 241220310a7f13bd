package search

import (
	"container/heap"

	"github.com/beka-birhanu/gridpath-api/maze"
)

// weightedConfig parametrizes the priority key of the generalized weighted
// search:
//
//	priority = (usePathCost ? g : 0) + heuristicWeight * manhattan(n, goal)
//
// Dijkstra is {true, 0}, A* is {true, 1}, greedy best-first is {false, 1}.
type weightedConfig struct {
	usePathCost     bool
	heuristicWeight float64
}

func (c weightedConfig) priority(cost, estimate float64) float64 {
	p := c.heuristicWeight * estimate
	if c.usePathCost {
		p += cost
	}
	return p
}

// weightedStepper is the single engine behind Dijkstra, A* and greedy
// best-first. Relaxed nodes get a fresh frontier entry; the stale entry is
// never removed eagerly, only discarded when it surfaces already closed.
type weightedStepper struct {
	grid *maze.Grid
	goal maze.Coordinate
	cfg  weightedConfig

	open        priorityQueue
	sequence    uint64
	cost        map[string]float64
	closed      map[string]struct{}
	closedOrder []maze.Coordinate
	parents     map[string]string

	final *Frame
}

func newWeightedStepper(grid *maze.Grid, start, goal maze.Coordinate, cfg weightedConfig) *weightedStepper {
	w := &weightedStepper{
		grid:    grid,
		goal:    goal,
		cfg:     cfg,
		open:    make(priorityQueue, 0),
		cost:    make(map[string]float64),
		closed:  make(map[string]struct{}),
		parents: make(map[string]string),
	}
	heap.Init(&w.open)

	w.cost[start.Key()] = 0
	w.parents[start.Key()] = rootSentinel
	w.push(start, 0)
	return w
}

func (w *weightedStepper) push(c maze.Coordinate, cost float64) {
	item := &pqItem{
		coord:    c,
		key:      c.Key(),
		priority: w.cfg.priority(cost, manhattan(c, w.goal)),
		cost:     cost,
		sequence: w.sequence,
	}
	w.sequence++
	heap.Push(&w.open, item)
}

func (w *weightedStepper) Step() (*Frame, error) {
	if w.final != nil {
		return w.final, nil
	}

	// Lazy deletion: surfacing entries for already-closed nodes are stale
	// duplicates left by relaxation and are skipped, not counted as work.
	var current *pqItem
	for w.open.Len() > 0 {
		candidate := heap.Pop(&w.open).(*pqItem)
		if _, done := w.closed[candidate.key]; done {
			continue
		}
		current = candidate
		break
	}

	if current == nil {
		w.final = w.snapshot(nil, nil)
		return w.final, nil
	}

	w.closed[current.key] = struct{}{}
	w.closedOrder = append(w.closedOrder, current.coord)

	if current.coord == w.goal {
		path, err := reconstruct(w.parents, current.key)
		if err != nil {
			return nil, err
		}
		w.final = w.snapshot(path, coordRef(current.coord))
		return w.final, nil
	}

	for _, n := range neighbors(w.grid, current.coord) {
		key := n.Key()
		if _, done := w.closed[key]; done {
			continue
		}
		tentative := current.cost + 1
		if best, known := w.cost[key]; known && tentative >= best {
			continue
		}
		w.cost[key] = tentative
		w.parents[key] = current.key
		w.push(n, tentative)
	}

	return &Frame{
		Visited:  copyCoords(w.closedOrder),
		Frontier: w.frontier(),
		Current:  coordRef(current.coord),
	}, nil
}

// frontier snapshots the open set, collapsing stale duplicates.
func (w *weightedStepper) frontier() []maze.Coordinate {
	seen := make(map[string]struct{}, len(w.open))
	result := make([]maze.Coordinate, 0, len(w.open))
	for _, item := range w.open {
		if _, done := w.closed[item.key]; done {
			continue
		}
		if _, dup := seen[item.key]; dup {
			continue
		}
		seen[item.key] = struct{}{}
		result = append(result, item.coord)
	}
	return result
}

func (w *weightedStepper) snapshot(path []maze.Coordinate, current *maze.Coordinate) *Frame {
	return &Frame{
		Visited:  copyCoords(w.closedOrder),
		Frontier: w.frontier(),
		Path:     path,
		Current:  current,
		Done:     true,
	}
}
