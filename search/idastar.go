package search

import (
	"math"
	"sort"

	"github.com/beka-birhanu/gridpath-api/maze"
)

// idaFrame is one entry of the explicit call stack that replaces native
// recursion in the bounded depth-first search. It holds everything a resumed
// "call" needs: the node, its depth cost, and an index over its remaining
// sorted neighbors.
type idaFrame struct {
	node      maze.Coordinate
	cost      float64
	neighbors []maze.Coordinate
	next      int
	evaluated bool
}

// idaStepper is iterative-deepening A*. The outer loop raises the f-bound to
// the smallest value that exceeded it in the previous iteration; the inner
// bounded search is lowered to an explicit frame stack so the run can yield
// from inside any pruning decision and resume exactly there. Each Step is
// one decision: evaluate a node (prune, succeed, or expand), descend into
// its next neighbor, or backtrack.
//
// Cycle avoidance tests membership of the current path stack only; a node
// may legitimately be revisited across branches and iterations. The
// ever-visited set exists purely for visualization and never gates the
// search.
type idaStepper struct {
	grid  *maze.Grid
	start maze.Coordinate
	goal  maze.Coordinate

	bound     float64
	nextBound float64

	stack  []idaFrame
	onPath map[string]struct{}

	visited      map[string]struct{}
	visitedOrder []maze.Coordinate

	final *Frame
}

func newIDAStepper(grid *maze.Grid, start, goal maze.Coordinate) *idaStepper {
	s := &idaStepper{
		grid:      grid,
		start:     start,
		goal:      goal,
		bound:     manhattan(start, goal),
		nextBound: math.Inf(1),
		onPath:    make(map[string]struct{}),
		visited:   make(map[string]struct{}),
	}
	s.push(start, 0)
	return s
}

func (s *idaStepper) push(c maze.Coordinate, cost float64) {
	s.stack = append(s.stack, idaFrame{node: c, cost: cost})
	s.onPath[c.Key()] = struct{}{}
}

func (s *idaStepper) pop() {
	top := s.stack[len(s.stack)-1]
	delete(s.onPath, top.node.Key())
	s.stack = s.stack[:len(s.stack)-1]
}

func (s *idaStepper) markVisited(c maze.Coordinate) {
	key := c.Key()
	if _, seen := s.visited[key]; seen {
		return
	}
	s.visited[key] = struct{}{}
	s.visitedOrder = append(s.visitedOrder, c)
}

func (s *idaStepper) Step() (*Frame, error) {
	if s.final != nil {
		return s.final, nil
	}

	if len(s.stack) == 0 {
		// An iteration just drained. If nothing exceeded the bound there is
		// no deeper frontier to explore.
		if math.IsInf(s.nextBound, 1) {
			s.final = &Frame{
				Visited:  copyCoords(s.visitedOrder),
				Frontier: nil,
				Done:     true,
			}
			return s.final, nil
		}
		s.bound = s.nextBound
		s.nextBound = math.Inf(1)
		s.push(s.start, 0)
		return s.progressFrame(coordRef(s.start)), nil
	}

	top := &s.stack[len(s.stack)-1]
	current := top.node

	if !top.evaluated {
		top.evaluated = true
		s.markVisited(current)

		f := top.cost + manhattan(current, s.goal)
		if f > s.bound {
			if f < s.nextBound {
				s.nextBound = f
			}
			s.pop()
			return s.progressFrame(coordRef(current)), nil
		}

		if current == s.goal {
			s.final = &Frame{
				Visited:  copyCoords(s.visitedOrder),
				Frontier: s.frontier(),
				Path:     s.branch(),
				Current:  coordRef(current),
				Done:     true,
			}
			return s.final, nil
		}

		top.neighbors = s.sortedNeighbors(current)
		return s.progressFrame(coordRef(current)), nil
	}

	if top.next < len(top.neighbors) {
		n := top.neighbors[top.next]
		top.next++
		s.push(n, top.cost+1)
		return s.progressFrame(coordRef(n)), nil
	}

	// All branches below this node exhausted: backtrack.
	s.pop()
	return s.progressFrame(coordRef(current)), nil
}

// sortedNeighbors returns the open neighbors not already on the current
// path, ordered by ascending heuristic distance to the goal. The ordering is
// a convergence heuristic, not a correctness requirement; the sort is stable
// so canonical order still decides ties.
func (s *idaStepper) sortedNeighbors(c maze.Coordinate) []maze.Coordinate {
	candidates := neighbors(s.grid, c)
	result := make([]maze.Coordinate, 0, len(candidates))
	for _, n := range candidates {
		if _, cyclic := s.onPath[n.Key()]; cyclic {
			continue
		}
		result = append(result, n)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return manhattan(result[i], s.goal) < manhattan(result[j], s.goal)
	})
	return result
}

// branch is the root-to-top coordinate sequence of the current path stack.
func (s *idaStepper) branch() []maze.Coordinate {
	result := make([]maze.Coordinate, len(s.stack))
	for i, frame := range s.stack {
		result[i] = frame.node
	}
	return result
}

// frontier lists every not-yet-descended neighbor across the path stack.
func (s *idaStepper) frontier() []maze.Coordinate {
	var result []maze.Coordinate
	for _, frame := range s.stack {
		result = append(result, frame.neighbors[frame.next:]...)
	}
	return result
}

func (s *idaStepper) progressFrame(current *maze.Coordinate) *Frame {
	return &Frame{
		Visited:  copyCoords(s.visitedOrder),
		Frontier: s.frontier(),
		Path:     s.branch(),
		Current:  current,
	}
}
