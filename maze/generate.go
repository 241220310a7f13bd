package maze

import (
	"fmt"
	"math/rand"
)

const maxLatticeDimension = 50

// carveDirections are the lattice moves available to the random walk.
var carveDirections = map[string]Coordinate{
	"North": {Col: 0, Row: -1},
	"South": {Col: 0, Row: 1},
	"East":  {Col: 1, Row: 0},
	"West":  {Col: -1, Row: 0},
}

// carveMove records a walk step between two adjacent lattice rooms.
type carveMove struct {
	From Coordinate
	To   Coordinate
}

// Generate carves a random maze of width x height rooms with Wilson-style
// random walks and returns it as a block grid: rooms sit at odd coordinates
// of a (2*width+1) x (2*height+1) field of cells, and the wall cell between
// two rooms is opened whenever the walk connects them.
func Generate(width, height int) (*Grid, error) {
	if min(width, height) <= 0 || max(width, height) > maxLatticeDimension {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}

	l := &lattice{width: width, height: height, opened: make(map[string]struct{})}
	l.carve()
	return l.grid(), nil
}

// lattice is the room-level view of the maze while it is being carved.
type lattice struct {
	width  int
	height int
	opened map[string]struct{} // block-grid keys of removed wall cells
}

func (l *lattice) randomRoom() Coordinate {
	return Coordinate{Col: rand.Intn(l.width), Row: rand.Intn(l.height)}
}

func (l *lattice) randomUnvisitedRoom(visited map[string]struct{}) Coordinate {
	for {
		room := l.randomRoom()
		if _, included := visited[room.Key()]; !included {
			return room
		}
	}
}

func (l *lattice) neighbors(room Coordinate) []carveMove {
	var result []carveMove
	for _, delta := range carveDirections {
		neighbor := Coordinate{Col: room.Col + delta.Col, Row: room.Row + delta.Row}
		if neighbor.Row >= 0 && neighbor.Row < l.height && neighbor.Col >= 0 && neighbor.Col < l.width {
			result = append(result, carveMove{From: room, To: neighbor})
		}
	}
	return result
}

// openWall removes the block-grid wall cell between two adjacent rooms.
func (l *lattice) openWall(move carveMove) {
	between := Coordinate{
		Col: move.From.Col + move.To.Col + 1,
		Row: move.From.Row + move.To.Row + 1,
	}
	l.opened[between.Key()] = struct{}{}
}

// randomWalk performs a random walk starting from an unvisited room and
// returns the last move taken out of each room touched by the walk.
func (l *lattice) randomWalk(visited map[string]struct{}) map[Coordinate]carveMove {
	start := l.randomUnvisitedRoom(visited)
	visits := make(map[Coordinate]carveMove)
	room := start

	for {
		neighbors := l.neighbors(room)
		next := neighbors[rand.Intn(len(neighbors))]
		visits[room] = next
		if _, included := visited[next.To.Key()]; included {
			break
		}
		room = next.To
	}

	return visits
}

// carve connects every room to the visited set with repeated random walks.
func (l *lattice) carve() {
	visited := make(map[string]struct{})
	start := l.randomRoom()
	visited[start.Key()] = struct{}{}

	for len(visited) < l.width*l.height {
		for room, move := range l.randomWalk(visited) {
			l.openWall(move)
			visited[room.Key()] = struct{}{}
		}
	}
}

// grid expands the carved lattice into the block-cell representation.
func (l *lattice) grid() *Grid {
	blockWidth := 2*l.width + 1
	blockHeight := 2*l.height + 1

	cells := make([][]CellKind, blockHeight)
	for r := range cells {
		cells[r] = make([]CellKind, blockWidth)
		for c := range cells[r] {
			cells[r][c] = CellWall
		}
	}

	for row := 0; row < l.height; row++ {
		for col := 0; col < l.width; col++ {
			cells[2*row+1][2*col+1] = CellOpen
		}
	}
	for key := range l.opened {
		c, err := ParseKey(key)
		if err != nil {
			continue
		}
		cells[c.Row][c.Col] = CellOpen
	}

	return &Grid{width: blockWidth, height: blockHeight, cells: cells}
}
