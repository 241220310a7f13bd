/*
Package maze provides the rectangular grid model consumed by the search
engine, along with random maze carving.

A grid is a fixed-size rectangle of wall and open cells. It never changes
once built, so a single grid snapshot can back any number of search runs.
Grids can be parsed from and rendered to ASCII rows ('#' wall, '.' open),
which is also the persisted representation.
*/
package maze

import (
	"errors"
	"fmt"
	"strings"
)

// Characters used by Parse and String.
const (
	wallChar = '#'
	openChar = '.'
)

var (
	ErrInvalidDimensions = errors.New("invalid grid dimensions")
	ErrMalformedRows     = errors.New("malformed grid rows")
)

// CellKind tags a grid cell as open or wall.
type CellKind byte

const (
	CellOpen CellKind = iota
	CellWall
)

// Grid is an immutable rectangular field of cells.
type Grid struct {
	width  int
	height int
	cells  [][]CellKind // indexed [row][col]
}

// Parse builds a grid from ASCII rows. All rows must be non-empty and of
// equal length; '#' marks a wall, any other character an open cell.
func Parse(rows []string) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty grid", ErrMalformedRows)
	}

	width := len(rows[0])
	cells := make([][]CellKind, len(rows))
	for r, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has length %d, want %d", ErrMalformedRows, r, len(row), width)
		}
		cells[r] = make([]CellKind, width)
		for c, ch := range []byte(row) {
			if ch == wallChar {
				cells[r][c] = CellWall
			}
		}
	}

	return &Grid{width: width, height: len(rows), cells: cells}, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// InBound reports whether the coordinate lies inside the grid.
func (g *Grid) InBound(c Coordinate) bool {
	return c.Row >= 0 && c.Row < g.height && c.Col >= 0 && c.Col < g.width
}

// IsWall reports whether the cell at c is a wall. Out-of-bound coordinates
// count as walls.
func (g *Grid) IsWall(c Coordinate) bool {
	if !g.InBound(c) {
		return true
	}
	return g.cells[c.Row][c.Col] == CellWall
}

// IsOpen reports whether the cell at c is inside the grid and open.
func (g *Grid) IsOpen(c Coordinate) bool {
	return g.InBound(c) && g.cells[c.Row][c.Col] == CellOpen
}

// Rows renders the grid as ASCII rows, the inverse of Parse.
func (g *Grid) Rows() []string {
	rows := make([]string, g.height)
	for r := 0; r < g.height; r++ {
		var b strings.Builder
		for c := 0; c < g.width; c++ {
			if g.cells[r][c] == CellWall {
				b.WriteByte(wallChar)
			} else {
				b.WriteByte(openChar)
			}
		}
		rows[r] = b.String()
	}
	return rows
}

// String provides a textual representation of the grid.
func (g *Grid) String() string {
	return strings.Join(g.Rows(), "\n")
}
