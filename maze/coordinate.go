package maze

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrBadKey indicates a map key that does not decode back to a coordinate.
var ErrBadKey = errors.New("malformed coordinate key")

// Coordinate identifies a single grid cell by column and row.
type Coordinate struct {
	Col int
	Row int
}

// Key encodes the coordinate as its canonical map key.
func (c Coordinate) Key() string {
	return fmt.Sprintf("%d,%d", c.Col, c.Row)
}

// ParseKey decodes a key produced by Coordinate.Key.
func ParseKey(key string) (Coordinate, error) {
	parts := strings.Split(key, ",")
	if len(parts) != 2 {
		return Coordinate{}, fmt.Errorf("%w: %q", ErrBadKey, key)
	}

	col, err := strconv.Atoi(parts[0])
	if err != nil {
		return Coordinate{}, fmt.Errorf("%w: %q", ErrBadKey, key)
	}
	row, err := strconv.Atoi(parts[1])
	if err != nil {
		return Coordinate{}, fmt.Errorf("%w: %q", ErrBadKey, key)
	}

	return Coordinate{Col: col, Row: row}, nil
}
