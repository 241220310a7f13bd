package i

import (
	"errors"

	dmn "github.com/beka-birhanu/gridpath-api/domain"
	"github.com/google/uuid"
)

// ErrMazeNotFound flags a lookup of a maze ID with no stored record.
var ErrMazeNotFound = errors.New("maze not found")

// MazeRepo defines the interface for maze persistence operations.
type MazeRepo interface {
	// Save inserts or updates a maze in the repository.
	// If the maze already exists, it updates the record. Otherwise, it creates a new one.
	Save(maze *dmn.Maze) error

	// ByID retrieves a maze by its unique ID.
	// Returns an error if the maze is not found or in case of an unexpected error.
	ByID(id uuid.UUID) (*dmn.Maze, error)
}
