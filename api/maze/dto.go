// Package mazeapi provides structures and utilities for maze generation and
// retrieval requests.
package mazeapi

import (
	dmn "github.com/beka-birhanu/gridpath-api/domain"
	"github.com/google/uuid"
)

// GenerateMazeRequest asks for a carved maze of width x height rooms.
type GenerateMazeRequest struct {
	Width  int `json:"width" binding:"required"`
	Height int `json:"height" binding:"required"`
}

// MazeResponse represents a stored maze in its block-grid form.
type MazeResponse struct {
	ID     uuid.UUID `json:"id"`
	Width  int       `json:"width"`
	Height int       `json:"height"`
	Rows   []string  `json:"rows"`
}

func fromMaze(record *dmn.Maze) *MazeResponse {
	return &MazeResponse{
		ID:     record.ID,
		Width:  record.Width,
		Height: record.Height,
		Rows:   record.Rows,
	}
}
