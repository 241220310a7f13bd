// Package searchapi provides structures and utilities for managing search
// session requests and responses.
package searchapi

import (
	"github.com/beka-birhanu/gridpath-api/maze"
	"github.com/beka-birhanu/gridpath-api/search"
	"github.com/google/uuid"
)

// CoordinateDTO is a grid cell reference in request and response bodies.
type CoordinateDTO struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

func (c CoordinateDTO) toCoordinate() maze.Coordinate {
	return maze.Coordinate{Col: c.Col, Row: c.Row}
}

func fromCoordinate(c maze.Coordinate) CoordinateDTO {
	return CoordinateDTO{Col: c.Col, Row: c.Row}
}

// CreateSearchRequest represents a request to start a new search session.
// The grid comes either from a previously saved maze (MazeID) or inline as
// ASCII rows; exactly one of the two must be provided.
type CreateSearchRequest struct {
	Algorithm string         `json:"algorithm" binding:"required"`
	MazeID    *uuid.UUID     `json:"maze_id"`
	Rows      []string       `json:"rows"`
	Start     *CoordinateDTO `json:"start" binding:"required"`
	Goal      *CoordinateDTO `json:"goal" binding:"required"`
}

// CreateSearchResponse carries the handle of a newly created session.
type CreateSearchResponse struct {
	ID uuid.UUID `json:"id"`
}

// AdvanceRequest asks for a number of bounded work units; zero or absent
// means one.
type AdvanceRequest struct {
	Steps int `json:"steps"`
}

// FrameResponse is the JSON rendering of one progress frame.
type FrameResponse struct {
	Visited  []CoordinateDTO `json:"visited"`
	Frontier []CoordinateDTO `json:"frontier"`
	Path     []CoordinateDTO `json:"path"`
	Current  *CoordinateDTO  `json:"current,omitempty"`
	Done     bool            `json:"done"`
}

// LeaderboardResponse lists the best finished runs, fewest steps first.
type LeaderboardResponse struct {
	Runs []string `json:"runs"`
}

func fromFrame(f *search.Frame) *FrameResponse {
	response := &FrameResponse{
		Visited:  make([]CoordinateDTO, 0, len(f.Visited)),
		Frontier: make([]CoordinateDTO, 0, len(f.Frontier)),
		Path:     make([]CoordinateDTO, 0, len(f.Path)),
		Done:     f.Done,
	}
	for _, c := range f.Visited {
		response.Visited = append(response.Visited, fromCoordinate(c))
	}
	for _, c := range f.Frontier {
		response.Frontier = append(response.Frontier, fromCoordinate(c))
	}
	for _, c := range f.Path {
		response.Path = append(response.Path, fromCoordinate(c))
	}
	if f.Current != nil {
		current := fromCoordinate(*f.Current)
		response.Current = &current
	}
	return response
}
