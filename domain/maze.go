// Package domain holds the persisted models shared by services and
// repositories.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Maze is a persisted grid snapshot. Rows is the ASCII cell representation
// ('#' wall, '.' open) and is the source of truth; Width and Height are
// denormalized for listing without parsing.
type Maze struct {
	ID        uuid.UUID `bson:"_id" json:"id"`
	Width     int       `bson:"width" json:"width"`
	Height    int       `bson:"height" json:"height"`
	Rows      []string  `bson:"rows" json:"rows"`
	CreatedAt time.Time `bson:"createdAt" json:"created_at"`
}
