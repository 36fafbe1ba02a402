package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

type ActivityLogEntry struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	UserID     uuid.UUID  `json:"user_id" db:"user_id"`
	EntityType EntityType `json:"entity_type" db:"entity_type"`
	EntityID   uuid.UUID  `json:"entity_id" db:"entity_id"`
	Action     string     `json:"action" db:"action"`
	Summary    string     `json:"summary" db:"summary"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
}
