package models

import (
	"time"

	"github.com/google/uuid"
)

type Mission struct {
	ID              uuid.UUID `json:"id" db:"id"`
	UserID          uuid.UUID `json:"user_id" db:"user_id"`
	Statement       string    `json:"statement" db:"statement"`
	RelatedProblems string    `json:"related_problems" db:"related_problems"`
	Category        string    `json:"category" db:"category"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}
