package models

import (
	"time"

	"github.com/google/uuid"
)

// Challenge.Impact uses the same Low/Medium/High scale as a priority.
type Challenge struct {
	ID          uuid.UUID `json:"id" db:"id"`
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	Description string    `json:"description" db:"description"`
	Impact      string    `json:"impact" db:"impact"`
	Solutions   string    `json:"solutions" db:"solutions"`
	Status      string    `json:"status" db:"status"`
	Category    string    `json:"category" db:"category"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
