package models

import (
	"time"

	"github.com/google/uuid"
)

type Problem struct {
	ID          uuid.UUID `json:"id" db:"id"`
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	Priority    string    `json:"priority" db:"priority"`
	Description string    `json:"description" db:"description"`
	Impact      string    `json:"impact" db:"impact"`
	Actions     string    `json:"actions" db:"actions"`
	Status      string    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
