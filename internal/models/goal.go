package models

import (
	"time"

	"github.com/google/uuid"
)

type Goal struct {
	ID              uuid.UUID `json:"id" db:"id"`
	UserID          uuid.UUID `json:"user_id" db:"user_id"`
	Priority        string    `json:"priority" db:"priority"`
	Description     string    `json:"description" db:"description"`
	Timeline        string    `json:"timeline" db:"timeline"`
	SuccessCriteria string    `json:"success_criteria" db:"success_criteria"`
	Status          string    `json:"status" db:"status"`
	Progress        int       `json:"progress" db:"progress"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}
