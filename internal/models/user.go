package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a back-office account allowed to sign in to the dashboard.
type User struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
