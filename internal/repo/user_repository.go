package repo

import (
	"context"
	"errors"

	"github.com/rogerio-castellano/pdv-dashboard/internal/models"
)

// UserRepository looks up back-office accounts for sign-in.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (models.User, error)
	CreateUser(ctx context.Context, u models.User) (models.User, error)
}

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrDuplicateUser = errors.New("user already exists")
)
