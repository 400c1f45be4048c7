package repository

import (
	"context"

	"github.com/google/uuid"
)

// UserRepository is the user store behind login and seeding.
type UserRepository interface {
	CreateUser(ctx context.Context, params CreateUserParams) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	GetUserByID(ctx context.Context, userID uuid.UUID) (User, error)
}

var _ UserRepository = (*Repository)(nil)
