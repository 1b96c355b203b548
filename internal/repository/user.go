package repository

import (
	"context"

	"github.com/habitflow-dev/habitflow/internal/domain"
)

type UserRepository interface {
	// Create persists a new user. Returns domain.ErrEmailTaken when the
	// email is already registered.
	Create(ctx context.Context, u *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
