package repositories

import (
	"context"

	"nutritrack/internal/domain/entities"
)

// UserRepository finders return domain.ErrNotFound when no row matches.
type UserRepository interface {
	Create(ctx context.Context, user *entities.ValidatedUser) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
}
