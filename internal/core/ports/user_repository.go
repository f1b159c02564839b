package ports

import (
	"context"

	"github.com/rollcall/attendance-system/internal/core/domain"
)

// UserRepository defines the persistence interface for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	UpdatePasswordHash(ctx context.Context, id, passwordHash string) error
	UpdateActive(ctx context.Context, id string, isActive bool) error
}
