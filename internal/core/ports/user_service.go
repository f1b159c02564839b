package ports

import (
	"context"

	"github.com/rollcall/attendance-system/internal/core/domain"
)

// UpdateUserInput carries the optional PATCH fields for a user. Nil means
// "leave unchanged".
type UpdateUserInput struct {
	IsActive *bool
	Password *string
}

// UserService implements admin-side user management. New accounts are always
// created with the SCANNER role; the first admin is seeded out of band.
type UserService interface {
	Create(ctx context.Context, actorID, username, password string) (*domain.User, error)
	Update(ctx context.Context, actorID, userID string, input UpdateUserInput) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}
