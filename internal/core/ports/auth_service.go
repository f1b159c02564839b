package ports

import (
	"context"

	"github.com/rollcall/attendance-system/internal/core/domain"
)

// AuthService implements login and caller resolution.
type AuthService interface {
	// Login verifies credentials and returns a signed bearer token plus the
	// authenticated user. Unknown usernames and wrong passwords are both
	// reported as domain.ErrInvalidCredentials; disabled accounts as
	// domain.ErrAccountDisabled.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)

	// ResolveToken verifies a bearer token and re-loads the referenced user
	// so is_active is checked fresh on every request. Any failure resolves
	// to domain.ErrInvalidCredentials.
	ResolveToken(ctx context.Context, token string) (*domain.User, error)
}
