package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rollcall/attendance-system/internal/core/domain"
	"github.com/rollcall/attendance-system/internal/core/ports"
	"github.com/rollcall/attendance-system/internal/pkg/password"
)

const minPasswordLength = 4

// UserService implements admin-side user management. Every account created
// through it gets the SCANNER role; the first admin is seeded out of band.
type UserService struct {
	users ports.UserRepository
	audit ports.AuditTrail
	log   zerolog.Logger
}

func NewUserService(users ports.UserRepository, audit ports.AuditTrail, log zerolog.Logger) *UserService {
	return &UserService{users: users, audit: audit, log: log}
}

func (s *UserService) Create(ctx context.Context, actorID, username, pass string) (*domain.User, error) {
	if username == "" || len(pass) < minPasswordLength {
		return nil, domain.ErrInvalidInput
	}

	hash, err := password.Hash(pass)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	created, err := s.users.Create(ctx, &domain.User{
		Username:     username,
		PasswordHash: hash,
		Role:         domain.RoleScanner,
		IsActive:     true,
	})
	if err != nil {
		return nil, err
	}

	s.audit.Enqueue(domain.AuditEvent{ActorID: actorID, Action: domain.AuditUserCreated, Subject: created.ID, Detail: created.Username})
	s.log.Info().Str("username", created.Username).Msg("scanner user created")
	return created, nil
}

func (s *UserService) Update(ctx context.Context, actorID, userID string, input ports.UpdateUserInput) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Admin accounts cannot be deactivated.
	if input.IsActive != nil && !*input.IsActive && user.Role == domain.RoleAdmin {
		return nil, domain.ErrAdminImmutable
	}

	if input.Password != nil {
		if len(*input.Password) < minPasswordLength {
			return nil, domain.ErrInvalidInput
		}
		hash, err := password.Hash(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		if err := s.users.UpdatePasswordHash(ctx, userID, hash); err != nil {
			return nil, err
		}
	}

	if input.IsActive != nil {
		if err := s.users.UpdateActive(ctx, userID, *input.IsActive); err != nil {
			return nil, err
		}
	}

	updated, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	s.audit.Enqueue(domain.AuditEvent{ActorID: actorID, Action: domain.AuditUserUpdated, Subject: userID})
	return updated, nil
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}
