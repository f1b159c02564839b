package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/rollcall/attendance-system/internal/api/metrics"
	"github.com/rollcall/attendance-system/internal/core/domain"
	"github.com/rollcall/attendance-system/internal/core/ports"
	"github.com/rollcall/attendance-system/internal/pkg/password"
	"github.com/rollcall/attendance-system/internal/pkg/token"
)

// AuthService implements login and per-request caller resolution.
type AuthService struct {
	users     ports.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
	audit     ports.AuditTrail
	log       zerolog.Logger
}

func NewAuthService(users ports.UserRepository, jwtSecret string, tokenTTL time.Duration, audit ports.AuditTrail, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = token.DefaultTTL
	}
	return &AuthService{users: users, jwtSecret: jwtSecret, tokenTTL: tokenTTL, audit: audit, log: log}
}

func (s *AuthService) Login(ctx context.Context, username, pass string) (string, *domain.User, error) {
	if username == "" || pass == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Unknown user and wrong password must be indistinguishable.
			metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
			return "", nil, domain.ErrInvalidCredentials
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return "", nil, err
	}

	if !password.Verify(pass, user.PasswordHash) {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return "", nil, domain.ErrInvalidCredentials
	}

	if !user.IsActive {
		metrics.LoginsTotal.WithLabelValues("disabled").Inc()
		return "", nil, domain.ErrAccountDisabled
	}

	signed, err := token.Issue(user.ID, user.Role, s.jwtSecret, s.tokenTTL)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return "", nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.audit.Enqueue(domain.AuditEvent{ActorID: user.ID, Action: domain.AuditLogin, Subject: user.Username})
	s.log.Info().Str("username", user.Username).Str("role", string(user.Role)).Msg("login")

	return signed, user, nil
}

// ResolveToken verifies a bearer token and re-loads the user so is_active is
// checked fresh on every request. All failures collapse into
// ErrInvalidCredentials; the caller only learns "unauthorized".
func (s *AuthService) ResolveToken(ctx context.Context, tokenString string) (*domain.User, error) {
	claims, err := token.Verify(tokenString, s.jwtSecret)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}
