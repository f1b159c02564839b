package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rollcall/attendance-system/internal/api/metrics"
	"github.com/rollcall/attendance-system/internal/core/domain"
	"github.com/rollcall/attendance-system/internal/core/ports"
)

// SessionService implements the admin-side session lifecycle: creation, the
// open/closed toggle, and scanner assignment.
type SessionService struct {
	sessions ports.SessionRepository
	users    ports.UserRepository
	audit    ports.AuditTrail
	log      zerolog.Logger
}

func NewSessionService(sessions ports.SessionRepository, users ports.UserRepository, audit ports.AuditTrail, log zerolog.Logger) *SessionService {
	return &SessionService{sessions: sessions, users: users, audit: audit, log: log}
}

func (s *SessionService) Create(ctx context.Context, actorID, title, notes string) (*domain.Session, error) {
	if title == "" {
		return nil, domain.ErrInvalidInput
	}

	created, err := s.sessions.Create(ctx, &domain.Session{
		Title:     title,
		Notes:     notes,
		CreatedBy: actorID,
		IsOpen:    true,
	})
	if err != nil {
		return nil, err
	}

	metrics.SessionsCreatedTotal.Inc()
	s.audit.Enqueue(domain.AuditEvent{ActorID: actorID, Action: domain.AuditSessionCreated, Subject: created.ID, Detail: created.Title})
	s.log.Info().Str("session_id", created.ID).Str("title", created.Title).Msg("session created")
	return created, nil
}

func (s *SessionService) Get(ctx context.Context, sessionID string) (*domain.Session, error) {
	return s.sessions.FindByID(ctx, sessionID)
}

func (s *SessionService) SetOpen(ctx context.Context, actorID, sessionID string, isOpen bool) (*domain.Session, error) {
	if _, err := s.sessions.FindByID(ctx, sessionID); err != nil {
		return nil, err
	}

	if err := s.sessions.SetOpen(ctx, sessionID, isOpen); err != nil {
		return nil, err
	}

	updated, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	s.audit.Enqueue(domain.AuditEvent{ActorID: actorID, Action: domain.AuditSessionToggled, Subject: sessionID, Detail: fmt.Sprintf("is_open=%t", isOpen)})
	s.log.Info().Str("session_id", sessionID).Bool("is_open", isOpen).Msg("session toggled")
	return updated, nil
}

func (s *SessionService) List(ctx context.Context) ([]domain.Session, error) {
	return s.sessions.List(ctx)
}

func (s *SessionService) AssignScanner(ctx context.Context, actorID, sessionID, scannerUserID string) error {
	if _, err := s.sessions.FindByID(ctx, sessionID); err != nil {
		return err
	}

	scanner, err := s.users.FindByID(ctx, scannerUserID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrInvalidScanner
		}
		return err
	}
	if scanner.Role != domain.RoleScanner {
		return domain.ErrInvalidScanner
	}

	// Idempotent: a duplicate assignment is success, not a conflict.
	if err := s.sessions.Assign(ctx, sessionID, scannerUserID); err != nil {
		return err
	}

	s.audit.Enqueue(domain.AuditEvent{ActorID: actorID, Action: domain.AuditScannerAssigned, Subject: sessionID, Detail: scannerUserID})
	return nil
}

func (s *SessionService) UnassignScanner(ctx context.Context, actorID, sessionID, scannerUserID string) error {
	if _, err := s.sessions.FindByID(ctx, sessionID); err != nil {
		return err
	}

	// Removing a non-existent assignment is not an error.
	if err := s.sessions.Unassign(ctx, sessionID, scannerUserID); err != nil {
		return err
	}

	s.audit.Enqueue(domain.AuditEvent{ActorID: actorID, Action: domain.AuditScannerRemoved, Subject: sessionID, Detail: scannerUserID})
	return nil
}

func (s *SessionService) ListAssignments(ctx context.Context, sessionID string) ([]domain.Assignment, error) {
	return s.sessions.ListAssignments(ctx, sessionID)
}
