package ports

import (
	"context"

	"github.com/rollcall/attendance-system/internal/core/domain"
)

// SessionService implements the admin-side session lifecycle.
type SessionService interface {
	Create(ctx context.Context, actorID, title, notes string) (*domain.Session, error)
	Get(ctx context.Context, sessionID string) (*domain.Session, error)
	SetOpen(ctx context.Context, actorID, sessionID string, isOpen bool) (*domain.Session, error)
	List(ctx context.Context) ([]domain.Session, error)

	AssignScanner(ctx context.Context, actorID, sessionID, scannerUserID string) error
	UnassignScanner(ctx context.Context, actorID, sessionID, scannerUserID string) error
	ListAssignments(ctx context.Context, sessionID string) ([]domain.Assignment, error)
}
