package ports

import (
	"context"

	"github.com/rollcall/attendance-system/internal/core/domain"
)

// SessionRepository defines the persistence interface for scan sessions and
// scanner assignments.
type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) (*domain.Session, error)
	FindByID(ctx context.Context, id string) (*domain.Session, error)
	List(ctx context.Context) ([]domain.Session, error)
	SetOpen(ctx context.Context, id string, isOpen bool) error

	// Assign is idempotent: assigning an already-assigned scanner succeeds
	// and leaves exactly one row (store-level unique constraint).
	Assign(ctx context.Context, sessionID, scannerUserID string) error
	Unassign(ctx context.Context, sessionID, scannerUserID string) error
	ListAssignments(ctx context.Context, sessionID string) ([]domain.Assignment, error)
	IsAssigned(ctx context.Context, sessionID, scannerUserID string) (bool, error)

	// FindOpenAssigned returns the session only when it exists, is open, and
	// the scanner holds an assignment to it.
	FindOpenAssigned(ctx context.Context, sessionID, scannerUserID string) (*domain.Session, error)
	ListOpenAssignedTo(ctx context.Context, scannerUserID string) ([]domain.Session, error)
}
