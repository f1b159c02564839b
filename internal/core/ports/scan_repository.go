package ports

import (
	"context"

	"github.com/rollcall/attendance-system/internal/core/domain"
)

// ScanRepository defines the persistence interface for scans.
type ScanRepository interface {
	// Insert persists a scan. A unique-constraint conflict on
	// (session_id, scanned_student_number) is returned as
	// domain.ErrAlreadyScanned; that conflict is the authoritative
	// duplicate signal, not a prior existence read.
	Insert(ctx context.Context, scan *domain.Scan) (*domain.Scan, error)

	// ListBySession returns scans newest-first, joined with the recording
	// username. limit <= 0 means no limit.
	ListBySession(ctx context.Context, sessionID string, limit int) ([]domain.Scan, error)
}

// AuditRepository persists audit trail events.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
}
