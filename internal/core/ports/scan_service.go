package ports

import (
	"context"

	"github.com/rollcall/attendance-system/internal/core/domain"
)

// ScannerSessionLimit caps the scanner-facing scan listing.
const ScannerSessionLimit = 100

// ScanService implements scan recording and listing.
type ScanService interface {
	// Record persists one scan on behalf of the calling scanner. The caller
	// must hold an assignment to an open session (domain.ErrScanForbidden
	// otherwise). A repeat of the same (session, student number) pair
	// returns domain.ErrAlreadyScanned and creates nothing.
	Record(ctx context.Context, scannerID, sessionID, studentNumber string) (*domain.Scan, error)

	// ListForAdmin lists all scans of any session, newest-first.
	ListForAdmin(ctx context.Context, sessionID string) ([]domain.Scan, error)

	// ListForScanner lists scans of a session the scanner is assigned to,
	// newest-first, capped at ScannerSessionLimit.
	ListForScanner(ctx context.Context, scannerID, sessionID string) ([]domain.Scan, error)

	// ListOpenAssigned lists open sessions the scanner is assigned to.
	ListOpenAssigned(ctx context.Context, scannerID string) ([]domain.Session, error)

	// Export renders a session's scans as CSV text.
	Export(ctx context.Context, sessionID string) (string, error)
}

// AuditTrail accepts audit events for asynchronous persistence. Enqueue
// never blocks the request path.
type AuditTrail interface {
	Enqueue(event domain.AuditEvent)
}
