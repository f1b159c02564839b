package ports

import (
	"context"

	"github.com/rollcall/attendance-system/internal/core/domain"
)

// AuditService consumes audit events dequeued by the dispatcher workers.
type AuditService interface {
	Process(ctx context.Context, event domain.AuditEvent) error
}
