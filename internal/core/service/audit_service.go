package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rollcall/attendance-system/internal/core/domain"
	"github.com/rollcall/attendance-system/internal/core/ports"
)

// AuditService persists audit events dequeued by the dispatcher workers.
type AuditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) *AuditService {
	return &AuditService{repo: repo, log: log}
}

// Process writes one audit event. Failures are returned to the worker for
// logging; the event is lost, which is acceptable for an advisory trail.
func (s *AuditService) Process(ctx context.Context, event domain.AuditEvent) error {
	if event.Action == "" {
		return fmt.Errorf("audit event without action (actor %s)", event.ActorID)
	}
	if err := s.repo.Insert(ctx, &event); err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	s.log.Debug().Str("action", event.Action).Str("actor_id", event.ActorID).Msg("audit event persisted")
	return nil
}
