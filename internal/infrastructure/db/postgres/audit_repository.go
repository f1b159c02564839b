package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rollcall/attendance-system/internal/core/domain"
)

type AuditRepository struct {
	pool *pgxpool.Pool
}

func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

func (r *AuditRepository) Insert(ctx context.Context, event *domain.AuditEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.pool.Exec(ctx,
		`INSERT INTO audit_events (id, actor_id, action, subject, detail)
		 VALUES ($1, $2, $3, $4, $5)`,
		uuid.NewString(), event.ActorID, event.Action, event.Subject, textOrNil(event.Detail))
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}
	return nil
}
