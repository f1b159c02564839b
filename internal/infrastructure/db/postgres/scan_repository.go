package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rollcall/attendance-system/internal/core/domain"
)

type ScanRepository struct {
	pool *pgxpool.Pool
}

func NewScanRepository(pool *pgxpool.Pool) *ScanRepository {
	return &ScanRepository{pool: pool}
}

// Insert persists a scan. The (session_id, scanned_student_number) unique
// constraint is the authoritative duplicate signal: a conflict maps to
// domain.ErrAlreadyScanned, closing the check-then-insert race.
func (r *ScanRepository) Insert(ctx context.Context, scan *domain.Scan) (*domain.Scan, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id := uuid.NewString()
	row := r.pool.QueryRow(ctx,
		`INSERT INTO scans (id, session_id, scanned_student_number, scanned_by_user_id)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, session_id, scanned_student_number, scanned_by_user_id, scanned_at`,
		id, scan.SessionID, scan.ScannedStudentNumber, scan.ScannedByUserID)

	var created domain.Scan
	err := row.Scan(&created.ID, &created.SessionID, &created.ScannedStudentNumber,
		&created.ScannedByUserID, &created.ScannedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrAlreadyScanned
		}
		return nil, fmt.Errorf("insert scan: %w", err)
	}
	return &created, nil
}

func (r *ScanRepository) ListBySession(ctx context.Context, sessionID string, limit int) ([]domain.Scan, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `SELECT sc.id, sc.session_id, sc.scanned_student_number, sc.scanned_by_user_id, u.username, sc.scanned_at
		 FROM scans sc
		 LEFT JOIN users u ON sc.scanned_by_user_id = u.id
		 WHERE sc.session_id = $1
		 ORDER BY sc.scanned_at DESC`
	args := []any{sessionID}
	if limit > 0 {
		query += ` LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list scans: %w", err)
	}
	defer rows.Close()

	scans := []domain.Scan{}
	for rows.Next() {
		var (
			s        domain.Scan
			username *string
		)
		if err := rows.Scan(&s.ID, &s.SessionID, &s.ScannedStudentNumber,
			&s.ScannedByUserID, &username, &s.ScannedAt); err != nil {
			return nil, fmt.Errorf("scan scan row: %w", err)
		}
		s.ScannedByUsername = orEmpty(username)
		scans = append(scans, s)
	}
	return scans, rows.Err()
}
