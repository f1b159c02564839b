package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rollcall/attendance-system/internal/core/domain"
)

type SessionRepository struct {
	pool *pgxpool.Pool
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{pool: pool}
}

func (r *SessionRepository) Create(ctx context.Context, session *domain.Session) (*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id := uuid.NewString()
	row := r.pool.QueryRow(ctx,
		`INSERT INTO sessions (id, title, notes, created_by, is_open)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, title, notes, created_by, is_open, created_at`,
		id, session.Title, textOrNil(session.Notes), session.CreatedBy, session.IsOpen)

	created, err := scanSession(row)
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	return created, nil
}

func (r *SessionRepository) FindByID(ctx context.Context, id string) (*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	row := r.pool.QueryRow(ctx,
		`SELECT id, title, notes, created_by, is_open, created_at FROM sessions WHERE id = $1`, id)
	session, err := scanSession(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("find session: %w", err)
	}
	return session, nil
}

func (r *SessionRepository) List(ctx context.Context) ([]domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := r.pool.Query(ctx,
		`SELECT s.id, s.title, s.notes, s.created_by, u.username, s.is_open, s.created_at
		 FROM sessions s
		 LEFT JOIN users u ON s.created_by = u.id
		 ORDER BY s.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	return collectSessionsWithCreator(rows)
}

func (r *SessionRepository) SetOpen(ctx context.Context, id string, isOpen bool) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	tag, err := r.pool.Exec(ctx, `UPDATE sessions SET is_open = $1 WHERE id = $2`, isOpen, id)
	if err != nil {
		return fmt.Errorf("update is_open: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSessionNotFound
	}
	return nil
}

// Assign relies on the (session_id, scanner_user_id) unique constraint:
// a duplicate insert is silently absorbed by ON CONFLICT DO NOTHING.
func (r *SessionRepository) Assign(ctx context.Context, sessionID, scannerUserID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.pool.Exec(ctx,
		`INSERT INTO session_assignments (session_id, scanner_user_id)
		 VALUES ($1, $2)
		 ON CONFLICT (session_id, scanner_user_id) DO NOTHING`,
		sessionID, scannerUserID)
	if err != nil {
		return fmt.Errorf("insert assignment: %w", err)
	}
	return nil
}

func (r *SessionRepository) Unassign(ctx context.Context, sessionID, scannerUserID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.pool.Exec(ctx,
		`DELETE FROM session_assignments WHERE session_id = $1 AND scanner_user_id = $2`,
		sessionID, scannerUserID)
	if err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	return nil
}

func (r *SessionRepository) ListAssignments(ctx context.Context, sessionID string) ([]domain.Assignment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := r.pool.Query(ctx,
		`SELECT sa.scanner_user_id, u.username
		 FROM session_assignments sa
		 LEFT JOIN users u ON sa.scanner_user_id = u.id
		 WHERE sa.session_id = $1`,
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer rows.Close()

	assignments := []domain.Assignment{}
	for rows.Next() {
		var (
			a        domain.Assignment
			username *string
		)
		if err := rows.Scan(&a.ScannerUserID, &username); err != nil {
			return nil, fmt.Errorf("scan assignment row: %w", err)
		}
		a.Username = orEmpty(username)
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

func (r *SessionRepository) IsAssigned(ctx context.Context, sessionID, scannerUserID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var assigned bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM session_assignments
			WHERE session_id = $1 AND scanner_user_id = $2
		 )`,
		sessionID, scannerUserID).Scan(&assigned)
	if err != nil {
		return false, fmt.Errorf("check assignment: %w", err)
	}
	return assigned, nil
}

func (r *SessionRepository) FindOpenAssigned(ctx context.Context, sessionID, scannerUserID string) (*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	row := r.pool.QueryRow(ctx,
		`SELECT s.id, s.title, s.notes, s.created_by, s.is_open, s.created_at
		 FROM sessions s
		 INNER JOIN session_assignments sa ON s.id = sa.session_id
		 WHERE s.id = $1 AND sa.scanner_user_id = $2 AND s.is_open = true`,
		sessionID, scannerUserID)
	session, err := scanSession(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("find open assigned session: %w", err)
	}
	return session, nil
}

func (r *SessionRepository) ListOpenAssignedTo(ctx context.Context, scannerUserID string) ([]domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := r.pool.Query(ctx,
		`SELECT s.id, s.title, s.notes, s.created_by, u.username, s.is_open, s.created_at
		 FROM sessions s
		 INNER JOIN session_assignments sa ON s.id = sa.session_id
		 LEFT JOIN users u ON s.created_by = u.id
		 WHERE sa.scanner_user_id = $1 AND s.is_open = true
		 ORDER BY s.created_at DESC`,
		scannerUserID)
	if err != nil {
		return nil, fmt.Errorf("list open assigned sessions: %w", err)
	}
	defer rows.Close()

	return collectSessionsWithCreator(rows)
}

func scanSession(row pgx.Row) (*domain.Session, error) {
	var (
		s     domain.Session
		notes *string
	)
	if err := row.Scan(&s.ID, &s.Title, &notes, &s.CreatedBy, &s.IsOpen, &s.CreatedAt); err != nil {
		return nil, err
	}
	s.Notes = orEmpty(notes)
	return &s, nil
}

func collectSessionsWithCreator(rows pgx.Rows) ([]domain.Session, error) {
	sessions := []domain.Session{}
	for rows.Next() {
		var (
			s        domain.Session
			notes    *string
			username *string
		)
		if err := rows.Scan(&s.ID, &s.Title, &notes, &s.CreatedBy, &username, &s.IsOpen, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan session row: %w", err)
		}
		s.Notes = orEmpty(notes)
		s.CreatedByUsername = orEmpty(username)
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
