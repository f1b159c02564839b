package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rollcall/attendance-system/internal/core/domain"
)

// In-memory fakes shared by the service tests. They enforce the same
// uniqueness rules as the real store so duplicate paths are exercised.

type stubUserRepo struct {
	users map[string]*domain.User // keyed by id

	findByIDErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, existing := range r.users {
		if existing.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	copy := cloneUser(user)
	if copy.ID == "" {
		copy.ID = fmt.Sprintf("user_%d", len(r.users)+1)
	}
	copy.CreatedAt = time.Now()
	r.users[copy.ID] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if r.findByIDErr != nil {
		return nil, r.findByIDErr
	}
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]domain.User, error) {
	out := []domain.User{}
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) UpdatePasswordHash(_ context.Context, id, passwordHash string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *stubUserRepo) UpdateActive(_ context.Context, id string, isActive bool) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.IsActive = isActive
	return nil
}

type assignmentKey struct {
	sessionID string
	scannerID string
}

type stubSessionRepo struct {
	sessions    map[string]*domain.Session
	assignments map[assignmentKey]bool
}

func newStubSessionRepo() *stubSessionRepo {
	return &stubSessionRepo{
		sessions:    make(map[string]*domain.Session),
		assignments: make(map[assignmentKey]bool),
	}
}

func cloneSession(s *domain.Session) *domain.Session {
	if s == nil {
		return nil
	}
	clone := *s
	return &clone
}

func (r *stubSessionRepo) Create(_ context.Context, session *domain.Session) (*domain.Session, error) {
	copy := cloneSession(session)
	if copy.ID == "" {
		copy.ID = fmt.Sprintf("session_%d", len(r.sessions)+1)
	}
	copy.CreatedAt = time.Now()
	r.sessions[copy.ID] = cloneSession(copy)
	return cloneSession(copy), nil
}

func (r *stubSessionRepo) FindByID(_ context.Context, id string) (*domain.Session, error) {
	if s, ok := r.sessions[id]; ok {
		return cloneSession(s), nil
	}
	return nil, domain.ErrSessionNotFound
}

func (r *stubSessionRepo) List(_ context.Context) ([]domain.Session, error) {
	out := []domain.Session{}
	for _, s := range r.sessions {
		out = append(out, *s)
	}
	return out, nil
}

func (r *stubSessionRepo) SetOpen(_ context.Context, id string, isOpen bool) error {
	s, ok := r.sessions[id]
	if !ok {
		return domain.ErrSessionNotFound
	}
	s.IsOpen = isOpen
	return nil
}

func (r *stubSessionRepo) Assign(_ context.Context, sessionID, scannerUserID string) error {
	r.assignments[assignmentKey{sessionID, scannerUserID}] = true
	return nil
}

func (r *stubSessionRepo) Unassign(_ context.Context, sessionID, scannerUserID string) error {
	delete(r.assignments, assignmentKey{sessionID, scannerUserID})
	return nil
}

func (r *stubSessionRepo) ListAssignments(_ context.Context, sessionID string) ([]domain.Assignment, error) {
	out := []domain.Assignment{}
	for key := range r.assignments {
		if key.sessionID == sessionID {
			out = append(out, domain.Assignment{SessionID: key.sessionID, ScannerUserID: key.scannerID})
		}
	}
	return out, nil
}

func (r *stubSessionRepo) IsAssigned(_ context.Context, sessionID, scannerUserID string) (bool, error) {
	return r.assignments[assignmentKey{sessionID, scannerUserID}], nil
}

func (r *stubSessionRepo) FindOpenAssigned(_ context.Context, sessionID, scannerUserID string) (*domain.Session, error) {
	s, ok := r.sessions[sessionID]
	if !ok || !s.IsOpen || !r.assignments[assignmentKey{sessionID, scannerUserID}] {
		return nil, domain.ErrSessionNotFound
	}
	return cloneSession(s), nil
}

func (r *stubSessionRepo) ListOpenAssignedTo(_ context.Context, scannerUserID string) ([]domain.Session, error) {
	out := []domain.Session{}
	for key := range r.assignments {
		if key.scannerID != scannerUserID {
			continue
		}
		if s, ok := r.sessions[key.sessionID]; ok && s.IsOpen {
			out = append(out, *s)
		}
	}
	return out, nil
}

type scanKey struct {
	sessionID     string
	studentNumber string
}

type stubScanRepo struct {
	scans map[scanKey]*domain.Scan
}

func newStubScanRepo() *stubScanRepo {
	return &stubScanRepo{scans: make(map[scanKey]*domain.Scan)}
}

func (r *stubScanRepo) Insert(_ context.Context, scan *domain.Scan) (*domain.Scan, error) {
	key := scanKey{scan.SessionID, scan.ScannedStudentNumber}
	if _, exists := r.scans[key]; exists {
		return nil, domain.ErrAlreadyScanned
	}
	copy := *scan
	copy.ID = fmt.Sprintf("scan_%d", len(r.scans)+1)
	copy.ScannedAt = time.Now()
	r.scans[key] = &copy
	return &copy, nil
}

func (r *stubScanRepo) ListBySession(_ context.Context, sessionID string, limit int) ([]domain.Scan, error) {
	out := []domain.Scan{}
	for key, s := range r.scans {
		if key.sessionID == sessionID {
			out = append(out, *s)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// stubAuditTrail records enqueued events synchronously.
type stubAuditTrail struct {
	mu     sync.Mutex
	events []domain.AuditEvent
}

func (a *stubAuditTrail) Enqueue(event domain.AuditEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, event)
}

func (a *stubAuditTrail) actions() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, len(a.events))
	for i, e := range a.events {
		out[i] = e.Action
	}
	return out
}

// stubDedup is an in-memory duplicate checker with injectable failures.
type stubDedup struct {
	seen     map[scanKey]bool
	checkErr error
	markErr  error
}

func newStubDedup() *stubDedup {
	return &stubDedup{seen: make(map[scanKey]bool)}
}

func (d *stubDedup) IsDuplicate(_ context.Context, sessionID, studentNumber string) (bool, error) {
	if d.checkErr != nil {
		return false, d.checkErr
	}
	return d.seen[scanKey{sessionID, studentNumber}], nil
}

func (d *stubDedup) Mark(_ context.Context, sessionID, studentNumber string) error {
	if d.markErr != nil {
		return d.markErr
	}
	d.seen[scanKey{sessionID, studentNumber}] = true
	return nil
}
