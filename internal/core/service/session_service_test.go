package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/rollcall/attendance-system/internal/core/domain"
)

func newSessionFixture(t *testing.T) (*SessionService, *stubSessionRepo, *stubUserRepo, *stubAuditTrail) {
	t.Helper()
	sessions := newStubSessionRepo()
	users := newStubUserRepo()
	audit := &stubAuditTrail{}
	return NewSessionService(sessions, users, audit, zerolog.Nop()), sessions, users, audit
}

func TestSessionService_Create_OpensByDefault(t *testing.T) {
	svc, _, _, audit := newSessionFixture(t)

	created, err := svc.Create(context.Background(), "admin_1", "Morning roll call", "Room B12")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !created.IsOpen {
		t.Fatalf("expected new session to be open")
	}
	if created.CreatedBy != "admin_1" {
		t.Fatalf("unexpected creator: %s", created.CreatedBy)
	}
	if actions := audit.actions(); len(actions) != 1 || actions[0] != domain.AuditSessionCreated {
		t.Fatalf("expected session_created audit event, got %v", actions)
	}
}

func TestSessionService_Create_EmptyTitle(t *testing.T) {
	svc, _, _, _ := newSessionFixture(t)

	if _, err := svc.Create(context.Background(), "admin_1", "", ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSessionService_SetOpen_Toggle(t *testing.T) {
	svc, _, _, _ := newSessionFixture(t)

	created, err := svc.Create(context.Background(), "admin_1", "Roll call", "")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	closed, err := svc.SetOpen(context.Background(), "admin_1", created.ID, false)
	if err != nil {
		t.Fatalf("close failed: %v", err)
	}
	if closed.IsOpen {
		t.Fatalf("expected session to be closed")
	}

	reopened, err := svc.SetOpen(context.Background(), "admin_1", created.ID, true)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if !reopened.IsOpen {
		t.Fatalf("expected session to be open again")
	}
}

func TestSessionService_SetOpen_NotFound(t *testing.T) {
	svc, _, _, _ := newSessionFixture(t)

	if _, err := svc.SetOpen(context.Background(), "admin_1", "missing", false); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSessionService_AssignScanner_Success(t *testing.T) {
	svc, sessions, users, audit := newSessionFixture(t)

	scanner := seedUser(t, users, "scanner1", "pass1234", domain.RoleScanner, true)
	session, err := svc.Create(context.Background(), "admin_1", "Roll call", "")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.AssignScanner(context.Background(), "admin_1", session.ID, scanner.ID); err != nil {
		t.Fatalf("assign failed: %v", err)
	}

	assigned, err := sessions.IsAssigned(context.Background(), session.ID, scanner.ID)
	if err != nil || !assigned {
		t.Fatalf("expected assignment to exist, assigned=%t err=%v", assigned, err)
	}
	if actions := audit.actions(); actions[len(actions)-1] != domain.AuditScannerAssigned {
		t.Fatalf("expected scanner_assigned audit event, got %v", actions)
	}
}

func TestSessionService_AssignScanner_Idempotent(t *testing.T) {
	svc, sessions, users, _ := newSessionFixture(t)

	scanner := seedUser(t, users, "scanner1", "pass1234", domain.RoleScanner, true)
	session, _ := svc.Create(context.Background(), "admin_1", "Roll call", "")

	if err := svc.AssignScanner(context.Background(), "admin_1", session.ID, scanner.ID); err != nil {
		t.Fatalf("first assign failed: %v", err)
	}
	if err := svc.AssignScanner(context.Background(), "admin_1", session.ID, scanner.ID); err != nil {
		t.Fatalf("repeat assign failed: %v", err)
	}

	assignments, err := sessions.ListAssignments(context.Background(), session.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(assignments) != 1 {
		t.Fatalf("expected exactly one assignment, got %d", len(assignments))
	}
}

func TestSessionService_AssignScanner_RejectsAdmin(t *testing.T) {
	svc, _, users, _ := newSessionFixture(t)

	admin := seedUser(t, users, "root", "adminpass", domain.RoleAdmin, true)
	session, _ := svc.Create(context.Background(), "admin_1", "Roll call", "")

	if err := svc.AssignScanner(context.Background(), "admin_1", session.ID, admin.ID); !errors.Is(err, domain.ErrInvalidScanner) {
		t.Fatalf("expected ErrInvalidScanner, got %v", err)
	}
}

func TestSessionService_AssignScanner_UnknownUser(t *testing.T) {
	svc, _, _, _ := newSessionFixture(t)

	session, _ := svc.Create(context.Background(), "admin_1", "Roll call", "")

	if err := svc.AssignScanner(context.Background(), "admin_1", session.ID, "ghost"); !errors.Is(err, domain.ErrInvalidScanner) {
		t.Fatalf("expected ErrInvalidScanner, got %v", err)
	}
}

func TestSessionService_AssignScanner_SessionNotFound(t *testing.T) {
	svc, _, users, _ := newSessionFixture(t)

	scanner := seedUser(t, users, "scanner1", "pass1234", domain.RoleScanner, true)

	if err := svc.AssignScanner(context.Background(), "admin_1", "missing", scanner.ID); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSessionService_UnassignScanner_Idempotent(t *testing.T) {
	svc, _, users, _ := newSessionFixture(t)

	scanner := seedUser(t, users, "scanner1", "pass1234", domain.RoleScanner, true)
	session, _ := svc.Create(context.Background(), "admin_1", "Roll call", "")

	if err := svc.AssignScanner(context.Background(), "admin_1", session.ID, scanner.ID); err != nil {
		t.Fatalf("assign failed: %v", err)
	}
	if err := svc.UnassignScanner(context.Background(), "admin_1", session.ID, scanner.ID); err != nil {
		t.Fatalf("unassign failed: %v", err)
	}
	// Repeat removal of a missing assignment is not an error.
	if err := svc.UnassignScanner(context.Background(), "admin_1", session.ID, scanner.ID); err != nil {
		t.Fatalf("repeat unassign failed: %v", err)
	}
}
