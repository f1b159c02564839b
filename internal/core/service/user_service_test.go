package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/rollcall/attendance-system/internal/core/domain"
	"github.com/rollcall/attendance-system/internal/core/ports"
	"github.com/rollcall/attendance-system/internal/pkg/password"
)

func TestUserService_Create_Success(t *testing.T) {
	repo := newStubUserRepo()
	audit := &stubAuditTrail{}
	svc := NewUserService(repo, audit, zerolog.Nop())

	user, err := svc.Create(context.Background(), "admin_1", "scanner1", "pass1234")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if user.Role != domain.RoleScanner {
		t.Fatalf("expected SCANNER role, got %s", user.Role)
	}
	if !user.IsActive {
		t.Fatalf("expected new user to be active")
	}
	if user.PasswordHash == "pass1234" {
		t.Fatalf("expected password to be hashed")
	}
	if !password.Verify("pass1234", user.PasswordHash) {
		t.Fatalf("stored hash does not match password")
	}
	if actions := audit.actions(); len(actions) != 1 || actions[0] != domain.AuditUserCreated {
		t.Fatalf("expected user_created audit event, got %v", actions)
	}
}

func TestUserService_Create_ShortPassword(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), &stubAuditTrail{}, zerolog.Nop())

	if _, err := svc.Create(context.Background(), "admin_1", "scanner1", "abc"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUserService_Create_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, &stubAuditTrail{}, zerolog.Nop())

	if _, err := svc.Create(context.Background(), "admin_1", "scanner1", "pass1234"); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), "admin_1", "scanner1", "other123"); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestUserService_Update_Deactivate(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, &stubAuditTrail{}, zerolog.Nop())

	created, err := svc.Create(context.Background(), "admin_1", "scanner1", "pass1234")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	inactive := false
	updated, err := svc.Update(context.Background(), "admin_1", created.ID, ports.UpdateUserInput{IsActive: &inactive})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.IsActive {
		t.Fatalf("expected user to be deactivated")
	}
}

func TestUserService_Update_CannotDisableAdmin(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, &stubAuditTrail{}, zerolog.Nop())

	admin := seedUser(t, repo, "root", "adminpass", domain.RoleAdmin, true)

	inactive := false
	if _, err := svc.Update(context.Background(), admin.ID, admin.ID, ports.UpdateUserInput{IsActive: &inactive}); !errors.Is(err, domain.ErrAdminImmutable) {
		t.Fatalf("expected ErrAdminImmutable, got %v", err)
	}
}

func TestUserService_Update_Password(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, &stubAuditTrail{}, zerolog.Nop())

	created, err := svc.Create(context.Background(), "admin_1", "scanner1", "pass1234")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	newPass := "newpass1"
	updated, err := svc.Update(context.Background(), "admin_1", created.ID, ports.UpdateUserInput{Password: &newPass})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if !password.Verify("newpass1", updated.PasswordHash) {
		t.Fatalf("new password not stored")
	}
	if password.Verify("pass1234", updated.PasswordHash) {
		t.Fatalf("old password still valid")
	}
}

func TestUserService_Update_ShortPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewUserService(repo, &stubAuditTrail{}, zerolog.Nop())

	created, err := svc.Create(context.Background(), "admin_1", "scanner1", "pass1234")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	short := "abc"
	if _, err := svc.Update(context.Background(), "admin_1", created.ID, ports.UpdateUserInput{Password: &short}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUserService_Update_NotFound(t *testing.T) {
	svc := NewUserService(newStubUserRepo(), &stubAuditTrail{}, zerolog.Nop())

	active := true
	if _, err := svc.Update(context.Background(), "admin_1", "missing", ports.UpdateUserInput{IsActive: &active}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
