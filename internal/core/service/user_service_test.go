package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskflow/taskflow-api/internal/core/authz"
	"github.com/taskflow/taskflow-api/internal/core/domain"
	"github.com/taskflow/taskflow-api/internal/core/ports"
)

func seedUser(t *testing.T, st *stubs, id, email string, role domain.Role) authz.Caller {
	t.Helper()
	now := time.Now().UTC()
	_, err := st.users.Create(context.Background(), &domain.User{
		ID:           id,
		Name:         id,
		Email:        email,
		PasswordHash: "x",
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("seed user %s: %v", id, err)
	}
	return authz.Caller{ID: id, Role: role}
}

func TestUserService_Create_Admin(t *testing.T) {
	st := newStubs()
	svc := NewUserService(st.users, zerolog.Nop())
	admin := seedUser(t, st, "admin-1", "admin@x.com", domain.RoleAdmin)

	user, err := svc.Create(context.Background(), admin, ports.CreateUserInput{
		Name:     "Bob",
		Email:    "bob@x.com",
		Password: "pw",
		Role:     domain.RoleUser,
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if user.ID == "" {
		t.Fatalf("expected generated id")
	}
	if user.PasswordHash == "pw" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pw")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestUserService_Create_DefaultRole(t *testing.T) {
	st := newStubs()
	svc := NewUserService(st.users, zerolog.Nop())
	admin := seedUser(t, st, "admin-1", "admin@x.com", domain.RoleAdmin)

	user, err := svc.Create(context.Background(), admin, ports.CreateUserInput{
		Name: "Carol", Email: "carol@x.com", Password: "pw",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("expected default role USER, got %s", user.Role)
	}
}

func TestUserService_Create_DuplicateEmail(t *testing.T) {
	st := newStubs()
	svc := NewUserService(st.users, zerolog.Nop())
	admin := seedUser(t, st, "admin-1", "admin@x.com", domain.RoleAdmin)

	input := ports.CreateUserInput{Name: "Bob", Email: "bob@x.com", Password: "pw"}
	if _, err := svc.Create(context.Background(), admin, input); err != nil {
		t.Fatalf("first create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), admin, input); !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestUserService_Create_NonAdminDenied(t *testing.T) {
	st := newStubs()
	svc := NewUserService(st.users, zerolog.Nop())
	manager := seedUser(t, st, "mgr-1", "mgr@x.com", domain.RoleManager)
	user := seedUser(t, st, "user-1", "user@x.com", domain.RoleUser)

	input := ports.CreateUserInput{Name: "Eve", Email: "eve@x.com", Password: "pw"}
	for _, caller := range []authz.Caller{manager, user} {
		if _, err := svc.Create(context.Background(), caller, input); !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("caller %s: expected ErrForbidden, got %v", caller.ID, err)
		}
	}
	// No partial effects.
	if _, err := st.users.FindByEmail(context.Background(), "eve@x.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("denied create must not persist, got %v", err)
	}
}

func TestUserService_Create_MissingFields(t *testing.T) {
	st := newStubs()
	svc := NewUserService(st.users, zerolog.Nop())
	admin := seedUser(t, st, "admin-1", "admin@x.com", domain.RoleAdmin)

	if _, err := svc.Create(context.Background(), admin, ports.CreateUserInput{Name: "NoEmail", Password: "pw"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if _, err := svc.Create(context.Background(), admin, ports.CreateUserInput{Name: "Bad", Email: "bad@x.com", Password: "pw", Role: "OWNER"}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown role, got %v", err)
	}
}

func TestUserService_List_Roles(t *testing.T) {
	st := newStubs()
	svc := NewUserService(st.users, zerolog.Nop())
	admin := seedUser(t, st, "admin-1", "admin@x.com", domain.RoleAdmin)
	manager := seedUser(t, st, "mgr-1", "mgr@x.com", domain.RoleManager)
	user := seedUser(t, st, "user-1", "user@x.com", domain.RoleUser)

	for _, caller := range []authz.Caller{admin, manager} {
		users, err := svc.List(context.Background(), caller)
		if err != nil {
			t.Fatalf("caller %s: list failed: %v", caller.ID, err)
		}
		if len(users) != 3 {
			t.Fatalf("caller %s: expected 3 users, got %d", caller.ID, len(users))
		}
	}
	if _, err := svc.List(context.Background(), user); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("USER list: expected ErrForbidden, got %v", err)
	}
}

func TestUserService_Update(t *testing.T) {
	st := newStubs()
	svc := NewUserService(st.users, zerolog.Nop())
	admin := seedUser(t, st, "admin-1", "admin@x.com", domain.RoleAdmin)
	seedUser(t, st, "user-1", "user@x.com", domain.RoleUser)

	name := "Promoted"
	role := domain.RoleManager
	updated, err := svc.Update(context.Background(), admin, "user-1", ports.UpdateUserInput{Name: &name, Role: &role})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Name != "Promoted" || updated.Role != domain.RoleManager {
		t.Fatalf("unexpected user after update: %+v", updated)
	}
	// Untouched field survives.
	if updated.Email != "user@x.com" {
		t.Fatalf("email changed unexpectedly: %s", updated.Email)
	}

	if _, err := svc.Update(context.Background(), admin, "missing", ports.UpdateUserInput{Name: &name}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_Delete(t *testing.T) {
	st := newStubs()
	svc := NewUserService(st.users, zerolog.Nop())
	admin := seedUser(t, st, "admin-1", "admin@x.com", domain.RoleAdmin)
	seedUser(t, st, "user-1", "user@x.com", domain.RoleUser)

	if err := svc.Delete(context.Background(), admin, "user-1"); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := svc.Delete(context.Background(), admin, "user-1"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
