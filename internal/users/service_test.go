package users

import (
	"context"
	"log/slog"
	"testing"

	"github.com/hagwonhq/hagwon/internal/entitlement"
)

type stubRepo struct {
	user     User
	getErr   error
	updated  map[int64]entitlement.Role
	updErr   error
	updCalls int
}

func (s *stubRepo) GetUser(ctx context.Context, id int64) (User, error) {
	if s.getErr != nil {
		return User{}, s.getErr
	}
	return s.user, nil
}

func (s *stubRepo) UpdateRole(ctx context.Context, id int64, role entitlement.Role) error {
	s.updCalls++
	if s.updErr != nil {
		return s.updErr
	}
	if s.updated == nil {
		s.updated = make(map[int64]entitlement.Role)
	}
	s.updated[id] = role
	return nil
}

func TestAssignRole(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo, slog.Default())

	if err := svc.AssignRole(context.Background(), 7, entitlement.RolePremium); err != nil {
		t.Fatalf("assign role: %v", err)
	}
	if repo.updated[7] != entitlement.RolePremium {
		t.Fatalf("expected role stored, got %v", repo.updated)
	}
}

func TestAssignRoleRejectsUnknownRole(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo, slog.Default())

	if err := svc.AssignRole(context.Background(), 7, "Gold"); err == nil {
		t.Fatal("expected error for unknown role")
	}
	if repo.updCalls != 0 {
		t.Fatalf("repository must not be touched for unknown roles, got %d calls", repo.updCalls)
	}
}
