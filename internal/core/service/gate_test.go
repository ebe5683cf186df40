package service

import (
	"context"
	"errors"
	"testing"

	"github.com/ghayamathia/course-catalog/internal/core/domain"
)

func TestGate_Resolve(t *testing.T) {
	repo := newStubUserRepo()
	auth := newTestAuthService(repo)
	gate := NewGate(auth, repo)
	ctx := context.Background()

	_, _ = auth.Register(ctx, "a@x.com", "pw1")
	token, _, _ := auth.IssueToken("a@x.com")

	user, err := gate.Resolve(ctx, token)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if user.Email != "a@x.com" || user.Role != domain.RoleUser {
		t.Fatalf("unexpected user: %+v", user)
	}
}

func TestGate_Resolve_Unauthenticated(t *testing.T) {
	repo := newStubUserRepo()
	auth := newTestAuthService(repo)
	gate := NewGate(auth, repo)
	ctx := context.Background()

	ghostToken, _, _ := auth.IssueToken("ghost@x.com")

	_, _ = auth.Register(ctx, "off@x.com", "pw")
	u, _ := repo.FindByEmail(ctx, "off@x.com")
	u.IsActive = false
	_ = repo.Update(ctx, u)
	inactiveToken, _, _ := auth.IssueToken("off@x.com")

	cases := map[string]string{
		"empty":    "",
		"garbage":  "abc.def.ghi",
		"unknown":  ghostToken,
		"inactive": inactiveToken,
	}
	for name, token := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := gate.Resolve(ctx, token)
			if !errors.Is(err, domain.ErrUnauthenticated) {
				t.Fatalf("expected ErrUnauthenticated, got %v", err)
			}
		})
	}
}

func TestGate_RoleIsReadFromStore(t *testing.T) {
	repo := newStubUserRepo()
	auth := newTestAuthService(repo)
	gate := NewGate(auth, repo)
	ctx := context.Background()

	if err := auth.EnsureAdmin(ctx, "admin@x.com", "pw"); err != nil {
		t.Fatalf("ensure admin: %v", err)
	}
	token, _, _ := auth.IssueToken("admin@x.com")

	user, err := gate.Resolve(ctx, token)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if _, err := RequireRole(user, domain.RoleAdmin); err != nil {
		t.Fatalf("admin should pass: %v", err)
	}

	// Demote without issuing a new token.
	user.Role = domain.RoleUser
	_ = repo.Update(ctx, user)

	user, err = gate.Resolve(ctx, token)
	if err != nil {
		t.Fatalf("resolve after demotion: %v", err)
	}
	if _, err := RequireRole(user, domain.RoleAdmin); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestRequireRole_NilUser(t *testing.T) {
	if _, err := RequireRole(nil, domain.RoleUser); err != domain.ErrUnauthenticated {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
}
