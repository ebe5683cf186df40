package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/ghayamathia/course-catalog/internal/core/domain"
	"github.com/ghayamathia/course-catalog/internal/core/ports"
)

// TokenVerifier returns the subject of a valid token.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (string, error)
}

// Gate resolves the calling identity for protected operations. It keeps no
// state between requests.
type Gate struct {
	tokens TokenVerifier
	users  ports.UserRepository
}

func NewGate(tokens TokenVerifier, users ports.UserRepository) *Gate {
	return &Gate{tokens: tokens, users: users}
}

// Resolve verifies token and re-reads the user it names. The role always
// comes from the store, so a demotion takes effect on the next request.
func (g *Gate) Resolve(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrUnauthenticated
	}

	email, err := g.tokens.VerifyToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrUnauthenticated, err)
	}

	user, err := g.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, fmt.Errorf("resolve identity: %w", err)
	}
	if !user.IsActive {
		return nil, domain.ErrUnauthenticated
	}
	return user, nil
}

// RequireRole passes user through unchanged when it holds role.
func RequireRole(user *domain.User, role string) (*domain.User, error) {
	if user == nil {
		return nil, domain.ErrUnauthenticated
	}
	if !user.HasRole(role) {
		return nil, domain.ErrForbidden
	}
	return user, nil
}
