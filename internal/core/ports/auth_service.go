package ports

import (
	"context"
	"time"

	"github.com/ghayamathia/course-catalog/internal/core/domain"
)

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

type AuthService interface {
	Register(ctx context.Context, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, token string) error
}

// IdentityResolver turns a presented token into the current user record.
type IdentityResolver interface {
	Resolve(ctx context.Context, token string) (*domain.User, error)
}

// TokenDenylist records tokens revoked before their expiry.
type TokenDenylist interface {
	Revoke(ctx context.Context, token string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}
