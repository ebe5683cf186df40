package ports

import (
	"context"

	"github.com/ghayamathia/course-catalog/internal/core/domain"
)

// UserRepository defines persistence for user credentials.
type UserRepository interface {
	// FindByEmail returns domain.ErrUserNotFound when no user matches.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Create returns domain.ErrDuplicateEmail when the email is taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// Update overwrites password hash, role and active flag of user.ID.
	Update(ctx context.Context, user *domain.User) error
}
