package ports

import (
	"context"

	"github.com/ghayamathia/course-catalog/internal/core/domain"
)

// EnrollmentService defines the enrollment request/approval workflow.
type EnrollmentService interface {
	// Request creates a pending enrollment or returns the existing one for
	// the same (user, course) pair. created is false for the latter.
	Request(ctx context.Context, user *domain.User, courseID int64) (e *domain.Enrollment, created bool, err error)
	ListForUser(ctx context.Context, user *domain.User) ([]*domain.Enrollment, error)
	ListAll(ctx context.Context) ([]*domain.Enrollment, error)
	SetStatus(ctx context.Context, id int64, status string) (*domain.Enrollment, error)
}
