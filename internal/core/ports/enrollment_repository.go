package ports

import (
	"context"

	"github.com/ghayamathia/course-catalog/internal/core/domain"
)

// EnrollmentRepository defines persistence for the enrollment ledger.
// Listings are ordered newest first.
type EnrollmentRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Enrollment, error)
	// FindByUserAndCourse returns domain.ErrEnrollmentNotFound when the pair
	// has no enrollment yet.
	FindByUserAndCourse(ctx context.Context, userID, courseID int64) (*domain.Enrollment, error)
	// Create returns domain.ErrDuplicateEnrollment when the store rejects the
	// (user_id, course_id) pair as already present.
	Create(ctx context.Context, e *domain.Enrollment) (*domain.Enrollment, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Enrollment, error)
	ListAll(ctx context.Context) ([]*domain.Enrollment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.EnrollmentStatus) (*domain.Enrollment, error)
}
