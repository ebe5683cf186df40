package ports

import (
	"context"

	"github.com/ghayamathia/course-catalog/internal/core/domain"
)

// CourseFilter narrows a course listing.
type CourseFilter struct {
	PublishedOnly bool
}

// CourseRepository defines persistence for the course catalog.
// Listings are ordered by id, newest first.
type CourseRepository interface {
	List(ctx context.Context, filter CourseFilter) ([]*domain.Course, error)
	// FindByID returns domain.ErrCourseNotFound when absent.
	FindByID(ctx context.Context, id int64) (*domain.Course, error)
	Create(ctx context.Context, course *domain.Course) (*domain.Course, error)
	Update(ctx context.Context, course *domain.Course) (*domain.Course, error)
	// Delete removes the course and its enrollments.
	Delete(ctx context.Context, id int64) error
}
