package ports

import (
	"context"

	"github.com/ghayamathia/course-catalog/internal/core/domain"
)

// CourseInput carries the fields for a new course. Nil optional fields take
// the catalog defaults.
type CourseInput struct {
	Title           string
	Description     string
	Level           string
	DurationMinutes *int
	PriceCents      *int
	Published       *bool
}

// CoursePatch carries a partial update; only non-nil fields are applied.
type CoursePatch struct {
	Title           *string
	Description     *string
	Level           *string
	DurationMinutes *int
	PriceCents      *int
	Published       *bool
}

// CourseService defines catalog use cases. caller may be nil (anonymous).
type CourseService interface {
	List(ctx context.Context, caller *domain.User, publishedOnly bool) ([]*domain.Course, error)
	Get(ctx context.Context, caller *domain.User, id int64) (*domain.Course, error)
	Create(ctx context.Context, input CourseInput) (*domain.Course, error)
	Update(ctx context.Context, id int64, patch CoursePatch) (*domain.Course, error)
	Delete(ctx context.Context, id int64) error
}
