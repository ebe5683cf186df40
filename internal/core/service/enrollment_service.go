package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/ghayamathia/course-catalog/internal/core/domain"
	"github.com/ghayamathia/course-catalog/internal/core/ports"
)

type enrollmentService struct {
	enrollments ports.EnrollmentRepository
	courses     ports.CourseRepository
	log         zerolog.Logger
	now         func() time.Time
}

// NewEnrollmentService returns an EnrollmentService implementation.
func NewEnrollmentService(
	enrollments ports.EnrollmentRepository,
	courses ports.CourseRepository,
	log zerolog.Logger,
) ports.EnrollmentService {
	return &enrollmentService{
		enrollments: enrollments,
		courses:     courses,
		log:         log,
		now:         time.Now,
	}
}

// Request creates a pending enrollment for a published course, or returns
// the one that already exists for the pair.
func (s *enrollmentService) Request(ctx context.Context, user *domain.User, courseID int64) (*domain.Enrollment, bool, error) {
	// Unpublished courses cannot be requested, even by admins.
	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		return nil, false, fmt.Errorf("request enrollment: %w", err)
	}
	if !course.Published {
		return nil, false, fmt.Errorf("request enrollment: %w", domain.ErrCourseNotFound)
	}

	existing, err := s.enrollments.FindByUserAndCourse(ctx, user.ID, courseID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, domain.ErrEnrollmentNotFound) {
		return nil, false, fmt.Errorf("request enrollment: %w", err)
	}

	// A concurrent request for the same pair may win the insert. The loser
	// returns the winner's record.
	created, err := s.enrollments.Create(ctx, &domain.Enrollment{
		UserID:    user.ID,
		CourseID:  courseID,
		Status:    domain.EnrollmentPending,
		CreatedAt: s.now().UTC(),
	})
	if errors.Is(err, domain.ErrDuplicateEnrollment) {
		s.log.Debug().Int64("user_id", user.ID).Int64("course_id", courseID).Msg("duplicate enrollment race resolved")
		existing, err := s.enrollments.FindByUserAndCourse(ctx, user.ID, courseID)
		if err != nil {
			return nil, false, fmt.Errorf("request enrollment: %w", err)
		}
		return existing, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("request enrollment: %w", err)
	}

	s.log.Info().
		Int64("enrollment_id", created.ID).
		Int64("user_id", user.ID).
		Int64("course_id", courseID).
		Msg("enrollment requested")

	return created, true, nil
}

func (s *enrollmentService) ListForUser(ctx context.Context, user *domain.User) ([]*domain.Enrollment, error) {
	list, err := s.enrollments.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	return list, nil
}

func (s *enrollmentService) ListAll(ctx context.Context) ([]*domain.Enrollment, error) {
	list, err := s.enrollments.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	return list, nil
}

// SetStatus overwrites the status of an enrollment. Any status may follow
// any other.
func (s *enrollmentService) SetStatus(ctx context.Context, id int64, status string) (*domain.Enrollment, error) {
	current, err := s.enrollments.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("set status: %w", err)
	}

	next, err := domain.ParseEnrollmentStatus(status)
	if err != nil {
		return nil, fmt.Errorf("set status: %w (%q)", err, status)
	}

	updated, err := s.enrollments.UpdateStatus(ctx, id, next)
	if err != nil {
		return nil, fmt.Errorf("set status: %w", err)
	}

	s.log.Info().
		Int64("enrollment_id", id).
		Str("from", string(current.Status)).
		Str("to", string(next)).
		Msg("enrollment status changed")

	return updated, nil
}
