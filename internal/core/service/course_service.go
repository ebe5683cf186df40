package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/ghayamathia/course-catalog/internal/core/domain"
	"github.com/ghayamathia/course-catalog/internal/core/ports"
)

type CourseService struct {
	repo   ports.CourseRepository
	logger zerolog.Logger
}

func NewCourseService(repo ports.CourseRepository, logger zerolog.Logger) *CourseService {
	return &CourseService{repo: repo, logger: logger}
}

// List returns courses newest first. Only admins may see unpublished ones;
// for everyone else publishedOnly is forced on.
func (s *CourseService) List(ctx context.Context, caller *domain.User, publishedOnly bool) ([]*domain.Course, error) {
	if !caller.HasRole(domain.RoleAdmin) {
		publishedOnly = true
	}
	courses, err := s.repo.List(ctx, ports.CourseFilter{PublishedOnly: publishedOnly})
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

func (s *CourseService) Get(ctx context.Context, caller *domain.User, id int64) (*domain.Course, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !course.VisibleTo(caller) {
		return nil, domain.ErrCourseNotFound
	}
	return course, nil
}

func (s *CourseService) Create(ctx context.Context, in ports.CourseInput) (*domain.Course, error) {
	course := &domain.Course{
		Title:           in.Title,
		Description:     in.Description,
		Level:           in.Level,
		DurationMinutes: intOr(in.DurationMinutes, domain.DefaultDurationMinutes),
		PriceCents:      intOr(in.PriceCents, domain.DefaultPriceCents),
		Published:       boolOr(in.Published, true),
	}

	created, err := s.repo.Create(ctx, course)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create course")
		return nil, err
	}

	s.logger.Info().Int64("course_id", created.ID).Str("title", created.Title).Msg("course created")
	return created, nil
}

// Update applies the non-nil fields of patch to an existing course.
func (s *CourseService) Update(ctx context.Context, id int64, patch ports.CoursePatch) (*domain.Course, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		course.Title = *patch.Title
	}
	if patch.Description != nil {
		course.Description = *patch.Description
	}
	if patch.Level != nil {
		course.Level = *patch.Level
	}
	if patch.DurationMinutes != nil {
		course.DurationMinutes = *patch.DurationMinutes
	}
	if patch.PriceCents != nil {
		course.PriceCents = *patch.PriceCents
	}
	if patch.Published != nil {
		course.Published = *patch.Published
	}

	updated, err := s.repo.Update(ctx, course)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Int64("course_id", id).Msg("course updated")
	return updated, nil
}

func (s *CourseService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("course_id", id).Msg("course deleted")
	return nil
}

func intOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
