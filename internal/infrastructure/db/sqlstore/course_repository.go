package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ghayamathia/course-catalog/internal/core/domain"
	"github.com/ghayamathia/course-catalog/internal/core/ports"
)

const courseColumns = `id, title, description, level, duration_minutes, price_cents, published`

type CourseRepository struct {
	store *Store
}

var _ ports.CourseRepository = (*CourseRepository)(nil)

func scanCourse(row scanner) (*domain.Course, error) {
	var c domain.Course
	if err := row.Scan(&c.ID, &c.Title, &c.Description, &c.Level, &c.DurationMinutes, &c.PriceCents, &c.Published); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CourseRepository) List(ctx context.Context, filter ports.CourseFilter) ([]*domain.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := `SELECT ` + courseColumns + ` FROM courses`
	var args []any
	if filter.PublishedOnly {
		query += ` WHERE published = $1`
		args = append(args, true)
	}
	query += ` ORDER BY id DESC`

	rows, err := r.store.db.QueryContext(ctx, r.store.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer rows.Close()

	courses := []*domain.Course{}
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

func (r *CourseRepository) FindByID(ctx context.Context, id int64) (*domain.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	row := r.store.db.QueryRowContext(ctx,
		r.store.rebind(`SELECT `+courseColumns+` FROM courses WHERE id = $1`), id)
	c, err := scanCourse(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCourseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find course: %w", err)
	}
	return c, nil
}

func (r *CourseRepository) Create(ctx context.Context, course *domain.Course) (*domain.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	created := *course
	err := r.store.db.QueryRowContext(ctx, r.store.rebind(`
		INSERT INTO courses (title, description, level, duration_minutes, price_cents, published)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`),
		course.Title, course.Description, course.Level, course.DurationMinutes, course.PriceCents, course.Published,
	).Scan(&created.ID)
	if err != nil {
		return nil, fmt.Errorf("insert course: %w", err)
	}
	return &created, nil
}

func (r *CourseRepository) Update(ctx context.Context, course *domain.Course) (*domain.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	row := r.store.db.QueryRowContext(ctx, r.store.rebind(`
		UPDATE courses
		SET title = $1, description = $2, level = $3, duration_minutes = $4, price_cents = $5, published = $6
		WHERE id = $7
		RETURNING `+courseColumns),
		course.Title, course.Description, course.Level, course.DurationMinutes, course.PriceCents, course.Published, course.ID,
	)
	updated, err := scanCourse(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCourseNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update course: %w", err)
	}
	return updated, nil
}

// Delete removes the course. Its enrollments go with it through the
// ON DELETE CASCADE foreign key.
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.store.db.ExecContext(ctx, r.store.rebind(`DELETE FROM courses WHERE id = $1`), id)
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	if n == 0 {
		return domain.ErrCourseNotFound
	}
	return nil
}
