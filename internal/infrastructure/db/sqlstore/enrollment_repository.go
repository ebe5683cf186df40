package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ghayamathia/course-catalog/internal/core/domain"
	"github.com/ghayamathia/course-catalog/internal/core/ports"
)

const enrollmentColumns = `id, user_id, course_id, status, created_at`

type EnrollmentRepository struct {
	store *Store
}

var _ ports.EnrollmentRepository = (*EnrollmentRepository)(nil)

func scanEnrollment(row scanner) (*domain.Enrollment, error) {
	var (
		e      domain.Enrollment
		status string
	)
	if err := row.Scan(&e.ID, &e.UserID, &e.CourseID, &status, &e.CreatedAt); err != nil {
		return nil, err
	}
	e.Status = domain.EnrollmentStatus(status)
	return &e, nil
}

func (r *EnrollmentRepository) findOne(ctx context.Context, query string, args ...any) (*domain.Enrollment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	e, err := scanEnrollment(r.store.db.QueryRowContext(ctx, r.store.rebind(query), args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrEnrollmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find enrollment: %w", err)
	}
	return e, nil
}

func (r *EnrollmentRepository) FindByID(ctx context.Context, id int64) (*domain.Enrollment, error) {
	return r.findOne(ctx, `SELECT `+enrollmentColumns+` FROM enrollments WHERE id = $1`, id)
}

func (r *EnrollmentRepository) FindByUserAndCourse(ctx context.Context, userID, courseID int64) (*domain.Enrollment, error) {
	return r.findOne(ctx,
		`SELECT `+enrollmentColumns+` FROM enrollments WHERE user_id = $1 AND course_id = $2`,
		userID, courseID)
}

// Create inserts e. A second row for the same (user, course) pair is
// rejected by uq_enrollment_user_course and reported as
// domain.ErrDuplicateEnrollment.
func (r *EnrollmentRepository) Create(ctx context.Context, e *domain.Enrollment) (*domain.Enrollment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	created := *e
	err := r.store.db.QueryRowContext(ctx, r.store.rebind(`
		INSERT INTO enrollments (user_id, course_id, status, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`),
		e.UserID, e.CourseID, string(e.Status), e.CreatedAt,
	).Scan(&created.ID)
	if err != nil {
		if r.store.dialect.IsUniqueViolation(err) {
			return nil, domain.ErrDuplicateEnrollment
		}
		return nil, fmt.Errorf("insert enrollment: %w", err)
	}
	return &created, nil
}

func (r *EnrollmentRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Enrollment, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := r.store.db.QueryContext(ctx, r.store.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	defer rows.Close()

	out := []*domain.Enrollment{}
	for rows.Next() {
		e, err := scanEnrollment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan enrollment: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	return out, nil
}

func (r *EnrollmentRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Enrollment, error) {
	return r.list(ctx, `SELECT `+enrollmentColumns+` FROM enrollments
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`, userID)
}

func (r *EnrollmentRepository) ListAll(ctx context.Context) ([]*domain.Enrollment, error) {
	return r.list(ctx, `SELECT `+enrollmentColumns+` FROM enrollments
		ORDER BY created_at DESC, id DESC`)
}

func (r *EnrollmentRepository) UpdateStatus(ctx context.Context, id int64, status domain.EnrollmentStatus) (*domain.Enrollment, error) {
	return r.findOne(ctx,
		`UPDATE enrollments SET status = $1 WHERE id = $2 RETURNING `+enrollmentColumns,
		string(status), id)
}
