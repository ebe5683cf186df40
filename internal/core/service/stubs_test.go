package service

import (
	"context"
	"sort"
	"time"

	"github.com/ghayamathia/course-catalog/internal/core/domain"
	"github.com/ghayamathia/course-catalog/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	byEmail map[string]*domain.User
	nextID  int64
	findErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byEmail: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.byEmail[user.Email]; exists {
		return nil, domain.ErrDuplicateEmail
	}
	r.nextID++
	stored := cloneUser(user)
	stored.ID = r.nextID
	r.byEmail[stored.Email] = stored
	return cloneUser(stored), nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	for email, u := range r.byEmail {
		if u.ID == user.ID {
			delete(r.byEmail, email)
			r.byEmail[user.Email] = cloneUser(user)
			return nil
		}
	}
	return domain.ErrUserNotFound
}

type stubCourseRepo struct {
	byID   map[int64]*domain.Course
	nextID int64
}

func newStubCourseRepo() *stubCourseRepo {
	return &stubCourseRepo{byID: make(map[int64]*domain.Course)}
}

func (r *stubCourseRepo) List(_ context.Context, f ports.CourseFilter) ([]*domain.Course, error) {
	out := []*domain.Course{}
	for _, c := range r.byID {
		if f.PublishedOnly && !c.Published {
			continue
		}
		clone := *c
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *stubCourseRepo) FindByID(_ context.Context, id int64) (*domain.Course, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrCourseNotFound
	}
	clone := *c
	return &clone, nil
}

func (r *stubCourseRepo) Create(_ context.Context, c *domain.Course) (*domain.Course, error) {
	r.nextID++
	clone := *c
	clone.ID = r.nextID
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubCourseRepo) Update(_ context.Context, c *domain.Course) (*domain.Course, error) {
	if _, ok := r.byID[c.ID]; !ok {
		return nil, domain.ErrCourseNotFound
	}
	clone := *c
	r.byID[c.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubCourseRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrCourseNotFound
	}
	delete(r.byID, id)
	return nil
}

// add stores a course directly, bypassing the service.
func (r *stubCourseRepo) add(title string, published bool) *domain.Course {
	c, _ := r.Create(context.Background(), &domain.Course{Title: title, Published: published})
	return c
}

type stubEnrollmentRepo struct {
	byID    map[int64]*domain.Enrollment
	nextID  int64
	creates int

	// raceOnCreate simulates a concurrent insert winning: the record is
	// stored but Create reports a unique violation.
	raceOnCreate bool
}

func newStubEnrollmentRepo() *stubEnrollmentRepo {
	return &stubEnrollmentRepo{byID: make(map[int64]*domain.Enrollment)}
}

func (r *stubEnrollmentRepo) FindByID(_ context.Context, id int64) (*domain.Enrollment, error) {
	e, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrEnrollmentNotFound
	}
	clone := *e
	return &clone, nil
}

func (r *stubEnrollmentRepo) FindByUserAndCourse(_ context.Context, userID, courseID int64) (*domain.Enrollment, error) {
	for _, e := range r.byID {
		if e.UserID == userID && e.CourseID == courseID {
			clone := *e
			return &clone, nil
		}
	}
	return nil, domain.ErrEnrollmentNotFound
}

func (r *stubEnrollmentRepo) Create(ctx context.Context, e *domain.Enrollment) (*domain.Enrollment, error) {
	if _, err := r.FindByUserAndCourse(ctx, e.UserID, e.CourseID); err == nil {
		return nil, domain.ErrDuplicateEnrollment
	}
	r.creates++
	r.nextID++
	clone := *e
	clone.ID = r.nextID
	r.byID[clone.ID] = &clone
	if r.raceOnCreate {
		r.raceOnCreate = false
		return nil, domain.ErrDuplicateEnrollment
	}
	out := clone
	return &out, nil
}

func (r *stubEnrollmentRepo) list(keep func(*domain.Enrollment) bool) []*domain.Enrollment {
	out := []*domain.Enrollment{}
	for _, e := range r.byID {
		if keep(e) {
			clone := *e
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func (r *stubEnrollmentRepo) ListByUser(_ context.Context, userID int64) ([]*domain.Enrollment, error) {
	return r.list(func(e *domain.Enrollment) bool { return e.UserID == userID }), nil
}

func (r *stubEnrollmentRepo) ListAll(_ context.Context) ([]*domain.Enrollment, error) {
	return r.list(func(*domain.Enrollment) bool { return true }), nil
}

func (r *stubEnrollmentRepo) UpdateStatus(_ context.Context, id int64, status domain.EnrollmentStatus) (*domain.Enrollment, error) {
	e, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrEnrollmentNotFound
	}
	e.Status = status
	clone := *e
	return &clone, nil
}

type stubDenylist struct {
	revoked map[string]time.Time
}

func newStubDenylist() *stubDenylist {
	return &stubDenylist{revoked: make(map[string]time.Time)}
}

func (d *stubDenylist) Revoke(_ context.Context, token string, expiresAt time.Time) error {
	d.revoked[token] = expiresAt
	return nil
}

func (d *stubDenylist) IsRevoked(_ context.Context, token string) (bool, error) {
	_, ok := d.revoked[token]
	return ok, nil
}
