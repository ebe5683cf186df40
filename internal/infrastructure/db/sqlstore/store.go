// Package sqlstore implements the catalog repositories on database/sql.
//
// SQL is written with PostgreSQL placeholders and rebound by the active
// dbutil.Dialect, so the same repositories serve SQLite and PostgreSQL.
package sqlstore

import (
	"context"
	"database/sql"
	"time"

	"github.com/ghayamathia/course-catalog/internal/infrastructure/db/dbutil"
)

const defaultTimeout = 10 * time.Second

type Store struct {
	db      *sql.DB
	dialect dbutil.Dialect
}

func NewStore(db *sql.DB, dialect dbutil.Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Ping reports whether the database is reachable. Used by the readiness
// probe.
func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()
	return s.db.PingContext(ctx)
}

func (s *Store) Users() *UserRepository {
	return &UserRepository{store: s}
}

func (s *Store) Courses() *CourseRepository {
	return &CourseRepository{store: s}
}

func (s *Store) Enrollments() *EnrollmentRepository {
	return &EnrollmentRepository{store: s}
}

func (s *Store) rebind(query string) string {
	return s.dialect.Rebind(query)
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}
