// Package dbutil hides the differences between the SQL databases the
// catalog can run on. Queries are written with PostgreSQL placeholders
// ($1, $2, ...) and rebound at runtime by the active Dialect.
package dbutil

import (
	"database/sql"
	"regexp"
)

type DriverType string

const (
	DriverPostgres DriverType = "postgres"
	DriverSQLite   DriverType = "sqlite"
)

// Dialect is implemented by each SQL driver package.
type Dialect interface {
	DriverType() DriverType

	// Rebind converts $N placeholders to the driver's placeholder syntax.
	Rebind(query string) string

	// AutoMigrate creates the catalog tables when they do not exist.
	AutoMigrate(db *sql.DB) error

	// IsUniqueViolation reports whether err was caused by a unique
	// constraint rejecting an insert or update.
	IsUniqueViolation(err error) bool
}

var pgPlaceholderRe = regexp.MustCompile(`\$(\d+)`)

// RebindToQuestion converts $N placeholders to ?.
func RebindToQuestion(query string) string {
	return pgPlaceholderRe.ReplaceAllString(query, "?")
}

// ExecAll runs each statement in order, stopping at the first failure.
func ExecAll(db *sql.DB, statements []string) error {
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}
