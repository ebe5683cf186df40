package domain

import "errors"

const (
	DefaultDurationMinutes = 60
	DefaultPriceCents      = 0
)

var ErrCourseNotFound = errors.New("course not found")

// Course is an offering in the catalog. Only published courses are visible
// to non-admin callers.
type Course struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Level           string `json:"level"`
	DurationMinutes int    `json:"duration_minutes"`
	PriceCents      int    `json:"price_cents"`
	Published       bool   `json:"published"`
}

// VisibleTo reports whether the course may be shown to the given caller.
// A nil caller is anonymous.
func (c *Course) VisibleTo(caller *User) bool {
	return c.Published || caller.HasRole(RoleAdmin)
}
