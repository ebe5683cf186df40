package domain

import (
	"errors"
	"time"
)

// EnrollmentStatus represents the approval state of an enrollment request.
type EnrollmentStatus string

const (
	EnrollmentPending  EnrollmentStatus = "pending"
	EnrollmentAccepted EnrollmentStatus = "accepted"
	EnrollmentRejected EnrollmentStatus = "rejected"
)

var (
	ErrEnrollmentNotFound  = errors.New("enrollment not found")
	ErrDuplicateEnrollment = errors.New("enrollment already exists")
	ErrInvalidStatus       = errors.New("invalid status")
)

// ParseEnrollmentStatus validates s against the known statuses.
//
// Any of the three statuses may follow any other; there is no forward-only
// ordering.
func ParseEnrollmentStatus(s string) (EnrollmentStatus, error) {
	switch st := EnrollmentStatus(s); st {
	case EnrollmentPending, EnrollmentAccepted, EnrollmentRejected:
		return st, nil
	}
	return "", ErrInvalidStatus
}

// Enrollment links one user to one course. At most one exists per
// (UserID, CourseID) pair.
type Enrollment struct {
	ID        int64            `json:"id"`
	UserID    int64            `json:"user_id"`
	CourseID  int64            `json:"course_id"`
	Status    EnrollmentStatus `json:"status"`
	CreatedAt time.Time        `json:"created_at"`
}
