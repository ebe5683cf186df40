package handler

import (
	"time"

	"github.com/ghayamathia/course-catalog/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Auth ---

type registerRequest struct {
	Email    string `json:"email"    form:"email"    validate:"required,email,max=255"`
	Password string `json:"password" form:"password" validate:"required,max=72"`
}

// loginRequest accepts JSON {"email","password"} or a password-grant form
// where the email travels as "username".
type loginRequest struct {
	Email    string `json:"email"    form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        *domain.User `json:"user"`
}

// --- Courses ---

// createCourseRequest requires description and level to be sent, though
// either may be empty.
type createCourseRequest struct {
	Title           string  `json:"title"            validate:"required,max=200"`
	Description     *string `json:"description"      validate:"required,max=5000"`
	Level           *string `json:"level"            validate:"required,max=50"`
	DurationMinutes *int    `json:"duration_minutes" validate:"omitempty,gte=0"`
	PriceCents      *int    `json:"price_cents"      validate:"omitempty,gte=0"`
	Published       *bool   `json:"published"`
}

type updateCourseRequest struct {
	Title           *string `json:"title"            validate:"omitempty,min=1,max=200"`
	Description     *string `json:"description"      validate:"omitempty,max=5000"`
	Level           *string `json:"level"            validate:"omitempty,max=50"`
	DurationMinutes *int    `json:"duration_minutes" validate:"omitempty,gte=0"`
	PriceCents      *int    `json:"price_cents"      validate:"omitempty,gte=0"`
	Published       *bool   `json:"published"`
}

// --- Enrollments ---

type enrollRequest struct {
	CourseID int64 `json:"course_id" validate:"required,gt=0"`
}

// setStatusRequest only requires the field to be present. An empty or
// unknown value is rejected by the service as an invalid status.
type setStatusRequest struct {
	Status *string `json:"status" validate:"required"`
}

// --- Health ---

type dependencyStatus struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type readinessResponse struct {
	Status       string                      `json:"status"`
	Dependencies map[string]dependencyStatus `json:"dependencies"`
}
