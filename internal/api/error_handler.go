package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ghayamathia/course-catalog/internal/core/domain"
)

type errorResponse struct {
	Error string `json:"error"`
}

type errorMapping struct {
	target  error
	status  int
	message string
}

// domainErrors is checked in order with errors.Is. All token failures share
// one 401 message so clients cannot tell them apart.
var domainErrors = []errorMapping{
	{domain.ErrInvalidCredentials, http.StatusUnauthorized, "invalid email or password"},
	{domain.ErrUnauthenticated, http.StatusUnauthorized, "not authenticated"},
	{domain.ErrInvalidToken, http.StatusUnauthorized, "not authenticated"},
	{domain.ErrMissingSubject, http.StatusUnauthorized, "not authenticated"},
	{domain.ErrForbidden, http.StatusForbidden, "admin only"},
	{domain.ErrCourseNotFound, http.StatusNotFound, "course not found"},
	{domain.ErrEnrollmentNotFound, http.StatusNotFound, "enrollment not found"},
	{domain.ErrInvalidStatus, http.StatusBadRequest, "invalid status"},
	{domain.ErrDuplicateEmail, http.StatusConflict, "email already registered"},
	{domain.ErrDuplicateEnrollment, http.StatusConflict, "enrollment already exists"},
}

// NewHTTPErrorHandler renders every error as {"error": "..."}. Errors that
// match neither an echo.HTTPError nor a domain sentinel are logged and
// reported as a bare 500.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, message, known := classify(err)
		if !known {
			req := c.Request()
			log.Error().
				Err(err).
				Str("method", req.Method).
				Str("route", c.Path()).
				Msg("request failed")
		}

		if status == http.StatusUnauthorized {
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
		}
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, errorResponse{Error: message})
	}
}

func classify(err error) (status int, message string, known bool) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprint(he.Message), true
	}
	for _, m := range domainErrors {
		if errors.Is(err, m.target) {
			return m.status, m.message, true
		}
	}
	return http.StatusInternalServerError, "internal server error", false
}
