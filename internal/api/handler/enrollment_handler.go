package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ghayamathia/course-catalog/internal/api/metrics"
	"github.com/ghayamathia/course-catalog/internal/core/ports"
)

// EnrollmentHandler handles enrollment requests and admin decisions.
type EnrollmentHandler struct {
	service ports.EnrollmentService
}

func NewEnrollmentHandler(service ports.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{service: service}
}

// Request handles POST /enrollments. Repeating the request for the same
// course returns the existing enrollment unchanged.
//
// @Summary      Request enrollment in a course
// @Tags         enrollments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      enrollRequest  true  "Course to enroll in"
// @Success      200   {object}  domain.Enrollment
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /enrollments [post]
func (h *EnrollmentHandler) Request(c echo.Context) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}

	var req enrollRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	enrollment, created, err := h.service.Request(c.Request().Context(), user, req.CourseID)
	if err != nil {
		return err
	}

	result := "existing"
	if created {
		result = "created"
	}
	metrics.EnrollmentRequestsTotal.WithLabelValues(result).Inc()

	return c.JSON(http.StatusOK, enrollment)
}

// Mine handles GET /enrollments/me.
//
// @Summary      List my enrollments, newest first
// @Tags         enrollments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Enrollment
// @Failure      401  {object}  errorResponse
// @Router       /enrollments/me [get]
func (h *EnrollmentHandler) Mine(c echo.Context) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}

	list, err := h.service.ListForUser(c.Request().Context(), user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// All handles GET /enrollments/admin.
//
// @Summary      List all enrollments, newest first
// @Tags         enrollments
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Enrollment
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /enrollments/admin [get]
func (h *EnrollmentHandler) All(c echo.Context) error {
	list, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// SetStatus handles PATCH /enrollments/admin/:id.
//
// @Summary      Accept, reject or reset an enrollment
// @Tags         enrollments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int               true  "Enrollment id"
// @Param        body  body      setStatusRequest  true  "pending, accepted or rejected"
// @Success      200   {object}  domain.Enrollment
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /enrollments/admin/{id} [patch]
func (h *EnrollmentHandler) SetStatus(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req setStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	enrollment, err := h.service.SetStatus(c.Request().Context(), id, *req.Status)
	if err != nil {
		return err
	}

	metrics.EnrollmentStatusChangesTotal.WithLabelValues(string(enrollment.Status)).Inc()
	return c.JSON(http.StatusOK, enrollment)
}
