package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ghayamathia/course-catalog/internal/api/metrics"
	"github.com/ghayamathia/course-catalog/internal/api/middleware"
	"github.com/ghayamathia/course-catalog/internal/core/ports"
)

// CourseHandler handles HTTP requests for the course catalog.
type CourseHandler struct {
	service ports.CourseService
}

func NewCourseHandler(service ports.CourseService) *CourseHandler {
	return &CourseHandler{service: service}
}

// List handles GET /courses.
//
// @Summary      List courses, newest first
// @Description  published_only=false is honoured for admins only.
// @Tags         courses
// @Produce      json
// @Param        published_only  query     bool  false  "Only published courses (default true)"
// @Success      200             {array}   domain.Course
// @Failure      400             {object}  errorResponse
// @Router       /courses [get]
func (h *CourseHandler) List(c echo.Context) error {
	publishedOnly := true
	if err := echo.QueryParamsBinder(c).Bool("published_only", &publishedOnly).BindError(); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "published_only must be a boolean")
	}

	courses, err := h.service.List(c.Request().Context(), middleware.CurrentUser(c), publishedOnly)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, courses)
}

// Get handles GET /courses/:id.
//
// @Summary      Get a course
// @Tags         courses
// @Produce      json
// @Param        id   path      int  true  "Course id"
// @Success      200  {object}  domain.Course
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /courses/{id} [get]
func (h *CourseHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	course, err := h.service.Get(c.Request().Context(), middleware.CurrentUser(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, course)
}

// Create handles POST /courses.
//
// @Summary      Create a course
// @Tags         courses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createCourseRequest  true  "Course"
// @Success      201   {object}  domain.Course
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /courses [post]
func (h *CourseHandler) Create(c echo.Context) error {
	var req createCourseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	course, err := h.service.Create(c.Request().Context(), ports.CourseInput{
		Title:           req.Title,
		Description:     *req.Description,
		Level:           *req.Level,
		DurationMinutes: req.DurationMinutes,
		PriceCents:      req.PriceCents,
		Published:       req.Published,
	})
	if err != nil {
		return err
	}

	metrics.CourseMutationsTotal.WithLabelValues("create").Inc()
	return c.JSON(http.StatusCreated, course)
}

// Update handles PATCH /courses/:id. Only supplied fields change.
//
// @Summary      Update a course
// @Tags         courses
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                  true  "Course id"
// @Param        body  body      updateCourseRequest  true  "Fields to change"
// @Success      200   {object}  domain.Course
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /courses/{id} [patch]
func (h *CourseHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateCourseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	course, err := h.service.Update(c.Request().Context(), id, ports.CoursePatch{
		Title:           req.Title,
		Description:     req.Description,
		Level:           req.Level,
		DurationMinutes: req.DurationMinutes,
		PriceCents:      req.PriceCents,
		Published:       req.Published,
	})
	if err != nil {
		return err
	}

	metrics.CourseMutationsTotal.WithLabelValues("update").Inc()
	return c.JSON(http.StatusOK, course)
}

// Delete handles DELETE /courses/:id.
//
// @Summary      Delete a course and its enrollments
// @Tags         courses
// @Security     BearerAuth
// @Param        id   path  int  true  "Course id"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /courses/{id} [delete]
func (h *CourseHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), id); err != nil {
		return err
	}

	metrics.CourseMutationsTotal.WithLabelValues("delete").Inc()
	return c.NoContent(http.StatusNoContent)
}
