package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ghayamathia/course-catalog/internal/api/middleware"
	"github.com/ghayamathia/course-catalog/internal/core/domain"
)

// requireUser returns the authenticated caller. Routes using it sit behind
// middleware.Authenticate; the nil check guards against a missing wiring.
func requireUser(c echo.Context) (*domain.User, error) {
	user := middleware.CurrentUser(c)
	if user == nil {
		return nil, domain.ErrUnauthenticated
	}
	return user, nil
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (int64, error) {
	var id int64
	if err := echo.PathParamsBinder(c).MustInt64("id", &id).BindError(); err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}
