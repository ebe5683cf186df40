package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/ghayamathia/course-catalog/internal/core/domain"
	"github.com/ghayamathia/course-catalog/internal/core/service"
)

// RBAC admits the current user when service.RequireRole accepts any of
// allowedRoles. It must run after Authenticate.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if err := requireAny(CurrentUser(c), allowedRoles); err != nil {
				return err
			}
			return next(c)
		}
	}
}

func requireAny(user *domain.User, roles []string) error {
	err := error(domain.ErrForbidden)
	if user == nil {
		err = domain.ErrUnauthenticated
	}
	for _, role := range roles {
		if _, err = service.RequireRole(user, role); err == nil {
			return nil
		}
	}
	return err
}
