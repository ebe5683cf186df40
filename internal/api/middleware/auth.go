package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/ghayamathia/course-catalog/internal/core/domain"
	"github.com/ghayamathia/course-catalog/internal/core/ports"
)

const userKey = "user"

// Authenticate resolves the caller from the first token found by sources
// and stores the user in the context. Requests without a valid token fail
// with domain.ErrUnauthenticated.
func Authenticate(resolver ports.IdentityResolver, sources ...TokenSource) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, err := resolver.Resolve(c.Request().Context(), ExtractToken(c, sources))
			if err != nil {
				return err
			}
			SetUser(c, user)
			return next(c)
		}
	}
}

// OptionalAuthenticate behaves like Authenticate when the request carries a
// valid token and lets it through anonymously otherwise. Store failures are
// still returned.
func OptionalAuthenticate(resolver ports.IdentityResolver, sources ...TokenSource) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := ExtractToken(c, sources)
			if token == "" {
				return next(c)
			}
			user, err := resolver.Resolve(c.Request().Context(), token)
			switch {
			case err == nil:
				SetUser(c, user)
			case errors.Is(err, domain.ErrUnauthenticated):
			default:
				return err
			}
			return next(c)
		}
	}
}

// SetUser stores the authenticated caller on the context.
func SetUser(c echo.Context, user *domain.User) {
	c.Set(userKey, user)
}

// CurrentUser returns the user stored by Authenticate, or nil for anonymous
// requests.
func CurrentUser(c echo.Context) *domain.User {
	user, _ := c.Get(userKey).(*domain.User)
	return user
}
