package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// CookieName is the cookie carrying the access token for browser clients.
const CookieName = "access_token"

// TokenSource pulls a raw token out of a request. It returns "" when the
// request carries none.
type TokenSource func(c echo.Context) string

// FromHeader reads an "Authorization: Bearer <token>" header.
func FromHeader(c echo.Context) string {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// FromCookie reads the access token cookie.
func FromCookie(c echo.Context) string {
	cookie, err := c.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// Sources maps configured source names ("header", "cookie") to extractors,
// keeping their order. Unknown names are skipped.
func Sources(names []string) []TokenSource {
	out := make([]TokenSource, 0, len(names))
	for _, n := range names {
		switch n {
		case "header":
			out = append(out, FromHeader)
		case "cookie":
			out = append(out, FromCookie)
		}
	}
	return out
}

// ExtractToken returns the first non-empty token found by sources.
func ExtractToken(c echo.Context, sources []TokenSource) string {
	for _, src := range sources {
		if tok := src(c); tok != "" {
			return tok
		}
	}
	return ""
}
