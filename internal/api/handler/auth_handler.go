package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ghayamathia/course-catalog/internal/api/metrics"
	"github.com/ghayamathia/course-catalog/internal/api/middleware"
	"github.com/ghayamathia/course-catalog/internal/core/ports"
)

const cookieMaxAge = 7 * 24 * time.Hour

// CookieOptions controls the access token cookie set at login.
type CookieOptions struct {
	// Enabled is false when the cookie transport is not configured; login
	// then only returns the token in the body.
	Enabled bool
	// Secure marks the cookie HTTPS-only. Off outside production.
	Secure bool
}

type AuthHandler struct {
	authService ports.AuthService
	cookie      CookieOptions
	sources     []middleware.TokenSource
}

// NewAuthHandler builds the auth endpoints. sources are consulted by Logout
// to find the token being revoked.
func NewAuthHandler(authService ports.AuthService, cookie CookieOptions, sources []middleware.TokenSource) *AuthHandler {
	return &AuthHandler{authService: authService, cookie: cookie, sources: sources}
}

// Register creates a new user account with the "user" role.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Email and password"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	user, err := h.authService.Register(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.Inc()
	return c.JSON(http.StatusCreated, user)
}

// Login exchanges credentials for an access token. The token is returned in
// the body and, when the cookie transport is enabled, set as a cookie.
//
// @Summary      Login
// @Tags         auth
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	res, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	if h.cookie.Enabled {
		c.SetCookie(&http.Cookie{
			Name:     middleware.CookieName,
			Value:    res.Token,
			Path:     "/",
			MaxAge:   int(cookieMaxAge.Seconds()),
			HttpOnly: true,
			Secure:   h.cookie.Secure,
			SameSite: http.SameSiteLaxMode,
		})
	}

	return c.JSON(http.StatusOK, tokenResponse{
		AccessToken: res.Token,
		TokenType:   "bearer",
		ExpiresAt:   res.ExpiresAt.UTC(),
		User:        res.User,
	})
}

// Logout clears the access token cookie and revokes the presented token.
//
// @Summary      Logout
// @Tags         auth
// @Success      204
// @Failure      500   {object}  errorResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	token := middleware.ExtractToken(c, h.sources)

	c.SetCookie(&http.Cookie{
		Name:     middleware.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	if err := h.authService.Logout(c.Request().Context(), token); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Me returns the authenticated caller.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  domain.User
// @Failure      401   {object}  errorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := requireUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
