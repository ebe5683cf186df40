package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/ghayamathia/course-catalog/docs"
	"github.com/ghayamathia/course-catalog/internal/api/handler"
	"github.com/ghayamathia/course-catalog/internal/api/metrics"
	"github.com/ghayamathia/course-catalog/internal/api/middleware"
	"github.com/ghayamathia/course-catalog/internal/core/domain"
	"github.com/ghayamathia/course-catalog/internal/core/ports"
)

// Deps is everything the HTTP surface needs. It is assembled in main.
type Deps struct {
	Logger zerolog.Logger

	Auth        ports.AuthService
	Identity    ports.IdentityResolver
	Courses     ports.CourseService
	Enrollments ports.EnrollmentService

	// TokenSources lists where to look for the access token, in order:
	// "header", "cookie".
	TokenSources []string
	Cookie       handler.CookieOptions

	// Health holds the dependencies pinged by /health/ready.
	Health map[string]handler.Pinger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Logger))
	e.Use(metrics.Middleware())

	// --- Dependencies ---
	sources := middleware.Sources(d.TokenSources)
	requireUser := middleware.Authenticate(d.Identity, sources...)
	optionalUser := middleware.OptionalAuthenticate(d.Identity, sources...)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	authHandler := handler.NewAuthHandler(d.Auth, d.Cookie, sources)
	courseHandler := handler.NewCourseHandler(d.Courses)
	enrollmentHandler := handler.NewEnrollmentHandler(d.Enrollments)
	healthHandler := handler.NewHealthHandler(d.Health)

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/me", authHandler.Me, requireUser)

	// --- Course routes ---
	courses := e.Group("/courses")
	courses.GET("", courseHandler.List, optionalUser)
	courses.GET("/:id", courseHandler.Get, optionalUser)
	courses.POST("", courseHandler.Create, requireUser, adminOnly)
	courses.PATCH("/:id", courseHandler.Update, requireUser, adminOnly)
	courses.DELETE("/:id", courseHandler.Delete, requireUser, adminOnly)

	// --- Enrollment routes ---
	enrollments := e.Group("/enrollments", requireUser)
	enrollments.POST("", enrollmentHandler.Request)
	enrollments.GET("/me", enrollmentHandler.Mine)
	enrollments.GET("/admin", enrollmentHandler.All, adminOnly)
	enrollments.PATCH("/admin/:id", enrollmentHandler.SetStatus, adminOnly)

	// --- Health probes (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthHandler.Readiness)

	// --- Operations ---
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger emits one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			lvl := zerolog.InfoLevel
			switch {
			case v.Status >= 500:
				lvl = zerolog.ErrorLevel
			case v.Error != nil:
				lvl = zerolog.WarnLevel
			}
			log.WithLevel(lvl).
				Err(v.Error).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
