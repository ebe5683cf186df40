// @title						Course Catalog API
// @version					1.0
// @description				Course catalog with JWT authentication and an enrollment approval workflow.
// @BasePath					/
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
// @description				Type "Bearer" followed by a space and the access token.
package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/ghayamathia/course-catalog/internal/api"
	"github.com/ghayamathia/course-catalog/internal/api/handler"
	"github.com/ghayamathia/course-catalog/internal/core/ports"
	"github.com/ghayamathia/course-catalog/internal/core/service"
	"github.com/ghayamathia/course-catalog/internal/infrastructure/config"
	"github.com/ghayamathia/course-catalog/internal/infrastructure/db/dbutil"
	"github.com/ghayamathia/course-catalog/internal/infrastructure/db/driver/postgres"
	"github.com/ghayamathia/course-catalog/internal/infrastructure/db/driver/sqlite"
	mongostore "github.com/ghayamathia/course-catalog/internal/infrastructure/db/mongo"
	redisstore "github.com/ghayamathia/course-catalog/internal/infrastructure/db/redis"
	"github.com/ghayamathia/course-catalog/internal/infrastructure/db/sqlstore"
	"github.com/ghayamathia/course-catalog/pkg/logger"
)

// repositories is the storage backend selected at startup.
type repositories struct {
	users       ports.UserRepository
	courses     ports.CourseRepository
	enrollments ports.EnrollmentRepository
	pinger      handler.Pinger
	close       func(context.Context) error
}

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.IsProduction(),
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	log.Info().
		Str("env", cfg.Env).
		Str("storage", cfg.Storage.Driver).
		Strs("token_sources", cfg.Auth.TokenSources).
		Msg("starting course catalog")

	repos, err := openStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := repos.close(closeCtx); err != nil {
			log.Warn().Err(err).Msg("closing storage")
		}
	}()
	log.Info().Str("driver", cfg.Storage.Driver).Msg("storage ready")

	health := map[string]handler.Pinger{"database": repos.pinger}

	// Redis is optional; without it logout only clears the cookie.
	var denylist ports.TokenDenylist
	if cfg.Redis.Addr != "" {
		rdb, err := redisstore.Connect(ctx, redisstore.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer rdb.Close()
		denylist = redisstore.NewTokenDenylist(rdb)
		health["redis"] = redisstore.Pinger{Client: rdb}
		log.Info().Str("addr", cfg.Redis.Addr).Msg("token denylist enabled")
	}

	authSvc := service.NewAuthService(repos.users, service.AuthConfig{
		JWTSecret: cfg.Auth.JWTSecret,
		TokenTTL:  cfg.Auth.TokenTTL(),
	}, denylist, log)

	if err := authSvc.EnsureAdmin(ctx, cfg.Auth.AdminEmail, cfg.Auth.AdminPassword); err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}

	e := api.NewRouter(api.Deps{
		Logger:       log,
		Auth:         authSvc,
		Identity:     service.NewGate(authSvc, repos.users),
		Courses:      service.NewCourseService(repos.courses, log),
		Enrollments:  service.NewEnrollmentService(repos.enrollments, repos.courses, log),
		TokenSources: cfg.Auth.TokenSources,
		Cookie: handler.CookieOptions{
			Enabled: cfg.Auth.CookieEnabled(),
			Secure:  cfg.IsProduction(),
		},
		Health: health,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      e,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return err
	case <-sigCtx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func openStorage(ctx context.Context, cfg *config.Config) (*repositories, error) {
	switch cfg.Storage.Driver {
	case config.DriverMongo:
		conn, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			return nil, err
		}
		if err := conn.EnsureIndexes(ctx); err != nil {
			_ = conn.Close(ctx)
			return nil, err
		}
		db := conn.Database()
		return &repositories{
			users:       mongostore.NewUserRepository(db),
			courses:     mongostore.NewCourseRepository(db),
			enrollments: mongostore.NewEnrollmentRepository(db),
			pinger:      conn,
			close:       conn.Close,
		}, nil

	case config.DriverSQLite, config.DriverPostgres:
		var (
			db      *sql.DB
			dialect dbutil.Dialect
			err     error
		)
		if cfg.Storage.Driver == config.DriverPostgres {
			db, err = postgres.Open(cfg.Storage.DatabaseURL)
			dialect = postgres.NewDialect()
		} else {
			db, err = sqlite.Open(cfg.Storage.DatabaseURL)
			dialect = sqlite.NewDialect()
		}
		if err != nil {
			return nil, err
		}
		if err := dialect.AutoMigrate(db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		store := sqlstore.NewStore(db, dialect)
		return &repositories{
			users:       store.Users(),
			courses:     store.Courses(),
			enrollments: store.Enrollments(),
			pinger:      store,
			close:       func(context.Context) error { return store.Close() },
		}, nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}
