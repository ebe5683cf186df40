package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"

	TokenSourceHeader = "header"
	TokenSourceCookie = "cookie"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=production"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth    AuthConfig
	Storage StorageConfig
	Mongo   MongoConfig
	Redis   RedisConfig
}

type AuthConfig struct {
	JWTSecret          string   `env:"JWT_SECRET, required"`
	JWTAlg             string   `env:"JWT_ALG, default=HS256"`
	TokenExpireMinutes int      `env:"ACCESS_TOKEN_EXPIRE_MINUTES, default=1440"`
	TokenSources       []string `env:"TOKEN_SOURCES, default=header,cookie"`

	AdminEmail    string `env:"ADMIN_EMAIL, default=admin@ghayamathia.com"`
	AdminPassword string `env:"ADMIN_PASSWORD, default=ChangeMeStrongPassword!"`
}

type StorageConfig struct {
	Driver      string `env:"STORAGE_DRIVER, default=sqlite"`
	DatabaseURL string `env:"DATABASE_URL, default=file:catalog.db"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=course_catalog"`
}

// RedisConfig points at the token denylist. An empty Addr disables it.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

// Load reads a .env file from the working directory when one exists, then
// the process environment.
func Load(ctx context.Context) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: read .env: %w", err)
	}
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration from l. Tests pass a map lookuper.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Auth.JWTAlg != "HS256" {
		return fmt.Errorf("JWT_ALG %q is not supported, only HS256", c.Auth.JWTAlg)
	}
	if c.Auth.TokenExpireMinutes <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_EXPIRE_MINUTES must be positive, got %d", c.Auth.TokenExpireMinutes)
	}

	sources := make([]string, 0, len(c.Auth.TokenSources))
	for _, s := range c.Auth.TokenSources {
		s = strings.ToLower(strings.TrimSpace(s))
		switch s {
		case TokenSourceHeader, TokenSourceCookie:
			sources = append(sources, s)
		case "":
		default:
			return fmt.Errorf("TOKEN_SOURCES: unknown source %q", s)
		}
	}
	if len(sources) == 0 {
		return errors.New("TOKEN_SOURCES must name at least one of header, cookie")
	}
	c.Auth.TokenSources = sources

	switch c.Storage.Driver {
	case DriverSQLite, DriverPostgres:
		if c.Storage.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the %s driver", c.Storage.Driver)
		}
	case DriverMongo:
	default:
		return fmt.Errorf("STORAGE_DRIVER %q is not one of sqlite, postgres, mongo", c.Storage.Driver)
	}
	return nil
}

// IsProduction reports whether the service runs with production settings:
// JSON logs and Secure cookies.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

func (c AuthConfig) TokenTTL() time.Duration {
	return time.Duration(c.TokenExpireMinutes) * time.Minute
}

// CookieEnabled reports whether the cookie transport is configured.
func (c AuthConfig) CookieEnabled() bool {
	for _, s := range c.TokenSources {
		if s == TokenSourceCookie {
			return true
		}
	}
	return false
}
