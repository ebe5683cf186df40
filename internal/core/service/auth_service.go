package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/ghayamathia/course-catalog/internal/core/domain"
	"github.com/ghayamathia/course-catalog/internal/core/ports"
)

const defaultTokenTTL = 24 * time.Hour

// AuthConfig holds the token signing settings. It is built once at startup
// from the process configuration.
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// AuthService implements registration, login and token handling.
type AuthService struct {
	repo     ports.UserRepository
	denylist ports.TokenDenylist
	cfg      AuthConfig
	log      zerolog.Logger

	now func() time.Time
}

// NewAuthService returns an AuthService. denylist may be nil, in which case
// tokens are only invalidated by expiry.
func NewAuthService(repo ports.UserRepository, cfg AuthConfig, denylist ports.TokenDenylist, log zerolog.Logger) *AuthService {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}
	return &AuthService{
		repo:     repo,
		denylist: denylist,
		cfg:      cfg,
		log:      log,
		now:      time.Now,
	}
}

func (s *AuthService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		IsActive:     true,
		CreatedAt:    s.now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Int64("user_id", created.ID).Str("email", created.Email).Msg("user registered")
	return created, nil
}

// Authenticate returns the active user owning email when password matches
// its stored hash. Unknown, inactive and mismatched users are
// indistinguishable to the caller.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	if !user.IsActive {
		return nil, domain.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}

	token, exp, err := s.IssueToken(user.Email)
	if err != nil {
		return nil, err
	}
	return &ports.LoginResult{Token: token, ExpiresAt: exp, User: user}, nil
}

// IssueToken signs a token asserting email as subject. The role is not
// embedded; it is looked up again on every request.
func (s *AuthService) IssueToken(email string) (string, time.Time, error) {
	exp := s.now().Add(s.cfg.TokenTTL)
	claims := jwt.RegisteredClaims{
		Subject:   email,
		ExpiresAt: jwt.NewNumericDate(exp),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, exp, nil
}

// VerifyToken checks signature, algorithm and expiry and returns the subject.
func (s *AuthService) VerifyToken(ctx context.Context, token string) (string, error) {
	claims, err := s.parse(token)
	if err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", domain.ErrMissingSubject
	}

	if s.denylist != nil {
		revoked, err := s.denylist.IsRevoked(ctx, token)
		if err != nil {
			s.log.Warn().Err(err).Msg("denylist check failed, accepting token")
		} else if revoked {
			return "", domain.ErrInvalidToken
		}
	}
	return claims.Subject, nil
}

// Logout revokes token until its natural expiry. Tokens that no longer
// verify need no revocation and are ignored.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if s.denylist == nil || token == "" {
		return nil
	}
	claims, err := s.parse(token)
	if err != nil {
		return nil
	}
	if err := s.denylist.Revoke(ctx, token, claims.ExpiresAt.Time); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	s.log.Info().Str("email", claims.Subject).Msg("token revoked")
	return nil
}

// EnsureAdmin creates the bootstrap admin, or resets the existing account's
// password, role and active flag to the configured values.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, password string) error {
	if email == "" || password == "" {
		return fmt.Errorf("ensure admin: %w", domain.ErrInvalidCredentials)
	}

	hash, err := hashPassword(password)
	if err != nil {
		return err
	}

	existing, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		existing.PasswordHash = hash
		existing.Role = domain.RoleAdmin
		existing.IsActive = true
		if err := s.repo.Update(ctx, existing); err != nil {
			return fmt.Errorf("ensure admin: %w", err)
		}
		s.log.Info().Str("email", email).Msg("admin account refreshed")
		return nil
	case errors.Is(err, domain.ErrUserNotFound):
	default:
		return fmt.Errorf("ensure admin: %w", err)
	}

	if _, err := s.repo.Create(ctx, &domain.User{
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		IsActive:     true,
		CreatedAt:    s.now().UTC(),
	}); err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}
	s.log.Info().Str("email", email).Msg("admin account created")
	return nil
}

func (s *AuthService) parse(token string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !tkn.Valid {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
