package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/ghayamathia/course-catalog/internal/core/domain"
)

const testSecret = "secret"

func newTestAuthService(repo *stubUserRepo) *AuthService {
	return NewAuthService(repo, AuthConfig{JWTSecret: testSecret, TokenTTL: time.Hour}, nil, zerolog.Nop())
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	user, err := svc.Register(context.Background(), "a@x.com", "pw1")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.ID == 0 {
		t.Fatalf("expected an id to be assigned")
	}
	if user.Role != domain.RoleUser || !user.IsActive {
		t.Fatalf("unexpected role/active: %s %v", user.Role, user.IsActive)
	}
	if user.PasswordHash == "pw1" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pw1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	if _, err := svc.Register(context.Background(), "", "pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Register(context.Background(), "bob@example.com", ""); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	_, _ = svc.Register(context.Background(), "bob@example.com", "pass")
	if _, err := svc.Register(context.Background(), "bob@example.com", "pass2"); err != domain.ErrDuplicateEmail {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestAuthService_LoginThenVerify_RecoversEmail(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())
	ctx := context.Background()

	if _, err := svc.Register(ctx, "carol@example.com", "s3cret"); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	res, err := svc.Login(ctx, "carol@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if res.Token == "" || res.User == nil {
		t.Fatalf("unexpected login result: %+v", res)
	}

	email, err := svc.VerifyToken(ctx, res.Token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if email != "carol@example.com" {
		t.Fatalf("expected carol@example.com, got %s", email)
	}

	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(res.Token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, ok := claims["role"]; ok {
		t.Fatalf("role must not be embedded in the token")
	}
	if claims["sub"] != "carol@example.com" {
		t.Fatalf("unexpected sub: %v", claims["sub"])
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	_, _ = svc.Register(context.Background(), "dave@example.com", "goodpass")
	if _, err := svc.Login(context.Background(), "dave@example.com", "badpass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	if _, err := svc.Login(context.Background(), "ghost@example.com", "pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_InactiveUser(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)

	u, _ := svc.Register(context.Background(), "erin@example.com", "pass")
	u.IsActive = false
	_ = repo.Update(context.Background(), u)

	if _, err := svc.Login(context.Background(), "erin@example.com", "pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_StoreFailureIsNotMasked(t *testing.T) {
	repo := newStubUserRepo()
	repo.findErr = errors.New("connection reset")
	svc := newTestAuthService(repo)

	_, err := svc.Login(context.Background(), "x@example.com", "pass")
	if err == nil || errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestAuthService_VerifyToken_Expired(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())

	svc.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }
	token, _, err := svc.IssueToken("a@x.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	svc.now = time.Now

	if _, err := svc.VerifyToken(context.Background(), token); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuthService_VerifyToken_Rejects(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo())
	exp := jwt.NewNumericDate(time.Now().Add(time.Hour))

	sign := func(method jwt.SigningMethod, secret string, claims jwt.Claims) string {
		s, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		return s
	}

	cases := []struct {
		name  string
		token string
		want  error
	}{
		{"malformed", "not-a-token", domain.ErrInvalidToken},
		{"wrong secret", sign(jwt.SigningMethodHS256, "other", jwt.RegisteredClaims{Subject: "a@x.com", ExpiresAt: exp}), domain.ErrInvalidToken},
		{"wrong algorithm", sign(jwt.SigningMethodHS512, testSecret, jwt.RegisteredClaims{Subject: "a@x.com", ExpiresAt: exp}), domain.ErrInvalidToken},
		{"no expiry", sign(jwt.SigningMethodHS256, testSecret, jwt.RegisteredClaims{Subject: "a@x.com"}), domain.ErrInvalidToken},
		{"no subject", sign(jwt.SigningMethodHS256, testSecret, jwt.RegisteredClaims{ExpiresAt: exp}), domain.ErrMissingSubject},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.VerifyToken(context.Background(), tc.token); err != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestAuthService_Logout_RevokesToken(t *testing.T) {
	deny := newStubDenylist()
	svc := NewAuthService(newStubUserRepo(), AuthConfig{JWTSecret: testSecret, TokenTTL: time.Hour}, deny, zerolog.Nop())
	ctx := context.Background()

	token, exp, _ := svc.IssueToken("a@x.com")
	if _, err := svc.VerifyToken(ctx, token); err != nil {
		t.Fatalf("fresh token should verify: %v", err)
	}

	if err := svc.Logout(ctx, token); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if got := deny.revoked[token]; !got.Equal(exp.Truncate(time.Second)) {
		t.Fatalf("expected revocation until %v, got %v", exp, got)
	}
	if _, err := svc.VerifyToken(ctx, token); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken after logout, got %v", err)
	}
}

func TestAuthService_Logout_IgnoresGarbage(t *testing.T) {
	deny := newStubDenylist()
	svc := NewAuthService(newStubUserRepo(), AuthConfig{JWTSecret: testSecret}, deny, zerolog.Nop())

	if err := svc.Logout(context.Background(), "garbage"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if len(deny.revoked) != 0 {
		t.Fatalf("garbage token should not be recorded")
	}
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo)
	ctx := context.Background()

	if err := svc.EnsureAdmin(ctx, "admin@example.com", "first"); err != nil {
		t.Fatalf("create admin: %v", err)
	}
	if _, err := svc.Login(ctx, "admin@example.com", "first"); err != nil {
		t.Fatalf("admin login: %v", err)
	}

	// Demote and deactivate, then bootstrap again with a new password.
	u, _ := repo.FindByEmail(ctx, "admin@example.com")
	u.Role = domain.RoleUser
	u.IsActive = false
	_ = repo.Update(ctx, u)

	if err := svc.EnsureAdmin(ctx, "admin@example.com", "second"); err != nil {
		t.Fatalf("refresh admin: %v", err)
	}
	res, err := svc.Login(ctx, "admin@example.com", "second")
	if err != nil {
		t.Fatalf("admin login after refresh: %v", err)
	}
	if res.User.Role != domain.RoleAdmin || !res.User.IsActive {
		t.Fatalf("expected active admin, got %+v", res.User)
	}
	if len(repo.byEmail) != 1 {
		t.Fatalf("expected a single account, got %d", len(repo.byEmail))
	}
}
