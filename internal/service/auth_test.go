package service

import (
	"context"
	"errors"
	"testing"

	"github.com/mlaurent/pantry-planner/internal/apperror"
	"github.com/mlaurent/pantry-planner/internal/auth"
)

// newTestAuthService wires an AuthService against the in-memory user repo,
// a deterministic token service, and bcrypt at the minimum cost.
func newTestAuthService(t *testing.T) (*AuthService, *mockUserRepo) {
	t.Helper()

	repo := newMockUserRepo()
	tokens, err := auth.NewTokenService("test-secret-at-least-16-chars!!", 0)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	passwords := auth.NewPasswordServiceForTest(4)

	return NewAuthService(repo, tokens, passwords, testLogger()), repo
}

// =========================================================================
// REGISTER TESTS
// =========================================================================

func TestRegister_Success(t *testing.T) {
	svc, _ := newTestAuthService(t)

	result, err := svc.Register(context.Background(), "marie", "marie@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if result.User.ID == "" {
		t.Error("expected registered user to have an ID")
	}
	if result.User.Username != "marie" {
		t.Errorf("Username = %q, want %q", result.User.Username, "marie")
	}
	if result.Token == "" {
		t.Error("Register() should issue a session token")
	}
	if result.User.PasswordHash == "s3cret-pass" {
		t.Error("password was stored in plaintext")
	}
}

func TestRegister_NormalizesEmail(t *testing.T) {
	svc, _ := newTestAuthService(t)

	result, err := svc.Register(context.Background(), "marie", "  Marie@Example.COM  ", "s3cret-pass")
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if result.User.Email != "marie@example.com" {
		t.Errorf("Email = %q, want lowercased trimmed %q", result.User.Email, "marie@example.com")
	}
}

func TestRegister_MissingFields(t *testing.T) {
	svc, _ := newTestAuthService(t)

	tests := []struct {
		name     string
		username string
		email    string
		password string
	}{
		{name: "empty username", username: "", email: "a@b.fr", password: "pass"},
		{name: "empty email", username: "marie", email: "", password: "pass"},
		{name: "email without @", username: "marie", email: "not-an-email", password: "pass"},
		{name: "empty password", username: "marie", email: "a@b.fr", password: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.username, tt.email, tt.password)
			if err == nil {
				t.Fatal("Register() should have failed")
			}
			if !errors.Is(err, apperror.ErrValidation) {
				t.Errorf("error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService(t)

	if _, err := svc.Register(context.Background(), "marie", "marie@example.com", "pass-one"); err != nil {
		t.Fatalf("setup: Register() error = %v", err)
	}

	_, err := svc.Register(context.Background(), "other", "marie@example.com", "pass-two")
	if err == nil {
		t.Fatal("Register() should reject a duplicate email")
	}
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("error = %v, want ErrConflict", err)
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	svc, _ := newTestAuthService(t)

	if _, err := svc.Register(context.Background(), "marie", "marie@example.com", "pass-one"); err != nil {
		t.Fatalf("setup: Register() error = %v", err)
	}

	_, err := svc.Register(context.Background(), "marie", "other@example.com", "pass-two")
	if err == nil {
		t.Fatal("Register() should reject a duplicate username")
	}
	if !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("error = %v, want ErrConflict", err)
	}
}

// =========================================================================
// LOGIN TESTS
// =========================================================================

func TestLogin_Success(t *testing.T) {
	svc, _ := newTestAuthService(t)

	registered, err := svc.Register(context.Background(), "marie", "marie@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("setup: Register() error = %v", err)
	}

	result, err := svc.Login(context.Background(), "marie@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if result.User.ID != registered.User.ID {
		t.Errorf("logged-in user ID = %q, want %q", result.User.ID, registered.User.ID)
	}
	if result.Token == "" {
		t.Error("Login() should issue a session token")
	}
}

func TestLogin_CaseInsensitiveEmail(t *testing.T) {
	svc, _ := newTestAuthService(t)

	if _, err := svc.Register(context.Background(), "marie", "marie@example.com", "s3cret-pass"); err != nil {
		t.Fatalf("setup: Register() error = %v", err)
	}

	if _, err := svc.Login(context.Background(), "MARIE@example.com", "s3cret-pass"); err != nil {
		t.Errorf("Login() with differently-cased email error = %v", err)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newTestAuthService(t)

	if _, err := svc.Register(context.Background(), "marie", "marie@example.com", "s3cret-pass"); err != nil {
		t.Fatalf("setup: Register() error = %v", err)
	}

	_, err := svc.Login(context.Background(), "marie@example.com", "wrong-pass")
	if err == nil {
		t.Fatal("Login() should reject a wrong password")
	}
	if !errors.Is(err, apperror.ErrUnauthorized) {
		t.Errorf("error = %v, want ErrUnauthorized", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), "nobody@example.com", "whatever")
	if err == nil {
		t.Fatal("Login() should reject an unknown email")
	}
	if !errors.Is(err, apperror.ErrUnauthorized) {
		t.Errorf("error = %v, want ErrUnauthorized", err)
	}
}

func TestLogin_SameErrorForUnknownEmailAndWrongPassword(t *testing.T) {
	// The response must not reveal whether an email is registered.
	svc, _ := newTestAuthService(t)

	if _, err := svc.Register(context.Background(), "marie", "marie@example.com", "s3cret-pass"); err != nil {
		t.Fatalf("setup: Register() error = %v", err)
	}

	_, errUnknown := svc.Login(context.Background(), "nobody@example.com", "whatever")
	_, errWrong := svc.Login(context.Background(), "marie@example.com", "wrong-pass")

	if errUnknown == nil || errWrong == nil {
		t.Fatal("both logins should have failed")
	}
	if errUnknown.Error() != errWrong.Error() {
		t.Errorf("error messages differ: %q vs %q — leaks account existence",
			errUnknown.Error(), errWrong.Error())
	}
}

func TestLogin_MissingCredentials(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Login(context.Background(), "", "")
	if err == nil {
		t.Fatal("Login() should reject empty credentials")
	}
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("error = %v, want ErrValidation", err)
	}
}

// =========================================================================
// ME TESTS
// =========================================================================

func TestMe_Success(t *testing.T) {
	svc, _ := newTestAuthService(t)

	registered, err := svc.Register(context.Background(), "marie", "marie@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("setup: Register() error = %v", err)
	}

	user, err := svc.Me(context.Background(), registered.User.ID)
	if err != nil {
		t.Fatalf("Me() error = %v", err)
	}
	if user.Email != "marie@example.com" {
		t.Errorf("Email = %q, want %q", user.Email, "marie@example.com")
	}
}

func TestMe_NotFound(t *testing.T) {
	svc, _ := newTestAuthService(t)

	_, err := svc.Me(context.Background(), "nonexistent")
	if err == nil {
		t.Fatal("Me() should error for an unknown ID")
	}
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}
