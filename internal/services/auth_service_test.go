package services

import (
	"context"
	"errors"
	"testing"

	"github.com/EduFlow-2025/learning-service/internal/models"
	"github.com/EduFlow-2025/learning-service/internal/repositories/memory"
	"github.com/EduFlow-2025/learning-service/internal/validator"
)

func newAuthService(repo *memory.Repository) AuthService {
	return NewAuthService(repo, testTokens(), nil, testLogger(), testValidator())
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("creates user with profile and token", func(t *testing.T) {
		repo := memory.New()
		svc := newAuthService(repo)

		resp, err := svc.Register(ctx, &RegisterRequest{
			Name:     "Ana",
			Email:    "ana@example.com",
			Password: "secret123",
			Role:     "instructor",
		})
		if err != nil {
			t.Fatalf("Register() error = %v", err)
		}
		if resp.Token == "" {
			t.Error("Register() returned empty token")
		}
		if resp.User.Role != models.RoleInstructor {
			t.Errorf("Register() role = %v, want instructor", resp.User.Role)
		}
		if resp.User.PasswordHash == "secret123" {
			t.Error("Register() stored plaintext password")
		}

		subject, err := testTokens().Verify(resp.Token)
		if err != nil {
			t.Fatalf("Verify() error = %v", err)
		}
		if subject.UserID != resp.User.ID {
			t.Errorf("token subject = %v, want %v", subject.UserID, resp.User.ID)
		}
		if subject.Role != models.RoleInstructor {
			t.Errorf("token role = %v, want instructor", subject.Role)
		}

		if _, err := repo.Profile().GetByUserID(ctx, resp.User.ID); err != nil {
			t.Errorf("profile not created: %v", err)
		}
	})

	t.Run("defaults role to student", func(t *testing.T) {
		repo := memory.New()
		svc := newAuthService(repo)

		resp, err := svc.Register(ctx, &RegisterRequest{
			Name:     "Bo",
			Email:    "bo@example.com",
			Password: "secret123",
		})
		if err != nil {
			t.Fatalf("Register() error = %v", err)
		}
		if resp.User.Role != models.RoleStudent {
			t.Errorf("Register() role = %v, want student", resp.User.Role)
		}
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		repo := memory.New()
		svc := newAuthService(repo)

		first := &RegisterRequest{Name: "Ana", Email: "ana@example.com", Password: "secret123"}
		if _, err := svc.Register(ctx, first); err != nil {
			t.Fatalf("Register() error = %v", err)
		}

		second := &RegisterRequest{Name: "Other Ana", Email: "ana@example.com", Password: "different456"}
		_, err := svc.Register(ctx, second)
		if !errors.Is(err, ErrEmailTaken) {
			t.Errorf("Register() error = %v, want ErrEmailTaken", err)
		}
	})

	t.Run("duplicate email conflicts regardless of case", func(t *testing.T) {
		repo := memory.New()
		svc := newAuthService(repo)

		resp, err := svc.Register(ctx, &RegisterRequest{Name: "Ana", Email: "a@x.com", Password: "secret123"})
		if err != nil {
			t.Fatalf("Register() error = %v", err)
		}
		if resp.User.Email != "a@x.com" {
			t.Errorf("Register() stored email = %q, want lowercase", resp.User.Email)
		}

		_, err = svc.Register(ctx, &RegisterRequest{Name: "Other Ana", Email: "A@X.com", Password: "different456"})
		if !errors.Is(err, ErrEmailTaken) {
			t.Errorf("Register() error = %v, want ErrEmailTaken", err)
		}
	})

	t.Run("rejects invalid payload", func(t *testing.T) {
		repo := memory.New()
		svc := newAuthService(repo)

		tests := []struct {
			name string
			req  *RegisterRequest
		}{
			{"missing name", &RegisterRequest{Email: "x@example.com", Password: "secret123"}},
			{"bad email", &RegisterRequest{Name: "X", Email: "not-an-email", Password: "secret123"}},
			{"short password", &RegisterRequest{Name: "X", Email: "x@example.com", Password: "abc"}},
			{"unknown role", &RegisterRequest{Name: "X", Email: "x@example.com", Password: "secret123", Role: "admin"}},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := svc.Register(ctx, tt.req)
				var verrs validator.ValidationErrors
				if !errors.As(err, &verrs) {
					t.Errorf("Register() error = %v, want ValidationErrors", err)
				}
			})
		}
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("valid credentials", func(t *testing.T) {
		repo := memory.New()
		svc := newAuthService(repo)
		user := seedUser(t, repo, "Ana", "ana@example.com", models.RoleInstructor)

		resp, err := svc.Login(ctx, &LoginRequest{Email: "ana@example.com", Password: "secret123"})
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if resp.User.ID != user.ID {
			t.Errorf("Login() user = %v, want %v", resp.User.ID, user.ID)
		}
		if resp.Token == "" {
			t.Error("Login() returned empty token")
		}
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		repo := memory.New()
		svc := newAuthService(repo)
		seedUser(t, repo, "Ana", "ana@example.com", models.RoleStudent)

		_, wrongPass := svc.Login(ctx, &LoginRequest{Email: "ana@example.com", Password: "wrong-pass"})
		_, unknown := svc.Login(ctx, &LoginRequest{Email: "ghost@example.com", Password: "secret123"})

		if !errors.Is(wrongPass, ErrInvalidCredentials) {
			t.Errorf("wrong password error = %v, want ErrInvalidCredentials", wrongPass)
		}
		if !errors.Is(unknown, ErrInvalidCredentials) {
			t.Errorf("unknown email error = %v, want ErrInvalidCredentials", unknown)
		}
		if wrongPass.Error() != unknown.Error() {
			t.Error("login failures leak which accounts exist")
		}
	})
}

func TestAuthService_Me(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()
	svc := newAuthService(repo)
	user := seedUser(t, repo, "Ana", "ana@example.com", models.RoleStudent)

	got, err := svc.Me(ctx, user.ID)
	if err != nil {
		t.Fatalf("Me() error = %v", err)
	}
	if got.Email != "ana@example.com" {
		t.Errorf("Me() email = %v", got.Email)
	}

	if _, err := svc.Me(ctx, "missing-id"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("Me() error = %v, want ErrUserNotFound", err)
	}
}
