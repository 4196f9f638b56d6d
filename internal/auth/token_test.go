package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/EduFlow-2025/learning-service/internal/models"
)

func newTestTokenManager(expiry time.Duration) *TokenManager {
	return NewTokenManager(TokenConfig{
		Secret: "test-secret",
		Expiry: expiry,
		Issuer: "learning-service",
	})
}

func TestTokenRoundTrip(t *testing.T) {
	tm := newTestTokenManager(time.Hour)

	token, err := tm.Issue("user-123", models.RoleInstructor)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	subject, err := tm.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed for freshly issued token: %v", err)
	}
	if subject.UserID != "user-123" {
		t.Errorf("subject id = %q, want %q", subject.UserID, "user-123")
	}
	if subject.Role != models.RoleInstructor {
		t.Errorf("subject role = %q, want %q", subject.Role, models.RoleInstructor)
	}
}

func TestTokenTamperRejected(t *testing.T) {
	tm := newTestTokenManager(time.Hour)

	token, err := tm.Issue("user-123", models.RoleStudent)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	// Flip one byte in the payload segment.
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", token)
	}
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := tm.Verify(tampered); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("tampered token: expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenExpiredRejected(t *testing.T) {
	tm := newTestTokenManager(-time.Minute)

	token, err := tm.Issue("user-123", models.RoleStudent)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := tm.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expired token: expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenWrongSecretRejected(t *testing.T) {
	tm := newTestTokenManager(time.Hour)
	other := NewTokenManager(TokenConfig{Secret: "other-secret", Expiry: time.Hour})

	token, err := tm.Issue("user-123", models.RoleStudent)
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := other.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("wrong secret: expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenMalformedRejected(t *testing.T) {
	tm := newTestTokenManager(time.Hour)

	for _, tok := range []string{"", "garbage", "a.b.c"} {
		if _, err := tm.Verify(tok); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Verify(%q): expected ErrInvalidToken, got %v", tok, err)
		}
	}
}
