package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/EduFlow-2025/learning-service/internal/auth"
	"github.com/EduFlow-2025/learning-service/internal/models"
	"github.com/EduFlow-2025/learning-service/internal/repositories/memory"
	"github.com/EduFlow-2025/learning-service/internal/validator"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testTokens() *auth.TokenManager {
	return auth.NewTokenManager(auth.TokenConfig{
		Secret: "test-secret",
		Expiry: time.Hour,
		Issuer: "learning-service-test",
	})
}

func testValidator() *validator.Validator {
	return validator.New()
}

func seedUser(t *testing.T, repo *memory.Repository, name, email string, role models.UserRole) *models.User {
	t.Helper()

	hash, err := auth.HashPassword("secret123")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
	}
	if err := repo.User().Create(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	profile := &models.Profile{UserID: user.ID}
	if err := repo.Profile().Create(context.Background(), profile); err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	return user
}

func seedCourse(t *testing.T, repo *memory.Repository, title, instructorID string) *models.Course {
	t.Helper()

	course := &models.Course{
		Title:        title,
		Description:  "description of " + title,
		InstructorID: instructorID,
	}
	if err := repo.Course().Create(context.Background(), course); err != nil {
		t.Fatalf("seed course: %v", err)
	}
	return course
}

func instructorSubject(user *models.User) auth.Subject {
	return auth.Subject{UserID: user.ID, Role: models.RoleInstructor}
}

func studentSubject(user *models.User) auth.Subject {
	return auth.Subject{UserID: user.ID, Role: models.RoleStudent}
}
