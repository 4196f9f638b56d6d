package pkg

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/EduFlow-2025/learning-service/internal/auth"
	"github.com/EduFlow-2025/learning-service/internal/models"
	"github.com/EduFlow-2025/learning-service/internal/repositories"
)

// SeedDatabase loads a small demo dataset for local development. It is a
// no-op when the demo instructor already exists, so restarts are safe.
func SeedDatabase(ctx context.Context, repo repositories.Repository, logger *slog.Logger) error {
	if exists, err := repo.User().ExistsByEmail(ctx, "jane.doe@example.com"); err != nil {
		return fmt.Errorf("seed check failed: %w", err)
	} else if exists {
		logger.Info("Seed data already present, skipping")
		return nil
	}

	logger.Info("Seeding demo data")

	hash, err := auth.HashPassword("password123")
	if err != nil {
		return err
	}

	instructor := &models.User{
		Name:         "Jane Doe",
		Email:        "jane.doe@example.com",
		PasswordHash: hash,
		Role:         models.RoleInstructor,
	}
	student := &models.User{
		Name:         "John Smith",
		Email:        "john.smith@example.com",
		PasswordHash: hash,
		Role:         models.RoleStudent,
	}

	return repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		for _, user := range []*models.User{instructor, student} {
			if err := txRepo.User().Create(ctx, user); err != nil {
				return fmt.Errorf("seed user %s: %w", user.Email, err)
			}
			if err := txRepo.Profile().Create(ctx, &models.Profile{UserID: user.ID}); err != nil {
				return fmt.Errorf("seed profile for %s: %w", user.Email, err)
			}
		}

		course := &models.Course{
			Title:        "Introduction to Go",
			Description:  "Build and ship production services in Go.",
			InstructorID: instructor.ID,
		}
		if err := txRepo.Course().Create(ctx, course); err != nil {
			return fmt.Errorf("seed course: %w", err)
		}

		lessons := []*models.Lesson{
			{Title: "Getting Started", Content: "Installing the toolchain and writing hello world.", CourseID: course.ID, Order: 1},
			{Title: "Types and Structs", Content: "Value semantics, methods, and composition.", CourseID: course.ID, Order: 2},
			{Title: "Concurrency", Content: "Goroutines, channels, and the context package.", CourseID: course.ID, Order: 3},
		}
		for _, lesson := range lessons {
			if err := txRepo.Lesson().Create(ctx, lesson); err != nil {
				return fmt.Errorf("seed lesson %s: %w", lesson.Title, err)
			}
		}

		enrollment := &models.Enrollment{UserID: student.ID, CourseID: course.ID}
		if err := txRepo.Enrollment().Create(ctx, enrollment); err != nil {
			return fmt.Errorf("seed enrollment: %w", err)
		}

		return nil
	})
}
