package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/EduFlow-2025/learning-service/internal/auth"
	"github.com/EduFlow-2025/learning-service/internal/events"
	"github.com/EduFlow-2025/learning-service/internal/models"
	"github.com/EduFlow-2025/learning-service/internal/repositories"
	"github.com/EduFlow-2025/learning-service/internal/validator"
)

type lessonService struct {
	repo      repositories.Repository
	publisher events.Publisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewLessonService(repo repositories.Repository, publisher events.Publisher, logger *slog.Logger, validator *validator.Validator) LessonService {
	return &lessonService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

// Create adds a lesson under a course. Ownership is checked against the
// parent course, so only that course's instructor passes.
func (s *lessonService) Create(ctx context.Context, courseID string, req *CreateLessonRequest, subject auth.Subject) (*models.Lesson, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	course, err := s.repo.Course().GetByID(ctx, courseID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	if err := auth.Authorize(subject, auth.ActionCreateLesson, auth.Target{OwnerID: course.InstructorID}); err != nil {
		return nil, NewPermissionError(subject.UserID, courseID, "lesson", "create", denialReason(err))
	}

	lesson := &models.Lesson{
		Title:    req.Title,
		Content:  req.Content,
		CourseID: courseID,
		Order:    req.Order,
	}
	if err := s.repo.Lesson().Create(ctx, lesson); err != nil {
		return nil, fmt.Errorf("failed to create lesson: %w", err)
	}

	s.logger.Info("Lesson created", "lesson_id", lesson.ID, "course_id", courseID)

	return lesson, nil
}

func (s *lessonService) GetByCourse(ctx context.Context, courseID string) ([]*models.Lesson, error) {
	if _, err := s.repo.Course().GetByID(ctx, courseID); err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	lessons, err := s.repo.Lesson().GetByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("failed to list lessons: %w", err)
	}
	return lessons, nil
}

func (s *lessonService) Update(ctx context.Context, id string, req *UpdateLessonRequest, subject auth.Subject) (*models.Lesson, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	lesson, course, err := s.resolveLesson(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := auth.Authorize(subject, auth.ActionUpdateLesson, auth.Target{OwnerID: course.InstructorID}); err != nil {
		return nil, NewPermissionError(subject.UserID, id, "lesson", "update", denialReason(err))
	}

	lesson.Title = req.Title
	lesson.Content = req.Content
	lesson.Order = req.Order
	lesson.UpdatedAt = time.Now().UTC()

	if err := s.repo.Lesson().Update(ctx, lesson); err != nil {
		return nil, fmt.Errorf("failed to update lesson: %w", err)
	}

	s.logger.Info("Lesson updated", "lesson_id", id)

	return lesson, nil
}

func (s *lessonService) Delete(ctx context.Context, id string, subject auth.Subject) error {
	_, course, err := s.resolveLesson(ctx, id)
	if err != nil {
		return err
	}

	if err := auth.Authorize(subject, auth.ActionDeleteLesson, auth.Target{OwnerID: course.InstructorID}); err != nil {
		return NewPermissionError(subject.UserID, id, "lesson", "delete", denialReason(err))
	}

	if err := s.repo.Lesson().Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrLessonNotFound
		}
		return fmt.Errorf("failed to delete lesson: %w", err)
	}

	s.logger.Info("Lesson deleted", "lesson_id", id)

	return nil
}

// resolveLesson loads a lesson and its parent course. A lesson whose
// course is gone should not exist; if it does, the read fails the same
// way as a missing lesson.
func (s *lessonService) resolveLesson(ctx context.Context, id string) (*models.Lesson, *models.Course, error) {
	lesson, err := s.repo.Lesson().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, nil, ErrLessonNotFound
		}
		return nil, nil, fmt.Errorf("failed to get lesson: %w", err)
	}

	course, err := s.repo.Course().GetByID(ctx, lesson.CourseID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, nil, ErrLessonNotFound
		}
		return nil, nil, fmt.Errorf("failed to get parent course: %w", err)
	}

	return lesson, course, nil
}
