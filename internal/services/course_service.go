package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/EduFlow-2025/learning-service/internal/auth"
	"github.com/EduFlow-2025/learning-service/internal/events"
	"github.com/EduFlow-2025/learning-service/internal/models"
	"github.com/EduFlow-2025/learning-service/internal/repositories"
	"github.com/EduFlow-2025/learning-service/internal/validator"
)

type courseService struct {
	repo      repositories.Repository
	publisher events.Publisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewCourseService(repo repositories.Repository, publisher events.Publisher, logger *slog.Logger, validator *validator.Validator) CourseService {
	return &courseService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

func normalizeFilters(filters CourseFilters) (limit, offset int, page, size int) {
	size = filters.Size
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	page = filters.Page
	if page < 1 {
		page = 1
	}
	return size, (page - 1) * size, page, size
}

func (s *courseService) Create(ctx context.Context, req *CreateCourseRequest, subject auth.Subject) (*CourseResponse, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	if err := auth.Authorize(subject, auth.ActionCreateCourse, auth.Target{}); err != nil {
		return nil, NewPermissionError(subject.UserID, "", "course", "create", denialReason(err))
	}

	course := &models.Course{
		Title:        req.Title,
		Description:  req.Description,
		VideoURL:     req.VideoURL,
		InstructorID: subject.UserID,
	}
	if err := s.repo.Course().Create(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}

	s.logger.Info("Course created", "course_id", course.ID, "instructor_id", subject.UserID)

	events.SafePublish(ctx, s.publisher, s.logger, events.TopicCourses, events.CourseEvent{
		Event:        events.EventCourseCreated,
		CourseID:     course.ID,
		InstructorID: subject.UserID,
		Title:        course.Title,
		OccurredAt:   time.Now().UTC(),
	})

	return s.buildCourseResponse(course, subject.UserID), nil
}

func (s *courseService) GetByID(ctx context.Context, id string, userID string) (*CourseResponse, error) {
	course, err := s.repo.Course().GetByIDWithInstructor(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	lessons, err := s.repo.Lesson().GetByCourse(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get lessons: %w", err)
	}

	resp := s.buildCourseResponse(course, userID)
	resp.Lessons = lessons
	return resp, nil
}

// Update replaces the full mutable record. The target is resolved before
// authorization so a missing course reports not-found, never forbidden.
func (s *courseService) Update(ctx context.Context, id string, req *UpdateCourseRequest, subject auth.Subject) (*CourseResponse, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	course, err := s.repo.Course().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	if err := auth.Authorize(subject, auth.ActionUpdateCourse, auth.Target{OwnerID: course.InstructorID}); err != nil {
		return nil, NewPermissionError(subject.UserID, id, "course", "update", denialReason(err))
	}

	course.Title = req.Title
	course.Description = req.Description
	course.VideoURL = req.VideoURL
	course.UpdatedAt = time.Now().UTC()

	if err := s.repo.Course().Update(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to update course: %w", err)
	}

	s.logger.Info("Course updated", "course_id", id)

	return s.buildCourseResponse(course, subject.UserID), nil
}

// Delete removes the course and every lesson under it in one transaction.
// Enrollments pointing at the course are kept; their reads render a
// placeholder course.
func (s *courseService) Delete(ctx context.Context, id string, subject auth.Subject) error {
	course, err := s.repo.Course().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrCourseNotFound
		}
		return fmt.Errorf("failed to get course: %w", err)
	}

	if err := auth.Authorize(subject, auth.ActionDeleteCourse, auth.Target{OwnerID: course.InstructorID}); err != nil {
		return NewPermissionError(subject.UserID, id, "course", "delete", denialReason(err))
	}

	var lessonCount int
	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		lessons, err := txRepo.Lesson().GetByCourse(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to list lessons: %w", err)
		}
		lessonCount = len(lessons)

		if err := txRepo.Lesson().DeleteByCourse(ctx, id); err != nil {
			return fmt.Errorf("failed to delete lessons: %w", err)
		}
		if err := txRepo.Course().Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete course: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("Course deleted", "course_id", id, "lessons_removed", lessonCount)

	events.SafePublish(ctx, s.publisher, s.logger, events.TopicCourses, events.CourseEvent{
		Event:        events.EventCourseDeleted,
		CourseID:     id,
		InstructorID: course.InstructorID,
		Title:        course.Title,
		LessonCount:  lessonCount,
		OccurredAt:   time.Now().UTC(),
	})

	return nil
}

func (s *courseService) List(ctx context.Context, filters CourseFilters, userID string) (*CourseListResponse, error) {
	limit, offset, page, size := normalizeFilters(filters)

	courses, total, err := s.repo.Course().List(ctx, repositories.CourseFilters{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	return s.buildCourseListResponse(courses, total, page, size, userID), nil
}

func (s *courseService) ListByInstructor(ctx context.Context, instructorID string, filters CourseFilters) (*CourseListResponse, error) {
	limit, offset, page, size := normalizeFilters(filters)

	courses, total, err := s.repo.Course().GetByInstructor(ctx, instructorID, repositories.CourseFilters{
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list instructor courses: %w", err)
	}

	return s.buildCourseListResponse(courses, total, page, size, instructorID), nil
}

// ===== RESPONSE BUILDERS =====

func (s *courseService) buildCourseResponse(course *models.Course, userID string) *CourseResponse {
	isOwner := userID != "" && userID == course.InstructorID
	return &CourseResponse{
		Course:    course,
		CanEdit:   isOwner,
		CanDelete: isOwner,
	}
}

func (s *courseService) buildCourseListResponse(courses []*models.Course, total int64, page, size int, userID string) *CourseListResponse {
	responses := make([]*CourseResponse, 0, len(courses))
	for _, course := range courses {
		responses = append(responses, s.buildCourseResponse(course, userID))
	}
	return &CourseListResponse{
		Courses: responses,
		Total:   total,
		Page:    page,
		Size:    size,
	}
}

func denialReason(err error) string {
	var denial *auth.DenialError
	if errors.As(err, &denial) {
		return denial.Reason
	}
	return err.Error()
}
