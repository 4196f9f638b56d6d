package services

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/EduFlow-2025/learning-service/internal/auth"
	"github.com/EduFlow-2025/learning-service/internal/events"
	"github.com/EduFlow-2025/learning-service/internal/models"
	"github.com/EduFlow-2025/learning-service/internal/repositories"
	"github.com/EduFlow-2025/learning-service/internal/validator"
)

type enrollmentService struct {
	repo      repositories.Repository
	publisher events.Publisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewEnrollmentService(repo repositories.Repository, publisher events.Publisher, logger *slog.Logger, validator *validator.Validator) EnrollmentService {
	return &enrollmentService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

// Enroll joins the caller to a course. The duplicate check is left to the
// store's composite unique index, so two concurrent enrolls for the same
// pair cannot both succeed.
func (s *enrollmentService) Enroll(ctx context.Context, req *EnrollRequest, subject auth.Subject) (*EnrollmentResponse, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	if err := auth.Authorize(subject, auth.ActionEnroll, auth.Target{}); err != nil {
		return nil, NewPermissionError(subject.UserID, req.CourseID, "enrollment", "create", denialReason(err))
	}

	course, err := s.repo.Course().GetByIDWithInstructor(ctx, req.CourseID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course: %w", err)
	}

	enrollment := &models.Enrollment{
		UserID:   subject.UserID,
		CourseID: req.CourseID,
	}
	if err := s.repo.Enrollment().Create(ctx, enrollment); err != nil {
		if repositories.IsDuplicateKeyError(err) {
			return nil, ErrAlreadyEnrolled
		}
		return nil, fmt.Errorf("failed to create enrollment: %w", err)
	}
	enrollment.Course = course

	s.logger.Info("Enrollment created",
		"enrollment_id", enrollment.ID,
		"user_id", subject.UserID,
		"course_id", req.CourseID)

	events.SafePublish(ctx, s.publisher, s.logger, events.TopicEnrollments, events.EnrollmentEvent{
		Event:        events.EventEnrollmentCreated,
		EnrollmentID: enrollment.ID,
		UserID:       subject.UserID,
		CourseID:     req.CourseID,
		OccurredAt:   time.Now().UTC(),
	})

	return buildEnrollmentResponse(enrollment), nil
}

func (s *enrollmentService) ListByUser(ctx context.Context, userID string) ([]*EnrollmentResponse, error) {
	enrollments, err := s.repo.Enrollment().GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list enrollments: %w", err)
	}

	responses := make([]*EnrollmentResponse, 0, len(enrollments))
	for _, enrollment := range enrollments {
		responses = append(responses, buildEnrollmentResponse(enrollment))
	}
	return responses, nil
}

// Unenroll removes an enrollment. Only the enrolled student may do it.
func (s *enrollmentService) Unenroll(ctx context.Context, enrollmentID string, subject auth.Subject) error {
	enrollment, err := s.repo.Enrollment().GetByID(ctx, enrollmentID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrEnrollmentNotFound
		}
		return fmt.Errorf("failed to get enrollment: %w", err)
	}

	if err := auth.Authorize(subject, auth.ActionUnenroll, auth.Target{OwnerID: enrollment.UserID}); err != nil {
		return NewPermissionError(subject.UserID, enrollmentID, "enrollment", "delete", denialReason(err))
	}

	if err := s.repo.Enrollment().Delete(ctx, enrollmentID); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrEnrollmentNotFound
		}
		return fmt.Errorf("failed to delete enrollment: %w", err)
	}

	s.logger.Info("Enrollment deleted", "enrollment_id", enrollmentID, "user_id", subject.UserID)

	events.SafePublish(ctx, s.publisher, s.logger, events.TopicEnrollments, events.EnrollmentEvent{
		Event:        events.EventEnrollmentDeleted,
		EnrollmentID: enrollmentID,
		UserID:       enrollment.UserID,
		CourseID:     enrollment.CourseID,
		OccurredAt:   time.Now().UTC(),
	})

	return nil
}

// Roster lists a course's enrolled students for its instructor.
func (s *enrollmentService) Roster(ctx context.Context, courseID string, subject auth.Subject) (*RosterResponse, error) {
	course, enrollments, err := s.loadRoster(ctx, courseID, subject)
	if err != nil {
		return nil, err
	}

	entries := make([]*RosterEntry, 0, len(enrollments))
	for _, enrollment := range enrollments {
		entry := &RosterEntry{
			EnrollmentID: enrollment.ID,
			UserID:       enrollment.UserID,
			EnrolledAt:   enrollment.CreatedAt.Format(time.RFC3339),
		}
		if enrollment.User != nil {
			entry.Name = enrollment.User.Name
			entry.Email = enrollment.User.Email
		}
		entries = append(entries, entry)
	}

	return &RosterResponse{
		CourseID: courseID,
		Title:    course.Title,
		Total:    int64(len(entries)),
		Students: entries,
	}, nil
}

// RosterExport renders the roster as an xlsx workbook. Returns the file
// bytes and a suggested filename.
func (s *enrollmentService) RosterExport(ctx context.Context, courseID string, subject auth.Subject) ([]byte, string, error) {
	course, enrollments, err := s.loadRoster(ctx, courseID, subject)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Roster"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{"Name", "Email", "Enrolled At"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, "", fmt.Errorf("failed to write header: %w", err)
		}
	}

	for row, enrollment := range enrollments {
		name, email := "", ""
		if enrollment.User != nil {
			name = enrollment.User.Name
			email = enrollment.User.Email
		}
		values := []interface{}{name, email, enrollment.CreatedAt.Format(time.RFC3339)}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, "", fmt.Errorf("failed to write row: %w", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to render workbook: %w", err)
	}

	filename := fmt.Sprintf("roster-%s.xlsx", course.ID)
	return buf.Bytes(), filename, nil
}

func (s *enrollmentService) loadRoster(ctx context.Context, courseID string, subject auth.Subject) (*models.Course, []*models.Enrollment, error) {
	course, err := s.repo.Course().GetByID(ctx, courseID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, nil, ErrCourseNotFound
		}
		return nil, nil, fmt.Errorf("failed to get course: %w", err)
	}

	if err := auth.Authorize(subject, auth.ActionViewRoster, auth.Target{OwnerID: course.InstructorID}); err != nil {
		return nil, nil, NewPermissionError(subject.UserID, courseID, "course", "roster", denialReason(err))
	}

	enrollments, err := s.repo.Enrollment().GetByCourse(ctx, courseID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list enrollments: %w", err)
	}
	return course, enrollments, nil
}

// buildEnrollmentResponse renders an enrollment. A deleted course leaves a
// placeholder so historical enrollments stay listable.
func buildEnrollmentResponse(enrollment *models.Enrollment) *EnrollmentResponse {
	course := &EnrolledCourse{
		ID:    enrollment.CourseID,
		Title: "Unknown",
	}
	if enrollment.Course != nil {
		course.Title = enrollment.Course.Title
		course.Description = enrollment.Course.Description
		if enrollment.Course.Instructor != nil {
			course.InstructorName = enrollment.Course.Instructor.Name
		}
	}

	return &EnrollmentResponse{
		ID:        enrollment.ID,
		CourseID:  enrollment.CourseID,
		Course:    course,
		CreatedAt: enrollment.CreatedAt.Format(time.RFC3339),
	}
}
