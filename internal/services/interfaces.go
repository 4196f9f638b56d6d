package services

import (
	"context"

	"github.com/EduFlow-2025/learning-service/internal/auth"
	"github.com/EduFlow-2025/learning-service/internal/models"
	"github.com/EduFlow-2025/learning-service/internal/validator"
)

// ===== REQUEST/RESPONSE DTOs =====

// Use validator request types
type RegisterRequest = validator.RegisterRequest
type LoginRequest = validator.LoginRequest
type CreateCourseRequest = validator.CourseCreateRequest
type UpdateCourseRequest = validator.CourseUpdateRequest
type CreateLessonRequest = validator.LessonCreateRequest
type UpdateLessonRequest = validator.LessonUpdateRequest
type EnrollRequest = validator.EnrollRequest
type UpdateProfileRequest = validator.ProfileUpdateRequest

type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

type CourseResponse struct {
	*models.Course
	Lessons   []*models.Lesson `json:"lessons,omitempty"`
	CanEdit   bool             `json:"can_edit"`
	CanDelete bool             `json:"can_delete"`
}

type CourseListResponse struct {
	Courses []*CourseResponse `json:"courses"`
	Total   int64             `json:"total"`
	Page    int               `json:"page"`
	Size    int               `json:"size"`
}

type CourseFilters struct {
	Page int `json:"page"`
	Size int `json:"size"`
}

// EnrolledCourse is the projection rendered inside an enrollment. A
// deleted course leaves Title as "Unknown" with the remaining fields
// empty rather than failing the listing.
type EnrolledCourse struct {
	ID             string `json:"id"`
	Title          string `json:"title"`
	Description    string `json:"description,omitempty"`
	InstructorName string `json:"instructor_name,omitempty"`
}

type EnrollmentResponse struct {
	ID        string          `json:"id"`
	CourseID  string          `json:"course_id"`
	Course    *EnrolledCourse `json:"course"`
	CreatedAt string          `json:"enrolled_at"`
}

// RosterEntry is one student row of a course roster.
type RosterEntry struct {
	EnrollmentID string `json:"enrollment_id"`
	UserID       string `json:"user_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	EnrolledAt   string `json:"enrolled_at"`
}

type RosterResponse struct {
	CourseID string         `json:"course_id"`
	Title    string         `json:"title"`
	Total    int64          `json:"total"`
	Students []*RosterEntry `json:"students"`
}

// ===== SERVICE INTERFACES =====

type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	Me(ctx context.Context, userID string) (*models.User, error)
}

type CourseService interface {
	Create(ctx context.Context, req *CreateCourseRequest, subject auth.Subject) (*CourseResponse, error)
	GetByID(ctx context.Context, id string, userID string) (*CourseResponse, error)
	Update(ctx context.Context, id string, req *UpdateCourseRequest, subject auth.Subject) (*CourseResponse, error)
	Delete(ctx context.Context, id string, subject auth.Subject) error
	List(ctx context.Context, filters CourseFilters, userID string) (*CourseListResponse, error)
	ListByInstructor(ctx context.Context, instructorID string, filters CourseFilters) (*CourseListResponse, error)
}

type LessonService interface {
	Create(ctx context.Context, courseID string, req *CreateLessonRequest, subject auth.Subject) (*models.Lesson, error)
	GetByCourse(ctx context.Context, courseID string) ([]*models.Lesson, error)
	Update(ctx context.Context, id string, req *UpdateLessonRequest, subject auth.Subject) (*models.Lesson, error)
	Delete(ctx context.Context, id string, subject auth.Subject) error
}

type EnrollmentService interface {
	Enroll(ctx context.Context, req *EnrollRequest, subject auth.Subject) (*EnrollmentResponse, error)
	ListByUser(ctx context.Context, userID string) ([]*EnrollmentResponse, error)
	Unenroll(ctx context.Context, enrollmentID string, subject auth.Subject) error
	Roster(ctx context.Context, courseID string, subject auth.Subject) (*RosterResponse, error)
	RosterExport(ctx context.Context, courseID string, subject auth.Subject) ([]byte, string, error)
}

type ProfileService interface {
	Get(ctx context.Context, userID string) (*models.Profile, error)
	Update(ctx context.Context, userID string, req *UpdateProfileRequest) (*models.Profile, error)
}

// ===== SERVICE MANAGER =====

// ServiceManager provides access to all services with lifecycle management.
type ServiceManager interface {
	Auth() AuthService
	Course() CourseService
	Lesson() LessonService
	Enrollment() EnrollmentService
	Profile() ProfileService

	Initialize(ctx context.Context) error
	Shutdown(ctx context.Context) error
	HealthCheck(ctx context.Context) error
}
