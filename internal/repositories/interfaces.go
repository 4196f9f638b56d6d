package repositories

import (
	"context"

	"github.com/EduFlow-2025/learning-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type CourseFilters struct {
	InstructorID *string `json:"instructor_id"`
	Limit        int     `json:"limit"`
	Offset       int     `json:"offset"`
}

// ===== PER-ENTITY INTERFACES =====

// UserRepository owns account records. Create relies on the store's unique
// index on email; callers detect the conflict with IsDuplicateKeyError.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

type ProfileRepository interface {
	Create(ctx context.Context, profile *models.Profile) error
	GetByUserID(ctx context.Context, userID string) (*models.Profile, error)
	Update(ctx context.Context, profile *models.Profile) error
}

type CourseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	GetByID(ctx context.Context, id string) (*models.Course, error)
	// GetByIDWithInstructor resolves the instructor reference; a deleted
	// instructor leaves the relation nil rather than failing the read.
	GetByIDWithInstructor(ctx context.Context, id string) (*models.Course, error)
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filters CourseFilters) ([]*models.Course, int64, error)
	GetByInstructor(ctx context.Context, instructorID string, filters CourseFilters) ([]*models.Course, int64, error)
}

type LessonRepository interface {
	Create(ctx context.Context, lesson *models.Lesson) error
	GetByID(ctx context.Context, id string) (*models.Lesson, error)
	Update(ctx context.Context, lesson *models.Lesson) error
	Delete(ctx context.Context, id string) error
	// GetByCourse returns lessons ordered by sort order ascending, ties
	// broken by insertion order.
	GetByCourse(ctx context.Context, courseID string) ([]*models.Lesson, error)
	DeleteByCourse(ctx context.Context, courseID string) error
}

// EnrollmentRepository owns the student/course join. Create relies on the
// composite unique index on (user_id, course_id).
type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *models.Enrollment) error
	GetByID(ctx context.Context, id string) (*models.Enrollment, error)
	// GetByUser joins each enrollment with a minimal course projection
	// (title, description, instructor reference). Enrollments whose course
	// has been deleted keep a nil course.
	GetByUser(ctx context.Context, userID string) ([]*models.Enrollment, error)
	GetByCourse(ctx context.Context, courseID string) ([]*models.Enrollment, error)
	Delete(ctx context.Context, id string) error
	ExistsByUserAndCourse(ctx context.Context, userID, courseID string) (bool, error)
	CountByCourse(ctx context.Context, courseID string) (int64, error)
}
