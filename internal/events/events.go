package events

import "time"

// Topic names. One topic per entity, event kind in the payload.
const (
	TopicUsers       = "learning.users"
	TopicCourses     = "learning.courses"
	TopicEnrollments = "learning.enrollments"
)

// Event kinds carried in the payload.
const (
	EventUserRegistered    = "user.registered"
	EventCourseCreated     = "course.created"
	EventCourseDeleted     = "course.deleted"
	EventEnrollmentCreated = "enrollment.created"
	EventEnrollmentDeleted = "enrollment.deleted"
)

// UserRegisteredEvent is published after a successful registration.
type UserRegisteredEvent struct {
	Event      string    `json:"event"`
	UserID     string    `json:"user_id"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	OccurredAt time.Time `json:"occurred_at"`
}

// CourseEvent is published when a course is created or deleted. On
// deletion LessonCount records how many lessons went with it.
type CourseEvent struct {
	Event        string    `json:"event"`
	CourseID     string    `json:"course_id"`
	InstructorID string    `json:"instructor_id"`
	Title        string    `json:"title"`
	LessonCount  int       `json:"lesson_count,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// EnrollmentEvent is published when a student enrolls or unenrolls.
type EnrollmentEvent struct {
	Event        string    `json:"event"`
	EnrollmentID string    `json:"enrollment_id"`
	UserID       string    `json:"user_id"`
	CourseID     string    `json:"course_id"`
	OccurredAt   time.Time `json:"occurred_at"`
}
