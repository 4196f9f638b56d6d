package validator

// Request DTOs for every mutating endpoint. Shape rules are declared once
// as struct tags and evaluated per request; the first violated field is
// what the error payload reports.

// RegisterRequest is the payload for user registration.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	Role     string `json:"role" validate:"omitempty,oneof=student instructor"`
}

// LoginRequest is the payload for credential login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// CourseCreateRequest is the payload for creating a course.
type CourseCreateRequest struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description string  `json:"description" validate:"required"`
	VideoURL    *string `json:"video_url" validate:"omitempty,url,max=500"`
}

// CourseUpdateRequest is the payload for updating a course. Update
// semantics are whole-record: title and description stay required.
type CourseUpdateRequest struct {
	Title       string  `json:"title" validate:"required,max=200"`
	Description string  `json:"description" validate:"required"`
	VideoURL    *string `json:"video_url" validate:"omitempty,url,max=500"`
}

// LessonCreateRequest is the payload for adding a lesson to a course.
type LessonCreateRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required"`
	Order   int    `json:"order" validate:"min=0"`
}

// LessonUpdateRequest is the payload for updating a lesson.
type LessonUpdateRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required"`
	Order   int    `json:"order" validate:"min=0"`
}

// EnrollRequest is the payload for enrolling in a course.
type EnrollRequest struct {
	CourseID string `json:"course_id" validate:"required,uuid4"`
}

// ProfileUpdateRequest is the payload for updating the caller's profile.
type ProfileUpdateRequest struct {
	Bio       string   `json:"bio" validate:"max=500"`
	AvatarURL string   `json:"avatar_url" validate:"omitempty,url,max=500"`
	Skills    []string `json:"skills" validate:"omitempty,max=50,dive,max=100"`
}
