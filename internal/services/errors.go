package services

import (
	"errors"
	"fmt"
)

// ===== NOT FOUND ERRORS =====

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrProfileNotFound    = errors.New("profile not found")
	ErrCourseNotFound     = errors.New("course not found")
	ErrLessonNotFound     = errors.New("lesson not found")
	ErrEnrollmentNotFound = errors.New("enrollment not found")
)

// ===== CONFLICT ERRORS =====

var (
	ErrEmailTaken      = errors.New("email is already registered")
	ErrAlreadyEnrolled = errors.New("already enrolled in this course")
)

// ===== AUTH ERRORS =====

// ErrInvalidCredentials is returned for both unknown email and wrong
// password so login failures do not reveal which accounts exist.
var ErrInvalidCredentials = errors.New("invalid email or password")

// PermissionError carries who tried what on which resource.
type PermissionError struct {
	UserID     string
	ResourceID string
	Resource   string
	Action     string
	Reason     string
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("user %s cannot %s %s %s: %s",
		e.UserID, e.Action, e.Resource, e.ResourceID, e.Reason)
}

func NewPermissionError(userID, resourceID, resource, action, reason string) *PermissionError {
	return &PermissionError{
		UserID:     userID,
		ResourceID: resourceID,
		Resource:   resource,
		Action:     action,
		Reason:     reason,
	}
}

// ===== CLASSIFICATION HELPERS =====

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrUserNotFound) ||
		errors.Is(err, ErrProfileNotFound) ||
		errors.Is(err, ErrCourseNotFound) ||
		errors.Is(err, ErrLessonNotFound) ||
		errors.Is(err, ErrEnrollmentNotFound)
}

func IsConflictError(err error) bool {
	return errors.Is(err, ErrEmailTaken) || errors.Is(err, ErrAlreadyEnrolled)
}

func IsPermissionError(err error) bool {
	var permErr *PermissionError
	return errors.As(err, &permErr)
}

func IsAuthError(err error) bool {
	return errors.Is(err, ErrInvalidCredentials)
}
