package auth

import (
	"fmt"

	"github.com/EduFlow-2025/learning-service/internal/models"
)

// Action names a guarded operation on an entity.
type Action string

const (
	ActionCreateCourse Action = "course:create"
	ActionUpdateCourse Action = "course:update"
	ActionDeleteCourse Action = "course:delete"
	ActionViewRoster   Action = "course:roster"
	ActionCreateLesson Action = "lesson:create"
	ActionUpdateLesson Action = "lesson:update"
	ActionDeleteLesson Action = "lesson:delete"
	ActionEnroll       Action = "enrollment:create"
	ActionUnenroll     Action = "enrollment:delete"
)

// Target identifies the entity an action operates on. OwnerID is the user
// the entity belongs to: the instructor for courses and lessons (via the
// parent course), the enrolled student for enrollments. It is empty for
// create-course and enroll, which have no existing target.
type Target struct {
	OwnerID string
}

// DenialError is a deny decision. It is distinct from not-found: callers
// resolve the target first, so a denial always refers to an entity that
// exists.
type DenialError struct {
	Action Action
	Reason string
}

func (e *DenialError) Error() string {
	return fmt.Sprintf("denied %s: %s", e.Action, e.Reason)
}

func deny(action Action, reason string) error {
	return &DenialError{Action: action, Reason: reason}
}

// Authorize decides whether subject may perform action on target. Pure
// function of its arguments; no I/O. Lesson actions pass the parent
// course's owner as the target owner.
func Authorize(subject Subject, action Action, target Target) error {
	switch action {
	case ActionCreateCourse:
		if subject.Role != models.RoleInstructor {
			return deny(action, "requires instructor role")
		}
		return nil

	case ActionUpdateCourse, ActionDeleteCourse, ActionViewRoster,
		ActionCreateLesson, ActionUpdateLesson, ActionDeleteLesson:
		if subject.Role != models.RoleInstructor {
			return deny(action, "requires instructor role")
		}
		if subject.UserID != target.OwnerID {
			return deny(action, "not the owning instructor")
		}
		return nil

	case ActionEnroll:
		// Any authenticated subject may enroll; role is not checked here.
		if subject.UserID == "" {
			return deny(action, "unauthenticated subject")
		}
		return nil

	case ActionUnenroll:
		if subject.UserID != target.OwnerID {
			return deny(action, "not the enrolled student")
		}
		return nil

	default:
		return deny(action, "unknown action")
	}
}
