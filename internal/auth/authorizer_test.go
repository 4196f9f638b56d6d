package auth

import (
	"errors"
	"testing"

	"github.com/EduFlow-2025/learning-service/internal/models"
)

func TestAuthorize(t *testing.T) {
	instructorA := Subject{UserID: "inst-a", Role: models.RoleInstructor}
	instructorB := Subject{UserID: "inst-b", Role: models.RoleInstructor}
	student := Subject{UserID: "stud-1", Role: models.RoleStudent}

	tests := []struct {
		name    string
		subject Subject
		action  Action
		target  Target
		allowed bool
	}{
		{name: "instructor creates course", subject: instructorA, action: ActionCreateCourse, allowed: true},
		{name: "student cannot create course", subject: student, action: ActionCreateCourse, allowed: false},

		{name: "owner updates course", subject: instructorA, action: ActionUpdateCourse, target: Target{OwnerID: "inst-a"}, allowed: true},
		{name: "other instructor cannot update course", subject: instructorB, action: ActionUpdateCourse, target: Target{OwnerID: "inst-a"}, allowed: false},
		{name: "student cannot update course", subject: student, action: ActionUpdateCourse, target: Target{OwnerID: "inst-a"}, allowed: false},

		{name: "owner deletes course", subject: instructorA, action: ActionDeleteCourse, target: Target{OwnerID: "inst-a"}, allowed: true},
		{name: "other instructor cannot delete course", subject: instructorB, action: ActionDeleteCourse, target: Target{OwnerID: "inst-a"}, allowed: false},

		{name: "course owner adds lesson", subject: instructorA, action: ActionCreateLesson, target: Target{OwnerID: "inst-a"}, allowed: true},
		{name: "other instructor cannot add lesson", subject: instructorB, action: ActionCreateLesson, target: Target{OwnerID: "inst-a"}, allowed: false},
		{name: "course owner updates lesson", subject: instructorA, action: ActionUpdateLesson, target: Target{OwnerID: "inst-a"}, allowed: true},
		{name: "course owner deletes lesson", subject: instructorA, action: ActionDeleteLesson, target: Target{OwnerID: "inst-a"}, allowed: true},
		{name: "student cannot delete lesson", subject: student, action: ActionDeleteLesson, target: Target{OwnerID: "inst-a"}, allowed: false},

		{name: "student enrolls", subject: student, action: ActionEnroll, allowed: true},
		{name: "instructor may enroll too", subject: instructorA, action: ActionEnroll, allowed: true},
		{name: "anonymous cannot enroll", subject: Subject{}, action: ActionEnroll, allowed: false},

		{name: "owner unenrolls", subject: student, action: ActionUnenroll, target: Target{OwnerID: "stud-1"}, allowed: true},
		{name: "other student cannot unenroll", subject: student, action: ActionUnenroll, target: Target{OwnerID: "stud-2"}, allowed: false},

		{name: "owner views roster", subject: instructorA, action: ActionViewRoster, target: Target{OwnerID: "inst-a"}, allowed: true},
		{name: "other instructor cannot view roster", subject: instructorB, action: ActionViewRoster, target: Target{OwnerID: "inst-a"}, allowed: false},

		{name: "unknown action denied", subject: instructorA, action: Action("bogus"), allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.subject, tt.action, tt.target)
			if tt.allowed && err != nil {
				t.Errorf("expected allow, got %v", err)
			}
			if !tt.allowed {
				var denial *DenialError
				if !errors.As(err, &denial) {
					t.Errorf("expected DenialError, got %v", err)
				}
			}
		})
	}
}
