package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Enrollment joins a student to a course. The composite unique index makes
// duplicate enrollment a store-level conflict rather than an application
// check, so concurrent enrolls cannot race past each other.
type Enrollment struct {
	ID       string `json:"id" gorm:"primaryKey;size:36"`
	UserID   string `json:"user_id" gorm:"not null;uniqueIndex:idx_enrollments_user_course;size:36"`
	CourseID string `json:"course_id" gorm:"not null;uniqueIndex:idx_enrollments_user_course;size:36"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations. Course may resolve to nil after the course is deleted;
	// readers render a placeholder instead of failing.
	User   *User   `json:"-" gorm:"foreignKey:UserID"`
	Course *Course `json:"course,omitempty" gorm:"foreignKey:CourseID"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

func (e *Enrollment) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return nil
}
