package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Course belongs to exactly one instructor. Mutation and deletion are
// restricted to that instructor; deleting a course removes its lessons.
type Course struct {
	ID           string  `json:"id" gorm:"primaryKey;size:36"`
	Title        string  `json:"title" gorm:"not null;size:200"`
	Description  string  `json:"description" gorm:"not null;type:text"`
	VideoURL     *string `json:"video_url,omitempty" gorm:"size:500"`
	InstructorID string  `json:"instructor_id" gorm:"not null;index;size:36"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Instructor *User    `json:"instructor,omitempty" gorm:"foreignKey:InstructorID"`
	Lessons    []Lesson `json:"lessons,omitempty" gorm:"foreignKey:CourseID"`
}

func (Course) TableName() string {
	return "courses"
}

func (c *Course) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}
