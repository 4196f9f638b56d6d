package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Lesson belongs to one course. Listing is ordered by the Order field
// ascending, ties broken by insertion order (created_at).
type Lesson struct {
	ID       string `json:"id" gorm:"primaryKey;size:36"`
	Title    string `json:"title" gorm:"not null;size:200"`
	Content  string `json:"content" gorm:"not null;type:text"`
	CourseID string `json:"course_id" gorm:"not null;index;size:36"`
	Order    int    `json:"order" gorm:"column:sort_order;not null;default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Course *Course `json:"-" gorm:"foreignKey:CourseID"`
}

func (Lesson) TableName() string {
	return "lessons"
}

func (l *Lesson) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}
