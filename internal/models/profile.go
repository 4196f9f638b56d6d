package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const DefaultAvatarURL = "https://via.placeholder.com/150"

// Profile holds the public-facing part of an account. Exactly one profile
// exists per user, created together with the user at registration.
type Profile struct {
	ID     string `json:"id" gorm:"primaryKey;size:36"`
	UserID string `json:"user_id" gorm:"uniqueIndex;not null;size:36"`

	Bio       string         `json:"bio" gorm:"size:500"`
	AvatarURL string         `json:"avatar_url" gorm:"size:500"`
	Skills    datatypes.JSON `json:"skills" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (Profile) TableName() string {
	return "profiles"
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.AvatarURL == "" {
		p.AvatarURL = DefaultAvatarURL
	}
	if p.Skills == nil {
		p.Skills = datatypes.JSON([]byte("[]"))
	}
	return nil
}
