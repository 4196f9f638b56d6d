package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/EduFlow-2025/learning-service/internal/models"
	"github.com/EduFlow-2025/learning-service/internal/repositories"
)

type ProfilePostgreSQL struct {
	db *gorm.DB
}

func NewProfilePostgreSQL(db *gorm.DB) repositories.ProfileRepository {
	return &ProfilePostgreSQL{db: db}
}

func (p *ProfilePostgreSQL) Create(ctx context.Context, profile *models.Profile) error {
	if err := p.db.WithContext(ctx).Create(profile).Error; err != nil {
		return repositories.TranslateError(err)
	}
	return nil
}

func (p *ProfilePostgreSQL) GetByUserID(ctx context.Context, userID string) (*models.Profile, error) {
	var profile models.Profile
	err := p.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error
	if err != nil {
		return nil, repositories.TranslateError(err)
	}
	return &profile, nil
}

func (p *ProfilePostgreSQL) Update(ctx context.Context, profile *models.Profile) error {
	err := p.db.WithContext(ctx).Model(&models.Profile{}).
		Where("id = ?", profile.ID).
		Updates(map[string]interface{}{
			"bio":        profile.Bio,
			"avatar_url": profile.AvatarURL,
			"skills":     profile.Skills,
			"updated_at": profile.UpdatedAt,
		}).Error
	if err != nil {
		return repositories.TranslateError(err)
	}
	return nil
}
