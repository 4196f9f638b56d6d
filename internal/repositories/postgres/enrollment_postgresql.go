package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/EduFlow-2025/learning-service/internal/models"
	"github.com/EduFlow-2025/learning-service/internal/repositories"
)

type EnrollmentPostgreSQL struct {
	db *gorm.DB
}

func NewEnrollmentPostgreSQL(db *gorm.DB) repositories.EnrollmentRepository {
	return &EnrollmentPostgreSQL{db: db}
}

// Create relies on the composite unique index on (user_id, course_id); a
// second enrollment for the same pair comes back as ErrDuplicateKey.
func (e *EnrollmentPostgreSQL) Create(ctx context.Context, enrollment *models.Enrollment) error {
	if err := e.db.WithContext(ctx).Create(enrollment).Error; err != nil {
		return repositories.TranslateError(err)
	}
	return nil
}

func (e *EnrollmentPostgreSQL) GetByID(ctx context.Context, id string) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	err := e.db.WithContext(ctx).First(&enrollment, "id = ?", id).Error
	if err != nil {
		return nil, repositories.TranslateError(err)
	}
	return &enrollment, nil
}

// GetByUser loads the student's enrollments with a minimal course
// projection. A course deleted after enrollment leaves Course nil; the
// service layer renders a placeholder instead of failing.
func (e *EnrollmentPostgreSQL) GetByUser(ctx context.Context, userID string) ([]*models.Enrollment, error) {
	var enrollments []*models.Enrollment
	err := e.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Preload("Course", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "title", "description", "instructor_id")
		}).
		Preload("Course.Instructor", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name")
		}).
		Order("created_at DESC").
		Find(&enrollments).Error
	if err != nil {
		return nil, repositories.TranslateError(err)
	}
	return enrollments, nil
}

// GetByCourse loads a course's roster with the student records attached.
func (e *EnrollmentPostgreSQL) GetByCourse(ctx context.Context, courseID string) ([]*models.Enrollment, error) {
	var enrollments []*models.Enrollment
	err := e.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email")
		}).
		Order("created_at ASC").
		Find(&enrollments).Error
	if err != nil {
		return nil, repositories.TranslateError(err)
	}
	return enrollments, nil
}

func (e *EnrollmentPostgreSQL) Delete(ctx context.Context, id string) error {
	result := e.db.WithContext(ctx).Delete(&models.Enrollment{}, "id = ?", id)
	if result.Error != nil {
		return repositories.TranslateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (e *EnrollmentPostgreSQL) ExistsByUserAndCourse(ctx context.Context, userID, courseID string) (bool, error) {
	var count int64
	err := e.db.WithContext(ctx).Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	if err != nil {
		return false, repositories.TranslateError(err)
	}
	return count > 0, nil
}

func (e *EnrollmentPostgreSQL) CountByCourse(ctx context.Context, courseID string) (int64, error) {
	var count int64
	err := e.db.WithContext(ctx).Model(&models.Enrollment{}).
		Where("course_id = ?", courseID).
		Count(&count).Error
	if err != nil {
		return 0, repositories.TranslateError(err)
	}
	return count, nil
}
