package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/EduFlow-2025/learning-service/internal/cache"
	"github.com/EduFlow-2025/learning-service/internal/models"
	"github.com/EduFlow-2025/learning-service/internal/repositories"
)

type LessonPostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewLessonPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.LessonRepository {
	return &LessonPostgreSQL{
		db:           db,
		cacheManager: cacheManager,
	}
}

func (l *LessonPostgreSQL) Create(ctx context.Context, lesson *models.Lesson) error {
	if err := l.db.WithContext(ctx).Create(lesson).Error; err != nil {
		return repositories.TranslateError(err)
	}
	cache.InvalidateLessonCache(ctx, l.cacheManager, lesson.CourseID)
	return nil
}

func (l *LessonPostgreSQL) GetByID(ctx context.Context, id string) (*models.Lesson, error) {
	var lesson models.Lesson
	err := l.db.WithContext(ctx).First(&lesson, "id = ?", id).Error
	if err != nil {
		return nil, repositories.TranslateError(err)
	}
	return &lesson, nil
}

func (l *LessonPostgreSQL) Update(ctx context.Context, lesson *models.Lesson) error {
	err := l.db.WithContext(ctx).Model(&models.Lesson{}).
		Where("id = ?", lesson.ID).
		Updates(map[string]interface{}{
			"title":      lesson.Title,
			"content":    lesson.Content,
			"sort_order": lesson.Order,
			"updated_at": lesson.UpdatedAt,
		}).Error
	if err != nil {
		return repositories.TranslateError(err)
	}
	cache.InvalidateLessonCache(ctx, l.cacheManager, lesson.CourseID)
	return nil
}

func (l *LessonPostgreSQL) Delete(ctx context.Context, id string) error {
	var lesson models.Lesson
	if err := l.db.WithContext(ctx).Select("id", "course_id").First(&lesson, "id = ?", id).Error; err != nil {
		return repositories.TranslateError(err)
	}

	result := l.db.WithContext(ctx).Delete(&models.Lesson{}, "id = ?", id)
	if result.Error != nil {
		return repositories.TranslateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}

	cache.InvalidateLessonCache(ctx, l.cacheManager, lesson.CourseID)
	return nil
}

// GetByCourse returns the course's lessons ordered by sort order
// ascending, ties broken by insertion order.
func (l *LessonPostgreSQL) GetByCourse(ctx context.Context, courseID string) ([]*models.Lesson, error) {
	cacheKey := fmt.Sprintf("course:%s", courseID)
	var lessons []*models.Lesson

	err := l.cacheManager.Lesson.CacheOrExecute(ctx, cacheKey, &lessons, cache.LessonCacheConfig.TTL, func() (interface{}, error) {
		var dbLessons []*models.Lesson
		err := l.db.WithContext(ctx).
			Where("course_id = ?", courseID).
			Order("sort_order ASC, created_at ASC").
			Find(&dbLessons).Error
		if err != nil {
			return nil, fmt.Errorf("failed to get lessons by course: %w", err)
		}
		return dbLessons, nil
	})
	if err != nil {
		return nil, err
	}

	return lessons, nil
}

// DeleteByCourse removes every lesson of a course. It is called inside the
// course-deletion transaction so the cascade is atomic.
func (l *LessonPostgreSQL) DeleteByCourse(ctx context.Context, courseID string) error {
	err := l.db.WithContext(ctx).Delete(&models.Lesson{}, "course_id = ?", courseID).Error
	if err != nil {
		return repositories.TranslateError(err)
	}
	cache.InvalidateLessonCache(ctx, l.cacheManager, courseID)
	return nil
}
