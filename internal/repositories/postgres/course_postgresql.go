package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/EduFlow-2025/learning-service/internal/cache"
	"github.com/EduFlow-2025/learning-service/internal/models"
	"github.com/EduFlow-2025/learning-service/internal/repositories"
)

type CoursePostgreSQL struct {
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

func NewCoursePostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.CourseRepository {
	return &CoursePostgreSQL{
		db:           db,
		cacheManager: cacheManager,
	}
}

func (c *CoursePostgreSQL) Create(ctx context.Context, course *models.Course) error {
	if err := c.db.WithContext(ctx).Create(course).Error; err != nil {
		return repositories.TranslateError(err)
	}
	cache.InvalidateCourseCache(ctx, c.cacheManager, course.ID, course.InstructorID)
	return nil
}

func (c *CoursePostgreSQL) GetByID(ctx context.Context, id string) (*models.Course, error) {
	var course models.Course
	err := c.db.WithContext(ctx).First(&course, "id = ?", id).Error
	if err != nil {
		return nil, repositories.TranslateError(err)
	}
	return &course, nil
}

// GetByIDWithInstructor resolves the instructor reference with caching. A
// missing instructor leaves the relation nil; the read still succeeds.
func (c *CoursePostgreSQL) GetByIDWithInstructor(ctx context.Context, id string) (*models.Course, error) {
	cacheKey := fmt.Sprintf("details:%s", id)
	var course models.Course

	err := c.cacheManager.Course.CacheOrExecute(ctx, cacheKey, &course, cache.CourseCacheConfig.TTL, func() (interface{}, error) {
		var dbCourse models.Course
		err := c.db.WithContext(ctx).
			Preload("Instructor", func(db *gorm.DB) *gorm.DB {
				return db.Select("id", "name", "email")
			}).
			First(&dbCourse, "id = ?", id).Error
		if err != nil {
			return nil, repositories.TranslateError(err)
		}
		return &dbCourse, nil
	})
	if err != nil {
		return nil, err
	}

	return &course, nil
}

func (c *CoursePostgreSQL) Update(ctx context.Context, course *models.Course) error {
	err := c.db.WithContext(ctx).Model(&models.Course{}).
		Where("id = ?", course.ID).
		Updates(map[string]interface{}{
			"title":       course.Title,
			"description": course.Description,
			"video_url":   course.VideoURL,
			"updated_at":  course.UpdatedAt,
		}).Error
	if err != nil {
		return repositories.TranslateError(err)
	}
	cache.InvalidateCourseCache(ctx, c.cacheManager, course.ID, course.InstructorID)
	return nil
}

func (c *CoursePostgreSQL) Delete(ctx context.Context, id string) error {
	// Resolve the owner first so the instructor's cached list is dropped.
	var course models.Course
	if err := c.db.WithContext(ctx).Select("id", "instructor_id").First(&course, "id = ?", id).Error; err != nil {
		return repositories.TranslateError(err)
	}

	result := c.db.WithContext(ctx).Delete(&models.Course{}, "id = ?", id)
	if result.Error != nil {
		return repositories.TranslateError(result.Error)
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}

	cache.InvalidateCourseCache(ctx, c.cacheManager, id, course.InstructorID)
	return nil
}

func (c *CoursePostgreSQL) List(ctx context.Context, filters repositories.CourseFilters) ([]*models.Course, int64, error) {
	query := c.db.WithContext(ctx).Model(&models.Course{})

	if filters.InstructorID != nil {
		query = query.Where("instructor_id = ?", *filters.InstructorID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count courses: %w", err)
	}

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var courses []*models.Course
	err := query.
		Preload("Instructor", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email")
		}).
		Order("created_at DESC").
		Find(&courses).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list courses: %w", err)
	}

	return courses, total, nil
}

// GetByInstructor is the server-side "my courses" query; only the
// requesting instructor's rows ever leave the store.
func (c *CoursePostgreSQL) GetByInstructor(ctx context.Context, instructorID string, filters repositories.CourseFilters) ([]*models.Course, int64, error) {
	filters.InstructorID = &instructorID
	return c.List(ctx, filters)
}
