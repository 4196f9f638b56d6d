package cache

import (
	"context"
	"fmt"
	"log/slog"
)

// SafeInvalidatePattern invalidates a cache pattern, logging failures
// instead of surfacing them to the request path.
func SafeInvalidatePattern(ctx context.Context, helper *CacheHelper, pattern string) {
	if err := helper.InvalidatePattern(ctx, pattern); err != nil {
		slog.ErrorContext(ctx, "Failed to invalidate cache pattern",
			"error", err,
			"pattern", pattern)
	}
}

// SafeDelete deletes cache keys, logging failures.
func SafeDelete(ctx context.Context, helper *CacheHelper, keys ...string) {
	if err := helper.Delete(ctx, keys...); err != nil {
		slog.ErrorContext(ctx, "Failed to delete cache keys",
			"error", err,
			"keys", keys)
	}
}

// InvalidateCourseCache drops every cached view of a course after a
// mutation, including the public list and the instructor's own list.
func InvalidateCourseCache(ctx context.Context, cm *CacheManager, courseID, instructorID string) {
	SafeDelete(ctx, cm.Course,
		fmt.Sprintf("id:%s", courseID),
		fmt.Sprintf("details:%s", courseID))

	SafeInvalidatePattern(ctx, cm.Course, fmt.Sprintf("instructor:%s:*", instructorID))
	SafeInvalidatePattern(ctx, cm.Course, "list:*")
}

// InvalidateLessonCache drops the cached lesson list for a course.
func InvalidateLessonCache(ctx context.Context, cm *CacheManager, courseID string) {
	SafeDelete(ctx, cm.Lesson, fmt.Sprintf("course:%s", courseID))
}
