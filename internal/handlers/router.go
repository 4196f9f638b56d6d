package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/EduFlow-2025/learning-service/internal/auth"
	"github.com/EduFlow-2025/learning-service/internal/services"
	"github.com/EduFlow-2025/learning-service/internal/utils"
)

type HandlerManager struct {
	authHandler       *AuthHandler
	courseHandler     *CourseHandler
	lessonHandler     *LessonHandler
	enrollmentHandler *EnrollmentHandler
	profileHandler    *ProfileHandler
	authMiddleware    *JWTAuthMiddleware
	serviceManager    services.ServiceManager
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	tokens *auth.TokenManager,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		authHandler:       NewAuthHandler(serviceManager.Auth(), logger),
		courseHandler:     NewCourseHandler(serviceManager.Course(), logger),
		lessonHandler:     NewLessonHandler(serviceManager.Lesson(), logger),
		enrollmentHandler: NewEnrollmentHandler(serviceManager.Enrollment(), logger),
		profileHandler:    NewProfileHandler(serviceManager.Profile(), logger),
		authMiddleware:    NewJWTAuthMiddleware(tokens),
		serviceManager:    serviceManager,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", hm.healthCheck)

	v1 := router.Group("/api/v1")

	// Public routes: registration, login, and catalog reads.
	{
		v1.POST("/auth/register", hm.authHandler.Register)
		v1.POST("/auth/login", hm.authHandler.Login)

		v1.GET("/courses", hm.courseHandler.ListCourses)
		v1.GET("/courses/:id", hm.courseHandler.GetCourse)
		v1.GET("/courses/:id/lessons", hm.lessonHandler.ListLessons)
	}

	// Authenticated routes.
	authed := v1.Group("")
	authed.Use(hm.authMiddleware.AuthMiddleware())
	{
		authed.GET("/auth/me", hm.authHandler.Me)

		courses := authed.Group("/courses")
		{
			courses.POST("", hm.courseHandler.CreateCourse)
			courses.GET("/mine", hm.courseHandler.ListMyCourses)
			courses.PUT("/:id", hm.courseHandler.UpdateCourse)
			courses.DELETE("/:id", hm.courseHandler.DeleteCourse)
			courses.POST("/:id/lessons", hm.lessonHandler.CreateLesson)
			courses.GET("/:id/roster", hm.enrollmentHandler.GetRoster)
			courses.GET("/:id/roster/export", hm.enrollmentHandler.ExportRoster)
		}

		lessons := authed.Group("/lessons")
		{
			lessons.PUT("/:id", hm.lessonHandler.UpdateLesson)
			lessons.DELETE("/:id", hm.lessonHandler.DeleteLesson)
		}

		enrollments := authed.Group("/enrollments")
		{
			enrollments.POST("", hm.enrollmentHandler.Enroll)
			enrollments.GET("/me", hm.enrollmentHandler.ListMyEnrollments)
			enrollments.DELETE("/:id", hm.enrollmentHandler.Unenroll)
		}

		profiles := authed.Group("/profiles")
		{
			profiles.GET("/me", hm.profileHandler.GetMyProfile)
			profiles.PUT("/me", hm.profileHandler.UpdateMyProfile)
		}
	}
}

func (hm *HandlerManager) healthCheck(c *gin.Context) {
	status := "healthy"
	code := http.StatusOK
	if err := hm.serviceManager.HealthCheck(c.Request.Context()); err != nil {
		status = "unhealthy"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "learning-service",
	})
}
