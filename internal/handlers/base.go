package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/EduFlow-2025/learning-service/internal/services"
	"github.com/EduFlow-2025/learning-service/internal/utils"
	"github.com/EduFlow-2025/learning-service/internal/validator"
)

// BaseHandler carries shared helpers for all HTTP handlers.
type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

type SuccessResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.GetLogger(c, h.logger).Info(msg, args...)
}

func (h *BaseHandler) LogError(c *gin.Context, msg string, err error, args ...any) {
	utils.GetLogger(c, h.logger).Error(msg, append([]any{"error", err}, args...)...)
}

// currentUserID returns the authenticated caller set by the auth
// middleware. ok is false on routes that skipped authentication.
func currentUserID(c *gin.Context) (string, bool) {
	value, exists := c.Get("user_id")
	if !exists {
		return "", false
	}
	userID, ok := value.(string)
	return userID, ok && userID != ""
}

// handleServiceError maps the service error taxonomy to HTTP statuses.
// Anything unclassified is logged and reported as an internal error
// without leaking its message.
func (h *BaseHandler) handleServiceError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		first := verrs.First()
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: first.Field + " " + first.Message,
			Details: verrs,
		})
		return
	}

	switch {
	case services.IsAuthError(err):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: err.Error()})
	case services.IsPermissionError(err):
		c.JSON(http.StatusForbidden, ErrorResponse{Message: "You do not have permission to perform this action"})
	case services.IsNotFoundError(err):
		c.JSON(http.StatusNotFound, ErrorResponse{Message: err.Error()})
	case services.IsConflictError(err):
		c.JSON(http.StatusConflict, ErrorResponse{Message: err.Error()})
	default:
		h.LogError(c, "Unhandled service error", err, "path", c.Request.URL.Path)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Internal server error"})
	}
}
