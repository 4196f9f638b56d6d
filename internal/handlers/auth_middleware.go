package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/EduFlow-2025/learning-service/internal/auth"
)

// JWTAuthMiddleware verifies bearer tokens and exposes the caller to the
// handlers below it.
type JWTAuthMiddleware struct {
	tokens *auth.TokenManager
}

func NewJWTAuthMiddleware(tokens *auth.TokenManager) *JWTAuthMiddleware {
	return &JWTAuthMiddleware{tokens: tokens}
}

// AuthMiddleware rejects requests without a valid token. It runs before
// any payload validation, so a bad token on a bad payload still reports
// 401, never 400.
func (m *JWTAuthMiddleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Authorization header required",
			})
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Authorization header must be a bearer token",
			})
			return
		}

		subject, err := m.tokens.Verify(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Invalid or expired token",
			})
			return
		}

		c.Set("user_id", subject.UserID)
		c.Set("user_role", string(subject.Role))
		c.Set("subject", *subject)

		c.Next()
	}
}

// subjectFrom returns the verified subject placed by AuthMiddleware.
func subjectFrom(c *gin.Context) (auth.Subject, bool) {
	value, exists := c.Get("subject")
	if !exists {
		return auth.Subject{}, false
	}
	subject, ok := value.(auth.Subject)
	return subject, ok
}
