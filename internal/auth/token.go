package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/EduFlow-2025/learning-service/internal/models"
)

// ErrInvalidToken covers every verification failure: bad signature,
// malformed token, expiry. Callers must not be able to distinguish them.
var ErrInvalidToken = errors.New("invalid or expired token")

// Subject is the authenticated identity derived from a verified token. The
// role is the one embedded at issue time; it is not re-read from the store
// on each request.
type Subject struct {
	UserID string
	Role   models.UserRole
}

// Claims carried by issued tokens.
type Claims struct {
	Role models.UserRole `json:"role"`
	jwt.RegisteredClaims
}

// TokenConfig holds signing configuration.
type TokenConfig struct {
	Secret string
	Expiry time.Duration
	Issuer string
}

// TokenManager issues and verifies HS256-signed identity tokens. The
// signing secret is process-resident; verification never touches an
// external system.
type TokenManager struct {
	config TokenConfig
}

func NewTokenManager(config TokenConfig) *TokenManager {
	if config.Expiry <= 0 {
		config.Expiry = 24 * time.Hour
	}
	return &TokenManager{config: config}
}

// Issue produces a signed token encoding the subject id, role, issue time
// and expiry.
func (tm *TokenManager) Issue(userID string, role models.UserRole) (string, error) {
	now := time.Now()

	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.config.Expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    tm.config.Issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(tm.config.Secret))
}

// Verify checks signature and expiry and returns the decoded subject.
// Every failure mode returns ErrInvalidToken; a bad token is an
// authentication failure, never a panic.
func (tm *TokenManager) Verify(tokenString string) (*Subject, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(tm.config.Secret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return &Subject{UserID: claims.Subject, Role: claims.Role}, nil
}
