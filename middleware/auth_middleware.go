package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nassimidr/Emall/apperrors"
	"github.com/nassimidr/Emall/services"
)

const (
	UserIDKey = "userId"
	EmailKey  = "userEmail"
	RoleKey   = "userRole"
)

// Auth verifies the bearer token and attaches the caller's identity to the
// request context. Missing, expired and malformed tokens each answer with
// their own error kind.
func Auth(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			apperrors.Abort(c, apperrors.ErrUnauthenticated)
			return
		}

		claims, err := tokens.Validate(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			apperrors.Abort(c, err)
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(EmailKey, claims.Email)
		c.Set(RoleKey, claims.Role)
		c.Next()
	}
}

// RequireRole allows the request through only when the authenticated role
// is one of the given roles. Must run after Auth.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(RoleKey)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}
		apperrors.Abort(c, apperrors.ErrForbidden)
	}
}

// GetUserID returns the authenticated user's ID from the context.
func GetUserID(c *gin.Context) (string, error) {
	if id := c.GetString(UserIDKey); id != "" {
		return id, nil
	}
	return "", errors.New("user ID not found in context")
}
