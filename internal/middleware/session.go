package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"bioscrap/internal/pkg/jwt"
	"bioscrap/internal/pkg/response"
)

const (
	ContextSessionID   = "session_id"
	ContextSessionMode = "session_mode"
)

// SessionAuth resolves the bearer session token into the wizard session id.
func SessionAuth(tokens *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, http.StatusUnauthorized, "SESSION_REQUIRED", "Booking session token is required")
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			response.Error(c, http.StatusUnauthorized, "SESSION_INVALID", "Authorization header must be 'Bearer <token>'")
			c.Abort()
			return
		}

		claims, err := tokens.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "SESSION_INVALID", "Booking session token is invalid or expired")
			c.Abort()
			return
		}

		c.Set(ContextSessionID, claims.SessionID)
		c.Set(ContextSessionMode, claims.Mode)
		c.Next()
	}
}
