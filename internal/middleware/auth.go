package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tribunal-app/tribunal/internal/config"
	"github.com/tribunal-app/tribunal/internal/pkg/response"
	"github.com/tribunal-app/tribunal/internal/pkg/token"
)

// Auth requires a valid moderator session token. It guards only the
// session-check endpoint; report reads and actions stay open in the
// current design.
func Auth(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header required")
			c.Abort()
			return
		}

		// Accept both "Bearer <token>" and a raw token value.
		fields := strings.Fields(authHeader)
		tokenString := authHeader
		if len(fields) == 2 && strings.EqualFold(fields[0], "Bearer") {
			tokenString = fields[1]
		}

		if err := token.Validate(tokenString, cfg.JWTSecret); err != nil {
			response.Unauthorized(c, "Invalid token")
			c.Abort()
			return
		}

		c.Next()
	}
}
