package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"authservice/internal/adapter/http/helper"
	"authservice/internal/core/port"
	"authservice/pkg/tracing"
)

// UserUUIDKey is where the verified token subject lands in the gin context.
const UserUUIDKey = "x-user-uuid"

// JwtAuthMiddleware guards a route group with access token verification.
// The claimed subject is never trusted without a valid signature and a
// non-expired timestamp.
func JwtAuthMiddleware(tokens port.TokenService, metrics *tracing.AppMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		bearer := c.GetHeader("Authorization")

		if bearer == "" {
			helper.SendUnauthorizedError(c, "Unauthorized request")
			c.Abort()
			return
		}

		if !strings.HasPrefix(bearer, "Bearer ") {
			helper.SendUnauthorizedError(c, "Invalid authorization format")
			c.Abort()
			return
		}

		userUUID, err := tokens.Verify(bearer[len("Bearer "):])

		if err != nil {
			if metrics != nil {
				metrics.RecordTokenOperation(c.Request.Context(), "verify", "invalid")
			}

			helper.SendUnauthorizedError(c, "Invalid or expired access token")
			c.Abort()
			return
		}

		if metrics != nil {
			metrics.RecordTokenOperation(c.Request.Context(), "verify", "success")
		}

		c.Set(UserUUIDKey, userUUID)
		c.Next()
	}
}
