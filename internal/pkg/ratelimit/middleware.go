package ratelimit

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tribunal-app/tribunal/internal/pkg/response"
)

// Middleware throttles requests per client IP. Denied requests get a 429
// with Retry-After and X-RateLimit headers; admitted ones pass through
// with the remaining budget advertised.
func Middleware(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()

		if !limiter.Allow(key) {
			resetTime := limiter.ResetTime(key)

			c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.Limit()))
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("X-RateLimit-Reset", resetTime.Format(time.RFC3339))
			c.Header("Retry-After", strconv.Itoa(int(time.Until(resetTime).Seconds())+1))

			response.TooManyRequests(c, "Rate limit exceeded. Try again later.", "RATE_LIMITED")
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.Limit()))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(limiter.Remaining(key)))

		c.Next()
	}
}
