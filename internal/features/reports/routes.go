package reports

import (
	"github.com/gin-gonic/gin"

	"github.com/tribunal-app/tribunal/internal/pkg/ratelimit"
)

// RegisterRoutes mounts the report lifecycle endpoints. Only submission is
// rate limited; listing and actioning are unauthenticated in the current
// design.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler, limiter *ratelimit.RateLimiter) {
	router.POST("/reports", ratelimit.Middleware(limiter), handler.Submit)
	router.GET("/reports", handler.List)
	router.POST("/reports/action", handler.Action)
}
