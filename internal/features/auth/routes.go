package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/tribunal-app/tribunal/internal/config"
	"github.com/tribunal-app/tribunal/internal/middleware"
)

// RegisterRoutes mounts session establishment and the session check. The
// credential validator gates the session only; data-read and action
// endpoints stay open in the current design.
func RegisterRoutes(router *gin.RouterGroup, handler *Handler, cfg *config.Config) {
	router.POST("/auth", handler.Authenticate)
	router.GET("/auth/session", middleware.Auth(cfg), handler.Session)
}
