package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/tribunal-app/tribunal/internal/config"
	"github.com/tribunal-app/tribunal/internal/features/auth"
	"github.com/tribunal-app/tribunal/internal/features/banlist"
	"github.com/tribunal-app/tribunal/internal/features/reports"
	"github.com/tribunal-app/tribunal/internal/pkg/notify"
	"github.com/tribunal-app/tribunal/internal/pkg/ratelimit"
)

// SetupRoutes registers all API routes under /api/v1
func SetupRoutes(
	router *gin.Engine,
	cfg *config.Config,
	store *reports.Store,
	dispatcher *notify.Dispatcher,
	syncer *banlist.Synchronizer,
	limiter *ratelimit.RateLimiter,
) {
	api := router.Group("/api/v1")

	reportsHandler := reports.NewHandler(store, dispatcher, syncer, cfg.ProfileURLBase)
	reports.RegisterRoutes(api, reportsHandler, limiter)

	authHandler := auth.NewHandler(auth.NewCredentialValidator(cfg.PasswordHashes), cfg)
	auth.RegisterRoutes(api, authHandler, cfg)
}
