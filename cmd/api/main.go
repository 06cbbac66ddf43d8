// @title Tribunal API
// @version 1.0
// @description Abuse-report intake and moderation API
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer <token>"
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	docs "github.com/tribunal-app/tribunal/docs"
	"github.com/tribunal-app/tribunal/internal/config"
	"github.com/tribunal-app/tribunal/internal/database"
	"github.com/tribunal-app/tribunal/internal/features/banlist"
	"github.com/tribunal-app/tribunal/internal/features/reports"
	"github.com/tribunal-app/tribunal/internal/middleware"
	"github.com/tribunal-app/tribunal/internal/pkg/docstore"
	"github.com/tribunal-app/tribunal/internal/pkg/logger"
	"github.com/tribunal-app/tribunal/internal/pkg/notify"
	"github.com/tribunal-app/tribunal/internal/pkg/ratelimit"
	"github.com/tribunal-app/tribunal/internal/routes"
)

func main() {
	cfg := config.Load()

	appLog := logger.New("tribunal", logger.INFO)
	if cfg.AppEnv == "development" {
		appLog.SetLevel(logger.DEBUG)
	}

	// Configure Swagger metadata at runtime
	docs.SwaggerInfo.Title = "Tribunal API"
	docs.SwaggerInfo.Description = "Abuse-report intake and moderation API"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = "localhost:" + cfg.Port
	docs.SwaggerInfo.BasePath = "/api/v1"
	docs.SwaggerInfo.Schemes = []string{"http"}

	// The report store is in-memory by design: restarting the process
	// discards all pending and actioned reports.
	store := reports.NewStore()

	dispatcher := notify.New(cfg.SubmitWebhookURL, cfg.ActionWebhookURL, appLog.Named("notify"))

	banStore, mongoDB := buildBanStore(cfg, appLog)
	if mongoDB != nil {
		defer mongoDB.Disconnect(context.Background())
	}
	syncer := banlist.New(banStore, cfg.BanlistPath, cfg.BanlistEnabled, appLog.Named("banlist"))

	limiter := ratelimit.New(cfg.RateLimitMax, cfg.RateLimitWindow)
	limiter.StartCleanup(5 * time.Minute)

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(cfg.FrontendURL))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Unix(),
		})
	})

	router.GET(
		"/swagger/*any",
		ginSwagger.WrapHandler(
			swaggerFiles.Handler,
			ginSwagger.URL("/swagger/doc.json"),
			ginSwagger.DefaultModelsExpandDepth(-1),
			ginSwagger.DocExpansion("none"),
		),
	)

	routes.SetupRoutes(router, cfg, store, dispatcher, syncer, limiter)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		appLog.Info("Server starting on port %s", cfg.Port)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server:", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLog.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	// Let in-flight webhook deliveries and ban-list commits finish.
	dispatcher.Wait()
	syncer.Wait()

	appLog.Info("Server exited")
}

// buildBanStore picks the versioned document store backing the ban list.
// Returns a nil store when the integration is unconfigured; the
// synchronizer then fails closed with a log line instead of crashing.
func buildBanStore(cfg *config.Config, appLog *logger.Logger) (docstore.Store, *database.MongoDB) {
	if !cfg.BanlistEnabled {
		return nil, nil
	}

	switch cfg.BanlistBackend {
	case "github":
		if cfg.GitHubToken == "" || cfg.GitHubOwner == "" || cfg.GitHubRepo == "" {
			appLog.Warn("ban-list enabled but GitHub credentials incomplete; sync will be skipped")
			return nil, nil
		}
		return docstore.NewGitHub(cfg.GitHubToken, cfg.GitHubOwner, cfg.GitHubRepo, cfg.GitHubBranch), nil

	case "mongo":
		db, err := database.Connect(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			appLog.Warn("ban-list enabled but MongoDB unreachable; sync will be skipped: %v", err)
			return nil, nil
		}
		return docstore.NewMongo(db.Database), db

	case "memory":
		// Local development only: bans vanish with the process.
		return docstore.NewMemory(), nil

	default:
		appLog.Warn("unknown ban-list backend %q; sync will be skipped", cfg.BanlistBackend)
		return nil, nil
	}
}
