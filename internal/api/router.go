package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/applytrail/applytrail/internal/dbpool"
	"github.com/applytrail/applytrail/internal/middleware"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	Log          *logrus.Logger
	Pool         *dbpool.Pool
	Verifier     middleware.TokenVerifier
	Sessions     SessionRepository
	Catalog      CatalogRepository
	Applications ApplicationRepository
	Stages       StageRepository
	Tasks        TaskRepository
	World        WorldRepository
	Activity     ActivityRepository
	CORSOrigins  []string
	Version      string
}

// Router-level limits.
const (
	maxBodySize = 1 << 20 // 1 MB
	rateLimit   = 50      // requests per second per IP
	rateBurst   = 100     // token bucket burst size

	// Anonymous sessions create a user row each, so they get their own budget.
	sessionRateLimit = 0.2
	sessionRateBurst = 5
)

// setupMiddleware configures all middleware on the Gin engine.
func setupMiddleware(ctx context.Context, r *gin.Engine, deps *RouterDeps) {
	r.SetTrustedProxies(nil) //nolint:errcheck // nil always succeeds.
	r.Use(middleware.RequestID(deps.Log))
	r.Use(ginLogger(deps.Log))
	r.Use(gin.Recovery())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.MaxBodySize(maxBodySize))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		MaxAge:           1 * time.Hour,
		AllowCredentials: false,
	}))
	r.Use(middleware.NewRateLimiter(ctx, rateLimit, rateBurst).Handler())
	r.Use(middleware.PrometheusMiddleware())

	// Metrics endpoint (unauthenticated, like health).
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// registerRoutes sets up all API route handlers on the given router group.
func registerRoutes(ctx context.Context, api *gin.RouterGroup, deps *RouterDeps) {
	log := deps.Log

	health := NewHealthHandler(deps.Pool, log, deps.Version)
	sessions := NewSessionHandler(deps.Sessions, log)
	companies := NewCompanyHandler(deps.Catalog, log)
	roles := NewRoleHandler(deps.Catalog, deps.World, log)
	applications := NewApplicationHandler(deps.Applications, log)
	stages := NewStageHandler(deps.Stages, log)
	tasks := NewTaskHandler(deps.Tasks, log)
	activity := NewActivityHandler(deps.Activity, log)
	stats := NewStatsHandler(deps.Pool, log)

	// Health, readiness and session creation are unauthenticated.
	api.GET("/health", health.Liveness)
	api.GET("/ready", health.Readiness)
	api.POST("/sessions/anonymous",
		middleware.NewRateLimiter(ctx, sessionRateLimit, sessionRateBurst).Handler(),
		sessions.CreateAnonymous)

	// All other API routes require a session token.
	bfGuard := middleware.NewBruteForceGuard(ctx, log)
	api.Use(middleware.BruteForceMiddleware(bfGuard))
	api.Use(middleware.AuthMiddleware(deps.Verifier, log, bfGuard))

	api.GET("/me", sessions.Me)

	// Shared catalog.
	api.GET("/companies", companies.List)
	api.POST("/companies", companies.Create)
	api.GET("/companies/:id", companies.Get)
	api.GET("/roles", roles.List)
	api.POST("/roles", roles.Create)
	api.GET("/roles/:id", roles.Get)
	api.GET("/roles/:id/world", roles.World)

	// Applications and their stages.
	api.GET("/applications", applications.List)
	api.POST("/applications", applications.Create)
	api.GET("/applications/:id", applications.Get)
	api.DELETE("/applications/:id", applications.Delete)
	api.GET("/applications/:id/stages", stages.List)
	api.POST("/applications/:id/stages", stages.Create)
	api.PUT("/applications/:id/stages/:stage_id", stages.Update)
	api.DELETE("/applications/:id/stages/:stage_id", stages.Delete)

	// Tasks.
	api.GET("/tasks", tasks.List)
	api.POST("/tasks", tasks.Create)
	api.PUT("/tasks/:id", tasks.Update)
	api.DELETE("/tasks/:id", tasks.Delete)

	// Activity and stats.
	api.GET("/activity", activity.List)
	api.GET("/stats", stats.GetStats)
}

// NewRouter creates and configures the Gin engine with all middleware and routes.
func NewRouter(ctx context.Context, deps *RouterDeps) http.Handler {
	r := gin.New()
	setupMiddleware(ctx, r, deps)
	registerRoutes(ctx, r.Group("/api/v1"), deps)

	return r
}
