package http

import (
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"taskboard/internal/http/handlers"
	"taskboard/internal/http/middleware"
	"taskboard/internal/repository"
	"taskboard/internal/tenant"
	"taskboard/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Options carries the routing knobs read from config.
type Options struct {
	Resolver       tenant.Resolver
	APIRateLimit   int
	WriteRateLimit int
	RateWindow     time.Duration
	AllowedOrigin  string
	FrontendDir    string
}

// RegisterRoutes wires the Postgres repositories behind the API.
func RegisterRoutes(r *gin.Engine, db *pgxpool.Pool, hub *ws.Hub, version string, opts Options) {
	h := handlers.NewHandler(
		repository.NewProjectRepository(db),
		repository.NewTaskRepository(db),
		hub,
	)
	healthHandler := handlers.NewHealthHandler(repository.NewProbeRepository(db), version)
	Register(r, h, healthHandler, hub, opts)
}

// Register mounts the API on r using whatever stores h was built with.
func Register(r *gin.Engine, h *handlers.Handler, healthHandler *handlers.HealthHandler, hub *ws.Hub, opts Options) {
	if opts.Resolver == nil {
		opts.Resolver = tenant.NewHeaderResolver(tenant.DefaultHeader, tenant.DefaultID)
	}
	if opts.RateWindow <= 0 {
		opts.RateWindow = time.Minute
	}

	// Health checks (no rate limiting, no tenant)
	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)
	r.GET("/api/health", healthHandler.Health)

	api := r.Group("/api")
	api.Use(middleware.RateLimit(opts.APIRateLimit, opts.RateWindow))

	// websocket upgrades get their own group so only they read the tenant
	// from the query string
	if hub != nil {
		events := api.Group("", middleware.Tenant(tenant.ForUpgrade(opts.Resolver)))
		events.GET("/events", h.Events(hub, opts.AllowedOrigin))
	}

	api.Use(middleware.Tenant(opts.Resolver))

	writeRL := middleware.TenantRateLimit(opts.WriteRateLimit, opts.RateWindow)

	api.GET("/projects", h.ListProjects)
	api.POST("/projects", writeRL, h.CreateProject)

	api.GET("/tasks", h.ListTasks)
	api.POST("/tasks", writeRL, h.CreateTask)
	api.PATCH("/tasks/:id/toggle", writeRL, h.ToggleTask)

	registerFrontend(r, opts.FrontendDir)
}

// registerFrontend serves the built SPA when dir is set; unknown /api paths
// stay JSON 404s either way.
func registerFrontend(r *gin.Engine, dir string) {
	if dir != "" {
		r.StaticFS("/assets", gin.Dir(filepath.Join(dir, "assets"), false))
	}
	r.NoRoute(func(c *gin.Context) {
		if dir == "" || strings.HasPrefix(c.Request.URL.Path, "/api/") || c.Request.Method != http.MethodGet {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.File(filepath.Join(dir, "index.html"))
	})
}
