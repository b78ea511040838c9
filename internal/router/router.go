// Package router assembles the gin engine: global middleware first, then the
// public and gated routes.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yukikurage/freelance-tracker-api/internal/config"
	"github.com/yukikurage/freelance-tracker-api/internal/handlers"
	"github.com/yukikurage/freelance-tracker-api/internal/middleware"
	"go.uber.org/zap"
)

// Handlers groups the HTTP handlers mounted by New.
type Handlers struct {
	Auth        *handlers.AuthHandler
	Clients     *handlers.ResourceHandler
	Projects    *handlers.ResourceHandler
	TimeEntries *handlers.ResourceHandler
	Invoices    *handlers.ResourceHandler
}

// New builds the engine. The token gate is global so it also covers
// unmatched routes.
func New(cfg *config.Config, log *zap.Logger, auth middleware.Authenticator, h Handlers) *gin.Engine {
	r := gin.New()
	// The gate matches exact paths, so "/login/" must reach it unredirected
	r.RedirectTrailingSlash = false

	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.CORS(cfg))
	if cfg.MetricsEnabled {
		r.Use(middleware.Metrics())
	}
	r.Use(middleware.AuthenticateToken(auth))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Freelance Tracker API is running",
		})
	})
	if cfg.MetricsEnabled {
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	r.POST("/login", h.Auth.Login)
	r.POST("/register", h.Auth.Register)
	r.GET("/user/profile", h.Auth.GetProfile)
	r.PUT("/user/profile", h.Auth.UpdateProfile)

	mountCRUD(r.Group("/clients"), h.Clients)
	mountCRUD(r.Group("/projects"), h.Projects)
	mountCRUD(r.Group("/timeEntries"), h.TimeEntries)

	invoices := r.Group("/invoices")
	{
		invoices.GET("", h.Invoices.List)
		invoices.POST("", h.Invoices.Create)
	}

	return r
}

func mountCRUD(g *gin.RouterGroup, h *handlers.ResourceHandler) {
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", h.Create)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}
