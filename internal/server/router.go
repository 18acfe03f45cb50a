// Package server assembles the gin engine that fronts every briefing handler.
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"sales-briefing/internal/common/config"
	"sales-briefing/internal/common/logger"
	"sales-briefing/internal/common/middleware"
	authaudit "sales-briefing/internal/handlers/auth/auth-audit"
	generatebriefing "sales-briefing/internal/handlers/briefing/generate-briefing"
	renderbriefing "sales-briefing/internal/handlers/briefing/render-briefing"
	composelinks "sales-briefing/internal/handlers/contact/compose-links"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"
)

// Pinger is a dependency reported by /health.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Dependencies struct {
	Config *config.Config
	Logger logger.Logger
	// AccessLog receives one line per request; nil disables access logging.
	AccessLog *zap.Logger

	Briefing generatebriefing.BriefingService
	Render   renderbriefing.RenderService
	Contact  composelinks.LinkService
	Audit    authaudit.AuditService

	// Sessions backs the session guard when auth.require_session is set.
	Sessions middleware.SessionStore
	// Checks are pinged by /health, keyed by name.
	Checks map[string]Pinger
}

func NewRouter(deps Dependencies) *gin.Engine {
	cfg := deps.Config

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	if deps.AccessLog != nil {
		router.Use(middleware.AccessLog(deps.AccessLog))
	}
	router.Use(cors.New(corsConfig(cfg.Server)))
	// Before any route: gin copies the middleware chain into each route at
	// registration. Also serves /metrics.
	requestMetrics().Use(router)

	router.GET("/health", healthHandler(cfg.App, deps.Checks))
	router.HEAD("/health", healthHandler(cfg.App, deps.Checks))

	// Audit events arrive around sign-in, before a session exists.
	authaudit.NewHandler(deps.Audit, deps.Logger).Register(router)

	guarded := router.Group("")
	if cfg.Auth.RequireSession && deps.Sessions != nil {
		guarded.Use(middleware.SessionGuard(deps.Sessions, cfg.Auth.SessionPrefix, deps.Logger))
	}
	generatebriefing.NewHandler(deps.Briefing, deps.Logger).Register(guarded)
	renderbriefing.NewHandler(deps.Render, deps.Logger).Register(guarded)
	composelinks.NewHandler(deps.Contact, deps.Logger).Register(guarded)

	return router
}

// requestMetrics registers the gin collectors with the default Prometheus
// registry once per process; every router shares them.
var requestMetrics = sync.OnceValue(func() *ginprometheus.Prometheus {
	return ginprometheus.NewPrometheus("gin")
})

func corsConfig(cfg config.ServerConfig) cors.Config {
	c := cors.DefaultConfig()
	c.AllowAllOrigins = true
	c.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	c.AllowHeaders = cfg.AllowedHeaders
	c.MaxAge = 12 * time.Hour
	return c
}

func healthHandler(app config.AppConfig, checks map[string]Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := http.StatusOK
		results := make(map[string]string, len(checks))
		for name, p := range checks {
			if err := p.Ping(c.Request.Context()); err != nil {
				results[name] = err.Error()
				status = http.StatusServiceUnavailable
				continue
			}
			results[name] = "ok"
		}

		body := gin.H{
			"status":  "ok",
			"service": app.Name,
			"version": app.Version,
		}
		if status != http.StatusOK {
			body["status"] = "degraded"
		}
		if len(results) > 0 {
			body["checks"] = results
		}
		c.JSON(status, body)
	}
}
