package router

import (
	"context"
	"net/http"
	"time"

	apphttp "leadcapture_frontend/internal/http"
	"leadcapture_frontend/platform/httpkit"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const readinessTimeout = 3 * time.Second

// New builds the gateway engine and mounts every module.
func New(app *apphttp.App) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(httpkit.RequestID())
	engine.Use(httpkit.RequestLogger(app.Logger))
	engine.Use(httpkit.SecurityHeaders())
	engine.Use(cors.New(corsConfig(app.Config)))

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// The lead API being down never makes the site unready; it is reported.
	engine.GET("/readyz", func(c *gin.Context) {
		api := "unknown"
		if app.Health != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
			defer cancel()
			api = "reachable"
			if err := app.Health.Ping(ctx); err != nil {
				api = "unreachable"
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "api": api})
	})

	if app.Metrics != nil {
		engine.GET("/metrics", gin.WrapH(app.Metrics))
	}

	api := engine.Group("/api")
	forms := api.Group("/forms")
	forms.Use(httpkit.Session(app.SecureCookies))
	if app.RateLimiter != nil {
		forms.Use(app.RateLimiter.RateLimit())
	}

	rc := &apphttp.RouterContext{
		Engine: engine,
		API:    api,
		Forms:  forms,
		Logger: app.Logger,
	}
	for _, m := range app.Modules {
		m.RegisterRoutes(rc)
		app.Logger.Debug("module routes registered", "module", m.Name())
	}

	return engine
}

func corsConfig(cfg apphttp.RouterConfig) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", httpkit.HeaderRequestID},
		ExposeHeaders: []string{httpkit.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}

	switch {
	case cfg.GetCORSAllowAll():
		c.AllowAllOrigins = true
	case len(cfg.GetCORSOrigins()) > 0:
		c.AllowOrigins = cfg.GetCORSOrigins()
		c.AllowCredentials = true
	default:
		c.AllowOriginFunc = func(string) bool { return false }
	}
	return c
}
