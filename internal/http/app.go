// Package http provides HTTP server infrastructure including module registration.
package http

import (
	"context"
	"net/http"

	"leadcapture_frontend/internal/events"
	"leadcapture_frontend/platform/config"
	"leadcapture_frontend/platform/httpkit"
	"leadcapture_frontend/platform/logger"
)

// RouterConfig combines the config interfaces needed by the HTTP router.
type RouterConfig interface {
	config.HTTPConfig
}

// HealthChecker exposes minimal functionality for readiness checks.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

// App holds the fully initialized application dependencies.
// This is populated by main.go (the composition root) and passed to the router.
type App struct {
	// Config holds the router configuration (HTTP settings only).
	Config RouterConfig
	// Logger is the structured logger.
	Logger *logger.Logger
	// Health reports lead API reachability on /readyz.
	Health HealthChecker
	// EventBus is the domain event bus for cross-module communication.
	EventBus events.Bus
	// Metrics serves /metrics when set.
	Metrics http.Handler
	// RateLimiter throttles the form routes per client IP when set.
	RateLimiter *httpkit.IPRateLimiter
	// SecureCookies marks session cookies Secure.
	SecureCookies bool
	// Modules contains all HTTP-facing domain modules.
	Modules []Module
}
