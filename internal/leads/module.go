// Package leads provides the lead capture bounded context module.
// This file defines the module that encapsulates all form setup and route registration.
package leads

import (
	"fmt"
	"time"

	"leadcapture_frontend/internal/events"
	apphttp "leadcapture_frontend/internal/http"
	"leadcapture_frontend/internal/leads/client"
	"leadcapture_frontend/internal/leads/form"
	"leadcapture_frontend/internal/leads/handler"
	"leadcapture_frontend/internal/leads/validation"
	"leadcapture_frontend/platform/config"
	"leadcapture_frontend/platform/logger"
	"leadcapture_frontend/platform/metrics"
	"leadcapture_frontend/platform/validator"
)

// ModuleConfig combines the config interfaces the leads module reads.
type ModuleConfig interface {
	config.APIConfig
	config.FormsConfig
}

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler  *handler.Handler
	registry *form.Registry
	client   *client.Client
	log      *logger.Logger
}

// NewModule creates and initializes the leads module with all its dependencies.
func NewModule(cfg ModuleConfig, eventBus events.Bus, val *validator.Validator, m *metrics.LeadMetrics, log *logger.Logger) (*Module, error) {
	engine, err := validation.NewEngine(val)
	if err != nil {
		return nil, err
	}

	variants, err := validation.LoadVariants(cfg.GetFormsConfigFile())
	if err != nil {
		return nil, fmt.Errorf("load form variants: %w", err)
	}

	apiClient := client.NewFromConfig(cfg, log)
	log.Info("lead api resolved", "base_url", apiClient.BaseURL(), "timeout", cfg.GetAPITimeout().String())

	// Subscribe metrics and logging to submission events
	RegisterSubscribers(eventBus, m, log)

	registry := form.NewRegistry(variants, engine, apiClient, form.Options{
		MinInterval: cfg.GetSubmitMinInterval(),
		Bus:         eventBus,
		Log:         log,
	})

	return &Module{
		handler:  handler.New(registry, val),
		registry: registry,
		client:   apiClient,
		log:      log,
	}, nil
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// Client returns the lead API client for health probes.
func (m *Module) Client() *client.Client {
	return m.client
}

// Registry returns the live form registry.
func (m *Module) Registry() *form.Registry {
	return m.registry
}

// SweepIdle drops form instances untouched for longer than maxIdle.
func (m *Module) SweepIdle(maxIdle time.Duration) {
	if n := m.registry.Sweep(maxIdle); n > 0 {
		m.log.Debug("idle forms swept", "count", n, "remaining", m.registry.Len())
	}
}

// Close stops all pending form timers.
func (m *Module) Close() {
	m.registry.Close()
}

// RegisterRoutes mounts form routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	m.handler.RegisterRoutes(ctx.Forms)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
