package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"leadcapture_frontend/internal/events"
	apphttp "leadcapture_frontend/internal/http"
	"leadcapture_frontend/internal/http/router"
	"leadcapture_frontend/internal/leads"
	"leadcapture_frontend/platform/config"
	"leadcapture_frontend/platform/httpkit"
	"leadcapture_frontend/platform/logger"
	"leadcapture_frontend/platform/metrics"
	"leadcapture_frontend/platform/validator"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const (
	shutdownTimeout = 10 * time.Second
	sweepInterval   = 5 * time.Minute
	formMaxIdle     = 30 * time.Minute
	probeAttempts   = 3
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize structured logger
	log := logger.New(cfg.Env)
	log.Info("starting form gateway", "env", cfg.Env, "addr", cfg.HTTPAddr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ========================================================================
	// Infrastructure Layer
	// ========================================================================

	// Event bus for decoupled communication between modules
	eventBus := events.NewInMemoryBus(log)

	// Shared validator instance for dependency injection
	val := validator.New()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	leadMetrics := metrics.NewLeadMetrics(reg)

	// ========================================================================
	// Domain Modules (Composition Root)
	// ========================================================================

	leadsModule, err := leads.NewModule(cfg, eventBus, val, leadMetrics, log)
	if err != nil {
		log.Error("failed to initialize leads module", "error", err)
		panic("failed to initialize leads module: " + err.Error())
	}
	defer leadsModule.Close()

	// ========================================================================
	// HTTP Layer
	// ========================================================================

	limiter := httpkit.NewIPRateLimiter(rate.Every(time.Second), 10, log)

	app := &apphttp.App{
		Config:        cfg,
		Logger:        log,
		Health:        leadsModule.Client(),
		EventBus:      eventBus,
		Metrics:       promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		RateLimiter:   limiter,
		SecureCookies: cfg.Env == "production",
		Modules: []apphttp.Module{
			leadsModule,
		},
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router.New(app),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("server listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutdown signal received, gracefully shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	// The lead API being unreachable is logged, never fatal.
	if cfg.GetAPIProbeOnStart() {
		g.Go(func() error {
			err := withRetry(gctx, log, "lead api probe", probeAttempts, time.Second, func() error {
				return leadsModule.Client().Ping(gctx)
			})
			if gctx.Err() != nil {
				return nil
			}
			log.APIProbe(leadsModule.Client().BaseURL(), err)
			leadMetrics.SetAPIUp(err == nil)
			return nil
		})
	}

	g.Go(func() error {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				leadsModule.SweepIdle(formMaxIdle)
				if n := limiter.Prune(); n > 0 {
					log.Debug("idle rate limiters pruned", "count", n)
				}
			}
		}
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		eventBus.Wait()
		os.Exit(1)
	}
	eventBus.Wait()
	log.Info("form gateway stopped")
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return fmt.Errorf("%s: invalid retry attempts", name)
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return fmt.Errorf("%s: %w", name, lastErr)
}
