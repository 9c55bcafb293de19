// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// APIConfig provides the inputs for resolving and calling the lead API.
type APIConfig interface {
	GetAPIBaseOverride() string
	GetAPIBaseURL() string
	GetSiteOrigin() string
	GetAPIDevPort() int
	GetAPITimeout() time.Duration
	GetAPIProbeOnStart() bool
}

// HTTPConfig provides settings for the form gateway HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
}

// FormsConfig provides settings for the per-form state machines.
type FormsConfig interface {
	GetFormsConfigFile() string
	GetSubmitMinInterval() time.Duration
}

// BrochureConfig provides the brochure download location.
type BrochureConfig interface {
	GetBrochureURL() string
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env               string
	HTTPAddr          string
	SiteOrigin        string
	APIBaseOverride   string
	APIBaseURL        string
	APIDevPort        int
	APITimeout        time.Duration
	APIProbeOnStart   bool
	CORSAllowAll      bool
	CORSOrigins       []string
	FormsConfigFile   string
	SubmitMinInterval time.Duration
	BrochureURL       string
}

// =============================================================================
// Interface Implementations
// =============================================================================

// APIConfig implementation
func (c *Config) GetAPIBaseOverride() string   { return c.APIBaseOverride }
func (c *Config) GetAPIBaseURL() string        { return c.APIBaseURL }
func (c *Config) GetSiteOrigin() string        { return c.SiteOrigin }
func (c *Config) GetAPIDevPort() int           { return c.APIDevPort }
func (c *Config) GetAPITimeout() time.Duration { return c.APITimeout }
func (c *Config) GetAPIProbeOnStart() bool     { return c.APIProbeOnStart }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }

// FormsConfig implementation
func (c *Config) GetFormsConfigFile() string          { return c.FormsConfigFile }
func (c *Config) GetSubmitMinInterval() time.Duration { return c.SubmitMinInterval }

// BrochureConfig implementation
func (c *Config) GetBrochureURL() string { return c.BrochureURL }

// Load reads configuration from environment variables, after merging a .env
// file when one is present.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return fromEnv()
}

func fromEnv() (*Config, error) {
	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	env := getEnv("APP_ENV", "development")
	httpAddr := getEnv("HTTP_ADDR", ":3000")

	// Only a local dev server may stand in for the visitor's page origin.
	siteOrigin := ""
	if strings.EqualFold(env, "development") {
		siteOrigin = defaultSiteOrigin(httpAddr)
	}

	cfg := &Config{
		Env:               env,
		HTTPAddr:          httpAddr,
		SiteOrigin:        strings.TrimSpace(getEnv("SITE_ORIGIN", siteOrigin)),
		APIBaseOverride:   getEnv("API_BASE_OVERRIDE", ""),
		APIBaseURL:        firstEnv("API_BASE_URL", "VITE_API_URL", "REACT_APP_API_URL"),
		APIDevPort:        mustInt(getEnv("API_DEV_PORT", "8080")),
		APITimeout:        mustDuration(getEnv("API_TIMEOUT", "12s")),
		APIProbeOnStart:   !strings.EqualFold(getEnv("API_PROBE_ON_START", "true"), "false"),
		CORSAllowAll:      corsAllowAll,
		CORSOrigins:       corsOrigins,
		FormsConfigFile:   getEnv("FORMS_CONFIG_FILE", ""),
		SubmitMinInterval: mustDuration(getEnv("SUBMIT_MIN_INTERVAL", "3s")),
		BrochureURL:       getEnv("BROCHURE_URL", "/docs/NorthernLights.pdf"),
	}

	if cfg.APITimeout <= 0 {
		return nil, fmt.Errorf("API_TIMEOUT must be a positive duration")
	}
	if cfg.APIDevPort <= 0 || cfg.APIDevPort > 65535 {
		return nil, fmt.Errorf("API_DEV_PORT must be a valid TCP port")
	}
	if cfg.SubmitMinInterval < 0 {
		return nil, fmt.Errorf("SUBMIT_MIN_INTERVAL cannot be negative")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

// firstEnv returns the first non-blank value among keys.
func firstEnv(keys ...string) string {
	for _, key := range keys {
		if val := strings.TrimSpace(os.Getenv(key)); val != "" {
			return val
		}
	}
	return ""
}

// defaultSiteOrigin derives the origin a development gateway is reachable at
// from its listen address, so a local ":3000" is recognized as a dev port.
func defaultSiteOrigin(addr string) string {
	host, port, ok := strings.Cut(addr, ":")
	if !ok {
		return ""
	}
	if host == "" || host == "0.0.0.0" {
		host = "localhost"
	}
	return "http://" + host + ":" + port
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
