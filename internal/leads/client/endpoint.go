package client

import (
	"net"
	"net/url"
	"strconv"
	"strings"

	"leadcapture_frontend/platform/config"
)

// ProductionBaseURL is used when nothing else resolves.
const ProductionBaseURL = "https://vercel-backend-three-rouge.vercel.app"

const defaultDevAPIPort = 8080

// devPorts are the ports the site's own dev servers listen on.
var devPorts = map[string]bool{
	"3000": true,
	"5173": true,
}

// EndpointConfig holds the inputs of base URL resolution. It is built once at
// startup and handed to the client.
type EndpointConfig struct {
	// Override wins over everything else.
	Override string
	// EnvURL is the environment-declared API URL.
	EnvURL string
	// SiteOrigin is the origin the site itself is served from.
	SiteOrigin string
	// DevAPIPort is the loopback API port used in local development.
	DevAPIPort int
}

// EndpointFromConfig reads the resolution inputs from application config.
func EndpointFromConfig(cfg config.APIConfig) EndpointConfig {
	return EndpointConfig{
		Override:   cfg.GetAPIBaseOverride(),
		EnvURL:     cfg.GetAPIBaseURL(),
		SiteOrigin: cfg.GetSiteOrigin(),
		DevAPIPort: cfg.GetAPIDevPort(),
	}
}

// Resolve returns the API base URL, without a trailing slash. Precedence:
// override, environment URL, local dev API when the site runs on a dev port,
// production fallback.
func (e EndpointConfig) Resolve() string {
	if base := trimBase(e.Override); base != "" {
		return base
	}
	if base := trimBase(e.EnvURL); base != "" {
		return base
	}
	if base := e.devBase(); base != "" {
		return base
	}
	return ProductionBaseURL
}

func (e EndpointConfig) devBase() string {
	origin := strings.TrimSpace(e.SiteOrigin)
	if origin == "" {
		return ""
	}
	u, err := url.Parse(origin)
	if err != nil || u.Host == "" || !devPorts[u.Port()] {
		return ""
	}

	host := u.Hostname()
	if host == "localhost" || host == "127.0.0.1" {
		host = "127.0.0.1"
	}
	scheme := u.Scheme
	if scheme == "" {
		scheme = "http"
	}
	port := e.DevAPIPort
	if port <= 0 {
		port = defaultDevAPIPort
	}
	return scheme + "://" + net.JoinHostPort(host, strconv.Itoa(port))
}

func trimBase(s string) string {
	return strings.TrimRight(strings.TrimSpace(s), "/")
}

// JoinURL appends path to base with exactly one slash between them. Absolute
// http(s) paths are returned unchanged.
func JoinURL(base, path string) string {
	lower := strings.ToLower(path)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return path
	}
	return trimBase(base) + "/" + strings.TrimLeft(path, "/")
}
