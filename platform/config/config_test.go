package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV", "HTTP_ADDR", "SITE_ORIGIN", "API_BASE_OVERRIDE", "API_BASE_URL",
		"VITE_API_URL", "REACT_APP_API_URL", "API_DEV_PORT", "API_TIMEOUT",
		"API_PROBE_ON_START", "CORS_ORIGINS", "CORS_ALLOW_ALL", "FORMS_CONFIG_FILE",
		"SUBMIT_MIN_INTERVAL", "BROCHURE_URL",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := fromEnv()
	require.NoError(t, err)

	assert.Equal(t, 12*time.Second, cfg.GetAPITimeout())
	assert.Equal(t, 8080, cfg.GetAPIDevPort())
	assert.Equal(t, "", cfg.GetAPIBaseURL())
	assert.True(t, cfg.GetAPIProbeOnStart())
	assert.Equal(t, ":3000", cfg.GetHTTPAddr())
	assert.Equal(t, "http://localhost:3000", cfg.GetSiteOrigin())
	assert.Equal(t, 3*time.Second, cfg.GetSubmitMinInterval())
}

func TestAPIBaseURLLegacyKeys(t *testing.T) {
	clearEnv(t)
	t.Setenv("REACT_APP_API_URL", "https://cra.example.com")

	cfg, err := fromEnv()
	require.NoError(t, err)
	assert.Equal(t, "https://cra.example.com", cfg.GetAPIBaseURL())

	t.Setenv("VITE_API_URL", " https://vite.example.com ")
	cfg, err = fromEnv()
	require.NoError(t, err)
	assert.Equal(t, "https://vite.example.com", cfg.GetAPIBaseURL())

	t.Setenv("API_BASE_URL", "https://api.example.com")
	cfg, err = fromEnv()
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", cfg.GetAPIBaseURL())
}

func TestRejectsInvalidTimeout(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_TIMEOUT", "soon")

	_, err := fromEnv()
	require.Error(t, err)
}

func TestWildcardOriginEnablesAllowAll(t *testing.T) {
	clearEnv(t)
	t.Setenv("CORS_ORIGINS", "https://a.example.com, *")

	cfg, err := fromEnv()
	require.NoError(t, err)
	assert.True(t, cfg.GetCORSAllowAll())
	assert.Equal(t, []string{"https://a.example.com", "*"}, cfg.GetCORSOrigins())
}

func TestDefaultSiteOrigin(t *testing.T) {
	assert.Equal(t, "http://localhost:3000", defaultSiteOrigin(":3000"))
	assert.Equal(t, "http://localhost:5173", defaultSiteOrigin("0.0.0.0:5173"))
	assert.Equal(t, "http://site.internal:80", defaultSiteOrigin("site.internal:80"))
	assert.Equal(t, "", defaultSiteOrigin("bogus"))
}

func TestProductionLeavesSiteOriginUnset(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")

	cfg, err := fromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":3000", cfg.GetHTTPAddr())
	assert.Empty(t, cfg.GetSiteOrigin())
}

func TestExplicitSiteOriginWinsInProduction(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("SITE_ORIGIN", " https://northernlights.example ")

	cfg, err := fromEnv()
	require.NoError(t, err)
	assert.Equal(t, "https://northernlights.example", cfg.GetSiteOrigin())
}
