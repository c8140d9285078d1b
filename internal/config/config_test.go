package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadForTests(map[string]string{
		"DATABASE_URL":             "postgres://lab@localhost/lab",
		"REDIS_URL":                "",
		"LAB_HEADER":               "",
		"DEFAULT_LAB_ID":           "",
		"CATALOG_CACHE_TTL":        "",
		"RATE_LIMIT_WINDOW":        "",
		"RATE_LIMIT_MAX":           "",
		"BODY_LIMIT_BYTES":         "",
		"SECURITY_HEADERS_ENABLED": "",
		"SHUTDOWN_TIMEOUT":         "",
		"PORT":                     "",
	})
	require.NoError(t, err)
	require.Equal(t, "X-Lab-ID", cfg.LabHeader)
	require.Equal(t, 5*time.Minute, cfg.CatalogCacheTTL)
	require.Equal(t, time.Minute, cfg.RateLimitWindow)
	require.Equal(t, 120, cfg.RateLimitMax)
	require.Equal(t, int64(1<<20), cfg.BodyLimitBytes)
	require.True(t, cfg.SecurityHeadersEnabled)
	require.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	require.False(t, cfg.CacheEnabled())
	require.Equal(t, ":8080", cfg.HTTPAddr())
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := LoadForTests(map[string]string{
		"DATABASE_URL":             "postgres://lab@localhost/lab",
		"REDIS_URL":                "redis://localhost:6379/0",
		"CORS_ALLOWED_ORIGINS":     "https://a.example, ,https://b.example",
		"DEFAULT_LAB_ID":           "7",
		"RATE_LIMIT_MAX":           "10",
		"CATALOG_CACHE_TTL":        "garbage",
		"SECURITY_HEADERS_ENABLED": "off",
		"PORT":                     ":9090",
	})
	require.NoError(t, err)
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	require.Equal(t, "7", cfg.DefaultLabID)
	require.Equal(t, 10, cfg.RateLimitMax)
	require.Equal(t, 5*time.Minute, cfg.CatalogCacheTTL)
	require.False(t, cfg.SecurityHeadersEnabled)
	require.True(t, cfg.CacheEnabled())
	require.Equal(t, ":9090", cfg.HTTPAddr())
}

func TestLoadRequiresDatabaseURL(t *testing.T) {
	_, err := LoadForTests(map[string]string{"DATABASE_URL": ""})
	require.Error(t, err)
}

func TestLoadRejectsInvalidDefaultLab(t *testing.T) {
	_, err := LoadForTests(map[string]string{
		"DATABASE_URL":   "postgres://lab@localhost/lab",
		"DEFAULT_LAB_ID": "main",
	})
	require.ErrorContains(t, err, "DEFAULT_LAB_ID")
}
