package config

import (
	"testing"
	"time"

	"pagegraph/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingAccessToken(t *testing.T) {
	t.Setenv("FACEBOOK_ACCESS_TOKEN", "   ")

	_, err := LoadConfig()

	require.Error(t, err)
	assert.True(t, errors.IsConfiguration(err))
	assert.Contains(t, err.Error(), "FACEBOOK_ACCESS_TOKEN")
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("FACEBOOK_ACCESS_TOKEN", "token")
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("API_PREFIX", "")
	t.Setenv("FACEBOOK_API_VERSION", "")
	t.Setenv("UPSTREAM_TIMEOUT", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "")
	t.Setenv("IS_LAMBDA", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("ENRICHMENT_CONCURRENCY", "")
	t.Setenv("ENRICHMENT_TIMEOUT", "")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "token", cfg.AccessToken)
	assert.Equal(t, "/api/v1/facebook", cfg.APIPrefix)
	assert.Equal(t, "2.12", cfg.GraphAPIVersion)
	assert.Equal(t, 30*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.IsLambda)
	assert.True(t, cfg.IsDevelopment())
	assert.Zero(t, cfg.EnrichmentConcurrency)
	assert.Zero(t, cfg.EnrichmentTimeout)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("FACEBOOK_ACCESS_TOKEN", "token")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("FACEBOOK_API_VERSION", "v19.0")
	t.Setenv("UPSTREAM_TIMEOUT", "5")
	t.Setenv("ENRICHMENT_CONCURRENCY", "16")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "pagegraph-api")
	t.Setenv("LOG_LEVEL", "DEBUG")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "v19.0", cfg.GraphAPIVersion)
	assert.Equal(t, 5*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, 16, cfg.EnrichmentConcurrency)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.IsLambda)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestConfig_ValidateRejectsBadValues(t *testing.T) {
	base := func() *Config {
		return &Config{
			ServerAddress:         ":8080",
			Environment:           "development",
			AccessToken:           "token",
			GraphAPIVersion:       "2.12",
			EnrichmentConcurrency: 8,
			LogLevel:              "info",
		}
	}
	require.NoError(t, base().Validate())

	tests := map[string]func(*Config){
		"environment": func(c *Config) { c.Environment = "qa" },
		"log level":   func(c *Config) { c.LogLevel = "trace" },
		"concurrency": func(c *Config) { c.EnrichmentConcurrency = 65 },
		"graph url":   func(c *Config) { c.GraphBaseURL = "not a url" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			c := base()
			mutate(c)
			err := c.Validate()
			require.Error(t, err)
			assert.True(t, errors.IsConfiguration(err))
		})
	}
}
