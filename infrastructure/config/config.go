package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"pagegraph/pkg/errors"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string `validate:"required"`
	Environment   string `validate:"oneof=development staging production test"`
	APIPrefix     string

	// Facebook Graph API
	AccessToken     string `validate:"required"`
	GraphAPIVersion string `validate:"required"`
	GraphBaseURL    string `validate:"omitempty,url"`
	UpstreamTimeout time.Duration

	// Enrichment fan-out; zero keeps the per-environment domain value
	EnrichmentConcurrency int `validate:"omitempty,min=1,max=64"`
	EnrichmentTimeout     time.Duration

	// AWS configuration
	AWSRegion        string
	MetricsNamespace string

	// Set when running inside AWS Lambda
	IsLambda bool

	// Logging
	LogLevel string `validate:"oneof=debug info warn error"`

	// Inbound service authentication; empty secret disables it
	JWTSecret string
	JWTIssuer string

	// Feature flags
	EnableMetrics      bool
	EnableTracing      bool
	EnableCORS         bool
	CORSAllowedOrigins []string
}

var validate = validator.New()

// LoadConfig loads configuration from environment variables. A .env file in
// the working directory is read first; variables already set win.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		APIPrefix:     getEnv("API_PREFIX", "/api/v1/facebook"),

		AccessToken:     strings.TrimSpace(os.Getenv("FACEBOOK_ACCESS_TOKEN")),
		GraphAPIVersion: getEnv("FACEBOOK_API_VERSION", "2.12"),
		GraphBaseURL:    getEnv("FACEBOOK_GRAPH_URL", ""),
		UpstreamTimeout: getEnvSeconds("UPSTREAM_TIMEOUT", 30*time.Second),

		EnrichmentConcurrency: getEnvInt("ENRICHMENT_CONCURRENCY", 0),
		EnrichmentTimeout:     getEnvSeconds("ENRICHMENT_TIMEOUT", 0),

		AWSRegion:        getEnv("AWS_REGION", "us-west-2"),
		MetricsNamespace: getEnv("METRICS_NAMESPACE", "pagegraph"),

		IsLambda: getEnvBool("IS_LAMBDA", false) || os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != "",

		// Authentication
		JWTSecret: getEnv("SERVICE_JWT_SECRET", ""),
		JWTIssuer: getEnv("SERVICE_JWT_ISSUER", ""),

		// Logging and features
		LogLevel:           strings.ToLower(getEnv("LOG_LEVEL", "info")),
		EnableMetrics:      getEnvBool("ENABLE_METRICS", false),
		EnableTracing:      getEnvBool("ENABLE_TRACING", false),
		EnableCORS:         getEnvBool("ENABLE_CORS", true),
		CORSAllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{"*"}),
	}

	// Validate required configuration
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present. Every failure is
// a ConfigurationError; the process must not start.
func (c *Config) Validate() error {
	if c.AccessToken == "" {
		return errors.NewConfigurationError("FACEBOOK_ACCESS_TOKEN environment variable is not set")
	}

	if err := validate.Struct(c); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			var msgs []string
			for _, e := range verrs {
				msgs = append(msgs, e.Field()+" failed "+e.Tag())
			}
			return errors.NewConfigurationError("invalid configuration").
				WithDetails(strings.Join(msgs, "; "))
		}
		return errors.NewConfigurationError("invalid configuration").WithCause(err)
	}

	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvSeconds reads a whole number of seconds
func getEnvSeconds(key string, defaultValue time.Duration) time.Duration {
	if secs := getEnvInt(key, -1); secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

// getEnvList reads a comma separated list
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
