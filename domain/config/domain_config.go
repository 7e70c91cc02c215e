package config

import (
	"fmt"
	"time"
)

// DomainConfig holds the request bounds and enrichment settings of the gateway
type DomainConfig struct {
	// Limit bounds for every list endpoint
	MinLimit int
	MaxLimit int

	// Default limits when the client sends none
	DefaultPostsLimit int
	DefaultListLimit  int

	// Conversations list embeds at most this many messages per conversation
	ConversationMessagesLimit int

	// Search fetches limit*SearchOverfetchFactor posts before filtering locally
	SearchOverfetchFactor int

	// Enrichment fan-out
	EnrichmentConcurrency int
	EnrichmentTimeout     time.Duration

	// Default page when page_id is omitted
	DefaultPageID string
}

// DefaultDomainConfig returns the default domain configuration
func DefaultDomainConfig() *DomainConfig {
	return &DomainConfig{
		MinLimit: 1,
		MaxLimit: 100,

		DefaultPostsLimit: 10,
		DefaultListLimit:  25,

		ConversationMessagesLimit: 10,
		SearchOverfetchFactor:     2,

		EnrichmentConcurrency: 8,
		EnrichmentTimeout:     5 * time.Second,

		DefaultPageID: "me",
	}
}

// ProductionDomainConfig returns production-specific configuration
func ProductionDomainConfig() *DomainConfig {
	config := DefaultDomainConfig()

	// Keep the secondary lookups from holding a response hostage
	config.EnrichmentTimeout = 3 * time.Second

	return config
}

// DevelopmentDomainConfig returns development-specific configuration
func DevelopmentDomainConfig() *DomainConfig {
	config := DefaultDomainConfig()

	config.EnrichmentConcurrency = 4
	config.EnrichmentTimeout = 10 * time.Second

	return config
}

// LoadDomainConfig loads domain configuration based on environment
func LoadDomainConfig(environment string) *DomainConfig {
	switch environment {
	case "production":
		return ProductionDomainConfig()
	case "development":
		return DevelopmentDomainConfig()
	default:
		return DefaultDomainConfig()
	}
}

// InLimitRange reports whether limit is within the accepted bounds
func (c *DomainConfig) InLimitRange(limit int) bool {
	return limit >= c.MinLimit && limit <= c.MaxLimit
}

// Validate checks if the configuration is valid
func (c *DomainConfig) Validate() error {
	if c.MinLimit < 1 || c.MaxLimit < c.MinLimit {
		return fmt.Errorf("invalid limit bounds [%d,%d]", c.MinLimit, c.MaxLimit)
	}
	if c.SearchOverfetchFactor < 1 {
		return fmt.Errorf("search overfetch factor must be at least 1")
	}
	if c.EnrichmentConcurrency < 1 {
		return fmt.Errorf("enrichment concurrency must be at least 1")
	}
	if c.EnrichmentTimeout <= 0 {
		return fmt.Errorf("enrichment timeout must be positive")
	}
	return nil
}
