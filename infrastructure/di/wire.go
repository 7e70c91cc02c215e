//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"github.com/google/wire"
	"pagegraph/infrastructure/config"
)

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideDomainConfig,
	ProvideTracer,
	ProvideAWSConfig,
	ProvideCloudWatchPublisher,
	ProvideMetrics,
	ProvideHTTPClient,
	ProvideGraphAPI,
	ProvideQueryComposer,
	ProvideNormalizer,
	ProvideEnricher,
	ProvideOrchestrator,
	ProvideQueryBus,
	ProvideErrorHandler,
	ProvideJWTValidator,
	ProvideRouter,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
