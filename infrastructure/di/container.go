package di

import (
	"pagegraph/application/ports"
	querybus "pagegraph/application/queries/bus"
	"pagegraph/infrastructure/config"
	"pagegraph/interfaces/http/rest"
	"pagegraph/pkg/observability"

	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config    *config.Config
	Logger    *zap.Logger
	Tracer    *observability.Tracer
	Metrics   *observability.Metrics
	Publisher *observability.CloudWatchPublisher
	GraphAPI  ports.GraphAPI
	QueryBus  *querybus.QueryBus
	Router    *rest.Router
}
