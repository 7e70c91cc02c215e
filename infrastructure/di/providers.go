package di

import (
	"context"
	"fmt"
	"net/http"

	"pagegraph/application/ports"
	"pagegraph/application/queries"
	querybus "pagegraph/application/queries/bus"
	queries_handlers "pagegraph/application/queries/handlers"
	domainconfig "pagegraph/domain/config"
	"pagegraph/domain/services"
	"pagegraph/infrastructure/config"
	"pagegraph/infrastructure/graphapi"
	"pagegraph/interfaces/http/rest"
	"pagegraph/pkg/auth"
	"pagegraph/pkg/errors"
	"pagegraph/pkg/observability"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscloudwatch "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const serviceName = "pagegraph"

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	var zcfg zap.Config
	if cfg.Environment == "production" {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}

	if level, err := zapcore.ParseLevel(cfg.LogLevel); err == nil {
		zcfg.Level = zap.NewAtomicLevelAt(level)
	}

	return zcfg.Build()
}

// ProvideDomainConfig derives the domain settings, letting the environment
// override the enrichment fan-out.
func ProvideDomainConfig(cfg *config.Config) (*domainconfig.DomainConfig, error) {
	dcfg := domainconfig.LoadDomainConfig(cfg.Environment)
	if cfg.EnrichmentConcurrency > 0 {
		dcfg.EnrichmentConcurrency = cfg.EnrichmentConcurrency
	}
	if cfg.EnrichmentTimeout > 0 {
		dcfg.EnrichmentTimeout = cfg.EnrichmentTimeout
	}
	if err := dcfg.Validate(); err != nil {
		return nil, errors.NewConfigurationError(err.Error())
	}
	return dcfg, nil
}

// ProvideTracer creates the X-Ray tracer
func ProvideTracer(cfg *config.Config) *observability.Tracer {
	return observability.NewTracer(serviceName, cfg.EnableTracing)
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideCloudWatchPublisher ships metrics to CloudWatch when metrics are
// enabled; otherwise it returns a nil publisher that discards everything.
func ProvideCloudWatchPublisher(awsCfg aws.Config, cfg *config.Config, logger *zap.Logger) *observability.CloudWatchPublisher {
	if !cfg.EnableMetrics {
		return nil
	}
	namespace := fmt.Sprintf("%s/%s", cfg.MetricsNamespace, cfg.Environment)
	return observability.NewCloudWatchPublisher(namespace, awscloudwatch.NewFromConfig(awsCfg), logger)
}

// ProvideMetrics creates metrics instance
func ProvideMetrics(publisher *observability.CloudWatchPublisher, cfg *config.Config) *observability.Metrics {
	return observability.NewMetrics(cfg.MetricsNamespace, publisher)
}

// ProvideHTTPClient creates the upstream HTTP client
func ProvideHTTPClient(cfg *config.Config, tracer *observability.Tracer) (*http.Client, error) {
	client, err := graphapi.NewHTTPClient(cfg.GraphBaseURL, cfg.UpstreamTimeout)
	if err != nil {
		return nil, errors.NewConfigurationError(err.Error())
	}
	return tracer.WrapClient(client), nil
}

// ProvideGraphAPI creates the Graph API client
func ProvideGraphAPI(
	cfg *config.Config,
	httpClient *http.Client,
	tracer *observability.Tracer,
	metrics *observability.Metrics,
	logger *zap.Logger,
) (ports.GraphAPI, error) {
	client, err := graphapi.NewClient(
		graphapi.Credential{AccessToken: cfg.AccessToken, Version: cfg.GraphAPIVersion},
		httpClient,
		tracer,
		metrics,
		logger,
	)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// ProvideQueryComposer creates the query composer
func ProvideQueryComposer(dcfg *domainconfig.DomainConfig) *services.QueryComposer {
	return services.NewQueryComposer(dcfg)
}

// ProvideNormalizer creates the entity normalizer
func ProvideNormalizer(logger *zap.Logger) *services.Normalizer {
	return services.NewNormalizer(logger)
}

// ProvideEnricher creates the enrichment engine over the user details lookup
func ProvideEnricher(
	graph ports.GraphAPI,
	dcfg *domainconfig.DomainConfig,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *services.Enricher {
	fields := domainconfig.DefaultFieldTables(dcfg)[domainconfig.RequestUserDetails]
	return services.NewEnricher(graph, fields, dcfg.EnrichmentConcurrency, dcfg.EnrichmentTimeout, metrics, logger)
}

// ProvideOrchestrator creates the request orchestrator
func ProvideOrchestrator(
	graph ports.GraphAPI,
	composer *services.QueryComposer,
	normalizer *services.Normalizer,
	enricher *services.Enricher,
	dcfg *domainconfig.DomainConfig,
	logger *zap.Logger,
) *queries_handlers.Orchestrator {
	return queries_handlers.NewOrchestrator(graph, composer, normalizer, enricher, dcfg, logger)
}

// ProvideQueryBus creates a query bus with registered handlers
func ProvideQueryBus(orchestrator *queries_handlers.Orchestrator, metrics *observability.Metrics) (*querybus.QueryBus, error) {
	queryBus := querybus.NewQueryBus()

	var mw *querybus.MetricsMiddleware
	if metrics != nil {
		mw = querybus.NewMetricsMiddleware(metrics)
	}

	pageHandler := queries_handlers.NewPageHandler(orchestrator)
	postHandler := queries_handlers.NewPostHandler(orchestrator)
	inboxHandler := queries_handlers.NewInboxHandler(orchestrator)

	registrations := []struct {
		query   querybus.Query
		handler querybus.QueryHandler
	}{
		{queries.GetPageInfoQuery{}, querybus.Typed(pageHandler.GetPageInfo)},
		{queries.GetFansQuery{}, querybus.Typed(pageHandler.GetFans)},
		{queries.ListMentionsQuery{}, querybus.Typed(pageHandler.ListMentions)},
		{queries.GetInsightsQuery{}, querybus.Typed(pageHandler.GetInsights)},
		{queries.ListPostsQuery{}, querybus.Typed(postHandler.ListPosts)},
		{queries.GetPostQuery{}, querybus.Typed(postHandler.GetPost)},
		{queries.ListCommentsQuery{}, querybus.Typed(postHandler.ListComments)},
		{queries.ListLikesQuery{}, querybus.Typed(postHandler.ListLikes)},
		{queries.SearchPostsQuery{}, querybus.Typed(postHandler.SearchPosts)},
		{queries.ListConversationsQuery{}, querybus.Typed(inboxHandler.ListConversations)},
		{queries.GetConversationQuery{}, querybus.Typed(inboxHandler.GetConversation)},
	}

	for _, reg := range registrations {
		if err := queryBus.Register(reg.query, mw.Wrap(reg.handler)); err != nil {
			return nil, err
		}
	}

	return queryBus, nil
}

// ProvideErrorHandler creates the error envelope writer
func ProvideErrorHandler(cfg *config.Config, logger *zap.Logger) *errors.ErrorHandler {
	return errors.NewErrorHandler(logger, !cfg.IsProduction())
}

// ProvideJWTValidator creates the service token validator. Without a secret
// authentication is off and nil is returned.
func ProvideJWTValidator(cfg *config.Config) (*auth.JWTValidator, error) {
	if cfg.JWTSecret == "" {
		return nil, nil
	}
	return auth.NewJWTValidator(auth.JWTConfig{
		SecretKey: cfg.JWTSecret,
		Issuer:    cfg.JWTIssuer,
	})
}

// ProvideRouter creates the HTTP router
func ProvideRouter(
	queryBus *querybus.QueryBus,
	errorHandler *errors.ErrorHandler,
	dcfg *domainconfig.DomainConfig,
	metrics *observability.Metrics,
	tracer *observability.Tracer,
	validator *auth.JWTValidator,
	cfg *config.Config,
	logger *zap.Logger,
) *rest.Router {
	return rest.NewRouter(queryBus, errorHandler, dcfg, metrics, tracer, validator, rest.Options{
		APIPrefix:       cfg.APIPrefix,
		GraphAPIVersion: graphapi.NormalizeVersion(cfg.GraphAPIVersion),
		EnableCORS:      cfg.EnableCORS,
		AllowedOrigins:  cfg.CORSAllowedOrigins,
	}, logger)
}
