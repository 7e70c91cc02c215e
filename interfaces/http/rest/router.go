package rest

import (
	"net/http"
	"sort"
	"strings"

	querybus "pagegraph/application/queries/bus"
	domainconfig "pagegraph/domain/config"
	"pagegraph/interfaces/http/rest/handlers"
	"pagegraph/interfaces/http/rest/middleware"
	"pagegraph/pkg/auth"
	"pagegraph/pkg/common"
	"pagegraph/pkg/errors"
	"pagegraph/pkg/observability"
	"pagegraph/pkg/utils"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// Options controls the HTTP surface
type Options struct {
	APIPrefix       string
	GraphAPIVersion string
	EnableCORS      bool
	AllowedOrigins  []string
}

// Router creates and configures the HTTP router
type Router struct {
	queryBus     *querybus.QueryBus
	errorHandler *errors.ErrorHandler
	config       *domainconfig.DomainConfig
	metrics      *observability.Metrics
	tracer       *observability.Tracer
	validator    *auth.JWTValidator
	options      Options
	logger       *zap.Logger
}

// NewRouter creates a new router instance. metrics, tracer and validator are
// optional.
func NewRouter(
	queryBus *querybus.QueryBus,
	errorHandler *errors.ErrorHandler,
	cfg *domainconfig.DomainConfig,
	metrics *observability.Metrics,
	tracer *observability.Tracer,
	validator *auth.JWTValidator,
	options Options,
	logger *zap.Logger,
) *Router {
	return &Router{
		queryBus:     queryBus,
		errorHandler: errorHandler,
		config:       cfg,
		metrics:      metrics,
		tracer:       tracer,
		validator:    validator,
		options:      options,
		logger:       logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	// Global middleware
	router.Use(middleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))
	router.Use(rt.errorHandler.Middleware)
	router.Use(rt.tracer.Handler)
	router.Use(rt.versionMiddleware)

	if rt.options.EnableCORS {
		origins := rt.options.AllowedOrigins
		if len(origins) == 0 {
			origins = []string{"*"}
		}
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins: origins,
			AllowedMethods: []string{"GET", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", middleware.RequestIDHeader},
			ExposedHeaders: []string{middleware.RequestIDHeader},
			MaxAge:         300,
		}))
	}

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		rt.errorHandler.Handle(w, r, errors.NewNotFoundError("route "+r.URL.Path))
	})
	router.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		rt.errorHandler.HandleStatus(w, r, http.StatusMethodNotAllowed, "method not allowed")
	})

	router.Get("/", rt.root)
	router.Get("/health", rt.healthCheck)
	router.Get("/ready", rt.readinessCheck)
	router.Get("/docs", rt.docs(router))
	if rt.metrics != nil {
		router.Handle("/metrics", rt.metrics.Handler())
	}

	// The gateway answers both at the root and under the API prefix.
	router.Group(rt.gatewayRoutes)
	if prefix := strings.TrimRight(rt.options.APIPrefix, "/"); prefix != "" {
		router.Route(prefix, rt.gatewayRoutes)
	}

	return router
}

func (rt *Router) gatewayRoutes(r chi.Router) {
	r.Use(middleware.Authenticate(rt.validator, rt.errorHandler, rt.logger))

	pageHandler := handlers.NewPageHandler(rt.queryBus, rt.errorHandler, rt.config, rt.logger)
	postHandler := handlers.NewPostHandler(rt.queryBus, rt.errorHandler, rt.config, rt.logger)
	inboxHandler := handlers.NewInboxHandler(rt.queryBus, rt.errorHandler, rt.config, rt.logger)

	r.Get("/page-info", pageHandler.GetPageInfo)
	r.Get("/fans", pageHandler.GetFans)
	r.Get("/mentions", pageHandler.ListMentions)
	r.Get("/insights", pageHandler.GetInsights)

	r.Route("/posts", func(r chi.Router) {
		r.Get("/", postHandler.ListPosts)
		r.Get("/{postID}", postHandler.GetPost)
		r.Get("/{postID}/comments", postHandler.ListComments)
		r.Get("/{postID}/likes", postHandler.ListLikes)
	})
	r.Get("/search", postHandler.SearchPosts)

	r.Route("/conversations", func(r chi.Router) {
		r.Get("/", inboxHandler.ListConversations)
		r.Get("/{conversationID}", inboxHandler.GetConversation)
	})
}

// root reports that the gateway is up
func (rt *Router) root(w http.ResponseWriter, req *http.Request) {
	_ = common.RespondJSON(w, http.StatusOK, common.StatusResponse{
		Status:  "online",
		Message: "Facebook Graph API gateway is running",
		DocsURL: "/docs",
	})
}

// healthCheck handles health check requests
func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	_ = common.RespondJSON(w, http.StatusOK, common.StatusResponse{
		Status:    "healthy",
		Timestamp: utils.NowRFC3339(),
	})
}

// readinessCheck handles readiness check requests. The gateway holds no
// connections, so it is ready as soon as it serves.
func (rt *Router) readinessCheck(w http.ResponseWriter, req *http.Request) {
	_ = common.RespondJSON(w, http.StatusOK, common.StatusResponse{
		Status:  "ready",
		Version: rt.options.GraphAPIVersion,
	})
}

// docs lists every GET route the router serves
func (rt *Router) docs(router chi.Routes) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		var routes []string
		_ = chi.Walk(router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
			if method == http.MethodGet {
				routes = append(routes, strings.Replace(route, "/*/", "/", -1))
			}
			return nil
		})
		sort.Strings(routes)
		_ = common.RespondJSON(w, http.StatusOK, map[string]interface{}{"routes": routes})
	}
}

// versionMiddleware adds API version headers to all responses
func (rt *Router) versionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-API-Version", "v1")
		if rt.options.GraphAPIVersion != "" {
			w.Header().Set("X-Graph-API-Version", rt.options.GraphAPIVersion)
		}
		next.ServeHTTP(w, r)
	})
}
