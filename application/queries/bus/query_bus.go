package bus

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"pagegraph/pkg/errors"
	"pagegraph/pkg/observability"
)

// Query is a read-only request to the gateway. Validate runs before any
// handler sees the query.
type Query interface {
	Validate() error
}

// QueryHandler answers one query type
type QueryHandler interface {
	Handle(ctx context.Context, query Query) (interface{}, error)
}

// QueryHandlerFunc lets a plain function serve as a handler
type QueryHandlerFunc func(ctx context.Context, query Query) (interface{}, error)

// Handle implements QueryHandler
func (f QueryHandlerFunc) Handle(ctx context.Context, query Query) (interface{}, error) {
	return f(ctx, query)
}

// Typed turns a handler method taking a concrete query into a QueryHandler.
func Typed[Q Query, R any](fn func(context.Context, Q) (R, error)) QueryHandler {
	return QueryHandlerFunc(func(ctx context.Context, query Query) (interface{}, error) {
		q, ok := query.(Q)
		if !ok {
			return nil, errors.NewInternalError(fmt.Sprintf("handler for %T received %T", *new(Q), query))
		}
		return fn(ctx, q)
	})
}

// QueryBus routes each query to the handler registered for its type
type QueryBus struct {
	handlers map[reflect.Type]QueryHandler
	mu       sync.RWMutex
}

// NewQueryBus creates an empty query bus
func NewQueryBus() *QueryBus {
	return &QueryBus{
		handlers: make(map[reflect.Type]QueryHandler),
	}
}

// Register binds handler to the type of query. A second registration for
// the same type is a ConfigurationError.
func (b *QueryBus) Register(query Query, handler QueryHandler) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	t := reflect.TypeOf(query)
	if _, exists := b.handlers[t]; exists {
		return errors.NewConfigurationError(fmt.Sprintf("handler already registered for %s", queryName(query)))
	}

	b.handlers[t] = handler
	return nil
}

// Ask validates the query and hands it to its handler. Validation failures
// come back as InvalidArgument and never reach the handler; handler errors
// are returned unchanged so their status survives to the envelope.
func (b *QueryBus) Ask(ctx context.Context, query Query) (interface{}, error) {
	if err := query.Validate(); err != nil {
		if errors.IsAppError(err) {
			return nil, err
		}
		return nil, errors.NewInvalidArgument("invalid query").WithCause(err)
	}

	b.mu.RLock()
	handler, exists := b.handlers[reflect.TypeOf(query)]
	b.mu.RUnlock()

	if !exists {
		return nil, errors.NewInternalError(fmt.Sprintf("no handler registered for %s", queryName(query)))
	}

	return handler.Handle(ctx, query)
}

// queryName is the bare type name of a query, pointer or not.
func queryName(query Query) string {
	t := reflect.TypeOf(query)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// Metrics receives per-query counters and timings
type Metrics interface {
	StartTimer(metric, label string) Timer
	Increment(metric, label string)
}

// Timer is stopped once the query finishes
type Timer = observability.Timer

// MetricsMiddleware counts and times every query by type
type MetricsMiddleware struct {
	metrics Metrics
}

// NewMetricsMiddleware creates a new metrics middleware
func NewMetricsMiddleware(metrics Metrics) *MetricsMiddleware {
	return &MetricsMiddleware{metrics: metrics}
}

// Wrap wraps a query handler with metrics. A nil middleware returns next.
func (m *MetricsMiddleware) Wrap(next QueryHandler) QueryHandler {
	if m == nil || m.metrics == nil {
		return next
	}
	return QueryHandlerFunc(func(ctx context.Context, query Query) (interface{}, error) {
		name := queryName(query)

		timer := m.metrics.StartTimer("query_duration", name)
		defer timer.Stop()

		m.metrics.Increment("query_count", name)

		result, err := next.Handle(ctx, query)
		if err != nil {
			m.metrics.Increment("query_errors", name)
			return nil, err
		}

		m.metrics.Increment("query_success", name)
		return result, nil
	})
}
