package handlers

import (
	"context"

	"pagegraph/application/ports"
	domainconfig "pagegraph/domain/config"
	"pagegraph/domain/core/entities"
	"pagegraph/domain/services"

	"go.uber.org/zap"
)

// Orchestrator runs one request through compose, fetch, normalize and, for
// comments and likes, enrich. Each request is independent; nothing is shared
// between requests except the upstream client.
type Orchestrator struct {
	graph      ports.GraphAPI
	composer   *services.QueryComposer
	normalizer *services.Normalizer
	enricher   *services.Enricher
	config     *domainconfig.DomainConfig
	logger     *zap.Logger
}

// NewOrchestrator creates a new request orchestrator
func NewOrchestrator(
	graph ports.GraphAPI,
	composer *services.QueryComposer,
	normalizer *services.Normalizer,
	enricher *services.Enricher,
	cfg *domainconfig.DomainConfig,
	logger *zap.Logger,
) *Orchestrator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		graph:      graph,
		composer:   composer,
		normalizer: normalizer,
		enricher:   enricher,
		config:     cfg,
		logger:     logger,
	}
}

// object fetches and normalizes a single upstream object
func (o *Orchestrator) object(ctx context.Context, req domainconfig.RequestKind, kind entities.Kind, id string, p services.ComposeParams) (entities.Record, error) {
	q, err := o.composer.Compose(req, p)
	if err != nil {
		o.failed(req, id, "compose", err)
		return nil, err
	}
	o.stage(req, id, "composed", zap.String("fields", q.Fields.String()))

	raw, err := o.graph.GetObject(ctx, id, q.Fields)
	if err != nil {
		o.failed(req, id, "fetch", err)
		return nil, err
	}
	o.stage(req, id, "fetched")

	rec, _ := o.normalizer.Object(kind, raw)
	o.stage(req, id, "normalized")
	return rec, nil
}

// collection fetches one page of a connection, normalizes it and enriches
// comment and like items. Enrichment failures never fail the request.
func (o *Orchestrator) collection(ctx context.Context, req domainconfig.RequestKind, kind entities.Kind, id, connection string, limit int, p services.ComposeParams) (*entities.PagedCollection, error) {
	q, err := o.composer.Compose(req, p)
	if err != nil {
		o.failed(req, id, "compose", err)
		return nil, err
	}
	o.stage(req, id, "composed", zap.String("fields", q.Fields.String()))

	raw, err := o.graph.GetConnection(ctx, id, connection, q.Fields, limit, q.Params)
	if err != nil {
		o.failed(req, id, "fetch", err)
		return nil, err
	}
	o.stage(req, id, "fetched", zap.Int("count", len(raw.Data)))

	page, _ := o.normalizer.Collection(kind, raw, id)
	o.stage(req, id, "normalized")

	if o.enricher != nil && services.Applies(kind) {
		results := o.enricher.Enrich(ctx, kind, page.Items)
		enriched := 0
		for _, r := range results {
			if r.Status == services.Enriched {
				enriched++
			}
		}
		o.stage(req, id, "enriched", zap.Int("enriched", enriched), zap.Int("total", len(results)))
	}

	return page, nil
}

func (o *Orchestrator) stage(req domainconfig.RequestKind, id, stage string, fields ...zap.Field) {
	if ce := o.logger.Check(zap.DebugLevel, "Request stage"); ce != nil {
		ce.Write(append([]zap.Field{
			zap.String("request", string(req)),
			zap.String("id", id),
			zap.String("stage", stage),
		}, fields...)...)
	}
}

func (o *Orchestrator) failed(req domainconfig.RequestKind, id, stage string, err error) {
	o.logger.Warn("Request failed",
		zap.String("request", string(req)),
		zap.String("id", id),
		zap.String("stage", stage),
		zap.Error(err),
	)
}
