package handlers

import (
	"context"

	"pagegraph/application/queries"
	domainconfig "pagegraph/domain/config"
	"pagegraph/domain/core/entities"
	"pagegraph/domain/services"
)

// PageHandler answers page-level queries: page info, fans, mentions and
// insights.
type PageHandler struct {
	orchestrator *Orchestrator
}

// NewPageHandler creates a new page handler
func NewPageHandler(orchestrator *Orchestrator) *PageHandler {
	return &PageHandler{orchestrator: orchestrator}
}

// GetPageInfo returns the page record
func (h *PageHandler) GetPageInfo(ctx context.Context, q queries.GetPageInfoQuery) (entities.Record, error) {
	return h.orchestrator.object(ctx, domainconfig.RequestPageInfo, entities.KindPage, q.PageID,
		services.ComposeParams{Override: q.Fields})
}

// GetFans returns the page_fans insight
func (h *PageHandler) GetFans(ctx context.Context, q queries.GetFansQuery) (*entities.PagedCollection, error) {
	return h.orchestrator.collection(ctx, domainconfig.RequestFans, entities.KindInsight, q.PageID,
		domainconfig.ConnectionInsights, q.Limit, services.ComposeParams{Limit: q.Limit})
}

// ListMentions returns posts the page is tagged in
func (h *PageHandler) ListMentions(ctx context.Context, q queries.ListMentionsQuery) (*entities.PagedCollection, error) {
	return h.orchestrator.collection(ctx, domainconfig.RequestMentions, entities.KindMention, q.PageID,
		domainconfig.ConnectionTagged, q.Limit, services.ComposeParams{Limit: q.Limit})
}

// GetInsights returns the requested metrics over period. An unknown period
// fails before any upstream call.
func (h *PageHandler) GetInsights(ctx context.Context, q queries.GetInsightsQuery) (*entities.PagedCollection, error) {
	return h.orchestrator.collection(ctx, domainconfig.RequestInsights, entities.KindInsight, q.PageID,
		domainconfig.ConnectionInsights, q.Limit, services.ComposeParams{
			Limit:   q.Limit,
			Metrics: q.Metrics,
			Period:  q.Period,
		})
}
