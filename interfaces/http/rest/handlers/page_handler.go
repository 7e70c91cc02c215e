package handlers

import (
	"net/http"

	"pagegraph/application/queries"
	querybus "pagegraph/application/queries/bus"
	domainconfig "pagegraph/domain/config"
	"pagegraph/pkg/common"
	"pagegraph/pkg/errors"

	"go.uber.org/zap"
)

// defaultInsightMetrics is what /insights asks for when no metric is given
var defaultInsightMetrics = []string{"page_impressions", "page_engaged_users", "page_fans"}

// PageHandler handles page-level HTTP requests
type PageHandler struct {
	base
}

// NewPageHandler creates a new page handler
func NewPageHandler(queryBus *querybus.QueryBus, errorHandler *errors.ErrorHandler, cfg *domainconfig.DomainConfig, logger *zap.Logger) *PageHandler {
	return &PageHandler{base: newBase(queryBus, errorHandler, cfg, logger)}
}

// GetPageInfo handles GET /page-info
func (h *PageHandler) GetPageInfo(w http.ResponseWriter, r *http.Request) {
	h.ask(w, r, queries.GetPageInfoQuery{
		PageID: h.pageID(r),
		Fields: common.ExtractRaw(r, "fields"),
	})
}

// GetFans handles GET /fans
func (h *PageHandler) GetFans(w http.ResponseWriter, r *http.Request) {
	limit, err := h.listLimit(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.ask(w, r, queries.GetFansQuery{PageID: h.pageID(r), Limit: limit})
}

// ListMentions handles GET /mentions
func (h *PageHandler) ListMentions(w http.ResponseWriter, r *http.Request) {
	limit, err := h.listLimit(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.ask(w, r, queries.ListMentionsQuery{PageID: h.pageID(r), Limit: limit})
}

// GetInsights handles GET /insights
func (h *PageHandler) GetInsights(w http.ResponseWriter, r *http.Request) {
	limit, err := h.listLimit(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}

	metrics := common.ExtractList(r, "metrics")
	if len(metrics) == 0 {
		metrics = defaultInsightMetrics
	}

	h.ask(w, r, queries.GetInsightsQuery{
		PageID:  h.pageID(r),
		Metrics: metrics,
		Period:  common.ExtractString(r, "period", domainconfig.DefaultInsightPeriod),
		Limit:   limit,
	})
}
