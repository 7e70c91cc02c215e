package handlers

import (
	"fmt"
	"net/http"

	querybus "pagegraph/application/queries/bus"
	domainconfig "pagegraph/domain/config"
	"pagegraph/pkg/common"
	"pagegraph/pkg/errors"

	"go.uber.org/zap"
)

// base carries what every gateway handler needs: the query bus, the error
// envelope writer and the request bounds.
type base struct {
	queryBus     *querybus.QueryBus
	errorHandler *errors.ErrorHandler
	config       *domainconfig.DomainConfig
	logger       *zap.Logger
}

func newBase(queryBus *querybus.QueryBus, errorHandler *errors.ErrorHandler, cfg *domainconfig.DomainConfig, logger *zap.Logger) base {
	return base{
		queryBus:     queryBus,
		errorHandler: errorHandler,
		config:       cfg,
		logger:       logger,
	}
}

// ask dispatches the query and writes either the result or the error envelope
func (h *base) ask(w http.ResponseWriter, r *http.Request, query querybus.Query) {
	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.respondJSON(w, http.StatusOK, result)
}

func (h *base) pageID(r *http.Request) string {
	return common.ExtractString(r, "page_id", h.config.DefaultPageID)
}

func (h *base) postsLimit(r *http.Request) (int, error) {
	return h.limit(r, h.config.DefaultPostsLimit)
}

func (h *base) listLimit(r *http.Request) (int, error) {
	return h.limit(r, h.config.DefaultListLimit)
}

// limit rejects out-of-range values instead of clamping them.
func (h *base) limit(r *http.Request, def int) (int, error) {
	limit, err := common.ExtractLimit(r, def)
	if err != nil {
		return 0, err
	}
	if !h.config.InLimitRange(limit) {
		return 0, errors.NewInvalidArgument("invalid limit").
			WithDetails(fmt.Sprintf("limit must be between %d and %d, got %d", h.config.MinLimit, h.config.MaxLimit, limit))
	}
	return limit, nil
}

// Helper methods

func (h *base) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	if err := common.RespondJSON(w, status, data); err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (h *base) respondError(w http.ResponseWriter, r *http.Request, err error) {
	h.errorHandler.Handle(w, r, err)
}
