package handlers

import (
	"net/http"

	"pagegraph/application/queries"
	querybus "pagegraph/application/queries/bus"
	domainconfig "pagegraph/domain/config"
	"pagegraph/pkg/errors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// InboxHandler handles conversation HTTP requests
type InboxHandler struct {
	base
}

// NewInboxHandler creates a new inbox handler
func NewInboxHandler(queryBus *querybus.QueryBus, errorHandler *errors.ErrorHandler, cfg *domainconfig.DomainConfig, logger *zap.Logger) *InboxHandler {
	return &InboxHandler{base: newBase(queryBus, errorHandler, cfg, logger)}
}

// ListConversations handles GET /conversations
func (h *InboxHandler) ListConversations(w http.ResponseWriter, r *http.Request) {
	limit, err := h.listLimit(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.ask(w, r, queries.ListConversationsQuery{PageID: h.pageID(r), Limit: limit})
}

// GetConversation handles GET /conversations/{conversationID}
func (h *InboxHandler) GetConversation(w http.ResponseWriter, r *http.Request) {
	limit, err := h.listLimit(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.ask(w, r, queries.GetConversationQuery{
		ConversationID: chi.URLParam(r, "conversationID"),
		Limit:          limit,
	})
}
