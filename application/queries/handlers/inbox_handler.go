package handlers

import (
	"context"

	"pagegraph/application/queries"
	domainconfig "pagegraph/domain/config"
	"pagegraph/domain/core/entities"
	"pagegraph/domain/services"
)

// InboxHandler answers conversation queries
type InboxHandler struct {
	orchestrator *Orchestrator
}

// NewInboxHandler creates a new inbox handler
func NewInboxHandler(orchestrator *Orchestrator) *InboxHandler {
	return &InboxHandler{orchestrator: orchestrator}
}

// ListConversations returns one page of conversations, each with its latest
// messages embedded.
func (h *InboxHandler) ListConversations(ctx context.Context, q queries.ListConversationsQuery) (*entities.PagedCollection, error) {
	return h.orchestrator.collection(ctx, domainconfig.RequestConversations, entities.KindConversation, q.PageID,
		domainconfig.ConnectionConversations, q.Limit, services.ComposeParams{Limit: q.Limit})
}

// GetConversation returns one conversation with up to q.Limit messages
func (h *InboxHandler) GetConversation(ctx context.Context, q queries.GetConversationQuery) (entities.Record, error) {
	return h.orchestrator.object(ctx, domainconfig.RequestConversationDetail, entities.KindConversation, q.ConversationID,
		services.ComposeParams{Limit: q.Limit})
}
