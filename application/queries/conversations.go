package queries

// ListConversationsQuery lists the page inbox. Each conversation embeds its
// latest messages.
type ListConversationsQuery struct {
	PageID string `param:"page_id" validate:"required,excludesall=/?#&"`
	Limit  int    `param:"limit" validate:"min=1,max=100"`
}

// Validate validates the query
func (q ListConversationsQuery) Validate() error {
	return validate(q)
}

// GetConversationQuery fetches one conversation with up to Limit messages
type GetConversationQuery struct {
	ConversationID string `param:"conversation_id" validate:"required,excludesall=/?#&"`
	Limit          int    `param:"limit" validate:"min=1,max=100"`
}

// Validate validates the query
func (q GetConversationQuery) Validate() error {
	return validate(q)
}
