package queries

// GetPageInfoQuery fetches the page object. Fields, when non-empty, is sent
// upstream in place of the default field list.
type GetPageInfoQuery struct {
	PageID string `param:"page_id" validate:"required,excludesall=/?#&"`
	Fields string `param:"fields"`
}

// Validate validates the query
func (q GetPageInfoQuery) Validate() error {
	return validate(q)
}

// GetFansQuery fetches the page_fans insight of a page
type GetFansQuery struct {
	PageID string `param:"page_id" validate:"required,excludesall=/?#&"`
	Limit  int    `param:"limit" validate:"min=1,max=100"`
}

// Validate validates the query
func (q GetFansQuery) Validate() error {
	return validate(q)
}

// ListMentionsQuery lists posts the page is tagged in
type ListMentionsQuery struct {
	PageID string `param:"page_id" validate:"required,excludesall=/?#&"`
	Limit  int    `param:"limit" validate:"min=1,max=100"`
}

// Validate validates the query
func (q ListMentionsQuery) Validate() error {
	return validate(q)
}

// GetInsightsQuery fetches page insights. Metrics may hold repeated or comma
// separated names; an empty list selects the default metrics. Period is
// checked when the upstream query is composed.
type GetInsightsQuery struct {
	PageID  string   `param:"page_id" validate:"required,excludesall=/?#&"`
	Metrics []string `param:"metrics"`
	Period  string   `param:"period"`
	Limit   int      `param:"limit" validate:"min=1,max=100"`
}

// Validate validates the query
func (q GetInsightsQuery) Validate() error {
	return validate(q)
}
