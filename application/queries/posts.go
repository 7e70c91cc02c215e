package queries

// ListPostsQuery lists the most recent posts of a page
type ListPostsQuery struct {
	PageID string `param:"page_id" validate:"required,excludesall=/?#&"`
	Limit  int    `param:"limit" validate:"min=1,max=100"`
}

// Validate validates the query
func (q ListPostsQuery) Validate() error {
	return validate(q)
}

// GetPostQuery fetches one post
type GetPostQuery struct {
	PostID string `param:"post_id" validate:"required,excludesall=/?#&"`
}

// Validate validates the query
func (q GetPostQuery) Validate() error {
	return validate(q)
}

// ListCommentsQuery lists the comments of a post, each enriched with its
// commenter's details when the lookup succeeds.
type ListCommentsQuery struct {
	PostID string `param:"post_id" validate:"required,excludesall=/?#&"`
	Limit  int    `param:"limit" validate:"min=1,max=100"`
}

// Validate validates the query
func (q ListCommentsQuery) Validate() error {
	return validate(q)
}

// ListLikesQuery lists the likes of a post, each enriched with the liker's
// details when the lookup succeeds.
type ListLikesQuery struct {
	PostID string `param:"post_id" validate:"required,excludesall=/?#&"`
	Limit  int    `param:"limit" validate:"min=1,max=100"`
}

// Validate validates the query
func (q ListLikesQuery) Validate() error {
	return validate(q)
}

// SearchPostsQuery filters a page's recent posts by a case-insensitive
// substring of their message. An empty Text returns the plain listing.
type SearchPostsQuery struct {
	PageID string `param:"page_id" validate:"required,excludesall=/?#&"`
	Text   string `param:"query"`
	Limit  int    `param:"limit" validate:"min=1,max=100"`
}

// Validate validates the query
func (q SearchPostsQuery) Validate() error {
	return validate(q)
}
