package handlers

import (
	"context"
	"strings"

	"pagegraph/application/queries"
	domainconfig "pagegraph/domain/config"
	"pagegraph/domain/core/entities"
	"pagegraph/domain/services"

	"go.uber.org/zap"
)

// PostHandler answers post queries, including the enriched comment and like
// lists and message search.
type PostHandler struct {
	orchestrator *Orchestrator
}

// NewPostHandler creates a new post handler
func NewPostHandler(orchestrator *Orchestrator) *PostHandler {
	return &PostHandler{orchestrator: orchestrator}
}

// ListPosts returns one page of the page's posts
func (h *PostHandler) ListPosts(ctx context.Context, q queries.ListPostsQuery) (*entities.PagedCollection, error) {
	return h.orchestrator.collection(ctx, domainconfig.RequestPosts, entities.KindPost, q.PageID,
		domainconfig.ConnectionPosts, q.Limit, services.ComposeParams{Limit: q.Limit})
}

// GetPost returns one post
func (h *PostHandler) GetPost(ctx context.Context, q queries.GetPostQuery) (entities.Record, error) {
	return h.orchestrator.object(ctx, domainconfig.RequestPostDetails, entities.KindPost, q.PostID,
		services.ComposeParams{})
}

// ListComments returns the post's comments with post_id set and commenter
// details merged where the lookup succeeded.
func (h *PostHandler) ListComments(ctx context.Context, q queries.ListCommentsQuery) (*entities.PagedCollection, error) {
	return h.orchestrator.collection(ctx, domainconfig.RequestComments, entities.KindComment, q.PostID,
		domainconfig.ConnectionComments, q.Limit, services.ComposeParams{Limit: q.Limit})
}

// ListLikes returns the post's likes with post_id set and liker details
// merged where the lookup succeeded.
func (h *PostHandler) ListLikes(ctx context.Context, q queries.ListLikesQuery) (*entities.PagedCollection, error) {
	return h.orchestrator.collection(ctx, domainconfig.RequestLikes, entities.KindLike, q.PostID,
		domainconfig.ConnectionLikes, q.Limit, services.ComposeParams{Limit: q.Limit})
}

// SearchPosts fetches limit times the overfetch factor of recent posts and
// keeps those whose message contains the text, case-insensitively. Matches
// that lie beyond the fetched window are not found. The text is matched as
// given, surrounding spaces included; only an empty text returns the plain
// listing.
func (h *PostHandler) SearchPosts(ctx context.Context, q queries.SearchPostsQuery) (*entities.PagedCollection, error) {
	text := q.Text
	fetch := q.Limit
	if text != "" {
		fetch = q.Limit * h.orchestrator.config.SearchOverfetchFactor
	}

	page, err := h.orchestrator.collection(ctx, domainconfig.RequestSearch, entities.KindPost, q.PageID,
		domainconfig.ConnectionPosts, fetch, services.ComposeParams{Limit: fetch})
	if err != nil {
		return nil, err
	}
	if text == "" {
		return page, nil
	}

	filtered := FilterByMessage(page, text, q.Limit)
	h.orchestrator.logger.Debug("Search filtered posts",
		zap.String("pageID", q.PageID),
		zap.Int("fetched", page.Len()),
		zap.Int("matched", filtered.Len()),
	)
	return filtered, nil
}

// FilterByMessage keeps the items whose message contains text, compared
// case-insensitively, in their original order and truncated to limit. Items
// without a string message never match. Paging is carried over unchanged.
func FilterByMessage(page *entities.PagedCollection, text string, limit int) *entities.PagedCollection {
	out := &entities.PagedCollection{Items: []entities.Record{}}
	if page == nil {
		return out
	}
	out.Kind = page.Kind
	out.Paging = page.Paging

	needle := strings.ToLower(text)
	for _, item := range page.Items {
		if limit > 0 && len(out.Items) >= limit {
			break
		}
		if strings.Contains(strings.ToLower(item.String("message")), needle) {
			out.Items = append(out.Items, item)
		}
	}
	return out
}
