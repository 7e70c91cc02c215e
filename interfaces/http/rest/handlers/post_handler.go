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

// PostHandler handles post HTTP requests
type PostHandler struct {
	base
}

// NewPostHandler creates a new post handler
func NewPostHandler(queryBus *querybus.QueryBus, errorHandler *errors.ErrorHandler, cfg *domainconfig.DomainConfig, logger *zap.Logger) *PostHandler {
	return &PostHandler{base: newBase(queryBus, errorHandler, cfg, logger)}
}

// ListPosts handles GET /posts
func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	limit, err := h.postsLimit(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.ask(w, r, queries.ListPostsQuery{PageID: h.pageID(r), Limit: limit})
}

// GetPost handles GET /posts/{postID}
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	h.ask(w, r, queries.GetPostQuery{PostID: chi.URLParam(r, "postID")})
}

// ListComments handles GET /posts/{postID}/comments
func (h *PostHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	limit, err := h.listLimit(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.ask(w, r, queries.ListCommentsQuery{PostID: chi.URLParam(r, "postID"), Limit: limit})
}

// ListLikes handles GET /posts/{postID}/likes
func (h *PostHandler) ListLikes(w http.ResponseWriter, r *http.Request) {
	limit, err := h.listLimit(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.ask(w, r, queries.ListLikesQuery{PostID: chi.URLParam(r, "postID"), Limit: limit})
}

// SearchPosts handles GET /search
func (h *PostHandler) SearchPosts(w http.ResponseWriter, r *http.Request) {
	if !r.URL.Query().Has("query") {
		h.respondError(w, r, errors.NewInvalidArgument("query is required"))
		return
	}
	limit, err := h.postsLimit(r)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	h.ask(w, r, queries.SearchPostsQuery{
		PageID: h.pageID(r),
		Text:   r.URL.Query().Get("query"),
		Limit:  limit,
	})
}
