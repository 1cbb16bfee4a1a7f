// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/yamdb/internal/platform/request"
	"github.com/taibuivan/yamdb/internal/platform/respond"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/pkg/pagination"
)

// URL parameters read by the comment routes. The first two are set by the
// enclosing title and review routers.
const (
	TitleParam  = "title_id"
	ReviewParam = "review_id"
	IDParam     = "comment_id"
)

// Handler implements the HTTP layer for comments.
type Handler struct {
	service *Service
}

// NewHandler constructs a new comment [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] mounted under ".../reviews/{review_id}/comments".
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Post("/", handler.create)

	router.Get("/{"+IDParam+"}", handler.get)
	router.Patch("/{"+IDParam+"}", handler.update)
	router.Delete("/{"+IDParam+"}", handler.delete)

	return router
}

// path holds the identifiers parsed from the URL.
type path struct {
	titleID, reviewID, commentID int64
}

// parsePath reads the URL identifiers. The comment ID is only read when
// withComment is set.
func parsePath(request *http.Request, withComment bool) (path, error) {
	var (
		p   path
		err error
	)
	if p.titleID, err = requestutil.Int64Param(request, TitleParam, "Title"); err != nil {
		return p, err
	}
	if p.reviewID, err = requestutil.Int64Param(request, ReviewParam, "Review"); err != nil {
		return p, err
	}
	if withComment {
		p.commentID, err = requestutil.Int64Param(request, IDParam, "Comment")
	}
	return p, err
}

// GET .../reviews/{review_id}/comments/.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	p, err := parsePath(request, false)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	comments, total, err := handler.service.List(request.Context(), p.titleID, p.reviewID, params.Limit, params.Offset)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, pagination.NewPage(request, params, comments, total))
}

/*
POST .../reviews/{review_id}/comments/.

Response:
  - 201: The created comment
  - 400: Missing text
  - 401: Authentication required
  - 404: Unknown title or review, or the review belongs to another title
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	actor := requestutil.Actor(request)
	if err := sec.AuthorOrStaffOrReadOnly(actor, sec.ActionCreate, 0); err != nil {
		respond.Error(writer, request, err)
		return
	}

	p, err := parsePath(request, false)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.Create(request.Context(), actor, p.titleID, p.reviewID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}

// GET .../comments/{comment_id}/.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	p, err := parsePath(request, true)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.Get(request.Context(), p.titleID, p.reviewID, p.commentID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

// PATCH .../comments/{comment_id}/.
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	p, err := parsePath(request, true)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input Input
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.Update(request.Context(), actor, p.titleID, p.reviewID, p.commentID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comment)
}

// DELETE .../comments/{comment_id}/.
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	p, err := parsePath(request, true)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), requestutil.Actor(request), p.titleID, p.reviewID, p.commentID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
