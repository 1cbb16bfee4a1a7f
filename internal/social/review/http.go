// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/taibuivan/yamdb/internal/platform/request"
	"github.com/taibuivan/yamdb/internal/platform/respond"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/pkg/pagination"
)

// URL parameters read by the review routes. TitleParam is set by the
// enclosing title router.
const (
	TitleParam = "title_id"
	IDParam    = "review_id"
)

// Handler implements the HTTP layer for reviews.
type Handler struct {
	service *Service
}

// NewHandler constructs a new review [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

/*
Routes returns a [chi.Router] mounted under "/titles/{title_id}/reviews".

Parameters:
  - nested: http.Handler mounted at "/{review_id}/comments", may be nil
*/
func (handler *Handler) Routes(nested http.Handler) chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Post("/", handler.create)

	router.Route("/{"+IDParam+"}", func(r chi.Router) {
		r.Get("/", handler.get)
		r.Patch("/", handler.update)
		r.Delete("/", handler.delete)

		if nested != nil {
			r.Mount("/comments", nested)
		}
	})

	return router
}

// ids reads the title and, when withReview is set, the review identifiers.
func ids(request *http.Request, withReview bool) (titleID, reviewID int64, err error) {
	titleID, err = requestutil.Int64Param(request, TitleParam, "Title")
	if err != nil || !withReview {
		return titleID, 0, err
	}
	reviewID, err = requestutil.Int64Param(request, IDParam, "Review")
	return titleID, reviewID, err
}

// GET /v1/titles/{title_id}/reviews/.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	titleID, _, err := ids(request, false)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	reviews, total, err := handler.service.List(request.Context(), titleID, params.Limit, params.Offset)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, pagination.NewPage(request, params, reviews, total))
}

/*
POST /v1/titles/{title_id}/reviews/.

Response:
  - 201: The created review
  - 400: Validation failure or the caller already reviewed the title
  - 401: Authentication required
  - 404: Unknown title
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	actor := requestutil.Actor(request)
	if err := sec.AuthorOrStaffOrReadOnly(actor, sec.ActionCreate, 0); err != nil {
		respond.Error(writer, request, err)
		return
	}

	titleID, _, err := ids(request, false)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.Create(request.Context(), actor, titleID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, review)
}

// GET /v1/titles/{title_id}/reviews/{review_id}/.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := ids(request, true)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.Get(request.Context(), titleID, reviewID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, review)
}

// PATCH /v1/titles/{title_id}/reviews/{review_id}/.
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	actor, err := requestutil.RequiredActor(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	titleID, reviewID, err := ids(request, true)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	review, err := handler.service.Update(request.Context(), actor, titleID, reviewID, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, review)
}

// DELETE /v1/titles/{title_id}/reviews/{review_id}/.
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	titleID, reviewID, err := ids(request, true)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), requestutil.Actor(request), titleID, reviewID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
