// Copyright (c) 2026 Yamdb. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package title

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/yamdb/internal/platform/apperr"
	requestutil "github.com/taibuivan/yamdb/internal/platform/request"
	"github.com/taibuivan/yamdb/internal/platform/respond"
	"github.com/taibuivan/yamdb/internal/platform/sec"
	"github.com/taibuivan/yamdb/pkg/convert"
	"github.com/taibuivan/yamdb/pkg/pagination"
)

// IDParam is the URL parameter carrying the title ID. Nested review and
// comment routes read it too.
const IDParam = "title_id"

// Handler implements the HTTP layer for titles.
type Handler struct {
	service *Service
}

// NewHandler constructs a new title [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

/*
Routes returns a [chi.Router] for the catalogue.

Parameters:
  - nested: http.Handler mounted at "/{title_id}/reviews", may be nil
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
			r.Mount("/reviews", nested)
		}
	})

	return router
}

/*
GET /v1/titles/.

Query:
  - name: substring of the title name
  - year: exact year
  - category, category__slug: exact category slug
  - genre, genre__slug: exact genre slug
  - limit, offset: pagination
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	filter, err := filterFromQuery(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	params := pagination.FromRequest(request)
	filter.Limit, filter.Offset = params.Limit, params.Offset

	titles, total, err := handler.service.List(request.Context(), filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, pagination.NewPage(request, params, titles, total))
}

// filterFromQuery reads the listing filters. Either spelling of the slug
// filters is accepted; the "__slug" form wins when both are present.
func filterFromQuery(request *http.Request) (Filter, error) {
	query := request.URL.Query()

	filter := Filter{
		Name:     query.Get("name"),
		Category: firstNonEmpty(query.Get("category__slug"), query.Get("category")),
		Genre:    firstNonEmpty(query.Get("genre__slug"), query.Get("genre")),
	}

	if raw := query.Get("year"); raw != "" {
		filter.Year = convert.ToIntPtr(raw)
		if filter.Year == nil {
			return Filter{}, apperr.FieldInvalid(FieldYear, "Enter a whole number")
		}
	}
	return filter, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if value != "" {
			return value
		}
	}
	return ""
}

/*
POST /v1/titles/.

Response:
  - 201: The created title
  - 400: Validation failure or unknown category/genre slug
  - 401/403: Caller is not an admin
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	actor := requestutil.Actor(request)
	if err := sec.AdminOrReadOnly(actor, sec.ActionCreate); err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input CreateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.service.Create(request.Context(), actor, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, title)
}

// GET /v1/titles/{title_id}/.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, IDParam, "Title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.service.Get(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, title)
}

// PATCH /v1/titles/{title_id}/.
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	actor := requestutil.Actor(request)
	if err := sec.AdminOrReadOnly(actor, sec.ActionUpdate); err != nil {
		respond.Error(writer, request, err)
		return
	}

	id, err := requestutil.Int64Param(request, IDParam, "Title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input UpdateInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	title, err := handler.service.Update(request.Context(), actor, id, input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, title)
}

// DELETE /v1/titles/{title_id}/.
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	id, err := requestutil.Int64Param(request, IDParam, "Title")
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), requestutil.Actor(request), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
