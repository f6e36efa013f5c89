// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tribute

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/tributestream/internal/audit"
	"github.com/taibuivan/tributestream/internal/platform/middleware"
	requestutil "github.com/taibuivan/tributestream/internal/platform/request"
	"github.com/taibuivan/tributestream/internal/platform/respond"
	"github.com/taibuivan/tributestream/pkg/cmsquery"
)

// Handler implements the HTTP layer for /api/tributes.
type Handler struct {
	service  *Service
	recorder audit.Recorder
}

// NewHandler constructs a new tribute [Handler].
func NewHandler(service *Service, recorder audit.Recorder) *Handler {
	return &Handler{service: service, recorder: recorder}
}

// Routes returns a [chi.Router] configured with the tribute endpoints.
//
// # Endpoints
//   - GET    /     : List (public)
//   - GET    /{id} : Read (public)
//   - POST   /     : Create (session)
//   - PUT    /{id} : Update (session)
//   - DELETE /{id} : Delete (session)
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireSession)

		protected.With(handler.track(audit.ActionCreate)).Post("/", handler.create)
		protected.With(handler.track(audit.ActionUpdate)).Put("/{id}", handler.update)
		protected.With(handler.track(audit.ActionDelete)).Delete("/{id}", handler.delete)
	})

	return router
}

/*
GET /api/tributes.

Request:
  - Query descriptor (page, pageSize, sort, filters, fields, populate)

Response:
  - 200: {data: []Tribute, meta}
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	page, err := handler.service.List(request.Context(), requestutil.Token(request), cmsquery.Parse(request.URL.Query()))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.WithMeta(writer, page.Data, page.Meta)
}

// GET /api/tributes/{id}. Only fields and populate are forwarded.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	parsed := cmsquery.Parse(request.URL.Query())
	query := cmsquery.Query{Fields: parsed.Fields, Populate: parsed.Populate}

	tribute, err := handler.service.Get(request.Context(), requestutil.Token(request), requestutil.Param(request, "id"), query)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, tribute)
}

/*
POST /api/tributes.

Request:
  - Body: Attributes (name required, slug derived when omitted)

Response:
  - 200: {data: Tribute}
  - 400: VALIDATION_ERROR, no upstream call
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input Attributes
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	tribute, err := handler.service.Create(request.Context(), requestutil.Token(request), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, tribute)
}

// PUT /api/tributes/{id}.
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input Attributes
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	tribute, err := handler.service.Update(request.Context(), requestutil.Token(request), requestutil.Param(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, tribute)
}

// DELETE /api/tributes/{id}.
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	tribute, err := handler.service.Delete(request.Context(), requestutil.Token(request), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, tribute)
}

func (handler *Handler) track(action string) func(http.Handler) http.Handler {
	return audit.Track(handler.recorder, action, ResourceName)
}
