// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package funeralhome

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/tributestream/internal/audit"
	"github.com/taibuivan/tributestream/internal/platform/middleware"
	requestutil "github.com/taibuivan/tributestream/internal/platform/request"
	"github.com/taibuivan/tributestream/internal/platform/respond"
	"github.com/taibuivan/tributestream/pkg/cmsquery"
)

// # Handler Implementation

// Handler implements the HTTP layer for /api/funeral-homes.
type Handler struct {
	service  *Service
	recorder audit.Recorder
}

// NewHandler constructs a new funeral home [Handler].
func NewHandler(service *Service, recorder audit.Recorder) *Handler {
	return &Handler{service: service, recorder: recorder}
}

// Routes returns a [chi.Router] configured with the funeral home endpoints.
//
// # Routing Strategy
//
//   - Discovery (Public): list and read, token forwarded when present.
//   - Management (Session): create, update and delete.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public Discovery Endpoints
	router.Get("/", handler.list)
	router.Get("/{id}", handler.get)

	// ## Management (Session Protected)
	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireSession)

		protected.With(audit.Track(handler.recorder, audit.ActionCreate, ResourceName)).Post("/", handler.create)
		protected.With(audit.Track(handler.recorder, audit.ActionUpdate, ResourceName)).Put("/{id}", handler.update)
		protected.With(audit.Track(handler.recorder, audit.ActionDelete, ResourceName)).Delete("/{id}", handler.delete)
	})

	return router
}

/*
GET /api/funeral-homes.

Description: Lists funeral homes. Pagination, sort, filters, fields and
populate are forwarded to the CMS in its bracketed form.

Request:
  - page, pageSize: int
  - sort: string (e.g. name:asc, comma separated or sort[0]=...)
  - filters[field][$op]: string
  - fields, populate: string

Response:
  - 200: {data: []FuneralHome, meta}
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	query := cmsquery.Parse(request.URL.Query())

	page, err := handler.service.List(request.Context(), requestutil.Token(request), query)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.WithMeta(writer, page.Data, page.Meta)
}

/*
GET /api/funeral-homes/{id}.

Request:
  - id: string (numeric id or documentId)
  - fields, populate: string

Response:
  - 200: {data: FuneralHome}
  - 404: Not found upstream
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	query := readQuery(request)

	home, err := handler.service.Get(request.Context(), requestutil.Token(request), requestutil.Param(request, "id"), query)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, home)
}

/*
POST /api/funeral-homes.

Request:
  - Body: Attributes (name and address required)

Response:
  - 200: {data: FuneralHome}
  - 400: VALIDATION_ERROR, no upstream call
  - 401: No session
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input Attributes
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	home, err := handler.service.Create(request.Context(), requestutil.Token(request), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, home)
}

/*
PUT /api/funeral-homes/{id}.

Request:
  - Body: Attributes (only present fields are validated and sent)

Response:
  - 200: {data: FuneralHome}
  - 400: VALIDATION_ERROR, no upstream call
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input Attributes
	if err := requestutil.DecodeJSON(writer, request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	home, err := handler.service.Update(request.Context(), requestutil.Token(request), requestutil.Param(request, "id"), input)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, home)
}

/*
DELETE /api/funeral-homes/{id}.

Response:
  - 200: {data: FuneralHome | null}
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	home, err := handler.service.Delete(request.Context(), requestutil.Token(request), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, home)
}

// readQuery keeps the two parameters a single-record read honours.
func readQuery(request *http.Request) cmsquery.Query {
	parsed := cmsquery.Parse(request.URL.Query())
	return cmsquery.Query{Fields: parsed.Fields, Populate: parsed.Populate}
}
