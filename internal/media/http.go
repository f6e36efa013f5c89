// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package media

import (
	"errors"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/tributestream/internal/audit"
	"github.com/taibuivan/tributestream/internal/platform/apperr"
	"github.com/taibuivan/tributestream/internal/platform/constants"
	"github.com/taibuivan/tributestream/internal/platform/middleware"
	requestutil "github.com/taibuivan/tributestream/internal/platform/request"
	"github.com/taibuivan/tributestream/internal/platform/respond"
	"github.com/taibuivan/tributestream/pkg/cmsquery"
)

// formMemory is how much of a multipart body is kept in RAM; the rest spills
// to temporary files.
const formMemory = 8 << 20

// Handler implements the HTTP layer for /api/upload.
type Handler struct {
	service  *Service
	recorder audit.Recorder
}

// NewHandler constructs a new media [Handler].
func NewHandler(service *Service, recorder audit.Recorder) *Handler {
	return &Handler{service: service, recorder: recorder}
}

// Routes returns a [chi.Router] configured with the upload endpoints.
//
// # Endpoints
//   - POST   /           : Upload (session)
//   - GET    /           : List files, or one file with ?id=
//   - GET    /files      : List files
//   - GET    /files/{id} : File information
//   - DELETE /files/{id} : Delete (session)
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listOrGet)
	router.Get("/files", handler.list)
	router.Get("/files/{id}", handler.get)

	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireSession)

		protected.With(audit.Track(handler.recorder, audit.ActionUpload, ResourceName)).Post("/", handler.upload)
		protected.With(audit.Track(handler.recorder, audit.ActionDelete, ResourceName)).Delete("/files/{id}", handler.delete)
	})

	return router
}

/*
POST /api/upload.

Request:
  - Content-Type: multipart/form-data
  - files: one or more file parts
  - refId, ref, field, path: optional link fields

Response:
  - 200: {data: []File}
  - 400: Not multipart, or no files (no upstream call)
  - 413: Body larger than the upload limit
*/
func (handler *Handler) upload(writer http.ResponseWriter, request *http.Request) {
	mediaType, _, err := mime.ParseMediaType(request.Header.Get(constants.HeaderContentType))
	if err != nil || mediaType != "multipart/form-data" {
		respond.Error(writer, request, apperr.BadRequest("Multipart form data is required"))
		return
	}

	request.Body = http.MaxBytesReader(writer, request.Body, constants.MaxUploadBytes)
	if err := request.ParseMultipartForm(formMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(writer, request, apperr.PayloadTooLarge("Upload exceeds the 32 MiB limit"))
			return
		}
		respond.Error(writer, request, apperr.BadRequest("Invalid form data"))
		return
	}
	defer request.MultipartForm.RemoveAll()

	form := request.MultipartForm
	submission := Upload{
		Files: form.File[FieldFiles],
		RefID: first(form.Value[FieldRefID]),
		Ref:   first(form.Value[FieldRef]),
		Field: first(form.Value[FieldField]),
		Path:  first(form.Value[FieldPath]),
	}

	files, err := handler.service.Upload(request.Context(), requestutil.Token(request), submission)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, files)
}

// GET /api/upload. With ?id= it answers like GET /api/upload/files/{id}.
func (handler *Handler) listOrGet(writer http.ResponseWriter, request *http.Request) {
	if id := request.URL.Query().Get("id"); id != "" {
		handler.respondFile(writer, request, id)
		return
	}
	handler.list(writer, request)
}

// GET /api/upload/files. The query descriptor is forwarded.
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	values := request.URL.Query()
	values.Del("id")

	files, err := handler.service.List(request.Context(), requestutil.Token(request), cmsquery.Parse(values).Upstream())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, files)
}

// GET /api/upload/files/{id}.
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	handler.respondFile(writer, request, requestutil.Param(request, "id"))
}

// DELETE /api/upload/files/{id}.
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	file, err := handler.service.Delete(request.Context(), requestutil.Token(request), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, file)
}

func (handler *Handler) respondFile(writer http.ResponseWriter, request *http.Request, id string) {
	file, err := handler.service.Get(request.Context(), requestutil.Token(request), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, file)
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
