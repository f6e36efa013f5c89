// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package audit

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/tributestream/internal/platform/ctxutil"
	"github.com/taibuivan/tributestream/internal/platform/middleware"
	"github.com/taibuivan/tributestream/pkg/uuid"
)

// Track records an event for the wrapped route once it has answered with a
// status below 400. The resource id is taken from the `id` URL parameter.
//
// # Usage
//
//	router.With(audit.Track(recorder, audit.ActionDelete, "tribute")).Delete("/{id}", handler.delete)
func Track(recorder Recorder, action, resource string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			recorderWriter := &statusWriter{ResponseWriter: writer, status: http.StatusOK}
			next.ServeHTTP(recorderWriter, request)

			if recorderWriter.status >= http.StatusBadRequest {
				return
			}

			ctx := request.Context()
			event := Event{
				ID:         uuid.New(),
				Action:     action,
				Resource:   resource,
				ResourceID: chi.URLParam(request, "id"),
				RequestID:  ctxutil.GetRequestID(ctx),
				IP:         middleware.RealIP(request),
				Status:     recorderWriter.status,
				CreatedAt:  time.Now().UTC(),
			}
			if userID := ctxutil.GetUserID(ctx); userID != 0 {
				event.Actor = strconv.FormatInt(userID, 10)
			}

			_ = recorder.Record(ctx, event)
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (writer *statusWriter) WriteHeader(code int) {
	writer.status = code
	writer.ResponseWriter.WriteHeader(code)
}
