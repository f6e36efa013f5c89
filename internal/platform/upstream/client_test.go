// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package upstream_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tributestream/internal/platform/apperr"
	"github.com/taibuivan/tributestream/internal/platform/upstream"
)

type recordedCall struct {
	method        string
	path          string
	query         string
	authorization string
	contentType   string
	body          string
}

type fakeObserver struct {
	calls atomic.Int32
}

func (observer *fakeObserver) ObserveUpstream(string, string, int, time.Duration) {
	observer.calls.Add(1)
}

func newFakeUpstream(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *recordedCall) {
	t.Helper()
	recorded := &recordedCall{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		*recorded = recordedCall{
			method:        r.Method,
			path:          r.URL.Path,
			query:         r.URL.RawQuery,
			authorization: r.Header.Get("Authorization"),
			contentType:   r.Header.Get("Content-Type"),
			body:          string(body),
		}
		handler(w, r)
	}))
	t.Cleanup(server.Close)
	return server, recorded
}

/*
TestClient_Do_JSON checks URL building, headers and JSON capture.
*/
func TestClient_Do_JSON(t *testing.T) {
	server, recorded := newFakeUpstream(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(`{"data":{"id":1}}`))
	})

	observer := &fakeObserver{}
	client := upstream.NewClient(server.URL+"/api/", server.Client(), upstream.WithObserver(observer))

	response, err := client.Do(context.Background(), upstream.Request{
		Method: http.MethodPost,
		Path:   "/funeral-homes",
		Query:  url.Values{"pagination[page]": {"2"}},
		Body:   map[string]any{"data": map[string]string{"name": "Evergreen"}},
		Token:  "abc.def.ghi",
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, response.Status)
	assert.JSONEq(t, `{"data":{"id":1}}`, string(response.JSON))
	assert.Empty(t, response.Text)

	assert.Equal(t, http.MethodPost, recorded.method)
	assert.Equal(t, "/api/funeral-homes", recorded.path)
	assert.Equal(t, "pagination%5Bpage%5D=2", recorded.query)
	assert.Equal(t, "Bearer abc.def.ghi", recorded.authorization)
	assert.Equal(t, "application/json", recorded.contentType)
	assert.JSONEq(t, `{"data":{"name":"Evergreen"}}`, recorded.body)
	assert.Equal(t, int32(1), observer.calls.Load())
}

/*
TestClient_Do_NoToken omits the Authorization header entirely.
*/
func TestClient_Do_NoToken(t *testing.T) {
	server, recorded := newFakeUpstream(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	client := upstream.NewClient(server.URL, server.Client())
	_, err := client.Do(context.Background(), upstream.Request{Method: http.MethodGet, Path: "/tributes"})
	require.NoError(t, err)

	assert.Empty(t, recorded.authorization)
}

/*
TestClient_Do_Text captures non-JSON bodies as text.
*/
func TestClient_Do_Text(t *testing.T) {
	server, _ := newFakeUpstream(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("pong"))
	})

	client := upstream.NewClient(server.URL, server.Client())
	response, err := client.Do(context.Background(), upstream.Request{Method: http.MethodGet, Path: "/ping"})
	require.NoError(t, err)

	assert.Nil(t, response.JSON)
	assert.Equal(t, "pong", response.Text)
}

/*
TestClient_Do_NetworkFailure maps an unreachable upstream to the fixed 500.
*/
func TestClient_Do_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	base := server.URL
	server.Close()

	observer := &fakeObserver{}
	client := upstream.NewClient(base, http.DefaultClient, upstream.WithObserver(observer))

	_, err := client.Do(context.Background(), upstream.Request{Method: http.MethodGet, Path: "/tributes"})
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, apperr.CodeNetwork, appError.Code)
	assert.Equal(t, http.StatusInternalServerError, appError.HTTPStatus)
	assert.Equal(t, "Failed to connect to API", appError.Message)
	assert.Equal(t, int32(1), observer.calls.Load())
}

/*
TestClient_Call_UpstreamError surfaces the upstream status and message.
*/
func TestClient_Call_UpstreamError(t *testing.T) {
	server, _ := newFakeUpstream(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"data": nil,
			"error": map[string]any{
				"status":  400,
				"name":    "ValidationError",
				"message": "Invalid identifier or password",
			},
		})
	})

	client := upstream.NewClient(server.URL, server.Client())
	result, err := client.Call(context.Background(), upstream.Request{Method: http.MethodPost, Path: "/auth/local"})

	assert.Nil(t, result)
	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, http.StatusBadRequest, appError.HTTPStatus)
	assert.Equal(t, "Invalid identifier or password", appError.Message)
	assert.Equal(t, "ValidationError", appError.Name)
}

type tribute struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

/*
TestResource_List decodes data and keeps meta verbatim.
*/
func TestResource_List(t *testing.T) {
	server, recorded := newFakeUpstream(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"id":1,"name":"A"},{"id":2,"name":"B"}],"meta":{"pagination":{"page":1,"pageSize":25,"pageCount":1,"total":2}}}`))
	})

	resource := upstream.NewResource[tribute](upstream.NewClient(server.URL, server.Client()), "/tributes")
	page, err := resource.List(context.Background(), "", url.Values{"sort[0]": {"name:asc"}})
	require.NoError(t, err)

	assert.Len(t, page.Data, 2)
	assert.Equal(t, "B", page.Data[1].Name)
	assert.JSONEq(t, `{"pagination":{"page":1,"pageSize":25,"pageCount":1,"total":2}}`, string(page.Meta))
	assert.Equal(t, "/tributes", recorded.path)
}

/*
TestResource_Update wraps the body in a data member and escapes the id.
*/
func TestResource_Update(t *testing.T) {
	server, recorded := newFakeUpstream(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"id":7,"name":"Renamed"}}`))
	})

	resource := upstream.NewResource[tribute](upstream.NewClient(server.URL, server.Client()), "/tributes")
	updated, err := resource.Update(context.Background(), "tok", "7", map[string]string{"name": "Renamed"})
	require.NoError(t, err)

	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, http.MethodPut, recorded.method)
	assert.Equal(t, "/tributes/7", recorded.path)
	assert.JSONEq(t, `{"data":{"name":"Renamed"}}`, recorded.body)
}
