// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tributestream/internal/platform/ctxutil"
	"github.com/taibuivan/tributestream/internal/platform/middleware"
	"github.com/taibuivan/tributestream/internal/platform/sec"
	"github.com/taibuivan/tributestream/internal/platform/session"
)

type stubInspector struct {
	err error
}

func (inspector stubInspector) Inspect(string) (*sec.TokenClaims, error) {
	if inspector.err != nil {
		return nil, inspector.err
	}
	return &sec.TokenClaims{UserID: 1}, nil
}

func tokenEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(ctxutil.GetToken(r.Context())))
	})
}

/*
TestAuthenticate covers anonymous, accepted and discarded credentials.
*/
func TestAuthenticate(t *testing.T) {
	store := session.NewCookieStore(session.CookieOptions{Name: "jwt"})

	tests := []struct {
		name        string
		cookie      string
		inspectErr  error
		wantToken   string
		wantCleared bool
	}{
		{"anonymous", "", nil, "", false},
		{"accepted", "a.b.c", nil, "a.b.c", false},
		{"expired", "a.b.c", sec.ErrExpiredToken, "", true},
		{"malformed", "garbage", errors.New("bad"), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := middleware.Authenticate(store, stubInspector{err: tt.inspectErr})(tokenEcho())

			request := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			if tt.cookie != "" {
				request.AddCookie(&http.Cookie{Name: "jwt", Value: tt.cookie})
			}
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantToken, recorder.Body.String())

			cookies := recorder.Result().Cookies()
			if tt.wantCleared {
				require.Len(t, cookies, 1)
				assert.Equal(t, -1, cookies[0].MaxAge)
			} else {
				assert.Empty(t, cookies)
			}
		})
	}
}

/*
TestAuthenticate_ClearsOnUpstreamRejection expires the cookie only when the
downstream handler answers 401.
*/
func TestAuthenticate_ClearsOnUpstreamRejection(t *testing.T) {
	store := session.NewCookieStore(session.CookieOptions{Name: "jwt"})

	tests := []struct {
		name        string
		status      int
		wantCleared bool
	}{
		{"unauthorized", http.StatusUnauthorized, true},
		{"forbidden", http.StatusForbidden, false},
		{"ok", http.StatusOK, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := middleware.Authenticate(store, stubInspector{})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				w.WriteHeader(http.StatusUnauthorized)
			}))

			request := httptest.NewRequest(http.MethodGet, "/api/funeral-homes", nil)
			request.AddCookie(&http.Cookie{Name: "jwt", Value: "a.b.c"})
			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.status, recorder.Code)
			cookies := recorder.Result().Cookies()
			if tt.wantCleared {
				require.Len(t, cookies, 1)
				assert.Equal(t, "jwt", cookies[0].Name)
				assert.Equal(t, -1, cookies[0].MaxAge)
			} else {
				assert.Empty(t, cookies)
			}
		})
	}
}

/*
TestRequireSession rejects anonymous requests with 401.
*/
func TestRequireSession(t *testing.T) {
	called := false
	handler := middleware.RequireSession(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/funeral-homes", nil))

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.JSONEq(t, `{"error":"Authentication required","code":"UNAUTHORIZED"}`, recorder.Body.String())
	assert.False(t, called)

	request := httptest.NewRequest(http.MethodGet, "/api/funeral-homes", nil)
	request = request.WithContext(ctxutil.WithToken(request.Context(), "a.b.c"))
	handler.ServeHTTP(httptest.NewRecorder(), request)
	assert.True(t, called)
}

type allowList []string

func (list allowList) AllowsOrigin(origin string) bool {
	for _, allowed := range list {
		if allowed == origin {
			return true
		}
	}
	return false
}

/*
TestCORS echoes allowed origins and answers preflight with 204.
*/
func TestCORS(t *testing.T) {
	handler := middleware.CORS(allowList{"https://tributestream.com"})(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	preflight := httptest.NewRequest(http.MethodOptions, "/api/tributes", nil)
	preflight.Header.Set("Origin", "https://tributestream.com")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, preflight)

	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Equal(t, "https://tributestream.com", recorder.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", recorder.Header().Get("Access-Control-Allow-Credentials"))

	foreign := httptest.NewRequest(http.MethodGet, "/api/tributes", nil)
	foreign.Header.Set("Origin", "https://evil.example")
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, foreign)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Empty(t, recorder.Header().Get("Access-Control-Allow-Origin"))
}

/*
TestRateLimit rejects once the burst is spent and says when to come back.
*/
func TestRateLimit(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	handler := middleware.RateLimit(ctx, 0.001, 2)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	var last *httptest.ResponseRecorder
	codes := make([]int, 0, 3)
	for range 3 {
		request := httptest.NewRequest(http.MethodGet, "/api/tributes", nil)
		request.RemoteAddr = "198.51.100.4:5555"
		last = httptest.NewRecorder()
		handler.ServeHTTP(last, request)
		codes = append(codes, last.Code)
	}

	assert.Equal(t, []int{200, 200, 429}, codes)
	assert.NotEmpty(t, last.Header().Get("Retry-After"))
	assert.Contains(t, last.Body.String(), `"code":"RATE_LIMITED"`)

	// Another client has its own bucket.
	request := httptest.NewRequest(http.MethodGet, "/api/tributes", nil)
	request.RemoteAddr = "198.51.100.5:5555"
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

/*
TestRequestID generates an id and honours a client-supplied one.
*/
func TestRequestID(t *testing.T) {
	var seen string
	handler := middleware.RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = ctxutil.GetRequestID(r.Context())
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, recorder.Header().Get("X-Request-ID"))

	request := httptest.NewRequest(http.MethodGet, "/health", nil)
	request.Header.Set("X-Request-ID", "client-id")
	handler.ServeHTTP(httptest.NewRecorder(), request)
	assert.Equal(t, "client-id", seen)

	for _, bogus := range []string{"has space", "line\nbreak", strings.Repeat("a", 65)} {
		request := httptest.NewRequest(http.MethodGet, "/health", nil)
		request.Header.Set("X-Request-ID", bogus)
		handler.ServeHTTP(httptest.NewRecorder(), request)
		assert.NotEqual(t, bogus, seen)
		assert.NotEmpty(t, seen)
	}
}

/*
TestStructuredLogger logs status, size and the matched route.
*/
func TestStructuredLogger(t *testing.T) {
	var buffer bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buffer, nil))

	router := chi.NewRouter()
	router.Use(middleware.StructuredLogger(logger))
	router.Get("/api/tributes/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Tribute not found"}`))
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/tributes/9", nil))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buffer.Bytes(), &line))
	assert.Equal(t, "WARN", line["level"])
	assert.Equal(t, float64(http.StatusNotFound), line["status"])
	assert.Equal(t, float64(29), line["bytes"])
	assert.Equal(t, "/api/tributes/{id}", line["route"])
	assert.Equal(t, "/api/tributes/9", line["path"])
}

/*
TestRealIP prefers proxy headers over the socket address.
*/
func TestRealIP(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.RemoteAddr = "10.0.0.1:4000"
	assert.Equal(t, "10.0.0.1", middleware.RealIP(request))

	request.Header.Set("X-Forwarded-For", " 203.0.113.7 , 10.0.0.1")
	assert.Equal(t, "203.0.113.7", middleware.RealIP(request))

	request.Header.Set("X-Real-IP", "198.51.100.9")
	assert.Equal(t, "198.51.100.9", middleware.RealIP(request))
}

/*
TestPanicRecovery turns a panic into a 500 body.
*/
func TestPanicRecovery(t *testing.T) {
	handler := middleware.PanicRecovery()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "INTERNAL_ERROR")
}
