// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tributestream/internal/audit"
	"github.com/taibuivan/tributestream/internal/auth"
	"github.com/taibuivan/tributestream/internal/platform/middleware"
	"github.com/taibuivan/tributestream/internal/platform/sec"
	"github.com/taibuivan/tributestream/internal/platform/session"
	"github.com/taibuivan/tributestream/internal/platform/upstream"
)

const userJSON = `{"id":7,"username":"jane_doe","email":"jane@example.com","confirmed":true,"blocked":false}`

var lifetimes = auth.CookieLifetimes{
	Standard: 168 * time.Hour,
	Remember: 720 * time.Hour,
	Short:    24 * time.Hour,
}

// fakeCMS answers the upstream auth endpoints and counts every call.
type fakeCMS struct {
	calls    atomic.Int32
	mu       sync.Mutex
	lastPath string
	lastAuth string
	lastBody string
	status   int
	body     string
}

func (cms *fakeCMS) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	cms.calls.Add(1)
	body, _ := io.ReadAll(r.Body)

	cms.mu.Lock()
	cms.lastPath = r.URL.Path
	cms.lastAuth = r.Header.Get("Authorization")
	cms.lastBody = string(body)
	status, reply := cms.status, cms.body
	cms.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, reply)
}

func (cms *fakeCMS) reply(status int, body string) {
	cms.mu.Lock()
	defer cms.mu.Unlock()
	cms.status, cms.body = status, body
}

type fixture struct {
	cms    *fakeCMS
	router http.Handler
	events *eventLog
}

type eventLog struct {
	mu     sync.Mutex
	events []audit.Event
}

func (log *eventLog) Record(_ context.Context, event audit.Event) error {
	log.mu.Lock()
	defer log.mu.Unlock()
	log.events = append(log.events, event)
	return nil
}

func (log *eventLog) actions() []string {
	log.mu.Lock()
	defer log.mu.Unlock()
	actions := make([]string, 0, len(log.events))
	for _, event := range log.events {
		actions = append(actions, event.Action)
	}
	return actions
}

func newFixture(t *testing.T, limiter auth.AttemptLimiter) *fixture {
	t.Helper()

	cms := &fakeCMS{status: http.StatusOK, body: `{}`}
	server := httptest.NewServer(cms)
	t.Cleanup(server.Close)

	client := upstream.NewClient(server.URL+"/api", server.Client())
	service := auth.NewService(auth.NewUpstreamGateway(client), limiter)
	store := session.NewCookieStore(session.CookieOptions{Name: "jwt", Path: "/"})
	events := &eventLog{}

	router := chi.NewRouter()
	router.Use(middleware.Authenticate(store, sec.NewTokenInspector("")))
	router.Mount("/api/auth", auth.NewHandler(service, store, lifetimes, events).Routes())

	return &fixture{cms: cms, router: router, events: events}
}

func (f *fixture) do(t *testing.T, method, path, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	request := httptest.NewRequest(method, path, reader)
	request.Header.Set("Content-Type", "application/json")
	for _, cookie := range cookies {
		request.AddCookie(cookie)
	}
	recorder := httptest.NewRecorder()
	f.router.ServeHTTP(recorder, request)
	return recorder
}

func validToken(t *testing.T) string {
	t.Helper()
	claims := sec.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		UserID:           7,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("cms-secret"))
	require.NoError(t, err)
	return signed
}

func sessionCookie(t *testing.T, recorder *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == "jwt" {
			return cookie
		}
	}
	return nil
}

func decode(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
	return payload
}

/*
TestLogin_SetsCookie verifies the token lands in the cookie and never in the body.
*/
func TestLogin_SetsCookie(t *testing.T) {
	f := newFixture(t, nil)
	token := validToken(t)
	f.cms.reply(http.StatusOK, `{"jwt":"`+token+`","user":`+userJSON+`}`)

	recorder := f.do(t, http.MethodPost, "/api/auth/login", `{"identifier":"jane@example.com","password":"Secret123"}`)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, int32(1), f.cms.calls.Load())
	assert.Equal(t, "/api/auth/local", f.cms.lastPath)
	assert.JSONEq(t, `{"identifier":"jane@example.com","password":"Secret123"}`, f.cms.lastBody)

	cookie := sessionCookie(t, recorder)
	require.NotNil(t, cookie)
	assert.Equal(t, token, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, int(lifetimes.Standard.Seconds()), cookie.MaxAge)

	assert.NotContains(t, recorder.Body.String(), token)
	payload := decode(t, recorder)
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, "jane_doe", payload["user"].(map[string]any)["username"])
	assert.Contains(t, recorder.Header().Get("Cache-Control"), "no-store")
	assert.Equal(t, []string{audit.ActionLogin}, f.events.actions())
}

/*
TestLogin_RememberMe selects the cookie lifetime from the rememberMe flag.
*/
func TestLogin_RememberMe(t *testing.T) {
	tests := []struct {
		name   string
		flag   string
		maxAge time.Duration
	}{
		{name: "remembered", flag: `,"rememberMe":true`, maxAge: lifetimes.Remember},
		{name: "not remembered", flag: `,"rememberMe":false`, maxAge: lifetimes.Short},
		{name: "absent", flag: ``, maxAge: lifetimes.Standard},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t, nil)
			f.cms.reply(http.StatusOK, `{"jwt":"`+validToken(t)+`","user":`+userJSON+`}`)

			recorder := f.do(t, http.MethodPost, "/api/auth", `{"identifier":"jane","password":"x"`+tc.flag+`}`)

			require.Equal(t, http.StatusOK, recorder.Code)
			cookie := sessionCookie(t, recorder)
			require.NotNil(t, cookie)
			assert.Equal(t, int(tc.maxAge.Seconds()), cookie.MaxAge)
		})
	}
}

/*
TestLogin_Validation rejects missing fields without reaching the upstream.
*/
func TestLogin_Validation(t *testing.T) {
	f := newFixture(t, nil)

	recorder := f.do(t, http.MethodPost, "/api/auth/login", `{"identifier":"","password":""}`)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, int32(0), f.cms.calls.Load())
	payload := decode(t, recorder)
	assert.Equal(t, "VALIDATION_ERROR", payload["code"])
	assert.Len(t, payload["details"], 2)
	assert.Empty(t, f.events.actions())
}

/*
TestLogin_UpstreamRejection relays the upstream message and status.
*/
func TestLogin_UpstreamRejection(t *testing.T) {
	f := newFixture(t, nil)
	f.cms.reply(http.StatusBadRequest, `{"data":null,"error":{"status":400,"name":"ValidationError","message":"Invalid identifier or password"}}`)

	recorder := f.do(t, http.MethodPost, "/api/auth/login", `{"identifier":"jane","password":"wrong"}`)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Nil(t, sessionCookie(t, recorder))
	assert.Equal(t, "Invalid identifier or password", decode(t, recorder)["error"])
	assert.Empty(t, f.events.actions())
}

/*
TestLogin_Throttled answers 429 once the attempt budget is spent.
*/
func TestLogin_Throttled(t *testing.T) {
	f := newFixture(t, auth.NewMemoryAttemptLimiter(2, time.Minute))
	f.cms.reply(http.StatusOK, `{"jwt":"`+validToken(t)+`","user":`+userJSON+`}`)

	for range 2 {
		recorder := f.do(t, http.MethodPost, "/api/auth/login", `{"identifier":"jane","password":"x"}`)
		require.Equal(t, http.StatusOK, recorder.Code)
	}

	recorder := f.do(t, http.MethodPost, "/api/auth/login", `{"identifier":"jane","password":"x"}`)
	assert.Equal(t, http.StatusTooManyRequests, recorder.Code)
	assert.Equal(t, "RATE_LIMITED", decode(t, recorder)["code"])
	assert.Equal(t, int32(2), f.cms.calls.Load())
}

/*
TestRegister_Validation covers the password rules and the no-network guarantee.
*/
func TestRegister_Validation(t *testing.T) {
	f := newFixture(t, nil)

	recorder := f.do(t, http.MethodPost, "/api/auth/register", `{"username":"jane_doe","email":"jane@example.com","password":"abc"}`)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, int32(0), f.cms.calls.Load())

	payload := decode(t, recorder)
	messages := []string{}
	for _, detail := range payload["details"].([]any) {
		entry := detail.(map[string]any)
		assert.Equal(t, "password", entry["field"])
		messages = append(messages, entry["message"].(string))
	}
	assert.Contains(t, messages, "Password must be at least 8 characters")
	assert.Contains(t, messages, "Password must contain at least one uppercase letter")
	assert.Contains(t, messages, "Password must contain at least one number")
	assert.NotContains(t, messages, "Password must contain at least one lowercase letter")
}

/*
TestRegister_Success forwards the form and opens a session.
*/
func TestRegister_Success(t *testing.T) {
	f := newFixture(t, nil)
	f.cms.reply(http.StatusOK, `{"jwt":"`+validToken(t)+`","user":`+userJSON+`}`)

	recorder := f.do(t, http.MethodPost, "/api/auth/register", `{"username":"jane_doe","email":"jane@example.com","password":"Secret123"}`)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "/api/auth/local/register", f.cms.lastPath)
	assert.NotNil(t, sessionCookie(t, recorder))
	assert.Equal(t, []string{audit.ActionRegister}, f.events.actions())
}

/*
TestRegister_MissingToken reports an upstream reply without jwt as a bad gateway.
*/
func TestRegister_MissingToken(t *testing.T) {
	f := newFixture(t, nil)
	f.cms.reply(http.StatusOK, `{"user":`+userJSON+`}`)

	recorder := f.do(t, http.MethodPost, "/api/auth/register", `{"username":"jane_doe","email":"jane@example.com","password":"Secret123"}`)

	assert.Equal(t, http.StatusBadGateway, recorder.Code)
	assert.Nil(t, sessionCookie(t, recorder))
}

/*
TestLogout_ClearsCookie always succeeds and expires the cookie.
*/
func TestLogout_ClearsCookie(t *testing.T) {
	f := newFixture(t, nil)

	for _, method := range []string{http.MethodGet, http.MethodPost} {
		recorder := f.do(t, method, "/api/auth/logout", "")

		require.Equal(t, http.StatusOK, recorder.Code)
		cookie := sessionCookie(t, recorder)
		require.NotNil(t, cookie)
		assert.Empty(t, cookie.Value)
		assert.Negative(t, cookie.MaxAge)
		assert.JSONEq(t, `{"success":true}`, recorder.Body.String())
	}
	assert.Equal(t, int32(0), f.cms.calls.Load())
}

/*
TestMe_RequiresSession rejects anonymous callers before any upstream call.
*/
func TestMe_RequiresSession(t *testing.T) {
	f := newFixture(t, nil)

	recorder := f.do(t, http.MethodGet, "/api/auth/me", "")

	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Equal(t, int32(0), f.cms.calls.Load())
	assert.Equal(t, "Authentication required", decode(t, recorder)["error"])
}

/*
TestMe_ForwardsToken relays the bare user for a valid session.
*/
func TestMe_ForwardsToken(t *testing.T) {
	f := newFixture(t, nil)
	token := validToken(t)
	f.cms.reply(http.StatusOK, userJSON)

	recorder := f.do(t, http.MethodGet, "/api/auth/me", "", &http.Cookie{Name: "jwt", Value: token})

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "/api/users/me", f.cms.lastPath)
	assert.Equal(t, "Bearer "+token, f.cms.lastAuth)
	assert.JSONEq(t, userJSON, recorder.Body.String())
}

/*
TestMe_UpstreamRejectionClearsCookie relays the 401 and expires the cookie once.
*/
func TestMe_UpstreamRejectionClearsCookie(t *testing.T) {
	f := newFixture(t, nil)
	f.cms.reply(http.StatusUnauthorized, `{"error":{"status":401,"name":"UnauthorizedError","message":"Missing or invalid credentials"}}`)

	recorder := f.do(t, http.MethodGet, "/api/auth/me", "", &http.Cookie{Name: "jwt", Value: validToken(t)})

	require.Equal(t, http.StatusUnauthorized, recorder.Code)
	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "jwt", cookies[0].Name)
	assert.Negative(t, cookies[0].MaxAge)
}

/*
TestCheck covers anonymous, valid and rejected sessions.
*/
func TestCheck(t *testing.T) {
	t.Run("anonymous", func(t *testing.T) {
		f := newFixture(t, nil)

		recorder := f.do(t, http.MethodGet, "/api/auth/check", "")

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `{"authenticated":false,"user":null}`, recorder.Body.String())
		assert.Equal(t, int32(0), f.cms.calls.Load())
	})

	t.Run("valid", func(t *testing.T) {
		f := newFixture(t, nil)
		f.cms.reply(http.StatusOK, userJSON)

		recorder := f.do(t, http.MethodPost, "/api/auth/check", "", &http.Cookie{Name: "jwt", Value: validToken(t)})

		assert.Equal(t, http.StatusOK, recorder.Code)
		payload := decode(t, recorder)
		assert.Equal(t, true, payload["authenticated"])
		assert.Equal(t, "jane_doe", payload["user"].(map[string]any)["username"])
	})

	t.Run("rejected upstream", func(t *testing.T) {
		f := newFixture(t, nil)
		f.cms.reply(http.StatusUnauthorized, `{"error":{"status":401,"name":"UnauthorizedError","message":"Missing or invalid credentials"}}`)

		recorder := f.do(t, http.MethodGet, "/api/auth/check", "", &http.Cookie{Name: "jwt", Value: validToken(t)})

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `{"authenticated":false,"user":null}`, recorder.Body.String())
		cookie := sessionCookie(t, recorder)
		require.NotNil(t, cookie)
		assert.Empty(t, cookie.Value)
	})

	t.Run("malformed cookie", func(t *testing.T) {
		f := newFixture(t, nil)

		recorder := f.do(t, http.MethodGet, "/api/auth/check", "", &http.Cookie{Name: "jwt", Value: "not-a-jwt"})

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, int32(0), f.cms.calls.Load())
		assert.NotNil(t, sessionCookie(t, recorder))
	})
}

/*
TestForgotPassword validates the email before forwarding it.
*/
func TestForgotPassword(t *testing.T) {
	f := newFixture(t, nil)

	recorder := f.do(t, http.MethodPost, "/api/auth/forgot-password", `{"email":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, int32(0), f.cms.calls.Load())

	f.cms.reply(http.StatusOK, `{"ok":true}`)
	recorder = f.do(t, http.MethodPost, "/api/auth/forgot-password", `{"email":"jane@example.com"}`)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"ok":true}`, recorder.Body.String())
	assert.Equal(t, "/api/auth/forgot-password", f.cms.lastPath)
}

/*
TestResetPassword requires matching passwords and opens a session.
*/
func TestResetPassword(t *testing.T) {
	f := newFixture(t, nil)

	recorder := f.do(t, http.MethodPost, "/api/auth/reset-password", `{"code":"abc","password":"Secret123","passwordConfirmation":"Secret124"}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Passwords don't match")
	assert.Equal(t, int32(0), f.cms.calls.Load())

	f.cms.reply(http.StatusOK, `{"jwt":"`+validToken(t)+`","user":`+userJSON+`}`)
	recorder = f.do(t, http.MethodPost, "/api/auth/reset-password", `{"code":"abc","password":"Secret123","passwordConfirmation":"Secret123"}`)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.NotNil(t, sessionCookie(t, recorder))
	assert.Equal(t, []string{audit.ActionResetPassword}, f.events.actions())
}
