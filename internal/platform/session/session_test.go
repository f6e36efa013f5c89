// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tributestream/internal/platform/session"
)

/*
TestCookieStore_Set verifies the cookie attributes of a fresh session.
*/
func TestCookieStore_Set(t *testing.T) {
	store := session.NewCookieStore(session.CookieOptions{Name: "jwt", Secure: true})
	recorder := httptest.NewRecorder()

	store.Set(recorder, "token-value", 7*24*time.Hour)

	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)

	cookie := cookies[0]
	assert.Equal(t, "jwt", cookie.Name)
	assert.Equal(t, "token-value", cookie.Value)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, 604800, cookie.MaxAge)
	assert.True(t, cookie.HttpOnly)
	assert.True(t, cookie.Secure)
	assert.Equal(t, http.SameSiteStrictMode, cookie.SameSite)
}

/*
TestCookieStore_Clear verifies the cookie is expired.
*/
func TestCookieStore_Clear(t *testing.T) {
	store := session.NewCookieStore(session.CookieOptions{Name: "jwt"})
	recorder := httptest.NewRecorder()

	store.Clear(recorder)

	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "", cookies[0].Value)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

/*
TestCookieStore_Token covers the resolution order.
*/
func TestCookieStore_Token(t *testing.T) {
	store := session.NewCookieStore(session.CookieOptions{Name: "jwt"})

	tests := []struct {
		name   string
		cookie string
		header string
		want   string
	}{
		{"cookie_only", "from-cookie", "", "from-cookie"},
		{"header_only", "", "Bearer from-header", "from-header"},
		{"cookie_wins", "from-cookie", "Bearer from-header", "from-cookie"},
		{"lowercase_scheme", "", "bearer lower", "lower"},
		{"wrong_scheme", "", "Basic dXNlcjpwYXNz", ""},
		{"anonymous", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
			if tt.cookie != "" {
				request.AddCookie(&http.Cookie{Name: "jwt", Value: tt.cookie})
			}
			if tt.header != "" {
				request.Header.Set("Authorization", tt.header)
			}
			assert.Equal(t, tt.want, store.Token(request))
		})
	}
}
