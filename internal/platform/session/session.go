// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package session carries the upstream credential between the browser and the gateway.

Architecture:

  - Storage: An HttpOnly cookie. The JWT never appears in a response body.
  - Resolution: cookie first, then an Authorization bearer header.
  - Injection: Handlers depend on the [Store] interface, never on cookies directly.
*/
package session

import (
	"net/http"
	"strings"
	"time"

	"github.com/taibuivan/tributestream/internal/platform/constants"
)

// Store reads, writes and clears the session credential.
type Store interface {
	Token(request *http.Request) string
	Set(writer http.ResponseWriter, token string, ttl time.Duration)
	Clear(writer http.ResponseWriter)
}

// CookieOptions configures the session cookie.
type CookieOptions struct {
	Name   string
	Secure bool
	Path   string
}

// CookieStore is the production [Store] backed by an HttpOnly cookie.
type CookieStore struct {
	options CookieOptions
}

// NewCookieStore creates a CookieStore. An empty Path defaults to "/".
func NewCookieStore(options CookieOptions) *CookieStore {
	if options.Path == "" {
		options.Path = "/"
	}
	return &CookieStore{options: options}
}

// Name returns the cookie name.
func (store *CookieStore) Name() string {
	return store.options.Name
}

// Token resolves the caller's credential: the session cookie wins over an
// Authorization bearer header. Returns "" for anonymous requests.
func (store *CookieStore) Token(request *http.Request) string {
	if cookie, err := request.Cookie(store.options.Name); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	return BearerToken(request)
}

// Set writes the session cookie with the given lifetime.
func (store *CookieStore) Set(writer http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(writer, &http.Cookie{
		Name:     store.options.Name,
		Value:    token,
		Path:     store.options.Path,
		MaxAge:   int(ttl.Seconds()),
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		Secure:   store.options.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// Clear expires the session cookie immediately.
func (store *CookieStore) Clear(writer http.ResponseWriter) {
	http.SetCookie(writer, &http.Cookie{
		Name:     store.options.Name,
		Value:    "",
		Path:     store.options.Path,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   store.options.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// BearerToken extracts the token from an `Authorization: Bearer <token>` header.
func BearerToken(request *http.Request) string {
	header := request.Header.Get(constants.HeaderAuthorization)
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
