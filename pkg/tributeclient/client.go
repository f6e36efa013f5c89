// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package tributeclient is a Go client for the Tributestream gateway.

The gateway keeps the upstream token in an HttpOnly cookie, so the client
holds it in a [cookiejar.Jar] and never exposes it. Authentication state is
owned by a [Session]; typed resource calls hang off the [Client].

# Usage

	client, _ := tributeclient.New("https://tributestream.com")
	session := tributeclient.NewSession(client)
	if err := session.Login(ctx, "jane@example.com", password, nil); err != nil { ... }
	page, err := client.Tributes().List(ctx, cmsquery.Query{})
*/
package tributeclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"
)

// DefaultTimeout bounds every call when no http.Client is supplied.
const DefaultTimeout = 30 * time.Second

// Client performs calls against one gateway.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option customises a [Client].
type Option func(*Client)

// WithHTTPClient replaces the default client. A jar is attached if it has none.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(client *Client) { client.http = httpClient }
}

// New creates a Client for the gateway at baseURL (scheme and host, no /api).
func New(baseURL string, options ...Option) (*Client, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Host == "" {
		return nil, fmt.Errorf("tributeclient: invalid base URL %q", baseURL)
	}

	client := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
	}
	for _, option := range options {
		option(client)
	}

	if client.http.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("tributeclient: cookie jar: %w", err)
		}
		client.http.Jar = jar
	}

	return client, nil
}

// call sends one JSON request and decodes a 2xx body into out (if non-nil).
// Any other status is returned as an [*Error].
func (client *Client) call(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target := client.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("tributeclient: encode %s: %w", path, err)
		}
		reader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("tributeclient: build %s: %w", path, err)
	}
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	request.Header.Set("Accept", "application/json")

	return client.send(request, out)
}

func (client *Client) send(request *http.Request, out any) error {
	response, err := client.http.Do(request)
	if err != nil {
		return fmt.Errorf("tributeclient: %s %s: %w", request.Method, request.URL.Path, err)
	}
	defer response.Body.Close()

	payload, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("tributeclient: read %s: %w", request.URL.Path, err)
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return decodeError(response.StatusCode, payload)
	}

	if out == nil || len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("tributeclient: decode %s: %w", request.URL.Path, err)
	}
	return nil
}
