// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package upstream forwards gateway calls to the headless CMS.

Architecture:

  - Client: one HTTP call per [Client.Do], never retried, never cached.
  - Envelope: [Translate] unwraps `{data, meta}` and maps `{error}` onto [apperr.AppError].
  - Resource: [Resource] gives domain stores typed list/get/create/update/delete.

The request context is propagated, so a client disconnect or a server timeout
aborts the in-flight upstream call.
*/
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/taibuivan/tributestream/internal/platform/apperr"
	"github.com/taibuivan/tributestream/internal/platform/constants"
	"github.com/taibuivan/tributestream/internal/platform/ctxutil"
)

// Doer is the subset of [http.Client] the forwarder needs.
type Doer interface {
	Do(request *http.Request) (*http.Response, error)
}

// Observer receives one measurement per upstream call.
type Observer interface {
	ObserveUpstream(method, path string, status int, elapsed time.Duration)
}

// Request describes a single upstream call.
type Request struct {
	Method string
	Path   string
	Query  url.Values

	// Body is JSON-encoded when non-nil.
	Body any

	// Raw is sent as-is with RawContentType. Used for multipart uploads.
	Raw            io.Reader
	RawContentType string

	// Token is attached as `Authorization: Bearer <token>` when non-empty.
	Token string
}

// Response is the upstream reply with its body captured in memory.
//
// Exactly one of JSON and Text is set, chosen by the response content type.
type Response struct {
	Status      int
	ContentType string
	JSON        json.RawMessage
	Text        string
}

// OK reports whether the status is 2xx.
func (response *Response) OK() bool {
	return response.Status >= 200 && response.Status < 300
}

// Client performs calls against a fixed upstream base URL.
type Client struct {
	baseURL  string
	http     Doer
	observer Observer
}

// Option customises a [Client].
type Option func(*Client)

// WithObserver attaches metrics to every call.
func WithObserver(observer Observer) Option {
	return func(client *Client) { client.observer = observer }
}

// NewClient creates a Client. The base URL is used verbatim as the prefix of
// every path (e.g. https://api.tributestream.com/api).
func NewClient(baseURL string, httpClient Doer, options ...Option) *Client {
	client := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
	for _, option := range options {
		option(client)
	}
	return client
}

// Do performs exactly one upstream call.
//
// The returned error is always an [apperr.AppError] with code NETWORK_ERROR:
// a reply with a failure status is NOT an error here, see [Translate].
func (client *Client) Do(ctx context.Context, call Request) (*Response, error) {
	logger := ctxutil.GetLogger(ctx)

	request, err := client.newRequest(ctx, call)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	start := time.Now()
	response, err := client.http.Do(request)
	if err != nil {
		client.observe(call, 0, start)
		logger.ErrorContext(ctx, "upstream_call_failed",
			slog.String("method", call.Method),
			slog.String("path", call.Path),
			slog.String("error", err.Error()),
		)
		return nil, apperr.Network(err)
	}
	defer response.Body.Close()

	result, err := readResponse(response)
	client.observe(call, response.StatusCode, start)
	if err != nil {
		logger.ErrorContext(ctx, "upstream_body_unreadable",
			slog.String("path", call.Path),
			slog.String("error", err.Error()),
		)
		return nil, apperr.Network(err)
	}

	logger.DebugContext(ctx, "upstream_call_finished",
		slog.String("method", call.Method),
		slog.String("path", call.Path),
		slog.Int("status", result.Status),
		slog.Int64("latency_ms", time.Since(start).Milliseconds()),
	)

	return result, nil
}

// Call performs the request and translates the envelope in one step.
func (client *Client) Call(ctx context.Context, call Request) (*Result, error) {
	response, err := client.Do(ctx, call)
	if err != nil {
		return nil, err
	}
	return Translate(response)
}

func (client *Client) newRequest(ctx context.Context, call Request) (*http.Request, error) {
	target := client.baseURL + call.Path
	if len(call.Query) > 0 {
		target += "?" + call.Query.Encode()
	}

	var body io.Reader
	contentType := constants.ContentTypeJSON

	switch {
	case call.Raw != nil:
		body = call.Raw
		contentType = call.RawContentType
	case call.Body != nil:
		encoded, err := json.Marshal(call.Body)
		if err != nil {
			return nil, fmt.Errorf("upstream: encode body for %s: %w", call.Path, err)
		}
		body = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, call.Method, target, body)
	if err != nil {
		return nil, fmt.Errorf("upstream: build request for %s: %w", call.Path, err)
	}

	request.Header.Set(constants.HeaderContentType, contentType)
	request.Header.Set("Accept", constants.ContentTypeJSON)
	if call.Token != "" {
		request.Header.Set(constants.HeaderAuthorization, "Bearer "+call.Token)
	}
	if requestID := ctxutil.GetRequestID(ctx); requestID != "" {
		request.Header.Set(constants.HeaderXRequestID, requestID)
	}

	return request, nil
}

func (client *Client) observe(call Request, status int, start time.Time) {
	if client.observer != nil {
		client.observer.ObserveUpstream(call.Method, call.Path, status, time.Since(start))
	}
}

func readResponse(response *http.Response) (*Response, error) {
	payload, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("upstream: read body: %w", err)
	}

	result := &Response{
		Status:      response.StatusCode,
		ContentType: response.Header.Get(constants.HeaderContentType),
	}

	if strings.Contains(result.ContentType, constants.ContentTypeJSON) && json.Valid(payload) {
		result.JSON = payload
	} else {
		result.Text = string(payload)
	}

	return result, nil
}
