// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
)

// Page is a decoded collection reply.
type Page[T any] struct {
	Data []T
	Meta json.RawMessage
}

// Resource is a typed view over one upstream collection such as /tributes.
type Resource[T any] struct {
	client *Client
	path   string
}

// NewResource binds a collection path to the client.
func NewResource[T any](client *Client, path string) *Resource[T] {
	return &Resource[T]{client: client, path: path}
}

// List fetches the collection. The query is forwarded untouched.
func (resource *Resource[T]) List(ctx context.Context, token string, query url.Values) (*Page[T], error) {
	result, err := resource.client.Call(ctx, Request{
		Method: http.MethodGet,
		Path:   resource.path,
		Query:  query,
		Token:  token,
	})
	if err != nil {
		return nil, err
	}

	page := &Page[T]{Data: []T{}, Meta: result.Meta}
	if err := result.Decode(&page.Data); err != nil {
		return nil, err
	}
	if page.Data == nil {
		page.Data = []T{}
	}
	return page, nil
}

// Get fetches one entry by id.
func (resource *Resource[T]) Get(ctx context.Context, token, id string, query url.Values) (*T, error) {
	return resource.one(ctx, Request{
		Method: http.MethodGet,
		Path:   resource.item(id),
		Query:  query,
		Token:  token,
	})
}

// Create posts `{data: body}` to the collection.
func (resource *Resource[T]) Create(ctx context.Context, token string, body any) (*T, error) {
	return resource.one(ctx, Request{
		Method: http.MethodPost,
		Path:   resource.path,
		Body:   map[string]any{"data": body},
		Token:  token,
	})
}

// Update puts `{data: body}` to one entry.
func (resource *Resource[T]) Update(ctx context.Context, token, id string, body any) (*T, error) {
	return resource.one(ctx, Request{
		Method: http.MethodPut,
		Path:   resource.item(id),
		Body:   map[string]any{"data": body},
		Token:  token,
	})
}

// Delete removes one entry and returns what the upstream echoes back, which
// may be nil.
func (resource *Resource[T]) Delete(ctx context.Context, token, id string) (*T, error) {
	return resource.one(ctx, Request{
		Method: http.MethodDelete,
		Path:   resource.item(id),
		Token:  token,
	})
}

func (resource *Resource[T]) one(ctx context.Context, call Request) (*T, error) {
	result, err := resource.client.Call(ctx, call)
	if err != nil {
		return nil, err
	}

	// Strapi 5 answers deletes with 204 or `data: null`.
	if len(result.Data) == 0 || string(result.Data) == "null" {
		return nil, nil
	}

	var entity T
	if err := result.Decode(&entity); err != nil {
		return nil, err
	}
	return &entity, nil
}

func (resource *Resource[T]) item(id string) string {
	return resource.path + "/" + url.PathEscape(id)
}
