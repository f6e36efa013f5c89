// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tributeclient

import (
	"context"
	"net/http"
	"net/url"

	"github.com/taibuivan/tributestream/pkg/cmsquery"
	"github.com/taibuivan/tributestream/pkg/pagination"
)

// Page is one page of a collection.
type Page[T any] struct {
	Data []T             `json:"data"`
	Meta pagination.Meta `json:"meta"`
}

type envelope[T any] struct {
	Data T `json:"data"`
}

// Collection is a typed view over one gateway collection. In is the write
// body, T the record.
type Collection[T, In any] struct {
	client *Client
	path   string
}

// FuneralHomes returns the /api/funeral-homes collection.
func (client *Client) FuneralHomes() *Collection[FuneralHome, FuneralHomeInput] {
	return &Collection[FuneralHome, FuneralHomeInput]{client: client, path: "/api/funeral-homes"}
}

// Tributes returns the /api/tributes collection.
func (client *Client) Tributes() *Collection[Tribute, TributeInput] {
	return &Collection[Tribute, TributeInput]{client: client, path: "/api/tributes"}
}

// List fetches one page. The descriptor is sent in the gateway's inbound form.
func (collection *Collection[T, In]) List(ctx context.Context, query cmsquery.Query) (*Page[T], error) {
	page := &Page[T]{}
	if err := collection.client.call(ctx, http.MethodGet, collection.path, query.Inbound(), nil, page); err != nil {
		return nil, err
	}
	if page.Data == nil {
		page.Data = []T{}
	}
	return page, nil
}

// Get fetches one record; only Fields and Populate of query are honoured.
func (collection *Collection[T, In]) Get(ctx context.Context, id string, query cmsquery.Query) (*T, error) {
	return collection.one(ctx, http.MethodGet, collection.item(id), query.Inbound(), nil)
}

func (collection *Collection[T, In]) Create(ctx context.Context, input In) (*T, error) {
	return collection.one(ctx, http.MethodPost, collection.path, nil, input)
}

func (collection *Collection[T, In]) Update(ctx context.Context, id string, input In) (*T, error) {
	return collection.one(ctx, http.MethodPut, collection.item(id), nil, input)
}

// Delete removes a record and returns the echo, which may be nil.
func (collection *Collection[T, In]) Delete(ctx context.Context, id string) (*T, error) {
	return collection.one(ctx, http.MethodDelete, collection.item(id), nil, nil)
}

func (collection *Collection[T, In]) one(ctx context.Context, method, path string, query url.Values, body any) (*T, error) {
	var reply envelope[*T]
	if err := collection.client.call(ctx, method, path, query, body, &reply); err != nil {
		return nil, err
	}
	return reply.Data, nil
}

func (collection *Collection[T, In]) item(id string) string {
	return collection.path + "/" + url.PathEscape(id)
}

// # Files

// Files is the /api/upload surface.
type Files struct {
	client *Client
}

// Files returns the upload surface.
func (client *Client) Files() *Files {
	return &Files{client: client}
}

// List returns every file the upstream exposes.
func (files *Files) List(ctx context.Context) ([]File, error) {
	var reply envelope[[]File]
	if err := files.client.call(ctx, http.MethodGet, "/api/upload/files", nil, nil, &reply); err != nil {
		return nil, err
	}
	return reply.Data, nil
}

func (files *Files) Get(ctx context.Context, id string) (*File, error) {
	var reply envelope[*File]
	if err := files.client.call(ctx, http.MethodGet, "/api/upload/files/"+url.PathEscape(id), nil, nil, &reply); err != nil {
		return nil, err
	}
	return reply.Data, nil
}

func (files *Files) Delete(ctx context.Context, id string) (*File, error) {
	var reply envelope[*File]
	if err := files.client.call(ctx, http.MethodDelete, "/api/upload/files/"+url.PathEscape(id), nil, nil, &reply); err != nil {
		return nil, err
	}
	return reply.Data, nil
}
