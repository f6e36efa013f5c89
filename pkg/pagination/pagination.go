// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination models the `meta.pagination` block the CMS attaches to
// collection replies.
//
// # Overview
//
// The gateway never paginates by itself: it forwards page/pageSize to the
// upstream and relays the block verbatim. These types exist for consumers
// (the client SDK and CLI) that want to read it.
package pagination

import (
	"encoding/json"
	"fmt"
)

// Pagination is one of two shapes: page-based (Page/PageSize/PageCount) or
// offset-based (Start/Limit). Total is present in both.
type Pagination struct {
	Page      int `json:"page,omitempty"`
	PageSize  int `json:"pageSize,omitempty"`
	PageCount int `json:"pageCount,omitempty"`
	Start     int `json:"start,omitempty"`
	Limit     int `json:"limit,omitempty"`
	Total     int `json:"total"`
}

// Meta is the `meta` member of a collection reply.
type Meta struct {
	Pagination Pagination `json:"pagination"`
}

// Decode reads a raw meta member. An empty input yields a zero Meta.
func Decode(raw json.RawMessage) (Meta, error) {
	var meta Meta
	if len(raw) == 0 || string(raw) == "null" {
		return meta, nil
	}
	if err := json.Unmarshal(raw, &meta); err != nil {
		return Meta{}, fmt.Errorf("pagination: decode meta: %w", err)
	}
	return meta, nil
}

// HasNext reports whether a further page exists.
func (p Pagination) HasNext() bool {
	if p.PageCount > 0 {
		return p.Page < p.PageCount
	}
	if p.Limit > 0 {
		return p.Start+p.Limit < p.Total
	}
	return false
}

// String renders a short human summary, e.g. "page 2/5 (117 total)".
func (p Pagination) String() string {
	if p.PageCount > 0 {
		return fmt.Sprintf("page %d/%d (%d total)", p.Page, p.PageCount, p.Total)
	}
	if p.Limit > 0 {
		return fmt.Sprintf("items %d-%d (%d total)", p.Start+1, min(p.Start+p.Limit, p.Total), p.Total)
	}
	return fmt.Sprintf("%d total", p.Total)
}
