// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package tribute proxies the tribute collection of the CMS.

A tribute is the memorial page of one person, addressed publicly by slug.
The gateway derives the slug from the name when a client omits it.
*/
package tribute

import (
	"time"

	"github.com/taibuivan/tributestream/internal/auth"
)

// Status is the publication state of a tribute.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

// Tribute is the upstream record.
type Tribute struct {
	ID          int64      `json:"id"`
	DocumentID  string     `json:"documentId,omitempty"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description,omitempty"`
	Status      Status     `json:"status,omitempty"`
	Owner       *auth.User `json:"owner,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// Attributes is the writable subset; nil fields are not sent upstream.
type Attributes struct {
	Name        *string `json:"name,omitempty"`
	Slug        *string `json:"slug,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	Owner       *int64  `json:"owner,omitempty"`
}

const (
	FieldName   = "name"
	FieldSlug   = "slug"
	FieldStatus = "status"
)

const (
	ResourceName = "tribute"
	UpstreamPath = "/tributes"
)
