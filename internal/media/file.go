// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package media proxies the CMS upload plugin.

Uploads are parsed once (bounded by [constants.MaxUploadBytes], large parts
spill to temporary files) so they can be validated before any network call,
then re-encoded and streamed to the upstream through a pipe.
*/
package media

import (
	"encoding/json"
	"mime/multipart"
	"time"
)

// File is the upstream record of an uploaded asset.
type File struct {
	ID               int64           `json:"id"`
	DocumentID       string          `json:"documentId,omitempty"`
	Name             string          `json:"name"`
	AlternativeText  string          `json:"alternativeText,omitempty"`
	Caption          string          `json:"caption,omitempty"`
	Width            *int            `json:"width,omitempty"`
	Height           *int            `json:"height,omitempty"`
	Formats          json.RawMessage `json:"formats,omitempty"`
	Hash             string          `json:"hash,omitempty"`
	Ext              string          `json:"ext,omitempty"`
	Mime             string          `json:"mime,omitempty"`
	Size             float64         `json:"size"`
	URL              string          `json:"url"`
	PreviewURL       string          `json:"previewUrl,omitempty"`
	Provider         string          `json:"provider,omitempty"`
	ProviderMetadata json.RawMessage `json:"provider_metadata,omitempty"`
	CreatedAt        *time.Time      `json:"createdAt,omitempty"`
	UpdatedAt        *time.Time      `json:"updatedAt,omitempty"`
}

// Upload is a validated multipart submission.
//
// RefID, Ref and Field link the files to an entry (e.g. a tribute's cover);
// Path selects a storage folder. Empty values are not forwarded.
type Upload struct {
	Files []*multipart.FileHeader
	RefID string
	Ref   string
	Field string
	Path  string
}

// # Form Fields

const (
	FieldFiles = "files"
	FieldRefID = "refId"
	FieldRef   = "ref"
	FieldField = "field"
	FieldPath  = "path"
)

const (
	ResourceName = "file"

	PathUpload = "/upload"
	PathFiles  = "/upload/files"
)
