// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tributeclient

import (
	"encoding/json"
	"time"
)

// The records below mirror the gateway's JSON. They are declared here rather
// than imported so the SDK carries no dependency on the server packages.

type Role struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type,omitempty"`
}

type User struct {
	ID         int64      `json:"id"`
	DocumentID string     `json:"documentId,omitempty"`
	Username   string     `json:"username"`
	Email      string     `json:"email"`
	Provider   string     `json:"provider,omitempty"`
	Confirmed  bool       `json:"confirmed"`
	Blocked    bool       `json:"blocked"`
	Role       *Role      `json:"role,omitempty"`
	CreatedAt  *time.Time `json:"createdAt,omitempty"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
}

type Director struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role,omitempty"`
}

type FuneralHome struct {
	ID          int64      `json:"id"`
	DocumentID  string     `json:"documentId,omitempty"`
	Name        string     `json:"name"`
	Address     string     `json:"address"`
	City        string     `json:"city,omitempty"`
	State       string     `json:"state,omitempty"`
	ZipCode     string     `json:"zipCode,omitempty"`
	PhoneNumber string     `json:"phoneNumber,omitempty"`
	Directors   []Director `json:"directors,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// FuneralHomeInput is a create or update body; nil fields are omitted.
type FuneralHomeInput struct {
	Name        *string `json:"name,omitempty"`
	Address     *string `json:"address,omitempty"`
	City        *string `json:"city,omitempty"`
	State       *string `json:"state,omitempty"`
	ZipCode     *string `json:"zipCode,omitempty"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
	Directors   []int64 `json:"directors,omitempty"`
}

type Tribute struct {
	ID          int64      `json:"id"`
	DocumentID  string     `json:"documentId,omitempty"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description,omitempty"`
	Status      string     `json:"status,omitempty"`
	Owner       *User      `json:"owner,omitempty"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// TributeInput is a create or update body; the gateway derives Slug from Name
// on create when it is nil.
type TributeInput struct {
	Name        *string `json:"name,omitempty"`
	Slug        *string `json:"slug,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
	Owner       *int64  `json:"owner,omitempty"`
}

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
