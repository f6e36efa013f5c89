// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package funeralhome proxies the funeral home collection of the CMS.

Reads are public and forward the caller's query descriptor untouched.
Writes require a session, are validated locally, and are wrapped as
`{data: ...}` before they reach the upstream.
*/
package funeralhome

import "time"

// # Domain Entities

// Director is a staff member attached to a funeral home.
type Director struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role,omitempty"`
}

// FuneralHome is the upstream record.
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

// Attributes is the writable subset. Nil fields are left out of the upstream
// payload, which is what makes partial updates possible.
type Attributes struct {
	Name        *string `json:"name,omitempty"`
	Address     *string `json:"address,omitempty"`
	City        *string `json:"city,omitempty"`
	State       *string `json:"state,omitempty"`
	ZipCode     *string `json:"zipCode,omitempty"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
	Directors   []int64 `json:"directors,omitempty"`
}

// # Field Identifiers

const (
	FieldName        = "name"
	FieldAddress     = "address"
	FieldState       = "state"
	FieldZipCode     = "zipCode"
	FieldPhoneNumber = "phoneNumber"
)

// ResourceName labels audit events.
const ResourceName = "funeral_home"

// UpstreamPath is the CMS collection path.
const UpstreamPath = "/funeral-homes"
