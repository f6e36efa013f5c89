// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid generates the time-ordered identifiers used for request
correlation and audit events.

Version 7 values sort by creation time, which keeps the audit table's primary
key index append-only.
*/
package uuid

import "github.com/google/uuid"

// New generates a new UUIDv7 string. If the entropy source fails it falls
// back to a random v4 value rather than failing the request.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Parse validates s and returns its canonical form.
func Parse(s string) (string, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
