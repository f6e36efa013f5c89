// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug generates ASCII URL slugs from arbitrary Unicode strings.
//
// # Usage
//
// Tribute pages are addressed by slug (e.g., "jose-alvarez-1948-2026").
// When a client creates a tribute without one, it is derived from the name.
package slug

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MaxLength bounds a derived slug. Longer names are cut at a hyphen boundary.
const MaxLength = 96

var (
	// nonAlphanumeric matches any run of characters outside [a-z0-9].
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

	// valid matches a well-formed slug.
	valid = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// From converts an arbitrary Unicode string into a URL-safe ASCII slug.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFD and removes combining marks (é → e).
// 2. Lowercases.
// 3. Replaces every run of other characters with a single hyphen.
// 4. Trims hyphens and cuts to [MaxLength].
func From(s string) string {
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	result, _, _ := transform.String(t, s)

	result = nonAlphanumeric.ReplaceAllString(strings.ToLower(result), "-")
	result = strings.Trim(result, "-")

	if len(result) > MaxLength {
		result = result[:MaxLength]
		if cut := strings.LastIndexByte(result, '-'); cut > 0 {
			result = result[:cut]
		}
		result = strings.Trim(result, "-")
	}

	return result
}

// Valid reports whether s is already a well-formed slug.
func Valid(s string) bool {
	return valid.MatchString(s)
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
