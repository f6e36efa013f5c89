// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package slug_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/tributestream/pkg/slug"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Jane Doe", "jane-doe"},
		{"José Álvarez (1948–2026)", "jose-alvarez-1948-2026"},
		{"  --Mary  O'Brien--  ", "mary-o-brien"},
		{"Ñandú", "nandu"},
		{"!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := slug.From(tt.input)
			assert.Equal(t, tt.want, got)
			if got != "" {
				assert.True(t, slug.Valid(got))
			}
		})
	}
}

func TestFrom_Truncates(t *testing.T) {
	got := slug.From(strings.Repeat("memorial ", 30))
	assert.LessOrEqual(t, len(got), slug.MaxLength)
	assert.True(t, slug.Valid(got))
}

func TestValid(t *testing.T) {
	assert.True(t, slug.Valid("jane-doe-2"))
	assert.False(t, slug.Valid("Jane-Doe"))
	assert.False(t, slug.Valid("-jane"))
	assert.False(t, slug.Valid("jane--doe"))
}
