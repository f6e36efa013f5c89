// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package uuid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tributestream/pkg/uuid"
)

func TestNew_IsVersion7(t *testing.T) {
	id := uuid.New()
	require.Len(t, id, 36)
	assert.Equal(t, byte('7'), id[14])

	canonical, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, id, canonical)
}

func TestParse_Invalid(t *testing.T) {
	_, err := uuid.Parse("not-a-uuid")
	assert.Error(t, err)
}
