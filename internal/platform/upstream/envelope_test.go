// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package upstream_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tributestream/internal/platform/apperr"
	"github.com/taibuivan/tributestream/internal/platform/upstream"
)

/*
TestTranslate_Success covers the shapes a 2xx reply can take.
*/
func TestTranslate_Success(t *testing.T) {
	tests := []struct {
		name     string
		response upstream.Response
		wantData string
		wantMeta string
	}{
		{
			name:     "envelope_with_meta",
			response: upstream.Response{Status: 200, JSON: []byte(`{"data":[1,2],"meta":{"pagination":{"total":2}}}`)},
			wantData: `[1,2]`,
			wantMeta: `{"pagination":{"total":2}}`,
		},
		{
			name:     "envelope_null_data",
			response: upstream.Response{Status: 200, JSON: []byte(`{"data":null,"meta":{}}`)},
			wantData: `null`,
			wantMeta: `{}`,
		},
		{
			name:     "bare_object",
			response: upstream.Response{Status: 200, JSON: []byte(`{"jwt":"x","user":{"id":1}}`)},
			wantData: `{"jwt":"x","user":{"id":1}}`,
		},
		{
			name:     "bare_array",
			response: upstream.Response{Status: 200, JSON: []byte(`[{"id":3}]`)},
			wantData: `[{"id":3}]`,
		},
		{
			name:     "text",
			response: upstream.Response{Status: 200, Text: "ok"},
			wantData: `"ok"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := upstream.Translate(&tt.response)
			require.NoError(t, err)
			assert.JSONEq(t, tt.wantData, string(result.Data))
			if tt.wantMeta != "" {
				assert.JSONEq(t, tt.wantMeta, string(result.Meta))
			} else {
				assert.Empty(t, result.Meta)
			}
		})
	}
}

/*
TestTranslate_Failure maps failed replies onto UPSTREAM_ERROR.
*/
func TestTranslate_Failure(t *testing.T) {
	tests := []struct {
		name        string
		response    upstream.Response
		wantStatus  int
		wantMessage string
	}{
		{
			name:        "error_envelope",
			response:    upstream.Response{Status: 403, JSON: []byte(`{"data":null,"error":{"status":403,"name":"ForbiddenError","message":"Forbidden"}}`)},
			wantStatus:  403,
			wantMessage: "Forbidden",
		},
		{
			name:        "envelope_status_wins",
			response:    upstream.Response{Status: 500, JSON: []byte(`{"error":{"status":404,"message":"Not Found"}}`)},
			wantStatus:  404,
			wantMessage: "Not Found",
		},
		{
			name:        "no_envelope",
			response:    upstream.Response{Status: 502, Text: "Bad Gateway"},
			wantStatus:  502,
			wantMessage: upstream.UnknownErrorMessage,
		},
		{
			name:        "envelope_without_message",
			response:    upstream.Response{Status: 401, JSON: []byte(`{"error":{}}`)},
			wantStatus:  401,
			wantMessage: upstream.UnknownErrorMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := upstream.Translate(&tt.response)
			assert.Nil(t, result)

			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, apperr.CodeUpstream, appError.Code)
			assert.Equal(t, tt.wantStatus, appError.HTTPStatus)
			assert.Equal(t, tt.wantMessage, appError.Message)
		})
	}
}

/*
TestTranslate_ValidationDetails flattens per-field upstream errors.
*/
func TestTranslate_ValidationDetails(t *testing.T) {
	response := &upstream.Response{
		Status: http.StatusBadRequest,
		JSON: []byte(`{"error":{"status":400,"name":"ValidationError","message":"2 errors occurred",
			"details":{"errors":[{"path":["email"],"message":"Email already taken"},{"path":["directors",0,"name"],"message":"required"}]}}}`),
	}

	_, err := upstream.Translate(response)
	appError := apperr.As(err)
	require.NotNil(t, appError)

	require.Len(t, appError.Details, 2)
	assert.Equal(t, "email", appError.Details[0].Field)
	assert.Equal(t, "directors.0.name", appError.Details[1].Field)
}
