// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package upstream

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/taibuivan/tributestream/internal/platform/apperr"
)

// UnknownErrorMessage is used when a failed reply carries no message.
const UnknownErrorMessage = "An unknown error occurred"

// Result is the unwrapped payload of a successful upstream reply.
type Result struct {
	// Data is the `data` member, or the whole body when there is no envelope.
	Data json.RawMessage

	// Meta is the `meta` member, if any (pagination lives here).
	Meta json.RawMessage
}

// Decode unmarshals the data member into target.
func (result *Result) Decode(target any) error {
	if len(result.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(result.Data, target); err != nil {
		return apperr.Internal(fmt.Errorf("upstream: decode data: %w", err))
	}
	return nil
}

// errorEnvelope is the failure shape `{error: {status, name, message, details}}`.
type errorEnvelope struct {
	Error *struct {
		Status  int             `json:"status"`
		Name    string          `json:"name"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

// validationDetails is the upstream's per-field breakdown of a ValidationError.
type validationDetails struct {
	Errors []struct {
		Path    []any  `json:"path"`
		Message string `json:"message"`
	} `json:"errors"`
}

// Translate maps an upstream reply onto either a [Result] or an [apperr.AppError].
// Exactly one of the two return values is non-nil.
func Translate(response *Response) (*Result, error) {
	if response.OK() {
		return unwrap(response), nil
	}
	return nil, failure(response)
}

func unwrap(response *Response) *Result {
	if response.JSON == nil {
		if response.Text == "" {
			return &Result{}
		}
		text, _ := json.Marshal(response.Text)
		return &Result{Data: text}
	}

	var members map[string]json.RawMessage
	if err := json.Unmarshal(response.JSON, &members); err == nil {
		if data, ok := members["data"]; ok {
			return &Result{Data: data, Meta: members["meta"]}
		}
	}

	// Non-envelope bodies (auth, upload, users/me) are the data themselves.
	return &Result{Data: response.JSON}
}

func failure(response *Response) *apperr.AppError {
	status := response.Status
	message := UnknownErrorMessage
	name := ""

	var body errorEnvelope
	if response.JSON != nil && json.Unmarshal(response.JSON, &body) == nil && body.Error != nil {
		if body.Error.Status != 0 {
			status = body.Error.Status
		}
		if body.Error.Message != "" {
			message = body.Error.Message
		}
		name = body.Error.Name

		appError := apperr.Upstream(status, name, message)
		appError.Details = fieldErrors(body.Error.Details)
		return appError
	}

	return apperr.Upstream(status, name, message)
}

func fieldErrors(raw json.RawMessage) []apperr.FieldError {
	if len(raw) == 0 {
		return nil
	}

	var details validationDetails
	if err := json.Unmarshal(raw, &details); err != nil {
		return nil
	}

	fields := make([]apperr.FieldError, 0, len(details.Errors))
	for _, item := range details.Errors {
		segments := make([]string, 0, len(item.Path))
		for _, segment := range item.Path {
			segments = append(segments, fmt.Sprint(segment))
		}
		fields = append(fields, apperr.FieldError{
			Field:   strings.Join(segments, "."),
			Message: item.Message,
		})
	}

	if len(fields) == 0 {
		return nil
	}
	return fields
}
