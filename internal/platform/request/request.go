// Copyright (c) 2026 Tributestream. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/taibuivan/tributestream/internal/platform/apperr"
	"github.com/taibuivan/tributestream/internal/platform/ctxutil"
	"github.com/taibuivan/tributestream/internal/platform/validate"
)

// maxJSONBytes bounds JSON request bodies. Uploads go through multipart instead.
const maxJSONBytes = 1 << 20

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - writer: http.ResponseWriter (told to close the connection on overflow)
  - request: *http.Request
  - target: any (Pointer to the destination struct)

Returns:
  - error: PayloadTooLarge past the body limit, validate.ErrInvalidJSON if
    decoding fails, otherwise nil
*/
func DecodeJSON(writer http.ResponseWriter, request *http.Request, target any) error {
	request.Body = http.MaxBytesReader(writer, request.Body, maxJSONBytes)

	decoder := json.NewDecoder(request.Body)
	if err := decoder.Decode(target); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return apperr.PayloadTooLarge("Request body exceeds the 1 MiB limit")
		case errors.Is(err, io.EOF):
			return apperr.ValidationError("Request body is required")
		}
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
Token returns the upstream credential resolved by the session middleware.

Returns "" if the request is anonymous.
*/
func Token(request *http.Request) string {
	return ctxutil.GetToken(request.Context())
}

/*
RequiredToken ensures the request carries a credential.

Returns:
  - string: The bearer token to forward upstream
  - error: apperr.Unauthorized if the request is anonymous
*/
func RequiredToken(request *http.Request) (string, error) {
	token := ctxutil.GetToken(request.Context())
	if token == "" {
		return "", apperr.Unauthorized("Authentication required")
	}
	return token, nil
}
