// Copyright (c) 2026 Trackline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body and query decoding patterns, ensuring consistent error handling and
type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/trackline/internal/platform/apperr"
	"github.com/taibuivan/trackline/internal/platform/ctxutil"
	"github.com/taibuivan/trackline/internal/platform/sec"
	"github.com/taibuivan/trackline/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: interface{} (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target interface{}) error {
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
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
Query retrieves a named query-string parameter, or "" when absent.
*/
func Query(request *http.Request, name string) string {
	return request.URL.Query().Get(name)
}

/*
RequiredInt64Query parses a mandatory integer query parameter
(analytics window bounds are epoch milliseconds).

Returns:
  - int64: The parsed value
  - error: apperr.ValidationError if the parameter is missing or malformed
*/
func RequiredInt64Query(request *http.Request, name string) (int64, error) {
	raw := request.URL.Query().Get(name)
	if raw == "" {
		return 0, apperr.ValidationError("Validation failed",
			apperr.FieldError{Field: name, Message: "Required query parameter"})
	}

	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperr.ValidationError("Validation failed",
			apperr.FieldError{Field: name, Message: "Must be an integer (epoch milliseconds)"})
	}

	return value, nil
}

/*
IntQuery parses an optional integer query parameter, falling back to the
provided default when absent.

Returns:
  - int: The parsed value, or fallback when the parameter is absent
  - error: apperr.ValidationError if present but malformed
*/
func IntQuery(request *http.Request, name string, fallback int) (int, error) {
	raw := request.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.ValidationError("Validation failed",
			apperr.FieldError{Field: name, Message: "Must be an integer"})
	}

	return value, nil
}

/*
Claims extracts the authenticated user claims from the request context.

Returns nil if the request is not authenticated.
*/
func Claims(request *http.Request) *sec.Claims {
	return ctxutil.GetAuthUser(request.Context())
}

/*
RequiredClaims ensures the request is authenticated and returns the user claims.

Returns:
  - *sec.Claims: The authenticated user claims
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredClaims(request *http.Request) (*sec.Claims, error) {

	// Get user claims
	claims := ctxutil.GetAuthUser(request.Context())

	// If the user is not authenticated, return an error
	if claims == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}

	return claims, nil
}

/*
RequiredEmployeeID returns the employee ID of the currently logged-in user.

Returns:
  - string: Employee UUID
  - error: apperr.Unauthorized if not authenticated
*/
func RequiredEmployeeID(request *http.Request) (string, error) {

	// Get user claims
	claims, err := RequiredClaims(request)

	// If the user is not authenticated, return an error
	if err != nil {
		return "", err
	}

	return claims.Subject, nil
}
