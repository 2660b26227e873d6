// Copyright (c) 2026 Trackline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package client is the dashboard's typed gateway to the Trackline API.

# Architecture

Every call goes through one request helper that injects the bearer token,
enforces the request deadline, and validates the response body at the
boundary. Use sites receive either a schema-checked value or a typed
[apperr.AppError]; raw JSON never crosses this package.

Failure taxonomy:

  - Transport failures map to NETWORK_ERROR.
  - Non-2xx statuses carry the server's own code and message through.
  - 2xx bodies that fail schema validation map to MALFORMED_RESPONSE.
*/
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/taibuivan/trackline/internal/platform/apperr"
)

// RequestTimeout bounds every API round trip from the dashboard.
const RequestTimeout = 10 * time.Second

// validatable is implemented by every response payload type.
type validatable interface {
	validate() error
}

// Client calls the Trackline API on behalf of a dashboard session.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a Client rooted at baseURL (e.g. "http://localhost:8080/api/v1").
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: RequestTimeout,
		},
	}
}

// errorEnvelope mirrors the API's uniform error body.
type errorEnvelope struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// networkError marks a transport-level failure (DNS, refused, timeout).
func networkError(cause error) *apperr.AppError {
	return &apperr.AppError{
		Code:       "NETWORK_ERROR",
		Message:    "Trackline API is unreachable",
		HTTPStatus: http.StatusBadGateway,
		Cause:      cause,
	}
}

// do executes one API round trip and decodes the body into target.
//
// # Boundary Rule
//
// target is validated before it is returned; a 2xx body that fails the
// schema check surfaces as MALFORMED_RESPONSE, never as a zero-valued
// struct at a use site.
func (client *Client) do(ctx context.Context, method, path, token string, query url.Values, body any, target validatable) error {

	// ── 1. Build Request ──────────────────────────────────────────────────

	endpoint := client.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client_encode_failed: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	request, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("client_build_request_failed: %w", err)
	}

	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	// ── 2. Round Trip ─────────────────────────────────────────────────────

	response, err := client.httpClient.Do(request)
	if err != nil {
		return networkError(err)
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		return networkError(err)
	}

	// ── 3. Error Statuses ─────────────────────────────────────────────────

	if response.StatusCode < 200 || response.StatusCode > 299 {
		var envelope errorEnvelope
		if err := json.Unmarshal(raw, &envelope); err != nil || envelope.Code == "" {
			return apperr.MalformedResponse(fmt.Errorf("status %d with unparseable error body", response.StatusCode))
		}
		return &apperr.AppError{
			Code:       envelope.Code,
			Message:    envelope.Error,
			HTTPStatus: response.StatusCode,
		}
	}

	// ── 4. Schema Check ───────────────────────────────────────────────────

	if err := json.Unmarshal(raw, target); err != nil {
		return apperr.MalformedResponse(err)
	}
	if err := target.validate(); err != nil {
		return apperr.MalformedResponse(err)
	}

	return nil
}

// Login exchanges credentials for a bearer token.
func (client *Client) Login(ctx context.Context, email, password string) (string, error) {
	payload := map[string]string{"email": email, "password": password}

	var result loginResult
	if err := client.do(ctx, http.MethodPost, "/auth/login", "", nil, payload, &result); err != nil {
		return "", err
	}

	return result.AccessToken, nil
}

// Profile fetches the caller's employee record.
func (client *Client) Profile(ctx context.Context, token string) (*Profile, error) {
	var profile Profile
	if err := client.do(ctx, http.MethodGet, "/user/profile", token, nil, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Stats fetches the caller's aggregate counters.
func (client *Client) Stats(ctx context.Context, token string) (*Stats, error) {
	var stats Stats
	if err := client.do(ctx, http.MethodGet, "/user/stats", token, nil, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// ProjectTime fetches the organization project breakdown for the window.
// start and end are epoch milliseconds.
func (client *Client) ProjectTime(ctx context.Context, token string, start, end int64) (*ProjectTime, error) {
	query := url.Values{}
	query.Set("start", strconv.FormatInt(start, 10))
	query.Set("end", strconv.FormatInt(end, 10))

	var analytics ProjectTime
	if err := client.do(ctx, http.MethodGet, "/analytics/project-time", token, query, nil, &analytics); err != nil {
		return nil, err
	}
	return &analytics, nil
}

// Screenshots fetches the newest captures in the window, capped at limit.
func (client *Client) Screenshots(ctx context.Context, token string, start, end int64, limit int) (*ScreenshotPage, error) {
	query := url.Values{}
	query.Set("start", strconv.FormatInt(start, 10))
	query.Set("end", strconv.FormatInt(end, 10))
	query.Set("limit", strconv.Itoa(limit))

	var page ScreenshotPage
	if err := client.do(ctx, http.MethodGet, "/analytics/screenshots", token, query, nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}
