// Copyright (c) 2026 Trackline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between the API server and the dashboard application.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP servers.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Security: JWT issuer, token lifetime, and the dashboard session cookie.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "trackline"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Authentication

const (
	// AuthIssuer is the standard 'iss' claim in JWTs issued by the API.
	AuthIssuer = "trackline.app"

	// AccessTokenTTL is the lifetime of an issued access token.
	AccessTokenTTL = 8 * time.Hour

	// SessionCookieName is the single well-known key under which the dashboard
	// persists the bearer token on the client. No other client-side state exists.
	SessionCookieName = "trackline_token"
)

// # HTTP Headers

const (
	HeaderXRequestID = "X-Request-ID"
	HeaderOrigin     = "Origin"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixResetToken    = "auth:reset_token:"
	RedisPrefixVerifyToken   = "auth:verify_token:"
	RedisPrefixAnalyticsTime = "analytics:project_time:"
)

// # Cache Lifetimes

const (
	// VerifyTokenTTL bounds how long an email-verification token stays redeemable.
	VerifyTokenTTL = 48 * time.Hour

	// ResetTokenTTL bounds how long a password-reset token stays redeemable.
	ResetTokenTTL = 1 * time.Hour

	// AnalyticsCacheTTL is the freshness window for cached analytics aggregates.
	AnalyticsCacheTTL = 60 * time.Second
)
