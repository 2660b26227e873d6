// Copyright (c) 2026 Trackline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package session resolves who the dashboard is talking to.

# Architecture

A [Store] is built per request and walks a one-way state machine:

	Loading ──► Anonymous
	    └─────► Authenticated

Initialize starts in Loading, reads the persisted token, and settles in
exactly one terminal state. The server — not the client-side token — is the
source of truth: a locally valid token still ends Anonymous if the profile
fetch is rejected. The local claims decode is only a fast path to skip the
network call for a token that is already expired.

The store is request-scoped on purpose: there is no shared mutable session,
so a slow profile fetch can never apply its result to a newer session.
*/
package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/trackline/internal/dashboard/client"
	"github.com/taibuivan/trackline/internal/platform/sec"
)

// State is the resolution state of a dashboard session.
type State int

const (
	// StateLoading means Initialize has not yet settled.
	StateLoading State = iota

	// StateAnonymous means no usable identity exists.
	StateAnonymous

	// StateAuthenticated means the server confirmed the token's identity.
	StateAuthenticated
)

// String implements fmt.Stringer for log output.
func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// TokenStorage is the single client-side persistence slot for the bearer
// token. Nothing else about the session is ever persisted client-side.
type TokenStorage interface {
	// Read returns the persisted token, or ok=false when the slot is empty.
	Read() (token string, ok bool)

	// Write replaces the slot's contents.
	Write(token string)

	// Clear empties the slot.
	Clear()
}

// API is the surface of the Trackline client the session store needs.
type API interface {
	Login(ctx context.Context, email, password string) (string, error)
	Profile(ctx context.Context, token string) (*client.Profile, error)
}

// Store holds one request's session resolution.
type Store struct {
	api     API
	storage TokenStorage
	logger  *slog.Logger
	now     func() time.Time

	state State
	token string
	user  *client.Profile
}

// NewStore creates a Store in [StateLoading].
func NewStore(api API, storage TokenStorage, logger *slog.Logger) *Store {
	return &Store{
		api:     api,
		storage: storage,
		logger:  logger,
		now:     time.Now,
		state:   StateLoading,
	}
}

// State returns the current resolution state.
func (store *Store) State() State { return store.state }

// User returns the confirmed profile, or nil outside [StateAuthenticated].
func (store *Store) User() *client.Profile { return store.user }

// Token returns the bearer token of an authenticated session, or "".
func (store *Store) Token() string { return store.token }

// IsAdmin reports whether the confirmed profile holds the admin role.
// It is false in every state but Authenticated.
func (store *Store) IsAdmin() bool {
	return store.state == StateAuthenticated && store.user != nil && store.user.IsAdmin
}

// settle moves the store into a terminal state.
func (store *Store) settle(state State, token string, user *client.Profile) {
	store.state = state
	store.token = token
	store.user = user
}

// clearToken empties the persisted slot and settles Anonymous.
func (store *Store) clearToken() {
	store.storage.Clear()
	store.settle(StateAnonymous, "", nil)
}

/*
Initialize resolves the persisted token into a terminal state.

# Resolution Order

 1. Empty slot: Anonymous, no network call.
 2. Undecodable or locally expired token: slot cleared, Anonymous,
    no network call. The decode is unverified — it only reads the
    expiry claim, it proves nothing about authenticity.
 3. Otherwise the profile fetch decides: success is Authenticated,
    any failure clears the slot and ends Anonymous.

Initialize never returns an error: a failed resolution IS a resolution
(Anonymous). Failures are logged, not propagated.
*/
func (store *Store) Initialize(ctx context.Context) {

	// ── 1. Persisted Slot ─────────────────────────────────────────────────

	token, ok := store.storage.Read()
	if !ok || token == "" {
		store.settle(StateAnonymous, "", nil)
		return
	}

	// ── 2. Local Expiry Hint ──────────────────────────────────────────────

	claims, err := sec.DecodeUnverified(token)
	if err != nil {
		store.logger.Warn("session_token_undecodable", slog.String("error", err.Error()))
		store.clearToken()
		return
	}

	// Only a strictly-past expiry skips the fetch; a token expiring this
	// exact instant still gets its server confirmation.
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(store.now()) {
		store.clearToken()
		return
	}

	// ── 3. Server Confirmation ────────────────────────────────────────────

	user, err := store.api.Profile(ctx, token)
	if err != nil {
		store.logger.Warn("session_profile_rejected", slog.String("error", err.Error()))
		store.clearToken()
		return
	}

	store.settle(StateAuthenticated, token, user)
}

/*
Login exchanges credentials for a token, persists it, and confirms the
identity with a profile fetch.

Returns the API's error untouched on failure so the login form can show
the server's own message; the slot is left empty in every failure path.
*/
func (store *Store) Login(ctx context.Context, email, password string) error {
	token, err := store.api.Login(ctx, email, password)
	if err != nil {
		return err
	}

	store.storage.Write(token)

	user, err := store.api.Profile(ctx, token)
	if err != nil {
		// A token we cannot resolve to a profile is useless; drop it.
		store.clearToken()
		return err
	}

	store.settle(StateAuthenticated, token, user)
	return nil
}

// Logout empties the persisted slot and settles Anonymous. It is
// idempotent and never fails.
func (store *Store) Logout() {
	store.clearToken()
}
