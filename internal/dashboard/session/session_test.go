// Copyright (c) 2026 Trackline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/trackline/internal/dashboard/client"
	"github.com/taibuivan/trackline/internal/dashboard/session"
	"github.com/taibuivan/trackline/internal/platform/apperr"
	"github.com/taibuivan/trackline/internal/platform/sec"
)

// fakeAPI implements session.API with scripted responses and call counting.
type fakeAPI struct {
	loginToken   string
	loginErr     error
	profile      *client.Profile
	profileErr   error
	loginCalls   int
	profileCalls int
}

func (api *fakeAPI) Login(ctx context.Context, email, password string) (string, error) {
	api.loginCalls++
	return api.loginToken, api.loginErr
}

func (api *fakeAPI) Profile(ctx context.Context, token string) (*client.Profile, error) {
	api.profileCalls++
	if api.profileErr != nil {
		return nil, api.profileErr
	}
	return api.profile, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// signedToken issues a real HS256 token with the given remaining lifetime.
func signedToken(t *testing.T, ttl time.Duration) string {
	t.Helper()
	service, err := sec.NewTokenService("session-test-secret", "trackline.test")
	require.NoError(t, err)

	token, err := service.GenerateAccessToken("emp-1", "dev@trackline.app", false, ttl)
	require.NoError(t, err)
	return token
}

/*
TestStore_StartsLoading verifies the state machine starts unsettled.
*/
func TestStore_StartsLoading(t *testing.T) {
	store := session.NewStore(&fakeAPI{}, &session.MemoryStorage{}, testLogger())
	assert.Equal(t, session.StateLoading, store.State())
}

/*
TestInitialize_EmptySlot verifies an empty token slot settles Anonymous
without any network call.
*/
func TestInitialize_EmptySlot(t *testing.T) {
	api := &fakeAPI{}
	store := session.NewStore(api, &session.MemoryStorage{}, testLogger())

	store.Initialize(context.Background())

	assert.Equal(t, session.StateAnonymous, store.State())
	assert.Nil(t, store.User())
	assert.Zero(t, api.profileCalls)
}

/*
TestInitialize_ExpiredToken verifies a locally expired token is cleared and
settles Anonymous without a profile fetch.
*/
func TestInitialize_ExpiredToken(t *testing.T) {
	api := &fakeAPI{}
	storage := &session.MemoryStorage{}
	storage.Write(signedToken(t, -time.Minute))

	store := session.NewStore(api, storage, testLogger())
	store.Initialize(context.Background())

	assert.Equal(t, session.StateAnonymous, store.State())
	assert.Zero(t, api.profileCalls, "expired token must not trigger a fetch")

	_, ok := storage.Read()
	assert.False(t, ok, "expired token must be cleared from the slot")
}

/*
TestInitialize_GarbageToken verifies an undecodable token is cleared and
settles Anonymous without a profile fetch.
*/
func TestInitialize_GarbageToken(t *testing.T) {
	api := &fakeAPI{}
	storage := &session.MemoryStorage{}
	storage.Write("not-a-jwt")

	store := session.NewStore(api, storage, testLogger())
	store.Initialize(context.Background())

	assert.Equal(t, session.StateAnonymous, store.State())
	assert.Zero(t, api.profileCalls)

	_, ok := storage.Read()
	assert.False(t, ok)
}

/*
TestInitialize_ValidToken verifies a live token resolves through exactly one
profile fetch into Authenticated.
*/
func TestInitialize_ValidToken(t *testing.T) {
	api := &fakeAPI{
		profile: &client.Profile{ID: "emp-1", Email: "dev@trackline.app", Name: "Dev"},
	}
	storage := &session.MemoryStorage{}
	token := signedToken(t, time.Hour)
	storage.Write(token)

	store := session.NewStore(api, storage, testLogger())
	store.Initialize(context.Background())

	assert.Equal(t, session.StateAuthenticated, store.State())
	require.NotNil(t, store.User())
	assert.Equal(t, "emp-1", store.User().ID)
	assert.Equal(t, token, store.Token())
	assert.Equal(t, 1, api.profileCalls, "resolution makes exactly one fetch")
}

/*
TestInitialize_ServerRejects verifies the server is the source of truth: a
locally valid token still ends Anonymous when the profile fetch fails, and
the slot is cleared.
*/
func TestInitialize_ServerRejects(t *testing.T) {
	api := &fakeAPI{profileErr: apperr.Unauthorized("Account is deactivated")}
	storage := &session.MemoryStorage{}
	storage.Write(signedToken(t, time.Hour))

	store := session.NewStore(api, storage, testLogger())
	store.Initialize(context.Background())

	assert.Equal(t, session.StateAnonymous, store.State())
	assert.Nil(t, store.User())

	_, ok := storage.Read()
	assert.False(t, ok)
}

/*
TestLogin_RoundTrip verifies a successful login persists the token and
settles Authenticated.
*/
func TestLogin_RoundTrip(t *testing.T) {
	api := &fakeAPI{
		loginToken: "issued-token",
		profile:    &client.Profile{ID: "emp-1", Email: "dev@trackline.app", IsAdmin: true},
	}
	storage := &session.MemoryStorage{}
	store := session.NewStore(api, storage, testLogger())

	err := store.Login(context.Background(), "dev@trackline.app", "hunter22")
	require.NoError(t, err)

	assert.Equal(t, session.StateAuthenticated, store.State())
	assert.True(t, store.IsAdmin())

	persisted, ok := storage.Read()
	assert.True(t, ok)
	assert.Equal(t, "issued-token", persisted)
}

/*
TestLogin_Rejected verifies a failed login leaves the slot empty and
surfaces the API's error untouched.
*/
func TestLogin_Rejected(t *testing.T) {
	api := &fakeAPI{loginErr: apperr.Unauthorized("Invalid credentials")}
	storage := &session.MemoryStorage{}
	store := session.NewStore(api, storage, testLogger())

	err := store.Login(context.Background(), "dev@trackline.app", "wrong")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "UNAUTHORIZED", ae.Code)

	_, ok := storage.Read()
	assert.False(t, ok)
}

/*
TestLogin_ProfileFails verifies an issued token that cannot be resolved to
a profile is dropped rather than persisted.
*/
func TestLogin_ProfileFails(t *testing.T) {
	api := &fakeAPI{
		loginToken: "issued-token",
		profileErr: apperr.Unauthorized("Email is not verified"),
	}
	storage := &session.MemoryStorage{}
	store := session.NewStore(api, storage, testLogger())

	err := store.Login(context.Background(), "dev@trackline.app", "hunter22")
	require.Error(t, err)

	assert.Equal(t, session.StateAnonymous, store.State())
	_, ok := storage.Read()
	assert.False(t, ok)
}

/*
TestLogout verifies logout clears the slot and is idempotent.
*/
func TestLogout(t *testing.T) {
	api := &fakeAPI{
		profile: &client.Profile{ID: "emp-1", Email: "dev@trackline.app"},
	}
	storage := &session.MemoryStorage{}
	storage.Write(signedToken(t, time.Hour))

	store := session.NewStore(api, storage, testLogger())
	store.Initialize(context.Background())
	require.Equal(t, session.StateAuthenticated, store.State())

	store.Logout()
	assert.Equal(t, session.StateAnonymous, store.State())
	assert.Nil(t, store.User())

	// Second logout is a no-op, not a panic
	store.Logout()
	assert.Equal(t, session.StateAnonymous, store.State())
}
