// Copyright (c) 2026 Trackline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/trackline/internal/dashboard/client"
	"github.com/taibuivan/trackline/internal/platform/apperr"
)

// stub spins up a one-route test API and a client pointed at it.
func stub(t *testing.T, handler http.HandlerFunc) *client.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return client.New(server.URL)
}

/*
TestLogin_Success verifies the happy path returns the issued token and the
request carries JSON credentials.
*/
func TestLogin_Success(t *testing.T) {
	api := stub(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, http.MethodPost, request.Method)
		assert.Equal(t, "/auth/login", request.URL.Path)
		assert.Equal(t, "application/json", request.Header.Get("Content-Type"))

		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{"access_token":"tok-1","token_type":"bearer"}`))
	})

	token, err := api.Login(context.Background(), "dev@trackline.app", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", token)
}

/*
TestLogin_WrongTokenType verifies a token_type other than bearer is treated
as a malformed response, not silently accepted.
*/
func TestLogin_WrongTokenType(t *testing.T) {
	api := stub(t, func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{"access_token":"tok-1","token_type":"mac"}`))
	})

	_, err := api.Login(context.Background(), "dev@trackline.app", "hunter22")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "MALFORMED_RESPONSE", ae.Code)
}

/*
TestProfile_BearerInjection verifies the Authorization header format.
*/
func TestProfile_BearerInjection(t *testing.T) {
	api := stub(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "Bearer tok-1", request.Header.Get("Authorization"))

		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{"id":"emp-1","email":"dev@trackline.app","name":"Dev","isAdmin":true}`))
	})

	profile, err := api.Profile(context.Background(), "tok-1")
	require.NoError(t, err)
	assert.Equal(t, "emp-1", profile.ID)
	assert.True(t, profile.IsAdmin)
}

/*
TestProfile_MissingID verifies a 2xx body without the required fields fails
the boundary schema check.
*/
func TestProfile_MissingID(t *testing.T) {
	api := stub(t, func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{"name":"Dev"}`))
	})

	_, err := api.Profile(context.Background(), "tok-1")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "MALFORMED_RESPONSE", ae.Code)
}

/*
TestProfile_ErrorEnvelope verifies the server's own code and message pass
through on a non-2xx status.
*/
func TestProfile_ErrorEnvelope(t *testing.T) {
	api := stub(t, func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(http.StatusUnauthorized)
		_, _ = writer.Write([]byte(`{"error":"Account is deactivated","code":"UNAUTHORIZED"}`))
	})

	_, err := api.Profile(context.Background(), "tok-1")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "UNAUTHORIZED", ae.Code)
	assert.Equal(t, "Account is deactivated", ae.Message)
	assert.Equal(t, http.StatusUnauthorized, ae.HTTPStatus)
}

/*
TestProfile_UnparseableError verifies a non-2xx status with a broken body
still maps to a typed error.
*/
func TestProfile_UnparseableError(t *testing.T) {
	api := stub(t, func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusBadGateway)
		_, _ = writer.Write([]byte(`<html>upstream proxy error</html>`))
	})

	_, err := api.Profile(context.Background(), "tok-1")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "MALFORMED_RESPONSE", ae.Code)
}

/*
TestStats_AbsentFieldsAreZero verifies the union contract: counters the
server omits decode to zero.
*/
func TestStats_AbsentFieldsAreZero(t *testing.T) {
	api := stub(t, func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{"totalProjects":3,"totalTimeTracked":5400000}`))
	})

	stats, err := api.Stats(context.Background(), "tok-1")
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalProjects)
	assert.Equal(t, int64(5_400_000), stats.TotalTimeTracked)
	assert.Zero(t, stats.TotalTasks)
	assert.Zero(t, stats.WeeklyTimeTracked)
	assert.Zero(t, stats.TotalScreenshots)
}

/*
TestProjectTime_WindowParams verifies the window parameters go out as epoch
milliseconds and an absent breakdown comes back as an empty map.
*/
func TestProjectTime_WindowParams(t *testing.T) {
	api := stub(t, func(writer http.ResponseWriter, request *http.Request) {
		query := request.URL.Query()
		assert.Equal(t, "1000", query.Get("start"))
		assert.Equal(t, "2000", query.Get("end"))

		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{"totalTime":0}`))
	})

	analytics, err := api.ProjectTime(context.Background(), "tok-1", 1000, 2000)
	require.NoError(t, err)

	assert.Zero(t, analytics.TotalTime)
	assert.NotNil(t, analytics.ProjectBreakdown)
	assert.Empty(t, analytics.ProjectBreakdown)
}

/*
TestScreenshots_LimitParam verifies the page limit is forwarded and items
decode in order.
*/
func TestScreenshots_LimitParam(t *testing.T) {
	api := stub(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "5", request.URL.Query().Get("limit"))
		assert.Equal(t, "1000", request.URL.Query().Get("start"))
		assert.Equal(t, "5000", request.URL.Query().Get("end"))

		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(`{"items":[
			{"id":"shot-2","employeeId":"emp-1","employeeName":"Dev","timestamp":2000,"activityLevel":80},
			{"id":"shot-1","employeeId":"emp-1","employeeName":"Dev","timestamp":1000,"activityLevel":40}
		]}`))
	})

	page, err := api.Screenshots(context.Background(), "tok-1", 1000, 5000, 5)
	require.NoError(t, err)

	require.Len(t, page.Items, 2)
	assert.Equal(t, "shot-2", page.Items[0].ID)
	assert.Equal(t, 80.0, page.Items[0].ActivityLevel)
}

/*
TestNetworkError verifies an unreachable API maps to the transport failure
code rather than an untyped error.
*/
func TestNetworkError(t *testing.T) {
	// Port 0 is never listening.
	api := client.New("http://127.0.0.1:0")

	_, err := api.Profile(context.Background(), "tok-1")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NETWORK_ERROR", ae.Code)
}
