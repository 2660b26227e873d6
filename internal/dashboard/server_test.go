// Copyright (c) 2026 Trackline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dashboard_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/trackline/internal/dashboard"
	"github.com/taibuivan/trackline/internal/dashboard/client"
	"github.com/taibuivan/trackline/internal/platform/config"
	"github.com/taibuivan/trackline/internal/platform/constants"
	"github.com/taibuivan/trackline/internal/platform/sec"
)

// backendFixture stubs the Trackline API with two known accounts: a member
// and an admin, each authenticated by a real signed token.
type backendFixture struct {
	server      *httptest.Server
	memberToken string
	adminToken  string
}

func newBackend(t *testing.T) *backendFixture {
	t.Helper()

	tokens, err := sec.NewTokenService("dashboard-test-secret", "trackline.test")
	require.NoError(t, err)

	memberToken, err := tokens.GenerateAccessToken("emp-member", "member@trackline.app", false, time.Hour)
	require.NoError(t, err)
	adminToken, err := tokens.GenerateAccessToken("emp-admin", "admin@trackline.app", true, time.Hour)
	require.NoError(t, err)

	fixture := &backendFixture{memberToken: memberToken, adminToken: adminToken}

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		token := ""
		switch {
		case body.Email == "member@trackline.app" && body.Password == "member password":
			token = memberToken
		case body.Email == "admin@trackline.app" && body.Password == "admin password":
			token = adminToken
		default:
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{
				"error": "Invalid credentials", "code": "UNAUTHORIZED",
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{
			"access_token": token, "token_type": "bearer",
		})
	})
	mux.HandleFunc("/user/profile", func(w http.ResponseWriter, r *http.Request) {
		switch strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ") {
		case memberToken:
			json.NewEncoder(w).Encode(map[string]any{
				"id": "emp-member", "email": "member@trackline.app",
				"name": "Member", "isAdmin": false,
			})
		case adminToken:
			json.NewEncoder(w).Encode(map[string]any{
				"id": "emp-admin", "email": "admin@trackline.app",
				"name": "Admin", "isAdmin": true,
			})
		default:
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{
				"error": "Invalid credentials", "code": "UNAUTHORIZED",
			})
		}
	})
	mux.HandleFunc("/user/stats", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"totalProjects": 3, "weeklyTimeTracked": 5_400_000,
		})
	})
	mux.HandleFunc("/analytics/project-time", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"totalTime": 7_200_000,
			"projectBreakdown": map[string]any{
				"prj-a": map[string]any{
					"projectId": "prj-a", "projectName": "Atlas",
					"totalTime": 7_200_000, "percentage": 100.0, "shiftCount": 2,
				},
			},
		})
	})
	mux.HandleFunc("/analytics/screenshots", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		json.NewEncoder(w).Encode(map[string]any{"items": []any{}})
	})

	fixture.server = httptest.NewServer(mux)
	t.Cleanup(fixture.server.Close)
	return fixture
}

func newDashboard(t *testing.T, backend *backendFixture) http.Handler {
	t.Helper()

	cfg := &config.Dashboard{
		ServerPort:  "0",
		Environment: "test",
		APIBaseURL:  backend.server.URL,
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	server, err := dashboard.NewServer(cfg, logger, client.New(backend.server.URL))
	require.NoError(t, err)
	return server.Router()
}

// get performs one request carrying the given session token, following no
// redirects.
func get(t *testing.T, handler http.Handler, path, token string) *httptest.ResponseRecorder {
	t.Helper()
	request := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		request.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: token})
	}
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

/*
TestRouting_Anonymous verifies every protected page bounces a visitor with
no session to the login form.
*/
func TestRouting_Anonymous(t *testing.T) {
	handler := newDashboard(t, newBackend(t))

	for _, path := range []string{"/", "/user/dashboard", "/admin/dashboard", "/no/such/page"} {
		t.Run(path, func(t *testing.T) {
			response := get(t, handler, path, "")
			assert.Equal(t, http.StatusFound, response.Code)
			assert.Equal(t, dashboard.PathLogin, response.Header().Get("Location"))
		})
	}
}

/*
TestRouting_Member verifies a non-admin session renders its own dashboard
but is bounced off the admin page without seeing any analytics.
*/
func TestRouting_Member(t *testing.T) {
	backend := newBackend(t)
	handler := newDashboard(t, backend)

	// 1. The member's own page renders.
	response := get(t, handler, "/user/dashboard", backend.memberToken)
	assert.Equal(t, http.StatusOK, response.Code)
	assert.Contains(t, response.Body.String(), "member@trackline.app")

	// 2. The admin page redirects home, it never renders.
	response = get(t, handler, "/admin/dashboard", backend.memberToken)
	assert.Equal(t, http.StatusFound, response.Code)
	assert.Equal(t, dashboard.PathUserDashboard, response.Header().Get("Location"))

	// 3. The root lands on the member dashboard.
	response = get(t, handler, "/", backend.memberToken)
	assert.Equal(t, http.StatusFound, response.Code)
	assert.Equal(t, dashboard.PathUserDashboard, response.Header().Get("Location"))
}

/*
TestRouting_Admin verifies an admin session reaches the analytics page and
lands there from the root.
*/
func TestRouting_Admin(t *testing.T) {
	backend := newBackend(t)
	handler := newDashboard(t, backend)

	response := get(t, handler, "/admin/dashboard", backend.adminToken)
	assert.Equal(t, http.StatusOK, response.Code)
	assert.Contains(t, response.Body.String(), "Atlas")

	response = get(t, handler, "/", backend.adminToken)
	assert.Equal(t, http.StatusFound, response.Code)
	assert.Equal(t, dashboard.PathAdminDashboard, response.Header().Get("Location"))
}

/*
TestLogin_Flow verifies the form exchange: bad credentials re-render the
form with the API's message, good credentials set the cookie and redirect.
*/
func TestLogin_Flow(t *testing.T) {
	backend := newBackend(t)
	handler := newDashboard(t, backend)

	// 1. Rejected credentials re-render the form.
	form := strings.NewReader("email=member%40trackline.app&password=wrong")
	request := httptest.NewRequest(http.MethodPost, "/login", form)
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Invalid credentials")

	// 2. Accepted credentials set the session cookie and land on the dashboard.
	form = strings.NewReader("email=member%40trackline.app&password=member+password")
	request = httptest.NewRequest(http.MethodPost, "/login", form)
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t, dashboard.PathUserDashboard, recorder.Header().Get("Location"))

	var sessionCookie *http.Cookie
	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == constants.SessionCookieName {
			sessionCookie = cookie
		}
	}
	require.NotNil(t, sessionCookie)
	assert.Equal(t, backend.memberToken, sessionCookie.Value)
	assert.True(t, sessionCookie.HttpOnly)
}

/*
TestLogout verifies logout expires the cookie and returns to the form.
*/
func TestLogout(t *testing.T) {
	backend := newBackend(t)
	handler := newDashboard(t, backend)

	request := httptest.NewRequest(http.MethodPost, "/logout", nil)
	request.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: backend.memberToken})
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t, dashboard.PathLogin, recorder.Header().Get("Location"))

	for _, cookie := range recorder.Result().Cookies() {
		if cookie.Name == constants.SessionCookieName {
			assert.Less(t, cookie.MaxAge, 0, "session cookie must be expired")
		}
	}
}
