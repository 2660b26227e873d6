// Copyright (c) 2026 Trackline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package dashboard is the server-rendered web UI of Trackline.

# Architecture

The dashboard owns no data. Every page resolves the caller's session
against the API, asks the guard what the page may do, fetches what it
needs through the typed client, and renders an HTML template. The only
client-side state is the session cookie.
*/
package dashboard

import (
	"context"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/trackline/internal/dashboard/client"
	"github.com/taibuivan/trackline/internal/dashboard/guard"
	"github.com/taibuivan/trackline/internal/dashboard/session"
	"github.com/taibuivan/trackline/internal/dashboard/view"
	"github.com/taibuivan/trackline/internal/platform/config"
	"github.com/taibuivan/trackline/internal/platform/constants"
	"github.com/taibuivan/trackline/internal/platform/middleware"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	// AdminWindow is the reporting lookback of the admin dashboard.
	AdminWindow = 7 * 24 * time.Hour

	// AdminScreenshotLimit caps the capture strip on the admin dashboard.
	AdminScreenshotLimit = 5
)

// Page routes. Redirect targets reference these, never string literals.
const (
	PathLogin          = "/login"
	PathUserDashboard  = "/user/dashboard"
	PathAdminDashboard = "/admin/dashboard"
)

// Server is the dashboard HTTP application.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	api        *client.Client
	cfg        *config.Dashboard
	log        *slog.Logger
	templates  *template.Template
	now        func() time.Time
}

// NewServer builds the dashboard router and parses the embedded templates.
func NewServer(cfg *config.Dashboard, log *slog.Logger, api *client.Client) (*Server, error) {
	templates, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	server := &Server{
		api:       api,
		cfg:       cfg,
		log:       log,
		templates: templates,
		now:       time.Now,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(middleware.PanicRecovery(log))

	r.Get("/", server.home)
	r.Get(PathLogin, server.loginForm)
	r.Post(PathLogin, server.loginSubmit)
	r.Post("/logout", server.logout)
	r.Get(PathUserDashboard, server.userDashboard)
	r.Get(PathAdminDashboard, server.adminDashboard)
	r.NotFound(server.home)

	server.router = r
	server.httpServer = &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadTimeout:       constants.DefaultReadTimeout,
		WriteTimeout:      constants.DefaultWriteTimeout,
		IdleTimeout:       constants.DefaultIdleTimeout,
		ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
	}

	return server, nil
}

// # Session Resolution

// resolveSession builds and settles a request-scoped session store.
func (server *Server) resolveSession(writer http.ResponseWriter, request *http.Request) *session.Store {
	storage := session.NewCookieStorage(writer, request, server.cfg.CookieSecure)
	store := session.NewStore(server.api, storage, server.log)
	store.Initialize(request.Context())
	return store
}

// applyGuard translates a guard decision into transport. It reports whether
// the handler may continue rendering.
func (server *Server) applyGuard(writer http.ResponseWriter, request *http.Request, decision guard.Decision) bool {
	switch decision {
	case guard.Render:
		return true
	case guard.RedirectLogin:
		http.Redirect(writer, request, PathLogin, http.StatusFound)
	case guard.RedirectHome:
		http.Redirect(writer, request, PathUserDashboard, http.StatusFound)
	case guard.ShowLoading:
		// Unreachable with a request-scoped store: resolveSession always
		// settles before any guard runs. Kept as a safe fallback.
		server.render(writer, request, "loading.html", nil)
	}
	return false
}

// render executes one template, degrading to a plain 500 if execution fails.
func (server *Server) render(writer http.ResponseWriter, request *http.Request, name string, data any) {
	writer.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := server.templates.ExecuteTemplate(writer, name, data); err != nil {
		server.log.Error("template_render_failed",
			slog.String("template", name),
			slog.String("error", err.Error()),
		)
		http.Error(writer, "Internal Server Error", http.StatusInternalServerError)
	}
}

// landing picks the post-login destination for a settled session.
func landing(store *session.Store) string {
	if store.IsAdmin() {
		return PathAdminDashboard
	}
	return PathUserDashboard
}

// # Handlers

// home routes / (and unknown paths) to the session's natural page.
func (server *Server) home(writer http.ResponseWriter, request *http.Request) {
	store := server.resolveSession(writer, request)
	if store.State() == session.StateAuthenticated {
		http.Redirect(writer, request, landing(store), http.StatusFound)
		return
	}
	http.Redirect(writer, request, PathLogin, http.StatusFound)
}

// loginForm renders the credential form. An already-authenticated visitor
// is sent straight to their dashboard.
func (server *Server) loginForm(writer http.ResponseWriter, request *http.Request) {
	store := server.resolveSession(writer, request)
	if store.State() == session.StateAuthenticated {
		http.Redirect(writer, request, landing(store), http.StatusFound)
		return
	}
	server.render(writer, request, "login.html", view.LoginPage{})
}

// loginSubmit exchanges the form credentials for a session.
func (server *Server) loginSubmit(writer http.ResponseWriter, request *http.Request) {
	if err := request.ParseForm(); err != nil {
		server.render(writer, request, "login.html", view.LoginPage{
			ErrorMessage: "Invalid form submission",
		})
		return
	}

	email := request.PostFormValue("email")
	password := request.PostFormValue("password")

	store := server.resolveSession(writer, request)
	if err := store.Login(request.Context(), email, password); err != nil {
		server.log.Info("dashboard_login_rejected", slog.String("email", email))
		server.render(writer, request, "login.html", view.LoginPage{
			Email:        email,
			ErrorMessage: view.LoginError(err),
		})
		return
	}

	http.Redirect(writer, request, landing(store), http.StatusFound)
}

// logout clears the session cookie and returns to the login form.
func (server *Server) logout(writer http.ResponseWriter, request *http.Request) {
	store := server.resolveSession(writer, request)
	store.Logout()
	http.Redirect(writer, request, PathLogin, http.StatusFound)
}

// userDashboard renders the employee stats page.
func (server *Server) userDashboard(writer http.ResponseWriter, request *http.Request) {
	store := server.resolveSession(writer, request)
	if !server.applyGuard(writer, request, guard.Decide(store, false)) {
		return
	}

	stats, err := server.api.Stats(request.Context(), store.Token())
	server.render(writer, request, "user_dashboard.html", view.NewUserPage(store.User(), stats, err))
}

// adminDashboard renders the organization analytics page over the last week.
func (server *Server) adminDashboard(writer http.ResponseWriter, request *http.Request) {
	store := server.resolveSession(writer, request)
	if !server.applyGuard(writer, request, guard.Decide(store, true)) {
		return
	}

	windowEnd := server.now().UnixMilli()
	windowStart := server.now().Add(-AdminWindow).UnixMilli()

	analytics, err := server.api.ProjectTime(request.Context(), store.Token(), windowStart, windowEnd)

	var screenshots *client.ScreenshotPage
	if err == nil {
		screenshots, err = server.api.Screenshots(request.Context(), store.Token(), windowStart, windowEnd, AdminScreenshotLimit)
	}

	server.render(writer, request, "admin_dashboard.html",
		view.NewAdminPage(store.User(), analytics, screenshots, windowStart, windowEnd, err))
}

// # Lifecycle

// ListenAndServe starts the dashboard server. It blocks until closed.
func (server *Server) ListenAndServe() error {
	server.log.Info("dashboard starting", slog.String("addr", server.httpServer.Addr))
	return server.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (server *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return server.httpServer.Shutdown(ctx)
}

// Router exposes the chi mux for tests.
func (server *Server) Router() http.Handler { return server.router }
