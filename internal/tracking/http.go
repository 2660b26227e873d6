// Copyright (c) 2026 Trackline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tracking

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/trackline/internal/platform/middleware"
	requestutil "github.com/taibuivan/trackline/internal/platform/request"
	"github.com/taibuivan/trackline/internal/platform/respond"
)

const (
	// DefaultScreenshotLimit applies when the client sends no limit.
	DefaultScreenshotLimit = 15

	// MaxScreenshotLimit caps a single screenshot page.
	MaxScreenshotLimit = 100
)

// UserHandler serves the per-user reads under /user.
type UserHandler struct {
	service *EmployeeService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *EmployeeService) *UserHandler {
	return &UserHandler{service: service}
}

func (handler *UserHandler) RegisterRoutes(router chi.Router) {
	// Authenticated only
	router.Group(func(protected chi.Router) {
		protected.Use(middleware.RequireAuth)

		protected.Get("/profile", handler.getProfile)
		protected.Get("/stats", handler.getStats)
	})
}

func (handler *UserHandler) getProfile(writer http.ResponseWriter, request *http.Request) {
	employeeID, err := requestutil.RequiredEmployeeID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	employee, err := handler.service.Profile(request.Context(), employeeID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, employee)
}

func (handler *UserHandler) getStats(writer http.ResponseWriter, request *http.Request) {
	employeeID, err := requestutil.RequiredEmployeeID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	stats, err := handler.service.Stats(request.Context(), employeeID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, stats)
}

// AnalyticsHandler serves the organization-wide admin reads under /analytics.
type AnalyticsHandler struct {
	employees *EmployeeService
	analytics *AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(employees *EmployeeService, analytics *AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		employees: employees,
		analytics: analytics,
	}
}

func (handler *AnalyticsHandler) RegisterRoutes(router chi.Router) {
	// Admin only
	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireAuth, middleware.RequireAdmin)

		admin.Get("/project-time", handler.getProjectTime)
		admin.Get("/screenshots", handler.listScreenshots)
	})
}

// requireAdmin resolves the caller to a persisted admin record. The token's
// isAdmin claim already passed the middleware, but the database flag decides.
func (handler *AnalyticsHandler) requireAdmin(request *http.Request) (*Employee, error) {
	employeeID, err := requestutil.RequiredEmployeeID(request)
	if err != nil {
		return nil, err
	}
	return handler.employees.RequireAdmin(request.Context(), employeeID)
}

// parseWindow extracts the mandatory window bounds and optional entity filters.
func parseWindow(request *http.Request) (AnalyticsFilter, error) {
	start, err := requestutil.RequiredInt64Query(request, "start")
	if err != nil {
		return AnalyticsFilter{}, err
	}
	end, err := requestutil.RequiredInt64Query(request, "end")
	if err != nil {
		return AnalyticsFilter{}, err
	}

	return AnalyticsFilter{
		Start:      start,
		End:        end,
		EmployeeID: requestutil.Query(request, "employeeId"),
		TeamID:     requestutil.Query(request, "teamId"),
		ProjectID:  requestutil.Query(request, "projectId"),
		TaskID:     requestutil.Query(request, "taskId"),
		ShiftID:    requestutil.Query(request, "shiftId"),
	}, nil
}

func (handler *AnalyticsHandler) getProjectTime(writer http.ResponseWriter, request *http.Request) {
	admin, err := handler.requireAdmin(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	filter, err := parseWindow(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	analytics, err := handler.analytics.ProjectTime(request.Context(), admin.OrganizationID, filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, analytics)
}

func (handler *AnalyticsHandler) listScreenshots(writer http.ResponseWriter, request *http.Request) {
	admin, err := handler.requireAdmin(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	filter, err := parseWindow(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	limit, err := requestutil.IntQuery(request, "limit", DefaultScreenshotLimit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if limit < 1 {
		limit = DefaultScreenshotLimit
	}
	if limit > MaxScreenshotLimit {
		limit = MaxScreenshotLimit
	}

	list, err := handler.analytics.Screenshots(request.Context(), admin.OrganizationID, filter, limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, list)
}
