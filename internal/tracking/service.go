// Copyright (c) 2026 Trackline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tracking

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/trackline/internal/platform/apperr"
	"github.com/taibuivan/trackline/internal/platform/validate"
)

const (
	// WeeklyWindow is the rolling lookback for weeklyTimeTracked.
	WeeklyWindow = 7 * 24 * time.Hour

	// MonthlyWindow is the rolling lookback for monthlyTimeTracked.
	MonthlyWindow = 30 * 24 * time.Hour
)

// EmployeeService serves the per-user profile and stats reads.
type EmployeeService struct {
	employees EmployeeRepository
	logger    *slog.Logger
	now       func() time.Time
}

// NewEmployeeService creates an EmployeeService backed by the given repository.
func NewEmployeeService(employees EmployeeRepository, logger *slog.Logger) *EmployeeService {
	return &EmployeeService{
		employees: employees,
		logger:    logger,
		now:       time.Now,
	}
}

// loadActive fetches the employee and enforces the account gates every
// protected read shares.
//
// # Why Re-Check Here
//
// The bearer token only proves who the caller was at issue time. An admin
// can deactivate an account mid-session, so each protected call re-reads
// the persisted flags instead of trusting the claims.
func (service *EmployeeService) loadActive(context context.Context, employeeID string) (*Employee, error) {
	employee, err := service.employees.FindByID(context, employeeID)
	if err != nil {
		if apperr.IsAppError(err) {
			// A token naming a vanished employee is an auth failure, not a 404.
			return nil, apperr.Unauthorized("Invalid credentials")
		}
		return nil, err
	}

	if employee.Deactivated {
		return nil, apperr.Unauthorized("Account is deactivated")
	}
	if !employee.EmailVerified {
		return nil, apperr.Unauthorized("Email is not verified")
	}

	return employee, nil
}

// Profile returns the caller's own employee record.
func (service *EmployeeService) Profile(context context.Context, employeeID string) (*Employee, error) {
	return service.loadActive(context, employeeID)
}

// Stats returns the caller's aggregate counters over rolling 7-day and
// 30-day windows ending now.
func (service *EmployeeService) Stats(context context.Context, employeeID string) (*EmployeeStats, error) {
	employee, err := service.loadActive(context, employeeID)
	if err != nil {
		return nil, err
	}

	now := service.now()
	weekStart := now.Add(-WeeklyWindow).UnixMilli()
	monthStart := now.Add(-MonthlyWindow).UnixMilli()

	return service.employees.Stats(context, employee.ID, weekStart, monthStart)
}

// RequireAdmin loads the caller and rejects non-admins. Admin-only endpoints
// call this instead of [EmployeeService.Profile] so the persisted isAdmin
// flag, not the token claim, has the final word.
func (service *EmployeeService) RequireAdmin(context context.Context, employeeID string) (*Employee, error) {
	employee, err := service.loadActive(context, employeeID)
	if err != nil {
		return nil, err
	}

	if !employee.IsAdmin {
		return nil, apperr.Forbidden("Administrator access required")
	}

	return employee, nil
}

// AnalyticsService serves the organization-wide admin reads.
type AnalyticsService struct {
	shifts      ShiftRepository
	screenshots ScreenshotRepository
	cache       AnalyticsCache
	logger      *slog.Logger
}

// NewAnalyticsService creates an AnalyticsService over the shift and
// screenshot repositories with a read-through Redis cache.
func NewAnalyticsService(shifts ShiftRepository, screenshots ScreenshotRepository, cache AnalyticsCache, logger *slog.Logger) *AnalyticsService {
	return &AnalyticsService{
		shifts:      shifts,
		screenshots: screenshots,
		cache:       cache,
		logger:      logger,
	}
}

// validateFilter rejects inverted or unbounded windows before any query runs.
func validateFilter(filter AnalyticsFilter) error {
	validator := &validate.Validator{}

	validator.Custom("start", filter.Start <= 0, "Must be a positive epoch-millisecond timestamp")
	validator.Custom("end", filter.End <= 0, "Must be a positive epoch-millisecond timestamp")
	validator.Custom("start", filter.Start > 0 && filter.End > 0 && filter.Start > filter.End,
		"Window start must not be after window end")

	return validator.Err()
}

// cacheKey derives a stable digest of the window and every optional filter.
// Two requests with identical parameters share one cache entry.
func cacheKey(organizationID string, filter AnalyticsFilter) string {
	return fmt.Sprintf("%s:%d:%d:%s:%s:%s:%s:%s",
		organizationID, filter.Start, filter.End,
		filter.EmployeeID, filter.TeamID, filter.ProjectID, filter.TaskID, filter.ShiftID)
}

/*
ProjectTime aggregates the window into the organization's project breakdown.

# Semantics

  - totalTime sums every completed shift in the window, attributed or not.
  - projectBreakdown only covers attributed shifts, keyed by project ID.
  - percentage is each project's share of totalTime; when totalTime is 0
    every percentage is 0.

Results are cached for [constants.AnalyticsCacheTTL]; cache failures are
logged and the query proceeds uncached.
*/
func (service *AnalyticsService) ProjectTime(ctx context.Context, organizationID string, filter AnalyticsFilter) (*ProjectTimeAnalytics, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}

	// ── 1. Cache Lookup (best effort) ─────────────────────────────────────

	key := cacheKey(organizationID, filter)
	if cached, err := service.cache.GetProjectTime(ctx, key); err != nil {
		service.logger.Warn("analytics_cache_get_failed", slog.String("error", err.Error()))
	} else if cached != nil {
		return cached, nil
	}

	// ── 2. Window Aggregation ─────────────────────────────────────────────

	totalTime, err := service.shifts.WindowTotal(ctx, organizationID, filter)
	if err != nil {
		return nil, err
	}

	projectTotals, err := service.shifts.ProjectTotals(ctx, organizationID, filter)
	if err != nil {
		return nil, err
	}

	// ── 3. Breakdown Assembly ─────────────────────────────────────────────

	analytics := &ProjectTimeAnalytics{
		TotalTime:        totalTime,
		ProjectBreakdown: make(map[string]ProjectTimeEntry, len(projectTotals)),
	}

	for _, total := range projectTotals {
		percentage := 0.0
		if totalTime > 0 {
			percentage = float64(total.TotalTime) / float64(totalTime) * 100
		}

		analytics.ProjectBreakdown[total.ProjectID] = ProjectTimeEntry{
			ProjectID:   total.ProjectID,
			ProjectName: total.ProjectName,
			TotalTime:   total.TotalTime,
			Percentage:  percentage,
			ShiftCount:  total.ShiftCount,
		}
	}

	// ── 4. Cache Fill (best effort) ───────────────────────────────────────

	if err := service.cache.SetProjectTime(ctx, key, analytics); err != nil {
		service.logger.Warn("analytics_cache_set_failed", slog.String("error", err.Error()))
	}

	return analytics, nil
}

// Screenshots lists captures in the window, newest first, capped at limit.
func (service *AnalyticsService) Screenshots(ctx context.Context, organizationID string, filter AnalyticsFilter, limit int) (*ScreenshotList, error) {
	if err := validateFilter(filter); err != nil {
		return nil, err
	}

	items, err := service.screenshots.ListWindow(ctx, organizationID, filter, limit)
	if err != nil {
		return nil, err
	}

	if items == nil {
		items = []Screenshot{}
	}

	return &ScreenshotList{Items: items}, nil
}
