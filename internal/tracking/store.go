// Copyright (c) 2026 Trackline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tracking

import "context"

// EmployeeRepository defines persistence operations for employee records.
//
// Implementations map storage errors (e.g. pgx.ErrNoRows) to domain-friendly
// [apperr.AppError] values so callers never see driver details.
type EmployeeRepository interface {
	// FindByID retrieves an employee by primary key.
	FindByID(ctx context.Context, id string) (*Employee, error)

	// FindByEmail retrieves an employee by unique email address.
	FindByEmail(ctx context.Context, email string) (*Employee, error)

	// SetPassword stores a new bcrypt hash, optionally marking the email
	// verified in the same write (the invitation-redemption path).
	SetPassword(ctx context.Context, id, passwordHash string, markVerified bool) error

	// Stats computes the per-employee aggregate counters. weekStart and
	// monthStart are epoch-millisecond lower bounds for the rolling windows.
	Stats(ctx context.Context, employeeID string, weekStart, monthStart int64) (*EmployeeStats, error)
}

// ProjectTotal is a storage-level grouping row feeding [ProjectTimeAnalytics].
type ProjectTotal struct {
	ProjectID   string
	ProjectName string
	TotalTime   int64
	ShiftCount  int
}

// ShiftRepository defines the read-side queries over completed shifts.
type ShiftRepository interface {
	// WindowTotal sums the duration of every completed shift matching the
	// filter inside the window, attributed to a project or not.
	WindowTotal(ctx context.Context, organizationID string, filter AnalyticsFilter) (int64, error)

	// ProjectTotals groups the same window by project, joining project names.
	// Shifts without a project attribution are excluded.
	ProjectTotals(ctx context.Context, organizationID string, filter AnalyticsFilter) ([]ProjectTotal, error)
}

// ScreenshotRepository defines the read-side queries over screenshots.
type ScreenshotRepository interface {
	// ListWindow returns screenshots in the window matching the filter,
	// newest first, capped at limit.
	ListWindow(ctx context.Context, organizationID string, filter AnalyticsFilter, limit int) ([]Screenshot, error)
}
