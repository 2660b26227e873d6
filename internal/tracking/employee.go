// Copyright (c) 2026 Trackline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package tracking defines the core time-tracking entities of the Trackline
// platform and the read-side aggregates served to the dashboard.
//
// # Architecture
//
// Entities in this package represent the "Truth" of the system.
// They have no dependencies on outer layers (like databases, APIs, or libraries).
// This makes the core logic highly testable and resilient to technology changes.
package tracking

import (
	"time"
)

// Employee represents a member of a Trackline organization.
//
// # Rules
//   - Email is unique and validated.
//   - PasswordHash is set exclusively through the email-verification flow.
//   - EmailVerified gates login: invited employees cannot authenticate until
//     they have redeemed their verification token.
//   - Deactivated employees keep their history but fail every protected call.
//
// The JSON shape is the published /user/profile contract.
type Employee struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Name           string    `json:"name"`
	PasswordHash   string    `json:"-"` // Explicitly omitted from JSON for security.
	IsAdmin        bool      `json:"isAdmin"`
	EmailVerified  bool      `json:"emailVerified"`
	Deactivated    bool      `json:"deactivated"`
	OrganizationID string    `json:"organizationId"`
	TeamID         string    `json:"teamId,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// EmployeeStats is the per-user aggregate block behind GET /user/stats.
//
// All durations are epoch-milliseconds sums over completed shifts only;
// an in-flight shift contributes nothing until it ends.
type EmployeeStats struct {
	TotalProjects      int   `json:"totalProjects"`
	TotalTasks         int   `json:"totalTasks"`
	TotalTimeTracked   int64 `json:"totalTimeTracked"`
	ActiveProjects     int   `json:"activeProjects"`
	ActiveTasks        int   `json:"activeTasks"`
	TotalScreenshots   int   `json:"totalScreenshots"`
	WeeklyTimeTracked  int64 `json:"weeklyTimeTracked"`
	MonthlyTimeTracked int64 `json:"monthlyTimeTracked"`
}
