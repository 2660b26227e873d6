// Copyright (c) 2026 Trackline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view

import (
	"sort"

	"github.com/taibuivan/trackline/internal/dashboard/client"
	"github.com/taibuivan/trackline/internal/platform/apperr"
	"github.com/taibuivan/trackline/pkg/slice"
)

// Status is the render state of a data-backed page section.
type Status int

const (
	// StatusLoading means the section's data is not yet available.
	StatusLoading Status = iota

	// StatusError means the fetch failed; ErrorMessage explains it.
	StatusError

	// StatusReady means the section renders its data.
	StatusReady
)

// errorMessage converts a fetch error into a display string. Typed API
// errors show their client-safe message; anything else gets a generic line.
func errorMessage(err error) string {
	if appError := apperr.As(err); appError != nil {
		return appError.Message
	}
	return "Something went wrong. Please try again."
}

// # Login Page

// LoginPage is the render model for GET /login.
type LoginPage struct {
	Email        string
	ErrorMessage string
}

// LoginError converts a login failure into the form's error line.
func LoginError(err error) string {
	return errorMessage(err)
}

// # User Dashboard

// StatsView is the formatted stats block.
type StatsView struct {
	TotalProjects      int
	TotalTasks         int
	TotalTimeTracked   string
	ActiveProjects     int
	ActiveTasks        int
	TotalScreenshots   int
	WeeklyTimeTracked  string
	MonthlyTimeTracked string
}

// UserPage is the render model for the employee dashboard.
type UserPage struct {
	Status       Status
	ErrorMessage string

	Name  string
	Email string
	Admin bool
	Stats StatsView
}

// NewUserPage builds the employee dashboard model. A fetch error yields an
// error-state page that still carries the identity header.
func NewUserPage(user *client.Profile, stats *client.Stats, err error) UserPage {
	page := UserPage{
		Name:  user.Name,
		Email: user.Email,
		Admin: user.IsAdmin,
	}

	if err != nil {
		page.Status = StatusError
		page.ErrorMessage = errorMessage(err)
		return page
	}

	page.Status = StatusReady
	page.Stats = StatsView{
		TotalProjects:      stats.TotalProjects,
		TotalTasks:         stats.TotalTasks,
		TotalTimeTracked:   FormatTimeTracked(stats.TotalTimeTracked),
		ActiveProjects:     stats.ActiveProjects,
		ActiveTasks:        stats.ActiveTasks,
		TotalScreenshots:   stats.TotalScreenshots,
		WeeklyTimeTracked:  FormatTimeTracked(stats.WeeklyTimeTracked),
		MonthlyTimeTracked: FormatTimeTracked(stats.MonthlyTimeTracked),
	}
	return page
}

// # Admin Dashboard

// ProjectRow is one formatted line of the project-time table.
type ProjectRow struct {
	Name       string
	Time       string
	Percentage string
	ShiftCount int
}

// ScreenshotCard is one formatted capture tile.
type ScreenshotCard struct {
	EmployeeName  string
	ProjectName   string
	TaskName      string
	CapturedAt    string
	ImageURL      string
	ActivityLevel string
}

// AdminPage is the render model for the admin analytics dashboard.
type AdminPage struct {
	Status       Status
	ErrorMessage string

	Name        string
	WindowStart string
	WindowEnd   string

	TotalTime   string
	Projects    []ProjectRow
	Screenshots []ScreenshotCard
}

// NewAdminPage builds the admin dashboard model over a reporting window.
// Rows are sorted by tracked time, largest first, with name as tiebreaker
// so equal projects render in a stable order.
func NewAdminPage(user *client.Profile, analytics *client.ProjectTime, screenshots *client.ScreenshotPage, windowStart, windowEnd int64, err error) AdminPage {
	page := AdminPage{
		Name:        user.Name,
		WindowStart: FormatTimestamp(windowStart),
		WindowEnd:   FormatTimestamp(windowEnd),
	}

	if err != nil {
		page.Status = StatusError
		page.ErrorMessage = errorMessage(err)
		return page
	}

	page.Status = StatusReady
	page.TotalTime = FormatTimeTracked(analytics.TotalTime)

	entries := make([]client.ProjectTimeEntry, 0, len(analytics.ProjectBreakdown))
	for _, entry := range analytics.ProjectBreakdown {
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TotalTime != entries[j].TotalTime {
			return entries[i].TotalTime > entries[j].TotalTime
		}
		return entries[i].ProjectName < entries[j].ProjectName
	})

	page.Projects = make([]ProjectRow, 0, len(entries))
	for _, entry := range entries {
		page.Projects = append(page.Projects, ProjectRow{
			Name:       entry.ProjectName,
			Time:       FormatTimeTracked(entry.TotalTime),
			Percentage: FormatPercentage(entry.Percentage),
			ShiftCount: entry.ShiftCount,
		})
	}

	page.Screenshots = slice.Map(screenshots.Items, func(shot client.Screenshot) ScreenshotCard {
		return ScreenshotCard{
			EmployeeName:  shot.EmployeeName,
			ProjectName:   shot.ProjectName,
			TaskName:      shot.TaskName,
			CapturedAt:    FormatTimestamp(shot.Timestamp),
			ImageURL:      shot.ImageURL,
			ActivityLevel: FormatPercentage(shot.ActivityLevel),
		}
	})

	return page
}
