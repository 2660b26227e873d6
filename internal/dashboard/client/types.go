// Copyright (c) 2026 Trackline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package client

import "errors"

// Profile is the authenticated employee as served by GET /user/profile.
type Profile struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	Name          string `json:"name"`
	IsAdmin       bool   `json:"isAdmin"`
	EmailVerified bool   `json:"emailVerified"`
	Deactivated   bool   `json:"deactivated"`
}

func (p *Profile) validate() error {
	if p.ID == "" || p.Email == "" {
		return errors.New("profile missing id or email")
	}
	return nil
}

// Stats is the aggregate block served by GET /user/stats.
//
// Every field is optional upstream; a field the server omits decodes to
// zero, which is exactly what the dashboard renders for it.
type Stats struct {
	TotalProjects      int   `json:"totalProjects"`
	TotalTasks         int   `json:"totalTasks"`
	TotalTimeTracked   int64 `json:"totalTimeTracked"`
	ActiveProjects     int   `json:"activeProjects"`
	ActiveTasks        int   `json:"activeTasks"`
	TotalScreenshots   int   `json:"totalScreenshots"`
	WeeklyTimeTracked  int64 `json:"weeklyTimeTracked"`
	MonthlyTimeTracked int64 `json:"monthlyTimeTracked"`
}

func (s *Stats) validate() error { return nil }

// ProjectTimeEntry is one project's slice of a [ProjectTime] window.
type ProjectTimeEntry struct {
	ProjectID   string  `json:"projectId"`
	ProjectName string  `json:"projectName"`
	TotalTime   int64   `json:"totalTime"`
	Percentage  float64 `json:"percentage"`
	ShiftCount  int     `json:"shiftCount"`
}

// ProjectTime is the aggregate served by GET /analytics/project-time.
type ProjectTime struct {
	TotalTime        int64                       `json:"totalTime"`
	ProjectBreakdown map[string]ProjectTimeEntry `json:"projectBreakdown"`
}

func (p *ProjectTime) validate() error {
	if p.TotalTime < 0 {
		return errors.New("project time total is negative")
	}
	// An absent breakdown renders as an empty table, not a nil deref.
	if p.ProjectBreakdown == nil {
		p.ProjectBreakdown = map[string]ProjectTimeEntry{}
	}
	return nil
}

// Screenshot is one capture item served by GET /analytics/screenshots.
type Screenshot struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employeeId"`
	EmployeeName  string  `json:"employeeName"`
	ProjectName   string  `json:"projectName"`
	TaskName      string  `json:"taskName"`
	Timestamp     int64   `json:"timestamp"`
	ImageURL      string  `json:"imageUrl"`
	ActivityLevel float64 `json:"activityLevel"`
}

// ScreenshotPage is the list wrapper served by GET /analytics/screenshots.
type ScreenshotPage struct {
	Items []Screenshot `json:"items"`
}

func (p *ScreenshotPage) validate() error {
	if p.Items == nil {
		p.Items = []Screenshot{}
	}
	for index := range p.Items {
		if p.Items[index].ID == "" {
			return errors.New("screenshot item missing id")
		}
	}
	return nil
}

// loginResult is the credential served by POST /auth/login.
type loginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (r *loginResult) validate() error {
	if r.AccessToken == "" {
		return errors.New("login result missing access_token")
	}
	if r.TokenType != "bearer" {
		return errors.New("login result token_type is not bearer")
	}
	return nil
}
