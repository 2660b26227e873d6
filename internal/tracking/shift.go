// Copyright (c) 2026 Trackline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tracking

// Shift represents one continuous tracked work interval.
//
// # Time Representation
//
// Start and End are epoch milliseconds, matching what the desktop trackers
// report and what the analytics window parameters use. End is nil while the
// shift is still running; analytics only ever consider completed shifts.
type Shift struct {
	ID             string `json:"id"`
	EmployeeID     string `json:"employeeId"`
	OrganizationID string `json:"organizationId"`
	TeamID         string `json:"teamId,omitempty"`
	ProjectID      string `json:"projectId,omitempty"`
	TaskID         string `json:"taskId,omitempty"`
	Start          int64  `json:"start"`
	End            *int64 `json:"end,omitempty"`
}

// Duration returns the tracked milliseconds of a completed shift, or 0 for a
// shift that is still running.
func (s *Shift) Duration() int64 {
	if s.End == nil {
		return 0
	}
	return *s.End - s.Start
}

// ProjectTimeAnalytics is the organization-wide aggregate behind
// GET /analytics/project-time.
//
// TotalTime sums every completed shift in the window, including shifts not
// attributed to any project; ProjectBreakdown only covers attributed shifts,
// so breakdown percentages may sum below 100 when untracked project time exists.
type ProjectTimeAnalytics struct {
	TotalTime        int64                       `json:"totalTime"`
	ProjectBreakdown map[string]ProjectTimeEntry `json:"projectBreakdown"`
}

// ProjectTimeEntry is one project's slice of a [ProjectTimeAnalytics] window.
type ProjectTimeEntry struct {
	ProjectID   string  `json:"projectId"`
	ProjectName string  `json:"projectName"`
	TotalTime   int64   `json:"totalTime"`
	Percentage  float64 `json:"percentage"`
	ShiftCount  int     `json:"shiftCount"`
}

// AnalyticsFilter narrows an analytics window. Start and End are mandatory
// epoch milliseconds; every other field is optional and ANDed onto the query.
type AnalyticsFilter struct {
	Start      int64
	End        int64
	EmployeeID string
	TeamID     string
	ProjectID  string
	TaskID     string
	ShiftID    string
}
