// Copyright (c) 2026 Trackline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tracking

// Screenshot is one activity capture taken by a desktop tracker.
//
// EmployeeName, ProjectName, and TaskName are denormalized at read time from
// the owning rows so the dashboard never needs follow-up lookups. The JSON
// shape is the published /analytics/screenshots item contract.
type Screenshot struct {
	ID             string  `json:"id"`
	EmployeeID     string  `json:"employeeId"`
	EmployeeName   string  `json:"employeeName"`
	OrganizationID string  `json:"-"`
	TeamID         string  `json:"teamId,omitempty"`
	ProjectID      string  `json:"projectId,omitempty"`
	ProjectName    string  `json:"projectName,omitempty"`
	TaskID         string  `json:"taskId,omitempty"`
	TaskName       string  `json:"taskName,omitempty"`
	ShiftID        string  `json:"-"`
	Timestamp      int64   `json:"timestamp"`
	ImageURL       string  `json:"imageUrl,omitempty"`
	ActivityLevel  float64 `json:"activityLevel"`
}

// ScreenshotList wraps the ordered screenshot page returned to clients.
type ScreenshotList struct {
	Items []Screenshot `json:"items"`
}
