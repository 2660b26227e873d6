// Copyright (c) 2026 Trackline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package tracking

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
TestEmployeeSelect_WellFormed verifies the assembled employee queries keep
whitespace between the column list and the FROM keyword, and that every
nullable uuid column is cast to text before its COALESCE default.
*/
func TestEmployeeSelect_WellFormed(t *testing.T) {
	queries := map[string]string{
		"by_id":    employeeSelect + ` WHERE id = $1`,
		"by_email": employeeSelect + ` WHERE email = $1`,
	}

	for name, query := range queries {
		t.Run(name, func(t *testing.T) {
			// 1. The column list and FROM must not fuse into one token.
			assert.NotContains(t, query, "updated_atFROM")
			assert.Regexp(t, `updated_at\s+FROM\s+core\.employees`, query)
			assert.Regexp(t, `SELECT\s`, query)

			// 2. A uuid coalesced with '' must go through ::text.
			assert.Contains(t, query, "COALESCE(team_id::text, '')")
			assert.NotContains(t, query, "COALESCE(team_id, '')")
		})
	}
}

/*
TestScreenshotSelect_UUIDCoalesces verifies every optional uuid column in
the screenshot listing is cast to text inside its COALESCE.
*/
func TestScreenshotSelect_UUIDCoalesces(t *testing.T) {
	query := fmt.Sprintf(screenshotSelect, "sc.organization_id = $1", 2)

	for _, column := range []string{"team_id", "project_id", "task_id", "shift_id"} {
		assert.Contains(t, query, fmt.Sprintf("COALESCE(sc.%s::text, '')", column))
		assert.NotContains(t, query, fmt.Sprintf("COALESCE(sc.%s, '')", column))
	}

	// The WHERE clause and limit placeholder land in their slots.
	assert.Contains(t, query, "WHERE sc.organization_id = $1")
	assert.Contains(t, query, "LIMIT $2")
}

/*
TestShiftWindowWhere verifies placeholder numbering: the three mandatory
window arguments come first and each optional filter continues the sequence
in declaration order.
*/
func TestShiftWindowWhere(t *testing.T) {
	t.Run("window_only", func(t *testing.T) {
		where, args := shiftWindowWhere("org-1", AnalyticsFilter{Start: 1000, End: 2000})

		assert.Equal(t,
			"s.organization_id = $1 AND s.start_ms >= $2 AND s.end_ms <= $3 AND s.end_ms IS NOT NULL",
			where)
		assert.Equal(t, []any{"org-1", int64(1000), int64(2000)}, args)
	})

	t.Run("all_filters", func(t *testing.T) {
		filter := AnalyticsFilter{
			Start:      1000,
			End:        2000,
			EmployeeID: "emp-1",
			TeamID:     "team-1",
			ProjectID:  "prj-1",
			TaskID:     "task-1",
			ShiftID:    "shift-1",
		}
		where, args := shiftWindowWhere("org-1", filter)

		require.Len(t, args, 8)
		assert.Contains(t, where, "s.employee_id = $4")
		assert.Contains(t, where, "s.team_id = $5")
		assert.Contains(t, where, "s.project_id = $6")
		assert.Contains(t, where, "s.task_id = $7")
		assert.Contains(t, where, "s.id = $8")
		assert.Equal(t, "shift-1", args[7])
	})

	t.Run("sparse_filters_renumber", func(t *testing.T) {
		where, args := shiftWindowWhere("org-1", AnalyticsFilter{Start: 1, End: 2, TaskID: "task-1"})

		assert.Len(t, args, 4)
		assert.Contains(t, where, "s.task_id = $4")
		assert.Equal(t, 1, strings.Count(where, "$4"))
	})
}
