// Copyright (c) 2026 Trackline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package view builds the render models for the dashboard pages.

All display formatting lives here so the templates stay logic-free and the
formatting rules stay testable. Durations and timestamps arrive as epoch
milliseconds and leave as display strings.
*/
package view

import (
	"fmt"
	"time"
)

// timestampLayout is how capture times are shown.
const timestampLayout = "Jan 2, 2006 15:04:05"

// FormatTimeTracked renders a millisecond duration as "{h}h {m}m".
//
// Both parts floor: 5,400,000 ms is "1h 30m", 3,599,999 ms is "0h 59m".
// Negative input renders the same as zero.
func FormatTimeTracked(milliseconds int64) string {
	if milliseconds < 0 {
		milliseconds = 0
	}

	hours := milliseconds / 3_600_000
	minutes := (milliseconds % 3_600_000) / 60_000

	return fmt.Sprintf("%dh %dm", hours, minutes)
}

// FormatPercentage renders a share with fixed two-decimal precision,
// e.g. 42.5 becomes "42.50%".
func FormatPercentage(percentage float64) string {
	return fmt.Sprintf("%.2f%%", percentage)
}

// FormatTimestamp renders an epoch-millisecond instant in the server's
// local timezone. Zero and negative values render as "—" rather than a
// confusing 1970 date.
func FormatTimestamp(milliseconds int64) string {
	if milliseconds <= 0 {
		return "—"
	}
	return time.UnixMilli(milliseconds).Local().Format(timestampLayout)
}
