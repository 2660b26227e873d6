// Copyright (c) 2026 Trackline. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/trackline/internal/dashboard/view"
)

/*
TestFormatTimeTracked verifies the "{h}h {m}m" rendering, including the
flooring of partial minutes and the zero rendering of negative input.
*/
func TestFormatTimeTracked(t *testing.T) {
	tests := []struct {
		name         string
		milliseconds int64
		expected     string
	}{
		{"zero", 0, "0h 0m"},
		{"negative", -5_000, "0h 0m"},
		{"ninety_minutes", 5_400_000, "1h 30m"},
		{"just_under_an_hour", 3_599_999, "0h 59m"},
		{"exactly_one_hour", 3_600_000, "1h 0m"},
		{"partial_minute_floors", 61_000, "0h 1m"},
		{"long_week", 183_600_000, "51h 0m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, view.FormatTimeTracked(tt.milliseconds))
		})
	}
}

/*
TestFormatPercentage verifies the fixed two-decimal rendering.
*/
func TestFormatPercentage(t *testing.T) {
	tests := []struct {
		name       string
		percentage float64
		expected   string
	}{
		{"zero", 0, "0.00%"},
		{"half", 42.5, "42.50%"},
		{"rounds", 33.333, "33.33%"},
		{"full", 100, "100.00%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, view.FormatPercentage(tt.percentage))
		})
	}
}

/*
TestFormatTimestamp verifies epoch-millisecond rendering and the placeholder
for missing instants.
*/
func TestFormatTimestamp(t *testing.T) {
	// 1. Missing or nonsense instants render a placeholder, not 1970
	assert.Equal(t, "—", view.FormatTimestamp(0))
	assert.Equal(t, "—", view.FormatTimestamp(-1))

	// 2. A real instant renders non-empty and without a placeholder
	rendered := view.FormatTimestamp(1_760_000_000_000)
	assert.NotEmpty(t, rendered)
	assert.NotEqual(t, "—", rendered)
}
