// Package timeutil provides utility functions for working with
// time-related operations.
package timeutil

import (
	"fmt"
	"math"
	"time"
)

const secondsInAMinute = 60

// Round rounds a time value in seconds to the nearest integer.
func Round(t float64) int {
	return int(math.Round(t))
}

// FormatSeconds expresses a seconds value as m:ss for countdown displays.
func FormatSeconds(total int) string {
	if total < 0 {
		total = 0
	}

	mins := total / secondsInAMinute
	secs := total % secondsInAMinute

	return fmt.Sprintf("%d:%02d", mins, secs)
}

// WeekStart returns the Monday of the week containing t, at the start of
// the day in t's location.
func WeekStart(t time.Time) time.Time {
	weekday := int(t.Weekday())
	// time.Weekday counts Sunday as 0
	if weekday == 0 {
		weekday = 7
	}

	monday := t.AddDate(0, 0, -(weekday - 1))

	return time.Date(
		monday.Year(),
		monday.Month(),
		monday.Day(),
		0,
		0,
		0,
		0,
		t.Location(),
	)
}

// DateOnly formats t in the YYYY-MM-DD form the session API expects.
func DateOnly(t time.Time) string {
	return t.Format(time.DateOnly)
}
