package main

import (
	"fmt"
	"strings"
	"time"

	"recue/internal/timecode"
)

// parseTimestamp accepts either a Go duration ("1.5s", "90s") or a subtitle
// timecode ("00:01:30.000", "00:01:30,000").
func parseTimestamp(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("empty timestamp")
	}
	if !strings.Contains(value, ":") {
		if d, err := time.ParseDuration(value); err == nil {
			return d, nil
		}
	}
	if d, err := timecode.ParseWebVTT(value); err == nil {
		return d, nil
	}
	if d, err := timecode.ParseSRT(value); err == nil {
		return d, nil
	}
	return 0, fmt.Errorf("invalid timestamp %q", value)
}

// parsePoint splits an "actual=desired" sync point into its two timestamps.
func parsePoint(value string) (actual, desired time.Duration, err error) {
	left, right, found := strings.Cut(value, "=")
	if !found {
		return 0, 0, fmt.Errorf("invalid sync point %q: expected actual=desired", value)
	}
	if actual, err = parseTimestamp(left); err != nil {
		return 0, 0, fmt.Errorf("sync point %q: %w", value, err)
	}
	if desired, err = parseTimestamp(right); err != nil {
		return 0, 0, fmt.Errorf("sync point %q: %w", value, err)
	}
	return actual, desired, nil
}

func formatClock(d time.Duration) string {
	return timecode.FormatWebVTT(d)
}

func truncate(value string, max int) string {
	if len(value) <= max {
		return value
	}
	if max <= 3 {
		return value[:max]
	}
	return value[:max-3] + "..."
}

// truncatePath keeps the tail of a long path, which carries the filename.
func truncatePath(value string, max int) string {
	if len(value) <= max {
		return value
	}
	if max <= 3 {
		return value[len(value)-max:]
	}
	return "..." + value[len(value)-max+3:]
}
