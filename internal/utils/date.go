package utils

import (
	"fmt"
	"strings"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// NormalizeDay zeroes the time-of-day in UTC so bookings on the same calendar
// day compare equal regardless of the clock time they were made with.
func NormalizeDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate converts a yyyy-mm-dd string into a UTC calendar day. Full RFC3339
// timestamps are accepted as well and truncated to their UTC day.
func ParseDate(dateStr string) (time.Time, error) {
	s := strings.TrimSpace(dateStr)
	if s == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format %q, expected yyyy-mm-dd", dateStr)
	}
	return NormalizeDay(t), nil
}

// ParseOptionalDate returns nil for an empty string.
func ParseOptionalDate(dateStr string) (*time.Time, error) {
	if strings.TrimSpace(dateStr) == "" {
		return nil, nil
	}
	t, err := ParseDate(dateStr)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ParseTimeOfDay validates an HH:MM slot and returns it in canonical form
// ("9:00" becomes "09:00") so equal slots always compare equal in storage.
func ParseTimeOfDay(timeStr string) (string, error) {
	s := strings.TrimSpace(timeStr)
	if s == "" {
		return "", fmt.Errorf("time is required")
	}
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid time format %q, expected HH:MM", timeStr)
	}
	return t.Format(TimeLayout), nil
}

// FormatDate renders a calendar day as yyyy-mm-dd.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
