package utils

import (
	"fmt"
	"time"
)

const dateOnlyLayout = "2006-01-02"

// ParseDate parses a wire-format date. RFC3339 timestamps and bare
// YYYY-MM-DD dates are accepted; bare dates resolve to midnight UTC.
func ParseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(dateOnlyLayout, value); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q", value)
}

// FormatDate renders a timestamp in the single wire representation used for
// every date field: RFC3339 in UTC.
func FormatDate(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
