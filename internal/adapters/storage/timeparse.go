package storage

import (
	"fmt"
	"time"
)

// DateLayout is the storage format for date-only columns.
const DateLayout = "2006-01-02"

// ParseStoredTime parses a timestamp column written by any supported layout.
// Timestamps are written as RFC 3339 with nanoseconds; older rows may carry
// coarser layouts.
func ParseStoredTime(value string) (time.Time, error) {
	layouts := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		DateLayout,
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized stored time %q", value)
}

// ParseStoredDate parses a date-only column.
func ParseStoredDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}
