package utils

import "time"

// Timestamps are stored at nanosecond precision so that lexicographic
// order matches chronological order in range keys.

// NowTimestamp returns the current time as a storage timestamp
func NowTimestamp() string {
	return FormatTimestamp(time.Now())
}

// FormatTimestamp renders a time as a storage timestamp
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// ParseTimestamp parses a storage timestamp
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
