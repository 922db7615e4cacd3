// ABOUTME: Time parsing utilities for flexible date/time parsing
// ABOUTME: Handles the timestamp formats found in provider payloads and item files

package timeutil

import (
	"strings"
	"time"
)

// Timestamp formats seen across provider payloads and hand-edited items
var timeFormats = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	time.RFC1123,
	time.RFC1123Z,
	time.RFC822,
	time.RFC822Z,
}

// ParseFlexibleTime attempts to parse a time string using various formats
func ParseFlexibleTime(timeStr string) time.Time {
	if timeStr == "" {
		return time.Time{}
	}

	timeStr = strings.TrimSpace(timeStr)

	for _, format := range timeFormats {
		if t, err := time.Parse(format, timeStr); err == nil {
			return t
		}
	}

	return time.Time{}
}

// Latest returns the later of two ISO-8601 timestamps. Strings that fail to
// parse are compared lexicographically, which matches chronological order
// for well-formed ISO-8601; an empty string always loses.
func Latest(a, b string) string {
	if a == "" {
		return b
	}
	if b == "" {
		return a
	}

	ta := ParseFlexibleTime(a)
	tb := ParseFlexibleTime(b)
	if !ta.IsZero() && !tb.IsZero() {
		if tb.After(ta) {
			return b
		}
		return a
	}

	if b > a {
		return b
	}
	return a
}

// After reports whether timestamp a is strictly later than b, with the same
// fallback semantics as Latest. An empty a is never later; an empty b is
// always earlier than a non-empty a.
func After(a, b string) bool {
	if a == "" {
		return false
	}
	if b == "" {
		return true
	}

	ta := ParseFlexibleTime(a)
	tb := ParseFlexibleTime(b)
	if !ta.IsZero() && !tb.IsZero() {
		return ta.After(tb)
	}

	return a > b
}

// DatePart returns the date component of an ISO-8601 timestamp.
func DatePart(timeStr string) string {
	if timeStr == "" {
		return ""
	}
	return strings.SplitN(timeStr, "T", 2)[0]
}

// Year returns the four-digit year of a timestamp, or "" when unparsable.
func Year(timeStr string) string {
	t := ParseFlexibleTime(timeStr)
	if t.IsZero() {
		return ""
	}
	return t.Format("2006")
}
