package util

import (
    "strconv"
    "strings"
    "time"
)

// DatePortion returns the calendar-date part of an ISO-8601 timestamp
// ("2024-03-01T00:00:00" -> "2024-03-01"). Plain dates pass through.
func DatePortion(s string) string {
    s = strings.TrimSpace(s)
    if i := strings.IndexByte(s, 'T'); i >= 0 {
        return s[:i]
    }
    return s
}

// ParseTime tries RFC3339, RFC3339Nano, a bare date and unix seconds. Returns (t, true) if any worked.
func ParseTime(s string) (time.Time, bool) {
    if s == "" {
        return time.Time{}, false
    }
    if t, err := time.Parse(time.RFC3339, s); err == nil {
        return t, true
    }
    if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
        return t, true
    }
    if t, err := time.Parse(time.DateOnly, DatePortion(s)); err == nil {
        return t, true
    }
    if ts, err := strconv.ParseInt(s, 10, 64); err == nil && ts > 0 {
        return time.Unix(ts, 0), true
    }
    return time.Time{}, false
}

// ParseTimeDefault parses time or returns default if empty/invalid.
func ParseTimeDefault(s string, def time.Time) time.Time {
    if t, ok := ParseTime(s); ok {
        return t
    }
    return def
}
