package util

import (
    "strconv"
    "testing"
    "time"
)

func TestDatePortion(t *testing.T) {
    cases := map[string]string{
        "2024-10-10T10:10:10Z":    "2024-10-10",
        "2024-10-10T00:00:00.000": "2024-10-10",
        "2024-10-10":              "2024-10-10",
        " 2024-10-10 ":            "2024-10-10",
        "":                        "",
    }
    for in, want := range cases {
        if got := DatePortion(in); got != want {
            t.Fatalf("DatePortion(%q) = %q, want %q", in, got, want)
        }
    }
}

func TestParseTimeRFC3339(t *testing.T) {
    s := "2024-10-10T10:10:10Z"
    got, ok := ParseTime(s)
    if !ok {
        t.Fatalf("expected ok")
    }
    if got.UTC().Format(time.RFC3339) != s {
        t.Fatalf("unexpected time %v", got)
    }
}

func TestParseTimeDateOnly(t *testing.T) {
    got, ok := ParseTime("2024-10-10T00:00:00")
    if !ok {
        t.Fatalf("expected ok")
    }
    if got.Format(time.DateOnly) != "2024-10-10" {
        t.Fatalf("unexpected date %v", got)
    }
}

func TestParseTimeUnix(t *testing.T) {
    ts := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC).Unix()
    got, ok := ParseTime(strconv.FormatInt(ts, 10))
    if !ok {
        t.Fatalf("expected ok")
    }
    if got.Unix() != ts {
        t.Fatalf("unexpected unix %v", got.Unix())
    }
}

func TestParseTimeDefault(t *testing.T) {
    def := time.Date(2024, 10, 10, 10, 10, 10, 0, time.UTC)
    got := ParseTimeDefault("", def)
    if !got.Equal(def) {
        t.Fatalf("expected default")
    }
}
