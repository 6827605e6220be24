// Package maildate normalizes loosely-formatted Date headers into a
// canonical UTC timestamp. Real-world archives carry every RFC 2822
// dialect plus plenty of invalid ones; parse failures preserve the
// original text for forensic traceability instead of discarding it.
package maildate

import (
	"net/mail"
	"strings"
	"time"

	"github.com/recovermail/recovermail/header"
)

const (
	displayLayout = "2006-01-02 15:04:05"
	isoLayout     = "2006-01-02T15:04:05Z"
)

// Layouts tried after net/mail.ParseDate gives up. Zoneless layouts
// parse as UTC: a date header with no timezone is treated as already
// UTC, never as local time.
var fallbackLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC3339,
	"Mon, 02 Jan 2006 15:04:05 -0700 (MST)",
	"Mon, 2 Jan 2006 15:04:05 -0700 (MST)",
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	"02 Jan 2006 15:04:05 -0700",
	"2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05",
	"2 Jan 2006 15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Normalize parses a raw Date header value.
//
// Returns a human-readable display string plus an ISO-8601 UTC string
// with whole-second precision. An absent header yields ("N/A", "");
// an unparseable one yields (decoded raw text, "").
func Normalize(raw string) (display, isoUTC string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "N/A", ""
	}

	t, ok := parse(raw)
	if !ok {
		return header.Decode(raw), ""
	}

	t = t.UTC().Truncate(time.Second)
	return t.Format(displayLayout) + " (UTC)", t.Format(isoLayout)
}

// Parse resolves a raw Date header to a UTC time truncated to whole
// seconds. ok is false when no known format matches.
func Parse(raw string) (time.Time, bool) {
	t, ok := parse(strings.TrimSpace(raw))
	if !ok {
		return time.Time{}, false
	}
	return t.UTC().Truncate(time.Second), true
}

func parse(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	if t, err := mail.ParseDate(raw); err == nil {
		return t, true
	}
	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
