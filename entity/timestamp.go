/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entity

import (
	"fmt"
	"time"

	"github.com/go-openapi/strfmt"
)

// TimeLayout is the on-disk timestamp layout: ISO-8601 with microseconds and no zone.
const TimeLayout = "2006-01-02T15:04:05.000000"

// accepts 0-9 fractional digits
const parseLayout = "2006-01-02T15:04:05.999999999"

var clock = time.Now

// Now returns the current time in UTC at microsecond precision.
func Now() time.Time {
	return normalizeTime(clock())
}

// FormatTime renders t in TimeLayout.
func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

// ParseTime parses a timestamp written by FormatTime. RFC 3339 forms with a
// zone offset are accepted as well and converted to UTC.
func ParseTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	if t, err := time.Parse(parseLayout, s); err == nil {
		return normalizeTime(t), nil
	}
	dt, err := strfmt.ParseDateTime(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return normalizeTime(time.Time(dt)), nil
}

func normalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
