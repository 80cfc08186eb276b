/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want time.Time
	}{
		{"canonical", "2025-03-01T10:04:05.123456", time.Date(2025, 3, 1, 10, 4, 5, 123456000, time.UTC)},
		{"no fraction", "2025-03-01T10:04:05", time.Date(2025, 3, 1, 10, 4, 5, 0, time.UTC)},
		{"nanoseconds truncated", "2025-03-01T10:04:05.123456789", time.Date(2025, 3, 1, 10, 4, 5, 123456000, time.UTC)},
		{"utc zone", "2025-03-01T10:04:05.123Z", time.Date(2025, 3, 1, 10, 4, 5, 123000000, time.UTC)},
		{"offset", "2025-03-01T12:04:05.000001+02:00", time.Date(2025, 3, 1, 10, 4, 5, 1000, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTime(tt.in)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %v, got %v", tt.want, got)
			assert.Equal(t, time.UTC, got.Location())
		})
	}

	for _, bad := range []string{"", "yesterday", "2025-13-01T00:00:00"} {
		_, err := ParseTime(bad)
		assert.Error(t, err, bad)
	}
}

func TestFormatTime(t *testing.T) {
	ts := time.Date(2025, 3, 1, 10, 4, 5, 0, time.UTC)
	assert.Equal(t, "2025-03-01T10:04:05.000000", FormatTime(ts))

	local := time.Date(2025, 3, 1, 12, 4, 5, 42000, time.FixedZone("X", 2*3600))
	assert.Equal(t, "2025-03-01T10:04:05.000042", FormatTime(local))
}

func TestSplitKey(t *testing.T) {
	typeName, id, ok := SplitKey("User.1a2b.3c")
	require.True(t, ok)
	assert.Equal(t, "User", typeName)
	assert.Equal(t, "1a2b.3c", id)

	for _, bad := range []string{"", "User", ".1", "User."} {
		_, _, ok := SplitKey(bad)
		assert.False(t, ok, bad)
	}
	assert.Equal(t, "User.1", Key("User", "1"))
}
