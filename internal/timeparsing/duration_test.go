package timeparsing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runStart is the clock reading a run would pass as now.
var runStart = time.Date(2020, 1, 23, 9, 30, 0, 0, time.UTC)

func TestParseCompactDuration(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"+6h", time.Date(2020, 1, 23, 15, 30, 0, 0, time.UTC)},
		{"-36h", time.Date(2020, 1, 21, 21, 30, 0, 0, time.UTC)},
		{"+1d", time.Date(2020, 1, 24, 9, 30, 0, 0, time.UTC)},
		{"10d", time.Date(2020, 2, 2, 9, 30, 0, 0, time.UTC)},
		{"-1d", time.Date(2020, 1, 22, 9, 30, 0, 0, time.UTC)},
		{"+2w", time.Date(2020, 2, 6, 9, 30, 0, 0, time.UTC)},
		{"+1m", time.Date(2020, 2, 23, 9, 30, 0, 0, time.UTC)},
		{"-1y", time.Date(2019, 1, 23, 9, 30, 0, 0, time.UTC)},
		{"0d", runStart},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCompactDuration(tt.input, runStart)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}
}

func TestParseCompactDuration_Rejects(t *testing.T) {
	for _, input := range []string{"", "1", "d", "+1", "1x", "1D", "+-1d", " +1d", "1d ", "1.5d", "tomorrow", "2020-01-31"} {
		t.Run(input, func(t *testing.T) {
			assert.False(t, IsCompactDuration(input))
			_, err := ParseCompactDuration(input, runStart)
			assert.Error(t, err)
		})
	}
}

func TestParseCompactDuration_MonthsNormalize(t *testing.T) {
	// Jan 31 + 1 month is Feb 31, which rolls into March (2020 is a leap year).
	endOfJan := time.Date(2020, 1, 31, 12, 0, 0, 0, time.UTC)
	got, err := ParseCompactDuration("+1m", endOfJan)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2020, 3, 2, 12, 0, 0, 0, time.UTC)), "got %v", got)
}

func TestParseCompactDuration_KeepsLocation(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*60*60)
	now := time.Date(2020, 1, 23, 23, 0, 0, 0, loc)

	got, err := ParseCompactDuration("+1d", now)
	require.NoError(t, err)
	assert.Equal(t, loc, got.Location())
	assert.Equal(t, 24, got.Day())
	assert.Equal(t, 23, got.Hour())
}
