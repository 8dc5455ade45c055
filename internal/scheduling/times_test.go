package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidTime(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"00:00", true},
		{"09:30", true},
		{"23:59", true},
		{"24:00", false},
		{"9:00", false},
		{"09:60", false},
		{"0900", false},
		{"", false},
		{"ab:cd", false},
		{"+9:30", false},
		{"-0:30", false},
		{"09:+5", false},
		{"09: 5", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidTime(tt.input))
		})
	}
}

func TestTimeConversionRoundTrip(t *testing.T) {
	for _, s := range []string{"00:00", "08:15", "14:30", "23:59"} {
		minutes, err := TimeToMinutes(s)
		require.NoError(t, err)
		assert.Equal(t, s, MinutesToTime(minutes))
	}

	minutes, err := TimeToMinutes("14:30")
	require.NoError(t, err)
	assert.Equal(t, 870, minutes)
}

func TestTimeToMinutesRejectsMalformed(t *testing.T) {
	_, err := TimeToMinutes("25:00")
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "time", vErr.Field)
}

func TestValidTimeRange(t *testing.T) {
	assert.True(t, ValidTimeRange("09:00", "17:00"))
	assert.False(t, ValidTimeRange("17:00", "09:00"))
	assert.False(t, ValidTimeRange("09:00", "09:00"))
	assert.False(t, ValidTimeRange("bad", "17:00"))
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name           string
		s1, e1, s2, e2 int
		want           bool
	}{
		{"disjoint", 540, 600, 660, 720, false},
		{"adjacent not overlapping", 540, 600, 600, 660, false},
		{"partial overlap", 540, 660, 600, 720, true},
		{"contained", 540, 720, 600, 660, true},
		{"identical", 540, 600, 540, 600, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Overlaps(tt.s1, tt.e1, tt.s2, tt.e2))
			// Overlap detection is symmetric.
			assert.Equal(t, tt.want, Overlaps(tt.s2, tt.e2, tt.s1, tt.e1))
		})
	}
}
