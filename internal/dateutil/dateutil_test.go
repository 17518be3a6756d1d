package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_DayFirstPreference(t *testing.T) {
	// 01/03/2024 must be 1 March, not 3 January.
	parsed, err := Parse("01/03/2024")
	require.NoError(t, err)
	assert.Equal(t, time.March, parsed.Month())
	assert.Equal(t, 1, parsed.Day())
	assert.Equal(t, 2024, parsed.Year())
}

func TestParse_CommonLayouts(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"2024-03-01", "2024-03-01"},
		{"01/03/2024", "2024-03-01"},
		{"01-03-2024", "2024-03-01"},
		{"01.03.2024", "2024-03-01"},
		{"2024-03-01 14:30:00", "2024-03-01"},
		{"  2024-03-01  ", "2024-03-01"},
		{"01 Mar 2024", "2024-03-01"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseToISO(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	for _, input := range []string{"", "not a date", "31/31/2024", "yesterday"} {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			assert.Error(t, err)
		})
	}
}

func TestParse_RoundTrip(t *testing.T) {
	// ISO output must parse back to the same value.
	iso, err := ParseToISO("15/06/2023")
	require.NoError(t, err)

	again, err := ParseToISO(iso)
	require.NoError(t, err)
	assert.Equal(t, iso, again)
}

func TestParseWith_ExplicitLayout(t *testing.T) {
	parsed, err := ParseWith(LayoutDateTime, "2025-01-02 08:07:09")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-02", ToISO(parsed))
}

func TestToISO_ZeroTime(t *testing.T) {
	assert.Equal(t, "", ToISO(time.Time{}))
}
