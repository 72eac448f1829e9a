// internal/workers/bureau/parse-bureau-report/dates_test.go
package parsebureaureport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFullDate(t *testing.T) {
	tests := []struct {
		token    string
		expected time.Time
		ok       bool
	}{
		{"15-ENE-1980", time.Date(1980, time.January, 15, 0, 0, 0, 0, time.UTC), true},
		{"01-DIC-24", time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC), true},
		{"05-AUG-2019", time.Date(2019, time.August, 5, 0, 0, 0, 0, time.UTC), true},
		{"03-XXX-2020", time.Time{}, false},
		{"SIN FECHA", time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			got, ok := parseFullDate(tt.token)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}

func TestParseMonthYear(t *testing.T) {
	got, ok := parseMonthYear("ENE-24")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), got)

	got, ok = parseMonthYear("ABR 2023")
	require.True(t, ok)
	assert.Equal(t, time.Date(2023, time.April, 1, 0, 0, 0, 0, time.UTC), got)

	_, ok = parseMonthYear("ZZZ-24")
	assert.False(t, ok)
}

func TestExpandYearPivot(t *testing.T) {
	assert.Equal(t, 2024, expandYear("24"))
	assert.Equal(t, 1980, expandYear("80"))
	assert.Equal(t, 1999, expandYear("1999"))
}
