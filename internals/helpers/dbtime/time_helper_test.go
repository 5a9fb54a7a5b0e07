package dbtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToday_UsesLibraryLocation(t *testing.T) {
	// 22:30 UTC on Jan 1 is already Jan 2 in Moscow.
	now := time.Date(2025, 1, 1, 22, 30, 0, 0, time.UTC)
	moscow := time.FixedZone("MSK", 3*60*60)

	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Today(now, time.UTC))
	assert.Equal(t, time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), Today(now, moscow))
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), Today(now, nil))
}

func TestDaysBetween(t *testing.T) {
	due := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 3, DaysBetween(due, time.Date(2025, 3, 13, 23, 59, 0, 0, time.UTC)))
	assert.Equal(t, 0, DaysBetween(due, due))
	assert.Equal(t, -2, DaysBetween(due, time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)))
}

func TestAddDays_CrossesMonth(t *testing.T) {
	got := AddDays(time.Date(2025, 1, 25, 15, 0, 0, 0, time.UTC), 14)
	assert.Equal(t, time.Date(2025, 2, 8, 0, 0, 0, 0, time.UTC), got)
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate(" 2025-06-01 ")
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", FormatDate(d))

	_, err = ParseDate("01/06/2025")
	assert.Error(t, err)
}

func TestLoadLocation_FallsBackToUTC(t *testing.T) {
	assert.Equal(t, time.UTC, LoadLocation(""))
	assert.Equal(t, time.UTC, LoadLocation("Not/AZone"))
}
