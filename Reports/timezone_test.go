package Reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Baghdad is UTC+3 year-round, which makes late-evening UTC instants fall on
// the next local day. Every boundary test below leans on that.
func baghdadBucketer(t *testing.T, now time.Time) *TimeBucketer {
	t.Helper()
	bucketer, err := NewTimeBucketer("Asia/Baghdad")
	require.NoError(t, err)
	bucketer.Now = func() time.Time { return now }
	return bucketer
}

func TestNewTimeBucketerRejectsUnknownZone(t *testing.T) {
	_, err := NewTimeBucketer("Mars/Olympus_Mons")
	assert.Error(t, err)
}

func TestLocalDateKeyCrossesUTCDayBoundary(t *testing.T) {
	bucketer := baghdadBucketer(t, time.Now())

	// 21:30 UTC on March 31st is 00:30 on April 1st in Baghdad.
	instant := time.Date(2025, time.March, 31, 21, 30, 0, 0, time.UTC)
	key := bucketer.LocalDateKey(instant)
	assert.Equal(t, DateKey{Year: 2025, Month: time.April, Day: 1}, key)
}

func TestLocalMonthKeyCrossesUTCMonthBoundary(t *testing.T) {
	bucketer := baghdadBucketer(t, time.Now())

	instant := time.Date(2024, time.December, 31, 22, 0, 0, 0, time.UTC)
	key := bucketer.LocalMonthKey(instant)
	assert.Equal(t, MonthKey{Year: 2025, Month: time.January}, key)
}

func TestDayBounds(t *testing.T) {
	bucketer := baghdadBucketer(t, time.Now())

	start, end := bucketer.DayBounds(DateKey{Year: 2025, Month: time.June, Day: 15})
	assert.Equal(t, time.Date(2025, time.June, 14, 21, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, time.June, 15, 21, 0, 0, 0, time.UTC), end)
}

func TestMonthBoundsAcrossYearEnd(t *testing.T) {
	bucketer := baghdadBucketer(t, time.Now())

	start, end := bucketer.MonthBounds(MonthKey{Year: 2024, Month: time.December})
	assert.Equal(t, time.Date(2024, time.November, 30, 21, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, time.December, 31, 21, 0, 0, 0, time.UTC), end)
}

func TestLastNMonthBoundsEndsAtCurrentMonth(t *testing.T) {
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	bucketer := baghdadBucketer(t, now)

	windows := bucketer.LastNMonthBounds(12)
	require.Len(t, windows, 12)
	assert.Equal(t, MonthKey{Year: 2024, Month: time.July}, windows[0].Key)
	assert.Equal(t, MonthKey{Year: 2025, Month: time.June}, windows[11].Key)
}

func TestLastNMonthBoundsSpansYearBoundary(t *testing.T) {
	now := time.Date(2025, time.February, 10, 12, 0, 0, 0, time.UTC)
	bucketer := baghdadBucketer(t, now)

	windows := bucketer.LastNMonthBounds(4)
	require.Len(t, windows, 4)
	assert.Equal(t, MonthKey{Year: 2024, Month: time.November}, windows[0].Key)
	assert.Equal(t, MonthKey{Year: 2024, Month: time.December}, windows[1].Key)
	assert.Equal(t, MonthKey{Year: 2025, Month: time.January}, windows[2].Key)
	assert.Equal(t, MonthKey{Year: 2025, Month: time.February}, windows[3].Key)

	// Consecutive windows must tile the timeline with no gap or overlap.
	for i := 0; i < len(windows)-1; i++ {
		assert.True(t, windows[i].End.Equal(windows[i+1].Start))
	}
}

func TestLastNMonthBoundsNearLocalNewYear(t *testing.T) {
	// 22:00 UTC on Dec 31st is already January 1st in Baghdad, so the current
	// month must be January, not December.
	now := time.Date(2024, time.December, 31, 22, 0, 0, 0, time.UTC)
	bucketer := baghdadBucketer(t, now)

	windows := bucketer.LastNMonthBounds(2)
	require.Len(t, windows, 2)
	assert.Equal(t, MonthKey{Year: 2024, Month: time.December}, windows[0].Key)
	assert.Equal(t, MonthKey{Year: 2025, Month: time.January}, windows[1].Key)
}

func TestParseDate(t *testing.T) {
	bucketer := baghdadBucketer(t, time.Now())

	key, err := bucketer.ParseDate("2025-01-31")
	require.NoError(t, err)
	assert.Equal(t, DateKey{Year: 2025, Month: time.January, Day: 31}, key)

	_, err = bucketer.ParseDate("31/01/2025")
	assert.Error(t, err)
}

func TestDateKeyString(t *testing.T) {
	key := DateKey{Year: 2025, Month: time.March, Day: 7}
	assert.Equal(t, "2025-03-07", key.String())
}

func TestMonthKeyLabel(t *testing.T) {
	assert.Equal(t, "2025-09", MonthKey{Year: 2025, Month: time.September}.Label())
}
