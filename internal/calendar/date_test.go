package calendar

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsLeapYear(t *testing.T) {
	tests := []struct {
		year     int
		expected bool
	}{
		{1900, false},
		{2000, true},
		{2016, true},
		{2017, false},
		{2100, false},
		{2400, true},
		{1996, true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, IsLeapYear(tt.year), "year %d", tt.year)
	}
}

func TestIsLeapYear_MatchesGregorianCalendar(t *testing.T) {
	for y := 1600; y <= 2400; y++ {
		feb29 := time.Date(y, time.February, 29, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, feb29.Month() == time.February, IsLeapYear(y), "year %d", y)
	}
}

func TestDayOfYear_DecemberThirtyFirst(t *testing.T) {
	for y := 1890; y <= 2110; y++ {
		want := 365
		if IsLeapYear(y) {
			want = 366
		}
		assert.Equal(t, want, NewDate(31, 12, y).DayOfYear(), "year %d", y)
	}
}

func TestDayOfYear(t *testing.T) {
	tests := []struct {
		name     string
		date     Date
		expected int
	}{
		{"jan 1", NewDate(1, 1, 2021), 1},
		{"mar 1 common year", NewDate(1, 3, 2021), 60},
		{"mar 1 leap year", NewDate(1, 3, 2020), 61},
		{"feb 29 leap year", NewDate(29, 2, 2020), 60},
		{"feb 29 common year invalid", NewDate(29, 2, 2021), 0},
		{"missing day", NewDate(MissingDay, 3, 2020), 0},
		{"fully missing", MissingDate(), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.date.DayOfYear())
		})
	}
}

func TestFromOrdinal(t *testing.T) {
	tests := []struct {
		name     string
		year     int
		ordinal  int
		expected Date
	}{
		{"first day", 2021, 1, NewDate(1, 1, 2021)},
		{"leap day", 2020, 60, NewDate(29, 2, 2020)},
		{"last day leap year", 2020, 366, NewDate(31, 12, 2020)},
		{"overflow rolls forward one year", 2021, 366, NewDate(1, 1, 2022)},
		{"overflow into leap year", 2019, 425, NewDate(29, 2, 2020)},
		{"zero rolls back to dec 31", 2021, 0, NewDate(31, 12, 2020)},
		{"underflow into leap year", 2021, -365, NewDate(1, 1, 2020)},
		{"more than one year over is missing", 2021, 800, MissingDate()},
		{"more than one year under is missing", 2021, -800, MissingDate()},
		{"missing year", MissingYear, 10, MissingDate()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FromOrdinal(tt.year, tt.ordinal))
		})
	}
}

func TestAddDays(t *testing.T) {
	assert.Equal(t, NewDate(1, 3, 2020), NewDate(29, 2, 2020).AddDays(1))
	assert.Equal(t, NewDate(31, 12, 2019), NewDate(1, 1, 2020).AddDays(-1))
	assert.Equal(t, NewDate(1, 1, 2023), NewDate(1, 1, 2020).AddDays(365+365+366))
	assert.Equal(t, NewDate(1, 1, 2017), NewDate(1, 1, 2020).AddDays(-(365 + 365 + 365)))
	assert.Equal(t, MissingDate(), MissingDate().AddDays(5))
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 29, DaysInMonth(2, 2016))
	assert.Equal(t, 28, DaysInMonth(2, 2017))
	assert.Equal(t, 30, DaysInMonth(11, 2017))
	assert.Equal(t, 31, DaysInMonth(12, 2017))
	assert.Equal(t, 0, DaysInMonth(13, 2017))
	assert.Equal(t, 0, DaysInMonth(MissingMonth, 2017))
}

func TestDateMissingPredicates(t *testing.T) {
	tests := []struct {
		name      string
		date      Date
		fully     bool
		partially bool
	}{
		{"present date", NewDate(4, 7, 2021), false, false},
		{"missing day", NewDate(MissingDay, 7, 2021), false, true},
		{"missing month", NewDate(4, MissingMonth, 2021), false, true},
		{"missing year", NewDate(4, 7, MissingYear), false, true},
		{"fully missing", MissingDate(), true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.fully, tt.date.IsFullyMissing())
			assert.Equal(t, tt.partially, tt.date.IsPartiallyMissing())
		})
	}
}

func TestDateOrdering(t *testing.T) {
	early := NewDate(31, 12, 2019)
	late := NewDate(1, 1, 2020)

	assert.True(t, late.After(early))
	assert.False(t, early.After(late))
	assert.True(t, early.Before(late))
	assert.False(t, late.Before(early))
	assert.False(t, early.After(early))
	assert.False(t, early.Before(early))
	assert.True(t, NewDate(2, 5, 2020).After(NewDate(30, 4, 2020)))
}

func TestDateOrdering_MissingOperandsAreNeverOrdered(t *testing.T) {
	present := NewDate(15, 6, 2020)
	sentinelCombos := []Date{
		NewDate(MissingDay, 6, 2020),
		NewDate(15, MissingMonth, 2020),
		NewDate(15, 6, MissingYear),
		NewDate(MissingDay, MissingMonth, 2020),
		NewDate(MissingDay, 6, MissingYear),
		NewDate(15, MissingMonth, MissingYear),
		MissingDate(),
	}

	for _, missing := range sentinelCombos {
		t.Run(missing.String(), func(t *testing.T) {
			assert.False(t, missing.After(present))
			assert.False(t, missing.Before(present))
			assert.False(t, present.After(missing))
			assert.False(t, present.Before(missing))
			assert.False(t, missing.After(MissingDate()))
			assert.False(t, MissingDate().Before(missing))
		})
	}
}

func TestDateFormatting(t *testing.T) {
	assert.Equal(t, "2017-02-05", NewDate(5, 2, 2017).String())
	assert.Equal(t, "02-05", NewDate(5, 2, 2017).MonthDay())
	assert.Equal(t, "9999-99-99", MissingDate().String())
	assert.Equal(t, "0987-01-01", NewDate(1, 1, 987).String())
}

func TestToday_UsesPackageClock(t *testing.T) {
	SetClock(clockwork.NewFakeClockAt(time.Date(2024, time.April, 26, 23, 59, 0, 0, time.UTC)))
	t.Cleanup(func() { SetClock(nil) })

	assert.Equal(t, NewDate(26, 4, 2024), Today())
	assert.Equal(t, time.Date(2024, time.April, 26, 23, 59, 0, 0, time.UTC), Now())
}

func TestDate_JSONKeepsSentinels(t *testing.T) {
	data, err := json.Marshal(NewDate(MissingDay, 3, 2020))
	require.NoError(t, err)
	assert.JSONEq(t, `{"day":99,"month":3,"year":2020}`, string(data))

	var back Date
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, NewDate(MissingDay, 3, 2020), back)
}

func TestDates_Days(t *testing.T) {
	assert.Equal(t, 31, NewDates(NewDate(1, 1, 2021), NewDate(31, 1, 2021)).Days())
	assert.Equal(t, 91, NewDates(NewDate(1, 12, 2019), NewDate(29, 2, 2020)).Days())
	assert.Equal(t, 366, NewDates(NewDate(1, 1, 2020), NewDate(31, 12, 2020)).Days())
	assert.Equal(t, 0, NewDates(NewDate(2, 1, 2021), NewDate(1, 1, 2021)).Days())
	assert.Equal(t, 0, MissingDates().Days())
}

func TestDates_Contains(t *testing.T) {
	djf := NewDates(NewDate(1, 12, 2016), NewDate(28, 2, 2017))

	assert.True(t, djf.Contains(NewDate(1, 12, 2016)))
	assert.True(t, djf.Contains(NewDate(15, 1, 2017)))
	assert.True(t, djf.Contains(NewDate(28, 2, 2017)))
	assert.False(t, djf.Contains(NewDate(1, 3, 2017)))
	assert.False(t, djf.Contains(MissingDate()))
}
