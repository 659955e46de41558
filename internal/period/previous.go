package period

import (
	"fmt"
	"time"

	"github.com/couchcryptid/climate-report-service/internal/calendar"
)

// PreviousSeason returns the most recently completed season and its
// season-year, relative to the package clock.
func PreviousSeason() (Season, int) {
	return PreviousSeasonAt(calendar.Now())
}

// PreviousSeasonAt returns the season completed before the one containing now.
// In January and February the preceding season is the prior year's SON; in
// December it is the current year's SON, since that December opens next
// year's DJF.
func PreviousSeasonAt(now time.Time) (Season, int) {
	year := now.Year()
	switch now.Month() {
	case time.March, time.April, time.May:
		return Winter, year
	case time.June, time.July, time.August:
		return Spring, year
	case time.September, time.October, time.November:
		return Summer, year
	case time.December:
		return Fall, year
	default:
		return Fall, year - 1
	}
}

// PreviousMonth returns the month and year before the current one.
func PreviousMonth() (month, year int) {
	return PreviousMonthAt(calendar.Now())
}

// PreviousMonthAt returns the month and year before now's month.
func PreviousMonthAt(now time.Time) (month, year int) {
	if now.Month() == time.January {
		return 12, now.Year() - 1
	}
	return int(now.Month()) - 1, now.Year()
}

// PreviousYear returns the calendar year before the current one.
func PreviousYear() int {
	return PreviousYearAt(calendar.Now())
}

// PreviousYearAt returns the calendar year before now's year.
func PreviousYearAt(now time.Time) int {
	return now.Year() - 1
}

// Previous returns the non-custom descriptor of the most recently completed
// period for a monthly, seasonal, or annual type.
func Previous(t Type) (Desc, error) {
	now := calendar.Now()
	switch {
	case t.IsMonthly():
		month, year := PreviousMonthAt(now)
		return NewMonthly(t, year, month)
	case t.IsSeasonal():
		season, year := PreviousSeasonAt(now)
		return NewSeasonal(t, year, season)
	case t.IsAnnual():
		return NewAnnual(t, PreviousYearAt(now))
	default:
		return Desc{}, fmt.Errorf("previous period for %s: %w", t, ErrInvalidParameter)
	}
}
