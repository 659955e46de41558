package calendar

import (
	"fmt"
	"time"
)

// Sentinel values marking a missing date field.
const (
	MissingDay   = 99
	MissingMonth = 99
	MissingYear  = 9999
)

// Date is a calendar day with independently sentinel-able fields.
type Date struct {
	Day   int `json:"day"`
	Month int `json:"month"`
	Year  int `json:"year"`
}

// NewDate builds a Date from its fields without validation.
func NewDate(day, month, year int) Date {
	return Date{Day: day, Month: month, Year: year}
}

// MissingDate returns the fully-missing date.
func MissingDate() Date {
	return Date{Day: MissingDay, Month: MissingMonth, Year: MissingYear}
}

// DateOf converts a time instant to the Date in the instant's location.
func DateOf(t time.Time) Date {
	return Date{Day: t.Day(), Month: int(t.Month()), Year: t.Year()}
}

// Today returns the current date from the package clock.
func Today() Date {
	return DateOf(clock.Now())
}

// IsFullyMissing reports whether every field holds its sentinel.
func (d Date) IsFullyMissing() bool {
	return d.Day == MissingDay && d.Month == MissingMonth && d.Year == MissingYear
}

// IsPartiallyMissing reports whether any field holds its sentinel.
func (d Date) IsPartiallyMissing() bool {
	return d.Day == MissingDay || d.Month == MissingMonth || d.Year == MissingYear
}

// IsValid reports whether the date names a real calendar day.
func (d Date) IsValid() bool {
	if d.IsPartiallyMissing() || d.Month < 1 || d.Month > 12 {
		return false
	}
	return d.Day >= 1 && d.Day <= DaysInMonth(d.Month, d.Year)
}

// IsLeapYear applies the Gregorian rule.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInYear returns 366 for leap years and 365 otherwise.
func DaysInYear(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

var monthLengths = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// DaysInMonth returns the last day of month in year, or 0 for an invalid month.
func DaysInMonth(month, year int) int {
	if month < 1 || month > 12 {
		return 0
	}
	if month == 2 && IsLeapYear(year) {
		return 29
	}
	return monthLengths[month-1]
}

// LastDayOf returns the final day of the given month.
func LastDayOf(month, year int) Date {
	return Date{Day: DaysInMonth(month, year), Month: month, Year: year}
}

// DayOfYear returns the 1-based ordinal of d within d.Year.
// Returns 0 when d is partially missing or not a real day.
func (d Date) DayOfYear() int {
	if !d.IsValid() {
		return 0
	}
	ordinal := d.Day
	for m := 1; m < d.Month; m++ {
		ordinal += DaysInMonth(m, d.Year)
	}
	return ordinal
}

// FromOrdinal converts an ordinal day of year into a Date. An ordinal past the
// end of the year, or below 1, rolls the year by exactly one. Anything still
// out of range after that single roll yields MissingDate.
func FromOrdinal(year, ordinal int) Date {
	if year == MissingYear {
		return MissingDate()
	}
	switch {
	case ordinal > DaysInYear(year):
		ordinal -= DaysInYear(year)
		year++
	case ordinal < 1:
		year--
		ordinal += DaysInYear(year)
	}
	if ordinal < 1 || ordinal > DaysInYear(year) {
		return MissingDate()
	}

	month := 1
	for ordinal > DaysInMonth(month, year) {
		ordinal -= DaysInMonth(month, year)
		month++
	}
	return Date{Day: ordinal, Month: month, Year: year}
}

// AddDays shifts d by n days, crossing as many year boundaries as needed.
// A partially missing or invalid date is returned unchanged.
func (d Date) AddDays(n int) Date {
	if !d.IsValid() {
		return d
	}
	year := d.Year
	ordinal := d.DayOfYear() + n
	for ordinal > DaysInYear(year) {
		ordinal -= DaysInYear(year)
		year++
	}
	for ordinal < 1 {
		year--
		ordinal += DaysInYear(year)
	}
	return FromOrdinal(year, ordinal)
}

// After reports whether d falls strictly after o. False when either is
// partially missing.
func (d Date) After(o Date) bool {
	if d.IsPartiallyMissing() || o.IsPartiallyMissing() {
		return false
	}
	return d.compare(o) > 0
}

// Before reports whether d falls strictly before o. False when either is
// partially missing.
func (d Date) Before(o Date) bool {
	if d.IsPartiallyMissing() || o.IsPartiallyMissing() {
		return false
	}
	return d.compare(o) < 0
}

// Equal compares all three fields, sentinels included.
func (d Date) Equal(o Date) bool {
	return d == o
}

func (d Date) compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return d.Year - o.Year
	case d.Month != o.Month:
		return d.Month - o.Month
	default:
		return d.Day - o.Day
	}
}

// Time converts d to midnight UTC. The zero time is returned for a date that
// is not a real day.
func (d Date) Time() time.Time {
	if !d.IsValid() {
		return time.Time{}
	}
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// String formats the date as YYYY-MM-DD. Sentinels print literally.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// MonthDay formats the date as MM-DD.
func (d Date) MonthDay() string {
	return fmt.Sprintf("%02d-%02d", d.Month, d.Day)
}
