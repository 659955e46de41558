package period

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/couchcryptid/climate-report-service/internal/calendar"
)

// ErrInvalidParameter marks a programming-contract violation: a period type or
// season combination the resolver does not handle. It is always returned to
// the caller, never swallowed.
var ErrInvalidParameter = errors.New("invalid parameter")

// Desc describes a reporting period.
//
// When UseCustom is false, Dates is derived from Type, Year and Month or
// Season, and must not be edited independently of them. When UseCustom is
// true, Dates is authoritative and the other fields are best-effort.
type Desc struct {
	Type      Type           `json:"period_type"`
	Season    Season         `json:"season"`
	Year      int            `json:"year"`
	Month     int            `json:"month"`
	Dates     calendar.Dates `json:"dates"`
	UseCustom bool           `json:"use_custom"`
}

// NewMonthly returns the non-custom descriptor for a calendar month.
func NewMonthly(t Type, year, month int) (Desc, error) {
	if !t.IsMonthly() {
		return Desc{}, fmt.Errorf("monthly descriptor for %s: %w", t, ErrInvalidParameter)
	}
	return derive(Desc{Type: t, Year: year, Month: month})
}

// NewSeasonal returns the non-custom descriptor for a season-year.
func NewSeasonal(t Type, year int, season Season) (Desc, error) {
	if !t.IsSeasonal() {
		return Desc{}, fmt.Errorf("seasonal descriptor for %s: %w", t, ErrInvalidParameter)
	}
	return derive(Desc{Type: t, Year: year, Month: calendar.MissingMonth, Season: season})
}

// NewAnnual returns the non-custom descriptor for a calendar year.
func NewAnnual(t Type, year int) (Desc, error) {
	if !t.IsAnnual() {
		return Desc{}, fmt.Errorf("annual descriptor for %s: %w", t, ErrInvalidParameter)
	}
	return derive(Desc{Type: t, Year: year, Month: calendar.MissingMonth})
}

// NewCustom returns a custom descriptor whose dates are authoritative.
func NewCustom(t Type, dates calendar.Dates) Desc {
	return Desc{
		Type:      t,
		Year:      dates.End.Year,
		Month:     calendar.MissingMonth,
		Dates:     dates,
		UseCustom: true,
	}
}

// Normalize re-derives the dates of a non-custom descriptor. Custom
// descriptors are returned unchanged.
func Normalize(d Desc) (Desc, error) {
	if d.UseCustom {
		return d, nil
	}
	return derive(d)
}

func derive(d Desc) (Desc, error) {
	dates, err := Resolve(d)
	if err != nil {
		return Desc{}, err
	}
	d.Dates = dates
	return d, nil
}

// Resolve converts a descriptor into its concrete date range.
//
//	monthly   day 1 of Month .. last day of Month
//	annual    Jan 1 .. Dec 31
//	DJF       Dec 1 of Year-1 .. last day of Feb of Year
//	MAM       Mar 1 .. May 31
//	JJA       Jun 1 .. Aug 31
//	SON       Sep 1 .. Nov 30
//
// Custom descriptors return their stored dates. Any other type, or an unknown
// month or season, fails with ErrInvalidParameter.
func Resolve(d Desc) (calendar.Dates, error) {
	if d.UseCustom {
		return d.Dates, nil
	}
	if d.Year == calendar.MissingYear {
		return calendar.Dates{}, fmt.Errorf("resolve %s: missing year: %w", d.Type, ErrInvalidParameter)
	}

	switch {
	case d.Type.IsMonthly():
		if d.Month < 1 || d.Month > 12 {
			return calendar.Dates{}, fmt.Errorf("resolve %s: month %d: %w", d.Type, d.Month, ErrInvalidParameter)
		}
		return calendar.NewDates(
			calendar.NewDate(1, d.Month, d.Year),
			calendar.LastDayOf(d.Month, d.Year),
		), nil

	case d.Type.IsAnnual():
		return calendar.NewDates(
			calendar.NewDate(1, 1, d.Year),
			calendar.NewDate(31, 12, d.Year),
		), nil

	case d.Type.IsSeasonal():
		if !d.Season.IsValid() {
			return calendar.Dates{}, fmt.Errorf("resolve %s: season %q: %w", d.Type, d.Season, ErrInvalidParameter)
		}
		startYear := d.Year
		if d.Season == Winter {
			startYear--
		}
		return calendar.NewDates(
			calendar.NewDate(1, d.Season.StartMonth(), startYear),
			calendar.LastDayOf(d.Season.EndMonth(), d.Year),
		), nil

	default:
		return calendar.Dates{}, fmt.Errorf("resolve %s: %w", d.Type, ErrInvalidParameter)
	}
}

// Classify infers the descriptor for a date range. A range matching a
// canonical period of the type's class exactly yields a non-custom
// descriptor; anything else is marked custom with the raw dates retained.
// Types other than monthly, seasonal, or annual fail with ErrInvalidParameter.
func Classify(t Type, dates calendar.Dates) (Desc, error) {
	if !t.IsPeriod() {
		return Desc{}, fmt.Errorf("classify %s: %w", t, ErrInvalidParameter)
	}

	start, end := dates.Start, dates.End
	custom := NewCustom(t, dates)
	if !start.IsValid() || !end.IsValid() {
		return custom, nil
	}

	switch {
	case t.IsMonthly():
		custom.Month = end.Month
		if start.Day == 1 && start.Month == end.Month && start.Year == end.Year &&
			end.Day == calendar.DaysInMonth(end.Month, end.Year) {
			return NewMonthly(t, end.Year, end.Month)
		}

	case t.IsAnnual():
		if start == calendar.NewDate(1, 1, end.Year) && end == calendar.NewDate(31, 12, end.Year) {
			return NewAnnual(t, end.Year)
		}

	case t.IsSeasonal():
		custom.Season = seasonForMonth(start.Month)
		if start.Day != 1 || end.Day != calendar.DaysInMonth(end.Month, end.Year) {
			return custom, nil
		}
		for _, s := range Seasons() {
			if start.Month != s.StartMonth() || end.Month != s.EndMonth() {
				continue
			}
			wantStartYear := end.Year
			if s == Winter {
				wantStartYear--
			}
			if start.Year == wantStartYear {
				return NewSeasonal(t, end.Year, s)
			}
		}
	}

	return custom, nil
}

// ParseCustom builds a descriptor from YYYY-MM-DD text. Malformed dates
// degrade to missing values with a logged warning and classify as custom.
func ParseCustom(t Type, start, end string, logger *slog.Logger) (Desc, error) {
	dates := calendar.NewDates(
		calendar.ParseDate(start, logger),
		calendar.ParseDate(end, logger),
	)
	return Classify(t, dates)
}
