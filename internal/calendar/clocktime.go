package calendar

import (
	"fmt"
	"time"
)

// Sentinel values marking a missing time field.
const (
	MissingHour   = 99
	MissingMinute = 99
)

// Meridiem markers for 12-hour times. An empty AMPM means Hour is on the
// 24-hour clock.
const (
	AM = "AM"
	PM = "PM"
)

// Time is a wall-clock reading with independently sentinel-able hour and minute.
type Time struct {
	Hour   int    `json:"hour"`
	Minute int    `json:"minute"`
	AMPM   string `json:"ampm"`
	Zone   string `json:"zone"`
}

// MissingTime returns the fully-missing time.
func MissingTime() Time {
	return Time{Hour: MissingHour, Minute: MissingMinute}
}

// TimeOf converts an instant to a 24-hour Time carrying the location's zone
// abbreviation.
func TimeOf(t time.Time) Time {
	zone, _ := t.Zone()
	return Time{Hour: t.Hour(), Minute: t.Minute(), Zone: zone}
}

// IsFullyMissing reports whether both hour and minute hold their sentinels.
func (t Time) IsFullyMissing() bool {
	return t.Hour == MissingHour && t.Minute == MissingMinute
}

// IsPartiallyMissing reports whether hour or minute holds its sentinel.
func (t Time) IsPartiallyMissing() bool {
	return t.Hour == MissingHour || t.Minute == MissingMinute
}

// Hour24 returns the hour on the 24-hour clock, or MissingHour.
func (t Time) Hour24() int {
	if t.Hour == MissingHour {
		return MissingHour
	}
	switch t.AMPM {
	case AM:
		if t.Hour == 12 {
			return 0
		}
	case PM:
		if t.Hour < 12 {
			return t.Hour + 12
		}
	}
	return t.Hour
}

// To24Hour returns t on the 24-hour clock. A missing hour is returned unchanged.
func (t Time) To24Hour() Time {
	if t.Hour == MissingHour {
		return t
	}
	t.Hour = t.Hour24()
	t.AMPM = ""
	return t
}

// To12Hour returns t on the 12-hour clock with an AM/PM marker. A missing
// hour is returned unchanged.
func (t Time) To12Hour() Time {
	if t.Hour == MissingHour {
		return t
	}
	h := t.Hour24()
	t.AMPM = AM
	if h >= 12 {
		t.AMPM = PM
	}
	switch {
	case h == 0:
		t.Hour = 12
	case h > 12:
		t.Hour = h - 12
	default:
		t.Hour = h
	}
	return t
}

// After reports whether t is strictly later in the day than o, ordering
// AM before PM. False when either is partially missing.
//
// Times compare on the 24-hour clock, so 12 AM is midnight and sorts before
// 1 AM, and 12 PM is noon and sorts before 1 PM. Comparing the stored
// (ampm, hour, minute) fields directly would put 12 after 1 instead.
func (t Time) After(o Time) bool {
	if t.IsPartiallyMissing() || o.IsPartiallyMissing() {
		return false
	}
	return t.minuteOfDay() > o.minuteOfDay()
}

// Before reports whether t is strictly earlier in the day than o, on the
// 24-hour clock like After. False when either is partially missing.
func (t Time) Before(o Time) bool {
	if t.IsPartiallyMissing() || o.IsPartiallyMissing() {
		return false
	}
	return t.minuteOfDay() < o.minuteOfDay()
}

func (t Time) minuteOfDay() int {
	return t.Hour24()*60 + t.Minute
}

// String formats the stored hour and minute as HH:MM.
func (t Time) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}
