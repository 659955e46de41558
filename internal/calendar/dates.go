package calendar

// Dates is one bounded interval: a reporting period or a sub-interval fact
// such as a storm duration.
type Dates struct {
	Start     Date `json:"start"`
	End       Date `json:"end"`
	StartTime Time `json:"start_time"`
	EndTime   Time `json:"end_time"`
}

// NewDates builds an interval between two dates with missing times.
func NewDates(start, end Date) Dates {
	return Dates{
		Start:     start,
		End:       end,
		StartTime: MissingTime(),
		EndTime:   MissingTime(),
	}
}

// MissingDates returns an interval whose dates and times are all missing.
func MissingDates() Dates {
	return NewDates(MissingDate(), MissingDate())
}

// IsPartiallyMissing reports whether either endpoint date is partially missing.
func (d Dates) IsPartiallyMissing() bool {
	return d.Start.IsPartiallyMissing() || d.End.IsPartiallyMissing()
}

// Days returns the inclusive length of the interval in days, or 0 when either
// end is missing or the interval is inverted.
func (d Dates) Days() int {
	if !d.Start.IsValid() || !d.End.IsValid() || d.End.Before(d.Start) {
		return 0
	}
	days := d.End.DayOfYear() - d.Start.DayOfYear() + 1
	for y := d.Start.Year; y < d.End.Year; y++ {
		days += DaysInYear(y)
	}
	return days
}

// Contains reports whether day lies within the interval, inclusive.
func (d Dates) Contains(day Date) bool {
	if day.IsPartiallyMissing() || d.IsPartiallyMissing() {
		return false
	}
	return !day.Before(d.Start) && !day.After(d.End)
}

func (d Dates) String() string {
	return d.Start.String() + "/" + d.End.String()
}
