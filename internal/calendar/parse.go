package calendar

import (
	"log/slog"
	"strconv"
	"strings"
	"time"
)

// ParseDate reads a fixed-width YYYY-MM-DD date. Sentinel fields such as
// "9999-99-99" are accepted literally. Malformed text yields MissingDate and a
// warning.
func ParseDate(text string, logger *slog.Logger) Date {
	s := strings.TrimSpace(text)
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return warnDate(logger, text, "expected YYYY-MM-DD")
	}
	year, okY := parseDigits(s[:4])
	month, okM := parseDigits(s[5:7])
	day, okD := parseDigits(s[8:])
	if !okY || !okM || !okD {
		return warnDate(logger, text, "non-numeric field")
	}
	d := Date{Day: day, Month: month, Year: year}
	if !fieldsInRange(d) {
		return warnDate(logger, text, "field out of range")
	}
	return d
}

// ParseMonthDay reads a fixed-width MM-DD date and attaches year.
func ParseMonthDay(text string, year int, logger *slog.Logger) Date {
	s := strings.TrimSpace(text)
	if len(s) != 5 || s[2] != '-' {
		return warnDate(logger, text, "expected MM-DD")
	}
	month, okM := parseDigits(s[:2])
	day, okD := parseDigits(s[3:])
	if !okM || !okD {
		return warnDate(logger, text, "non-numeric field")
	}
	d := Date{Day: day, Month: month, Year: year}
	if !fieldsInRange(d) {
		return warnDate(logger, text, "field out of range")
	}
	return d
}

// ParseTime reads a fixed-width 24-hour HH:MM time.
func ParseTime(text string, logger *slog.Logger) Time {
	s := strings.TrimSpace(text)
	if len(s) != 5 || s[2] != ':' {
		return warnTime(logger, text, "expected HH:MM")
	}
	hour, okH := parseDigits(s[:2])
	minute, okM := parseDigits(s[3:])
	if !okH || !okM {
		return warnTime(logger, text, "non-numeric field")
	}
	if (hour > 23 && hour != MissingHour) || (minute > 59 && minute != MissingMinute) {
		return warnTime(logger, text, "field out of range")
	}
	return Time{Hour: hour, Minute: minute}
}

// ParseSQLTime reads a database TIME column value (HH:MM:SS). Seconds are
// dropped.
func ParseSQLTime(text string, logger *slog.Logger) Time {
	t, err := time.Parse(time.TimeOnly, strings.TrimSpace(text))
	if err != nil {
		return warnTime(logger, text, err.Error())
	}
	return Time{Hour: t.Hour(), Minute: t.Minute()}
}

// parseDigits accepts only ASCII digits, so signs and spaces inside a field
// are rejected.
func parseDigits(s string) (int, bool) {
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	v, err := strconv.Atoi(s)
	return v, err == nil
}

func fieldsInRange(d Date) bool {
	if d.Month != MissingMonth && (d.Month < 1 || d.Month > 12) {
		return false
	}
	if d.Day == MissingDay {
		return true
	}
	if d.Day < 1 || d.Day > 31 {
		return false
	}
	if d.Month == MissingMonth || d.Year == MissingYear {
		return true
	}
	return d.Day <= DaysInMonth(d.Month, d.Year)
}

func warnDate(logger *slog.Logger, text, reason string) Date {
	loggerOrDefault(logger).Warn("unparseable date, using missing value",
		"input", text,
		"reason", reason,
	)
	return MissingDate()
}

func warnTime(logger *slog.Logger, text, reason string) Time {
	loggerOrDefault(logger).Warn("unparseable time, using missing value",
		"input", text,
		"reason", reason,
	)
	return MissingTime()
}

func loggerOrDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
