package period

import (
	"fmt"
	"strings"
)

// Season is a fixed three-month climatological season. The season-year of DJF
// is the year of its January and February; its December falls in the prior
// calendar year.
type Season string

const (
	Winter Season = "DJF"
	Spring Season = "MAM"
	Summer Season = "JJA"
	Fall   Season = "SON"
)

// Seasons lists the seasons in calendar order of their start month within a
// season-year.
func Seasons() []Season {
	return []Season{Winter, Spring, Summer, Fall}
}

// ParseSeason accepts the three-letter code or the English name, case-insensitive.
func ParseSeason(s string) (Season, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DJF", "WINTER":
		return Winter, nil
	case "MAM", "SPRING":
		return Spring, nil
	case "JJA", "SUMMER":
		return Summer, nil
	case "SON", "FALL", "AUTUMN":
		return Fall, nil
	default:
		return "", fmt.Errorf("season %q: %w", s, ErrInvalidParameter)
	}
}

// StartMonth returns the first month of the season, or 0 for an unknown season.
func (s Season) StartMonth() int {
	switch s {
	case Winter:
		return 12
	case Spring:
		return 3
	case Summer:
		return 6
	case Fall:
		return 9
	default:
		return 0
	}
}

// EndMonth returns the last month of the season, or 0 for an unknown season.
func (s Season) EndMonth() int {
	switch s {
	case Winter:
		return 2
	case Spring:
		return 5
	case Summer:
		return 8
	case Fall:
		return 11
	default:
		return 0
	}
}

// Name returns the English season name.
func (s Season) Name() string {
	switch s {
	case Winter:
		return "Winter"
	case Spring:
		return "Spring"
	case Summer:
		return "Summer"
	case Fall:
		return "Fall"
	default:
		return ""
	}
}

// IsValid reports whether s is one of the four seasons.
func (s Season) IsValid() bool {
	return s.StartMonth() != 0
}

// seasonForMonth returns the season a calendar month belongs to.
func seasonForMonth(month int) Season {
	switch month {
	case 12, 1, 2:
		return Winter
	case 3, 4, 5:
		return Spring
	case 6, 7, 8:
		return Summer
	default:
		return Fall
	}
}
