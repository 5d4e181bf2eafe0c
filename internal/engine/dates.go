package engine

import (
	"time"

	"github.com/tartampluch/circle-squared/internal/config"
)

// ParseDate parses a milestone date. It accepts full dates in the usual
// layouts and the vCard truncated forms (--MM-DD, --MMDD) for which the year
// is unknown; those are placed in a leap year so that Feb 29 survives.
func ParseDate(value string) (time.Time, bool, error) {
	formatsWithYear := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}
	for _, f := range formatsWithYear {
		if t, err := time.Parse(f, value); err == nil {
			return t, true, nil
		}
	}

	formatsWithoutYear := []string{config.DateFormatNoYearD, config.DateFormatNoYearB}
	for _, f := range formatsWithoutYear {
		if t, err := time.Parse(f, value); err == nil {
			return time.Date(config.DefaultLeapYear, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), false, nil
		}
	}

	return time.Time{}, false, ErrInvalidDate
}

// calendarDaysBetween counts whole calendar days from the date of `from` to
// the date of `to`, both read in to's location. Time of day never matters:
// 23:59 yesterday and 00:01 today are one day apart.
func calendarDaysBetween(from, to time.Time) int {
	from = from.In(to.Location())
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a) / (24 * time.Hour))
}
