package models

import (
	"fmt"
	"time"

	"github.com/desertthunder/luach/internal/shared"
)

// HebrewDate is a structured date on the Hebrew calendar.
//
// Month numbering starts at Nisan: 1 = Nisan … 6 = Elul, 7 = Tishrei …
// 12 = Adar (Adar I in leap years), 13 = Adar II (leap years only).
type HebrewDate struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// Validate checks that each field is inside its structural range.
// Whether the day/month combination exists in the given year is a
// calendar question answered by the converter, not here.
func (d HebrewDate) Validate() error {
	if d.Year < 1 {
		return fmt.Errorf("%w: hebrew year %d must be positive", shared.ErrMalformedInput, d.Year)
	}
	if d.Month < 1 || d.Month > 13 {
		return fmt.Errorf("%w: hebrew month %d outside 1-13", shared.ErrMalformedInput, d.Month)
	}
	if d.Day < 1 || d.Day > 30 {
		return fmt.Errorf("%w: hebrew day %d outside 1-30", shared.ErrMalformedInput, d.Day)
	}
	return nil
}

func (d HebrewDate) String() string {
	return fmt.Sprintf("%d/%d/%d", d.Day, d.Month, d.Year)
}

// GregorianDate is a timezone-free date on the proleptic Gregorian calendar.
type GregorianDate struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

// Validate checks field ranges. Month lengths are not re-derived here;
// time.Date normalization in Time covers out-of-month days.
func (d GregorianDate) Validate() error {
	if d.Month < 1 || d.Month > 12 {
		return fmt.Errorf("%w: gregorian month %d outside 1-12", shared.ErrMalformedInput, d.Month)
	}
	if d.Day < 1 || d.Day > 31 {
		return fmt.Errorf("%w: gregorian day %d outside 1-31", shared.ErrMalformedInput, d.Day)
	}
	return nil
}

// ISO renders the date as YYYY-MM-DD, the form the calendar API expects
// for all-day events.
func (d GregorianDate) ISO() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

func (d GregorianDate) String() string {
	return d.ISO()
}

// Time returns the date as a UTC time.Time at midnight.
func (d GregorianDate) Time() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// Before reports whether d falls strictly earlier than other.
func (d GregorianDate) Before(other GregorianDate) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// GregorianFromTime truncates a time.Time to its calendar date.
func GregorianFromTime(t time.Time) GregorianDate {
	return GregorianDate{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}
