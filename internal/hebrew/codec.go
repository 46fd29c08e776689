package hebrew

import (
	"fmt"
	"time"

	"github.com/hebcal/hdate"

	"github.com/desertthunder/luach/internal/models"
	"github.com/desertthunder/luach/internal/shared"
)

// Converter translates dates between the Hebrew and Gregorian calendars.
type Converter interface {
	ToGregorian(date models.HebrewDate) (models.GregorianDate, error)
	ToHebrew(date models.GregorianDate) (models.HebrewDate, error)
}

// HdateConverter implements Converter on the hebcal arithmetic.
type HdateConverter struct{}

// NewConverter builds the calendar converter used throughout the app.
func NewConverter() *HdateConverter {
	return &HdateConverter{}
}

// ToGregorian converts a Hebrew date to its Gregorian equivalent. The
// date is checked against the actual shape of its Hebrew year, so
// 30 Adar in a year whose Adar has 29 days is rejected rather than
// rolled over into the next month.
func (c *HdateConverter) ToGregorian(date models.HebrewDate) (models.GregorianDate, error) {
	if err := date.Validate(); err != nil {
		return models.GregorianDate{}, err
	}
	if err := checkExists(date); err != nil {
		return models.GregorianDate{}, err
	}

	hd := hdate.New(date.Year, hdate.HMonth(date.Month), date.Day)
	gy, gm, gd := hd.Greg()
	return models.GregorianDate{Year: gy, Month: int(gm), Day: gd}, nil
}

// ToHebrew converts a Gregorian date to its Hebrew equivalent.
func (c *HdateConverter) ToHebrew(date models.GregorianDate) (models.HebrewDate, error) {
	if err := date.Validate(); err != nil {
		return models.HebrewDate{}, err
	}

	hd := hdate.FromGregorian(date.Year, time.Month(date.Month), date.Day)
	return models.HebrewDate{
		Year:  hd.Year(),
		Month: int(hd.Month()),
		Day:   hd.Day(),
	}, nil
}

// checkExists verifies that the month occurs in the year (Adar II only
// exists in leap years) and that the day fits the month's length.
func checkExists(date models.HebrewDate) error {
	if date.Month > hdate.MonthsInYear(date.Year) {
		return fmt.Errorf("%w: month %d does not occur in year %d",
			shared.ErrInvalidHebrewDate, date.Month, date.Year)
	}
	if days := hdate.DaysInMonth(hdate.HMonth(date.Month), date.Year); date.Day > days {
		return fmt.Errorf("%w: %s has only %d days in year %d",
			shared.ErrInvalidHebrewDate, hdate.HMonth(date.Month).String(), days, date.Year)
	}
	return nil
}
