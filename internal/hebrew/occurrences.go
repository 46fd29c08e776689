package hebrew

import (
	"errors"
	"fmt"
	"sort"

	"github.com/desertthunder/luach/internal/models"
	"github.com/desertthunder/luach/internal/shared"
)

// FindOccurrences returns the Gregorian dates on which the Hebrew
// calendar day (month, day) falls during yearCount consecutive
// Gregorian years starting at startYear, in ascending order.
//
// A Gregorian year overlaps two Hebrew years, so both are tried and a
// candidate is kept only when it lands inside the target year. Years in
// which the day does not exist at all, such as 30 Cheshvan in a
// deficient year, are skipped without error.
func FindOccurrences(conv Converter, month, day, startYear, yearCount int) ([]models.GregorianDate, error) {
	if month < 1 || month > 13 || day < 1 || day > 30 {
		return nil, fmt.Errorf("%w: no such hebrew day %d/%d", shared.ErrMalformedInput, day, month)
	}
	if yearCount <= 0 {
		return nil, fmt.Errorf("%w: year count %d", shared.ErrMalformedInput, yearCount)
	}

	var dates []models.GregorianDate
	for year := startYear; year < startYear+yearCount; year++ {
		anchor, err := conv.ToHebrew(models.GregorianDate{Year: year, Month: 1, Day: 1})
		if err != nil {
			return nil, err
		}

		// The day can fall twice in one Gregorian year (early January
		// and again in December); one entry per year, the first wins.
		for _, hy := range []int{anchor.Year, anchor.Year + 1} {
			greg, err := conv.ToGregorian(models.HebrewDate{Year: hy, Month: month, Day: day})
			if errors.Is(err, shared.ErrInvalidHebrewDate) {
				continue
			}
			if err != nil {
				return nil, err
			}
			if greg.Year == year {
				dates = append(dates, greg)
				break
			}
		}
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates, nil
}
