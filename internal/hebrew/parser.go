package hebrew

import (
	"fmt"

	"github.com/desertthunder/luach/internal/models"
	"github.com/desertthunder/luach/internal/shared"
)

// ParseDate reads a Hebrew date from its three text parts, e.g.
// ("כ״ט", "אדר א׳", "תשס״ה") for 29 Adar I 5765. The day and year are
// read as gematria numerals and the month by name.
func ParseDate(dayText, monthText, yearText string) (models.HebrewDate, error) {
	day := GematriaToNumber(dayText)
	if day == 0 {
		return models.HebrewDate{}, fmt.Errorf("%w: unreadable day %q", shared.ErrMalformedInput, dayText)
	}

	month, err := NormalizeMonthName(monthText)
	if err != nil {
		return models.HebrewDate{}, err
	}

	year := YearToNumber(yearText)
	if year == 0 {
		return models.HebrewDate{}, fmt.Errorf("%w: unreadable year %q", shared.ErrMalformedInput, yearText)
	}

	date := models.HebrewDate{Year: year, Month: month, Day: day}
	if err := date.Validate(); err != nil {
		return models.HebrewDate{}, err
	}
	return date, nil
}
