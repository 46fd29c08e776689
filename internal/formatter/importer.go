package formatter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/desertthunder/luach/internal/hebrew"
	"github.com/desertthunder/luach/internal/models"
	"github.com/desertthunder/luach/internal/shared"
)

// Import column headers. The sheet format uses the Hebrew words for
// name, day, month, and year.
const (
	colName  = "שם"
	colDay   = "יום"
	colMonth = "חודש"
	colYear  = "שנה"
)

// RowFailure records a CSV row that could not be read as a birthday.
type RowFailure struct {
	Line int
	Name string
	Err  error
}

// ImportResult holds the rows that parsed and the rows that did not.
// A bad row never aborts the import.
type ImportResult struct {
	Records  []models.BirthdayRecord
	Failures []RowFailure
}

// ReadBirthdays parses birthday rows from CSV. The header row names the
// columns in Hebrew and the year column is optional per row; when
// present it fixes the birth year so ages can be computed. conv resolves
// full birth dates to check they exist.
func ReadBirthdays(r io.Reader, conv hebrew.Converter) (*ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: reading CSV header: %v", shared.ErrMalformedInput, err)
	}

	columns := map[string]int{}
	for i, h := range header {
		// Sheets exported as UTF-8 start with a byte order mark.
		h = strings.TrimPrefix(strings.TrimSpace(h), "\uFEFF")
		columns[h] = i
	}
	for _, required := range []string{colName, colDay, colMonth} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", shared.ErrMalformedInput, required)
		}
	}

	result := &ImportResult{}
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			result.Failures = append(result.Failures, RowFailure{Line: line, Err: err})
			continue
		}

		record, err := readRow(row, columns, conv)
		if err != nil {
			result.Failures = append(result.Failures, RowFailure{Line: line, Name: field(row, columns, colName), Err: err})
			continue
		}
		result.Records = append(result.Records, record)
	}

	return result, nil
}

func readRow(row []string, columns map[string]int, conv hebrew.Converter) (models.BirthdayRecord, error) {
	name := field(row, columns, colName)
	if name == "" {
		return models.BirthdayRecord{}, fmt.Errorf("%w: empty name", shared.ErrMalformedInput)
	}

	day := hebrew.GematriaToNumber(field(row, columns, colDay))
	if day == 0 {
		return models.BirthdayRecord{}, fmt.Errorf("%w: unreadable day %q", shared.ErrMalformedInput, field(row, columns, colDay))
	}

	month, err := hebrew.NormalizeMonthName(field(row, columns, colMonth))
	if err != nil {
		return models.BirthdayRecord{}, err
	}

	record := models.BirthdayRecord{Name: name, HebrewMonth: month, HebrewDay: day}

	if yearText := field(row, columns, colYear); yearText != "" {
		year := hebrew.YearToNumber(yearText)
		if year == 0 {
			return models.BirthdayRecord{}, fmt.Errorf("%w: unreadable year %q", shared.ErrMalformedInput, yearText)
		}
		// Birth dates with a year must actually exist on the calendar.
		birth := models.HebrewDate{Year: year, Month: month, Day: day}
		if _, err := conv.ToGregorian(birth); err != nil {
			return models.BirthdayRecord{}, err
		}
		record.OriginYear = year
	}

	if err := record.Validate(); err != nil {
		return models.BirthdayRecord{}, err
	}
	return record, nil
}

func field(row []string, columns map[string]int, name string) string {
	i, ok := columns[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
