// package formatter renders birthday schedules to the supported export
// formats (CSV, iCalendar, Markdown, plain text) and reads them back
// from the CSV import layout.
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/emersion/go-ical"
	"github.com/hebcal/hdate"

	"github.com/desertthunder/luach/internal/models"
	"github.com/desertthunder/luach/internal/shared"
)

// EventSummary renders the calendar event title for an occurrence,
// e.g. "Rivka's Hebrew Birthday (34)". The age is omitted when the
// birth year is unknown.
func EventSummary(occ models.Occurrence) string {
	if occ.Age > 0 {
		return fmt.Sprintf("%s's Hebrew Birthday (%d)", occ.Name, occ.Age)
	}
	return fmt.Sprintf("%s's Hebrew Birthday", occ.Name)
}

// EventDescription renders the calendar event body, naming the Hebrew
// date the occurrence falls on.
func EventDescription(occ models.Occurrence, month, day int) string {
	return fmt.Sprintf("%d %s %d", day, hdate.HMonth(month).String(), occ.HebrewYear)
}

// ExportToCSV converts a Schedule to CSV format with columns: Name, Date, Hebrew Year, Age
func ExportToCSV(schedule *models.Schedule) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Name", "Date", "Hebrew Year", "Age"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, occ := range schedule.Occurrences {
		record := []string{
			occ.Name,
			occ.Date.ISO(),
			strconv.Itoa(occ.HebrewYear),
			strconv.Itoa(occ.Age),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToICS converts a Schedule to an iCalendar document of all-day events.
func ExportToICS(schedule *models.Schedule) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//luach//hebrew birthdays//EN")

	now := time.Now().UTC()
	for _, occ := range schedule.Occurrences {
		event := ical.NewEvent()
		event.Props.SetText(ical.PropUID, shared.GenerateID())
		event.Props.SetDateTime(ical.PropDateTimeStamp, now)
		event.Props.SetText(ical.PropSummary, EventSummary(occ))
		event.Props.SetDate(ical.PropDateTimeStart, occ.Date.Time())
		event.Props.SetDate(ical.PropDateTimeEnd, occ.Date.Time().AddDate(0, 0, 1))
		cal.Children = append(cal.Children, event.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("failed to encode iCalendar: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportToMarkdown converts a Schedule to a Markdown table grouped under
// the schedule title.
func ExportToMarkdown(schedule *models.Schedule) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", schedule.Title))
	buf.WriteString(fmt.Sprintf("**Years**: %d through %d\n\n", schedule.StartYear, schedule.StartYear+schedule.Years-1))

	buf.WriteString("| Name | Date | Hebrew Year | Age |\n")
	buf.WriteString("| --- | --- | --- | --- |\n")
	for _, occ := range schedule.Occurrences {
		age := ""
		if occ.Age > 0 {
			age = strconv.Itoa(occ.Age)
		}
		buf.WriteString(fmt.Sprintf("| %s | %s | %d | %s |\n", occ.Name, occ.Date.ISO(), occ.HebrewYear, age))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a Schedule to plain text format
func ExportToText(schedule *models.Schedule) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("%s\n", schedule.Title))
	buf.WriteString(fmt.Sprintf("Occurrences: %d\n\n", len(schedule.Occurrences)))

	for i, occ := range schedule.Occurrences {
		buf.WriteString(fmt.Sprintf("%d. %s  %s\n", i+1, occ.Date.ISO(), EventSummary(occ)))
	}

	return buf.Bytes(), nil
}

// ToScheduleJSON generates a JSON representation of the schedule.
func ToScheduleJSON(schedule *models.Schedule) ([]byte, error) {
	return shared.MarshalJSON(schedule, true)
}

// WriteScheduleExport renders the schedule with render and writes it to
// filepath, defaulting the name to the schedule title plus ext.
func WriteScheduleExport(schedule *models.Schedule, filepath, ext string, render func(*models.Schedule) ([]byte, error)) (string, error) {
	if filepath == "" {
		filepath = fmt.Sprintf("%s.%s", schedule.Title, ext)
	}

	data, err := render(schedule)
	if err != nil {
		return "", fmt.Errorf("failed to generate %s: %w", ext, err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s file: %w", ext, err)
	}

	return filepath, nil
}
