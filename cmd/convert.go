package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/hebcal/hdate"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/luach/internal/hebrew"
	"github.com/desertthunder/luach/internal/models"
	"github.com/desertthunder/luach/internal/shared"
)

// intArg reads a positional argument as a number.
func intArg(cmd *cli.Command, name string) (int, error) {
	raw := cmd.StringArg(name)
	if raw == "" {
		return 0, fmt.Errorf("%w: %s argument is required", shared.ErrMissingArgument, name)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not a number", shared.ErrMalformedInput, name, raw)
	}
	return n, nil
}

// ConvertToGregorian converts a numeric Hebrew date to Gregorian.
func (r *Runner) ConvertToGregorian(ctx context.Context, cmd *cli.Command) error {
	year, err := intArg(cmd, "year")
	if err != nil {
		return err
	}
	month, err := intArg(cmd, "month")
	if err != nil {
		return err
	}
	day, err := intArg(cmd, "day")
	if err != nil {
		return err
	}
	date := models.HebrewDate{Year: year, Month: month, Day: day}

	greg, err := r.converter.ToGregorian(date)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(map[string]any{"hebrew": date, "gregorian": greg}, true)
	}

	r.writePlain("%d %s %d = %s\n", date.Day, hdate.HMonth(date.Month).String(), date.Year, greg.ISO())
	return nil
}

// ConvertToHebrew converts an ISO Gregorian date to Hebrew.
func (r *Runner) ConvertToHebrew(ctx context.Context, cmd *cli.Command) error {
	raw := cmd.StringArg("date")
	if raw == "" {
		return fmt.Errorf("%w: date argument is required (YYYY-MM-DD)", shared.ErrMissingArgument)
	}

	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return fmt.Errorf("%w: %q is not a YYYY-MM-DD date", shared.ErrMalformedInput, raw)
	}

	greg := models.GregorianFromTime(parsed)
	heb, err := r.converter.ToHebrew(greg)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(map[string]any{"gregorian": greg, "hebrew": heb}, true)
	}

	r.writePlain("%s = %d %s %d\n", greg.ISO(), heb.Day, hdate.HMonth(heb.Month).String(), heb.Year)
	return nil
}

// ConvertParse parses a Hebrew date written in Hebrew letters.
func (r *Runner) ConvertParse(ctx context.Context, cmd *cli.Command) error {
	dayText := cmd.StringArg("day")
	monthText := cmd.StringArg("month")
	yearText := cmd.StringArg("year")
	if dayText == "" || monthText == "" || yearText == "" {
		return fmt.Errorf("%w: day, month, and year arguments are required", shared.ErrMissingArgument)
	}

	heb, err := hebrew.ParseDate(dayText, monthText, yearText)
	if err != nil {
		return err
	}

	greg, err := r.converter.ToGregorian(heb)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(map[string]any{"hebrew": heb, "gregorian": greg}, true)
	}

	r.writePlain("%s %s %s = %d %s %d = %s\n",
		dayText, monthText, yearText,
		heb.Day, hdate.HMonth(heb.Month).String(), heb.Year,
		greg.ISO())
	return nil
}

// Occurrences projects a recurring Hebrew day onto Gregorian years.
func (r *Runner) Occurrences(ctx context.Context, cmd *cli.Command) error {
	month, err := intArg(cmd, "month")
	if err != nil {
		return err
	}
	day, err := intArg(cmd, "day")
	if err != nil {
		return err
	}
	start := cmd.Int("start")
	years := cmd.Int("years")

	if start == 0 {
		start = time.Now().Year()
	}

	r.logger.Infof("finding occurrences of %d/%d over %d years from %d", day, month, years, start)

	dates, err := hebrew.FindOccurrences(r.converter, month, day, start, years)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(dates, true)
	}

	r.writePlain("%d %s falls on:\n\n", day, hdate.HMonth(month).String())
	for _, d := range dates {
		heb, err := r.converter.ToHebrew(d)
		if err != nil {
			return err
		}
		r.writePlain("  %s  (%d)\n", d.ISO(), heb.Year)
	}
	if len(dates) < years {
		r.writePlain("\n%d year(s) had no occurrence\n", years-len(dates))
	}
	return nil
}
