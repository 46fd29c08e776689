package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/luach/internal/formatter"
	"github.com/desertthunder/luach/internal/models"
	"github.com/desertthunder/luach/internal/repositories"
	"github.com/desertthunder/luach/internal/shared"
	"github.com/desertthunder/luach/internal/tasks"
)

// readRecords imports birthday rows from the CSV at path and reports
// per-row failures without aborting.
func (r *Runner) readRecords(path string) ([]models.BirthdayRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV: %w", err)
	}
	defer f.Close()

	result, err := formatter.ReadBirthdays(f, r.converter)
	if err != nil {
		return nil, err
	}

	for _, failure := range result.Failures {
		r.logger.Warn("skipping row", "line", failure.Line, "name", failure.Name, "error", failure.Err)
	}
	r.logger.Infof("imported %d records (%d rows skipped)", len(result.Records), len(result.Failures))

	if len(result.Records) == 0 {
		return nil, fmt.Errorf("%w: no usable rows in %s", shared.ErrMalformedInput, path)
	}
	return result.Records, nil
}

// planOptsFrom resolves span flags against the config defaults.
func (r *Runner) planOptsFrom(cmd *cli.Command, config *shared.Config) tasks.PlanOpts {
	opts := tasks.PlanOpts{
		Title:     config.Calendar.Name,
		StartYear: cmd.Int("start"),
		Years:     cmd.Int("years"),
	}
	if opts.StartYear == 0 {
		opts.StartYear = config.Calendar.StartYear
	}
	if opts.StartYear == 0 {
		opts.StartYear = time.Now().Year()
	}
	if opts.Years == 0 {
		opts.Years = config.Calendar.YearsAhead
	}
	if opts.Years == 0 {
		opts.Years = 5
	}
	return opts
}

// connect authenticates the calendar service and opens the event ledger.
func (r *Runner) connect(ctx context.Context, config *shared.Config) error {
	if r.calendar == nil {
		svc, err := r.googleService(config)
		if err != nil {
			return err
		}

		token := config.Credentials.Google.Token()
		if token == nil {
			return fmt.Errorf("%w: run 'luach auth login' first", shared.ErrNotAuthenticated)
		}
		if err := svc.UseToken(ctx, token); err != nil {
			return err
		}
		r.calendar = svc
	}

	if r.ledger == nil {
		db, err := shared.NewDatabase(config.Database.Path)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
		if err := shared.RunMigrations(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		r.ledger = repositories.NewEventRepository(db)
	}

	r.engine = tasks.NewBirthdayEngine(r.converter, r.calendar, r.ledger)
	return nil
}

// SyncRun reads birthdays from CSV and pushes events to Google Calendar.
func (r *Runner) SyncRun(ctx context.Context, cmd *cli.Command) error {
	config := r.loadOrCreateConfig(cmd.String("config"))

	records, err := r.readRecords(cmd.String("csv"))
	if err != nil {
		return err
	}

	if err := r.connect(ctx, config); err != nil {
		return err
	}

	planOpts := r.planOptsFrom(cmd, config)
	syncOpts := tasks.SyncOpts{
		CalendarName: config.Calendar.Name,
		Timezone:     config.Calendar.Timezone,
		ShareEmail:   cmd.String("share"),
		ShareRole:    config.Calendar.ShareRole,
		DryRun:       cmd.Bool("dry-run"),
	}
	if syncOpts.ShareEmail == "" {
		syncOpts.ShareEmail = config.Calendar.ShareEmail
	}

	progress := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		for update := range progress {
			r.logger.Info(update.Message, "phase", update.Phase.String())
		}
		close(done)
	}()

	result, err := r.engine.Sync(ctx, progress, records, planOpts, syncOpts)
	close(progress)
	<-done
	if err != nil {
		return err
	}

	if syncOpts.DryRun {
		r.writePlainln("Dry run: no events were written")
	}
	r.writePlain("Calendar: %s\n", result.CalendarID)
	r.writePlain("Created:  %d\n", result.Created)
	r.writePlain("Skipped:  %d\n", result.Skipped)
	r.writePlain("Failed:   %d\n", result.Failed)
	if result.Shared {
		r.writePlain("Shared with %s\n", syncOpts.ShareEmail)
	}
	for _, failure := range result.Failures {
		r.writePlain("  ✗ %s: %v\n", failure.Name, failure.Err)
	}
	return nil
}

// SyncPlan computes the schedule from CSV and exports it without syncing.
func (r *Runner) SyncPlan(ctx context.Context, cmd *cli.Command) error {
	records, err := r.readRecords(cmd.String("csv"))
	if err != nil {
		return err
	}

	planOpts := r.planOptsFrom(cmd, r.config)

	plan, err := r.engine.Plan(ctx, nil, records, planOpts)
	if err != nil {
		return err
	}

	for _, failure := range plan.Failures {
		r.writePlain("✗ %s: %v\n", failure.Name, failure.Err)
	}

	format := cmd.String("format")
	outputFile := cmd.String("output")

	var render func(*models.Schedule) ([]byte, error)
	var ext string
	switch format {
	case "csv":
		render, ext = formatter.ExportToCSV, "csv"
	case "ics":
		render, ext = formatter.ExportToICS, "ics"
	case "markdown", "md":
		render, ext = formatter.ExportToMarkdown, "md"
	case "json":
		render, ext = formatter.ToScheduleJSON, "json"
	case "text", "txt", "":
		render, ext = formatter.ExportToText, "txt"
	default:
		return fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
	}

	if outputFile != "" {
		path, err := formatter.WriteScheduleExport(plan.Schedule, outputFile, ext, render)
		if err != nil {
			return err
		}
		r.writePlain("✓ Schedule written to %s (%d occurrences)\n", path, len(plan.Schedule.Occurrences))
		return nil
	}

	data, err := render(plan.Schedule)
	if err != nil {
		return err
	}
	return r.writePlain("%s", data)
}

// CalendarList lists calendars visible to the authenticated user.
func (r *Runner) CalendarList(ctx context.Context, cmd *cli.Command) error {
	config := r.loadOrCreateConfig(cmd.String("config"))

	if err := r.connect(ctx, config); err != nil {
		return err
	}

	calendars, err := r.calendar.Calendars(ctx)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(calendars, true)
	}

	r.writePlain("Found %d calendars:\n\n", len(calendars))
	for i, c := range calendars {
		r.writePlain("%d. %s\n", i+1, c.Summary)
		r.writePlain("   ID: %s\n", c.ID)
		if c.Timezone != "" {
			r.writePlain("   Timezone: %s\n", c.Timezone)
		}
		if c.Primary {
			r.writePlain("   Primary\n")
		}
		r.writePlain("\n")
	}
	return nil
}

// CalendarShare shares the configured calendar with an email address.
func (r *Runner) CalendarShare(ctx context.Context, cmd *cli.Command) error {
	email := cmd.StringArg("email")
	if email == "" {
		return fmt.Errorf("%w: email argument is required", shared.ErrMissingArgument)
	}

	config := r.loadOrCreateConfig(cmd.String("config"))
	if err := r.connect(ctx, config); err != nil {
		return err
	}

	cal, err := r.calendar.EnsureCalendar(ctx, config.Calendar.Name, config.Calendar.Timezone)
	if err != nil {
		return err
	}

	if err := r.calendar.Share(ctx, cal.ID, email, cmd.String("role")); err != nil {
		return err
	}

	r.writePlain("✓ Shared %q with %s\n", cal.Summary, email)
	return nil
}
