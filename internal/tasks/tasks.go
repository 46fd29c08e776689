// package tasks implements the birthday sync pipeline.
//
// The core abstraction is SyncEngine, which projects recurring Hebrew
// birthdays onto Gregorian years and pushes them to a remote calendar.
// Operations emit progress updates via channels for non-blocking status
// reporting to CLI/UI layers.
package tasks

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"golang.org/x/time/rate"

	"github.com/desertthunder/luach/internal/formatter"
	"github.com/desertthunder/luach/internal/hebrew"
	"github.com/desertthunder/luach/internal/models"
	"github.com/desertthunder/luach/internal/services"
	"github.com/desertthunder/luach/internal/shared"
)

// RecordFailure names a birthday record that could not be projected.
type RecordFailure struct {
	Name string
	Err  error
}

// PlanResult contains the computed schedule before any calendar writes.
type PlanResult struct {
	Schedule *models.Schedule
	Skipped  int             // Gregorian years with no matching day, summed over all records
	Failures []RecordFailure // Records whose data was malformed
}

// SyncResult contains what a sync run did to the remote calendar.
type SyncResult struct {
	CalendarID string
	Created    int
	Skipped    int // Events already present in the ledger
	Failed     int
	Failures   []RecordFailure
	Shared     bool
}

// PlanOpts configures schedule computation.
type PlanOpts struct {
	Title      string
	StartYear  int
	Years      int
	NumWorkers int // Concurrent workers (default: 4)
}

// SyncOpts configures a calendar sync run.
type SyncOpts struct {
	CalendarName string
	Timezone     string
	ShareEmail   string
	ShareRole    string
	RateLimit    float64 // Requests per second (default: 5)
	DryRun       bool
}

// SyncEngine defines operations for pushing birthday schedules to a calendar.
type SyncEngine interface {
	// Plan projects the records onto Gregorian years without touching
	// the remote calendar.
	Plan(ctx context.Context, progress chan<- ProgressUpdate, records []models.BirthdayRecord, opts PlanOpts) (*PlanResult, error)

	// Sync computes the schedule and inserts the events that are not
	// already in the ledger.
	Sync(ctx context.Context, progress chan<- ProgressUpdate, records []models.BirthdayRecord, planOpts PlanOpts, opts SyncOpts) (*SyncResult, error)
}

// EventLedger records which events were already inserted.
// Implemented by repositories.EventRepository.
type EventLedger interface {
	Record(ev *models.SyncedEvent) (bool, error)
	Exists(calendarID, person string, date models.GregorianDate) (bool, error)
}

// BirthdayEngine implements SyncEngine.
type BirthdayEngine struct {
	converter hebrew.Converter
	calendar  services.CalendarService
	ledger    EventLedger
}

// NewBirthdayEngine creates a new BirthdayEngine. calendar and ledger
// may be nil when only Plan is used.
func NewBirthdayEngine(converter hebrew.Converter, calendar services.CalendarService, ledger EventLedger) *BirthdayEngine {
	return &BirthdayEngine{
		converter: converter,
		calendar:  calendar,
		ledger:    ledger,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *BirthdayEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

type planJob struct {
	index  int
	record models.BirthdayRecord
}

type planOutcome struct {
	occurrences []models.Occurrence
	skipped     int
	failure     *RecordFailure
}

// Plan projects each record's recurring day onto the requested span of
// Gregorian years. Records are independent, so the fan-out is a worker
// pool; a malformed record fails alone without aborting the plan.
func (e *BirthdayEngine) Plan(ctx context.Context, progress chan<- ProgressUpdate, records []models.BirthdayRecord, opts PlanOpts) (*PlanResult, error) {
	if e.converter == nil {
		return nil, fmt.Errorf("%w: converter not initialized", shared.ErrServiceUnavailable)
	}
	if opts.Years <= 0 {
		return nil, fmt.Errorf("%w: year count %d", shared.ErrMalformedInput, opts.Years)
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 4
	}
	if opts.NumWorkers > 8 {
		opts.NumWorkers = 8
	}
	if opts.Title == "" {
		opts.Title = "Hebrew Birthdays"
	}

	e.sendProgress(progress, computeScheduleUpdate(0, len(records), nil))

	jobs := make(chan planJob, len(records))
	outcomes := make(chan planOutcome, len(records))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.planWorker(ctx, &wg, jobs, outcomes, opts)
	}

	for i, record := range records {
		jobs <- planJob{index: i, record: record}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	result := &PlanResult{
		Schedule: &models.Schedule{
			Title:     opts.Title,
			StartYear: opts.StartYear,
			Years:     opts.Years,
		},
	}

	completed := 0
	for outcome := range outcomes {
		completed++
		result.Schedule.Occurrences = append(result.Schedule.Occurrences, outcome.occurrences...)
		result.Skipped += outcome.skipped
		if outcome.failure != nil {
			result.Failures = append(result.Failures, *outcome.failure)
		}
		e.sendProgress(progress, computeScheduleUpdate(completed, len(records), nil))
	}

	sort.Slice(result.Schedule.Occurrences, func(i, j int) bool {
		a, b := result.Schedule.Occurrences[i], result.Schedule.Occurrences[j]
		if a.Date != b.Date {
			return a.Date.Before(b.Date)
		}
		return a.Name < b.Name
	})

	return result, nil
}

// planWorker computes occurrences for records from the jobs channel.
func (e *BirthdayEngine) planWorker(ctx context.Context, wg *sync.WaitGroup, jobs <-chan planJob, outcomes chan<- planOutcome, opts PlanOpts) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		outcomes <- e.planRecord(job.record, opts)
	}
}

func (e *BirthdayEngine) planRecord(record models.BirthdayRecord, opts PlanOpts) planOutcome {
	if err := record.Validate(); err != nil {
		return planOutcome{failure: &RecordFailure{Name: record.Name, Err: err}}
	}

	dates, err := hebrew.FindOccurrences(e.converter, record.HebrewMonth, record.HebrewDay, opts.StartYear, opts.Years)
	if err != nil {
		return planOutcome{failure: &RecordFailure{Name: record.Name, Err: err}}
	}

	outcome := planOutcome{skipped: opts.Years - len(dates)}
	for _, date := range dates {
		heb, err := e.converter.ToHebrew(date)
		if err != nil {
			return planOutcome{failure: &RecordFailure{Name: record.Name, Err: err}}
		}

		occ := models.Occurrence{
			Name:       record.Name,
			Date:       date,
			HebrewYear: heb.Year,
		}
		if record.OriginYear > 0 {
			occ.Age = heb.Year - record.OriginYear
		}
		outcome.occurrences = append(outcome.occurrences, occ)
	}
	return outcome
}

// Sync computes the schedule, finds or creates the target calendar, and
// inserts each occurrence that the ledger has not seen. Insertions are
// rate limited to stay inside the provider's quota.
func (e *BirthdayEngine) Sync(ctx context.Context, progress chan<- ProgressUpdate, records []models.BirthdayRecord, planOpts PlanOpts, opts SyncOpts) (*SyncResult, error) {
	if e.calendar == nil {
		return nil, fmt.Errorf("%w: calendar service not initialized", shared.ErrServiceUnavailable)
	}
	if e.ledger == nil {
		return nil, fmt.Errorf("%w: event ledger not initialized", shared.ErrServiceUnavailable)
	}
	if opts.CalendarName == "" {
		opts.CalendarName = "Hebrew Birthdays"
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	plan, err := e.Plan(ctx, progress, records, planOpts)
	if err != nil {
		return nil, err
	}

	result := &SyncResult{Failures: plan.Failures}

	e.sendProgress(progress, ensureCalendarUpdate(opts.CalendarName))
	cal, err := e.calendar.EnsureCalendar(ctx, opts.CalendarName, opts.Timezone)
	if err != nil {
		return nil, err
	}
	result.CalendarID = cal.ID
	e.sendProgress(progress, calendarReadyUpdate(cal))

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	total := len(plan.Schedule.Occurrences)

	for i, occ := range plan.Schedule.Occurrences {
		exists, err := e.ledger.Exists(cal.ID, occ.Name, occ.Date)
		if err != nil {
			return result, err
		}
		if exists {
			result.Skipped++
			e.sendProgress(progress, insertSkippedUpdate(i+1, total, occ))
			continue
		}

		if opts.DryRun {
			result.Created++
			e.sendProgress(progress, insertEventUpdate(i+1, total, occ))
			continue
		}

		if err := limiter.Wait(ctx); err != nil {
			return result, err
		}

		record := recordFor(records, occ.Name)
		eventID, err := e.calendar.InsertEvent(ctx, cal.ID, services.Event{
			Summary:     formatter.EventSummary(occ),
			Description: formatter.EventDescription(occ, record.HebrewMonth, record.HebrewDay),
			Date:        occ.Date.ISO(),
		})
		if err != nil {
			result.Failed++
			result.Failures = append(result.Failures, RecordFailure{Name: occ.Name, Err: err})
			e.sendProgress(progress, insertFailedUpdate(i+1, total, occ, err))
			continue
		}

		ev := models.NewSyncedEvent(shared.GenerateID(), occ.Name, cal.ID, eventID, occ.Date, record.HebrewMonth, record.HebrewDay)
		if _, err := e.ledger.Record(ev); err != nil {
			return result, err
		}

		result.Created++
		e.sendProgress(progress, insertEventUpdate(i+1, total, occ))
	}

	if opts.ShareEmail != "" && !opts.DryRun {
		e.sendProgress(progress, shareCalendarUpdate(opts.ShareEmail))
		if err := e.calendar.Share(ctx, cal.ID, opts.ShareEmail, opts.ShareRole); err != nil {
			result.Failures = append(result.Failures, RecordFailure{Name: opts.ShareEmail, Err: err})
		} else {
			result.Shared = true
		}
	}

	return result, nil
}

func recordFor(records []models.BirthdayRecord, name string) models.BirthdayRecord {
	for _, r := range records {
		if r.Name == name {
			return r
		}
	}
	return models.BirthdayRecord{}
}
