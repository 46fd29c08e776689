package tasks

import (
	"fmt"

	"github.com/desertthunder/luach/internal/models"
	"github.com/desertthunder/luach/internal/services"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	ComputeSchedule Phase = iota
	EnsureCalendar
	InsertEvents
	ShareCalendar
)

func (p Phase) String() string {
	switch p {
	case ComputeSchedule:
		return "compute_schedule"
	case EnsureCalendar:
		return "ensure_calendar"
	case InsertEvents:
		return "insert_events"
	case ShareCalendar:
		return "share_calendar"
	default:
		return ""
	}
}

func computeScheduleUpdate(step, total int, record *models.BirthdayRecord) ProgressUpdate {
	if record == nil {
		return ProgressUpdate{
			Phase:   ComputeSchedule,
			Step:    step,
			Total:   total,
			Message: "Computing birthday occurrences...",
		}
	}
	return ProgressUpdate{
		Phase:   ComputeSchedule,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s", step, total, record.Name),
	}
}

func ensureCalendarUpdate(name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   EnsureCalendar,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Looking up calendar %q...", name),
	}
}

func calendarReadyUpdate(cal *services.Calendar) ProgressUpdate {
	return ProgressUpdate{
		Phase:   EnsureCalendar,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Using calendar: %s (ID: %s)", cal.Summary, cal.ID),
		Data:    cal,
	}
}

func insertEventUpdate(step, total int, occ models.Occurrence) ProgressUpdate {
	return ProgressUpdate{
		Phase:   InsertEvents,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s %s", step, total, occ.Date.ISO(), occ.Name),
	}
}

func insertSkippedUpdate(step, total int, occ models.Occurrence) ProgressUpdate {
	return ProgressUpdate{
		Phase:   InsertEvents,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] skipped %s %s (already synced)", step, total, occ.Date.ISO(), occ.Name),
	}
}

func insertFailedUpdate(step, total int, occ models.Occurrence, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   InsertEvents,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s %s: %v", step, total, occ.Date.ISO(), occ.Name, err),
	}
}

func shareCalendarUpdate(email string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ShareCalendar,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Sharing calendar with %s...", email),
	}
}
