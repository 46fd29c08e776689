// package repositories provides the persistence layer for the synced
// event ledger.
//
// The ledger remembers which birthday events were already pushed to a
// calendar so repeated syncs never insert duplicates.
package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/desertthunder/luach/internal/models"
	"github.com/desertthunder/luach/internal/shared"
)

// EventRepository stores synced calendar events in SQLite.
//
// Duplicates are caught by the UNIQUE(calendar_id, person, event_date)
// constraint rather than a read-then-write race.
type EventRepository struct {
	db *sql.DB
}

var _ models.Model = (*models.SyncedEvent)(nil)

// NewEventRepository creates a new EventRepository with the given database
func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

// Record persists a synced event. Returns false when an event for the
// same person and date already exists in the calendar (deduplication).
// Only returns errors for actual failures, not constraint violations.
func (r *EventRepository) Record(ev *models.SyncedEvent) (bool, error) {
	if err := ev.Validate(); err != nil {
		return false, err
	}

	_, err := r.db.Exec(
		`INSERT INTO synced_events (id, person, calendar_id, event_id, event_date, hebrew_month, hebrew_day, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.ID(), ev.Person, ev.CalendarID, ev.EventID, ev.EventDate,
		ev.HebrewMonth, ev.HebrewDay, ev.CreatedAt().Format(time.RFC3339),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint") {
			return false, nil
		}
		return false, fmt.Errorf("failed to record synced event: %w", err)
	}

	return true, nil
}

// Exists reports whether an event for person on date is already in the
// ledger for the calendar.
func (r *EventRepository) Exists(calendarID, person string, date models.GregorianDate) (bool, error) {
	var count int
	err := r.db.QueryRow(
		`SELECT COUNT(1) FROM synced_events WHERE calendar_id = ? AND person = ? AND event_date = ?`,
		calendarID, person, date.ISO(),
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check synced event: %w", err)
	}
	return count > 0, nil
}

// List returns all synced events for a calendar ordered by date.
func (r *EventRepository) List(calendarID string) ([]*models.SyncedEvent, error) {
	rows, err := r.db.Query(
		`SELECT id, person, calendar_id, event_id, event_date, hebrew_month, hebrew_day, created_at
		 FROM synced_events WHERE calendar_id = ? ORDER BY event_date, person`,
		calendarID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list synced events: %w", err)
	}
	defer rows.Close()

	var events []*models.SyncedEvent
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}

// Get retrieves a synced event by ID.
func (r *EventRepository) Get(id string) (*models.SyncedEvent, error) {
	row := r.db.QueryRow(
		`SELECT id, person, calendar_id, event_id, event_date, hebrew_month, hebrew_day, created_at
		 FROM synced_events WHERE id = ?`,
		id,
	)

	ev, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: synced event %s", shared.ErrInvalidArgument, id)
	}
	return ev, err
}

// Delete removes a synced event from the ledger by ID.
func (r *EventRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM synced_events WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete synced event: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: synced event %s", shared.ErrInvalidArgument, id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(s scanner) (*models.SyncedEvent, error) {
	var (
		id, person, calendarID, eventID, eventDate, createdAt string
		month, day                                            int
	)
	if err := s.Scan(&id, &person, &calendarID, &eventID, &eventDate, &month, &day, &createdAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan synced event: %w", err)
	}

	created, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		created = time.Time{}
	}
	return models.RestoreSyncedEvent(id, person, calendarID, eventID, eventDate, month, day, created), nil
}
