package models

import (
	"fmt"
	"time"

	"github.com/desertthunder/luach/internal/shared"
)

// BirthdayRecord is a recurring Hebrew-date anniversary. Only the
// Hebrew month and day recur; the year from the source row is consumed
// once to establish OriginYear for age computation.
type BirthdayRecord struct {
	Name        string `json:"name"`
	HebrewMonth int    `json:"hebrew_month"`
	HebrewDay   int    `json:"hebrew_day"`
	OriginYear  int    `json:"origin_year,omitempty"` // Hebrew year of the original birthday, 0 when unknown
}

// Validate checks the recurring (month, day) pair.
func (r BirthdayRecord) Validate() error {
	if r.Name == "" {
		return fmt.Errorf("%w: birthday record has no name", shared.ErrMalformedInput)
	}
	if r.HebrewMonth < 1 || r.HebrewMonth > 13 {
		return fmt.Errorf("%w: hebrew month %d outside 1-13", shared.ErrMalformedInput, r.HebrewMonth)
	}
	if r.HebrewDay < 1 || r.HebrewDay > 30 {
		return fmt.Errorf("%w: hebrew day %d outside 1-30", shared.ErrMalformedInput, r.HebrewDay)
	}
	return nil
}

// Occurrence is a single calendar-year instance of a recurring
// anniversary, resolved to a Gregorian date.
type Occurrence struct {
	Name       string        `json:"name"`
	Date       GregorianDate `json:"date"`
	HebrewYear int           `json:"hebrew_year"`
	Age        int           `json:"age,omitempty"` // 0 when the record carries no origin year
}

// Schedule is an ordered projection of occurrences over a span of
// Gregorian years, ready for export or calendar sync.
type Schedule struct {
	Title       string       `json:"title"`
	StartYear   int          `json:"start_year"`
	Years       int          `json:"years"`
	Occurrences []Occurrence `json:"occurrences"`
}

// SyncedEvent records a calendar event created by a sync run, keyed by
// (calendar, person, date) so reruns skip events that already exist.
type SyncedEvent struct {
	id          string
	Person      string
	CalendarID  string
	EventID     string
	EventDate   string // YYYY-MM-DD
	HebrewMonth int
	HebrewDay   int
	createdAt   time.Time
}

// NewSyncedEvent creates a SyncedEvent with the given identifier.
func NewSyncedEvent(id, person, calendarID, eventID string, date GregorianDate, hebrewMonth, hebrewDay int) *SyncedEvent {
	return &SyncedEvent{
		id:          id,
		Person:      person,
		CalendarID:  calendarID,
		EventID:     eventID,
		EventDate:   date.ISO(),
		HebrewMonth: hebrewMonth,
		HebrewDay:   hebrewDay,
		createdAt:   time.Now(),
	}
}

// RestoreSyncedEvent rebuilds a SyncedEvent from persisted columns.
func RestoreSyncedEvent(id, person, calendarID, eventID, eventDate string, hebrewMonth, hebrewDay int, createdAt time.Time) *SyncedEvent {
	return &SyncedEvent{
		id:          id,
		Person:      person,
		CalendarID:  calendarID,
		EventID:     eventID,
		EventDate:   eventDate,
		HebrewMonth: hebrewMonth,
		HebrewDay:   hebrewDay,
		createdAt:   createdAt,
	}
}

func (e *SyncedEvent) ID() string           { return e.id }
func (e *SyncedEvent) CreatedAt() time.Time { return e.createdAt }

func (e *SyncedEvent) Validate() error {
	if e.id == "" {
		return fmt.Errorf("%w: synced event has no id", shared.ErrMalformedInput)
	}
	if e.Person == "" || e.CalendarID == "" || e.EventDate == "" {
		return fmt.Errorf("%w: synced event missing person, calendar or date", shared.ErrMalformedInput)
	}
	return nil
}
