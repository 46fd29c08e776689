// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/luach/internal/models"
	"github.com/desertthunder/luach/internal/services"
	"github.com/desertthunder/luach/internal/shared"
)

// MockCalendarService is a test double for [services.CalendarService].
// It records inserted events in memory and can be primed to fail.
type MockCalendarService struct {
	mu        sync.Mutex
	Calendar  services.Calendar
	Inserted  []services.Event
	SharedIDs map[string]string // calendarID -> email

	EnsureErr error
	InsertErr error
	ShareErr  error
}

// NewMockCalendarService builds a mock with one calendar named summary.
func NewMockCalendarService(summary string) *MockCalendarService {
	return &MockCalendarService{
		Calendar:  services.Calendar{ID: "mock-cal", Summary: summary, Timezone: "UTC"},
		SharedIDs: map[string]string{},
	}
}

func (m *MockCalendarService) Authenticate(ctx context.Context, credentials map[string]string) error {
	return nil
}

func (m *MockCalendarService) Calendars(ctx context.Context) ([]services.Calendar, error) {
	return []services.Calendar{m.Calendar}, nil
}

func (m *MockCalendarService) EnsureCalendar(ctx context.Context, summary, timezone string) (*services.Calendar, error) {
	if m.EnsureErr != nil {
		return nil, m.EnsureErr
	}
	cal := m.Calendar
	return &cal, nil
}

func (m *MockCalendarService) InsertEvent(ctx context.Context, calendarID string, event services.Event) (string, error) {
	if m.InsertErr != nil {
		return "", m.InsertErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Inserted = append(m.Inserted, event)
	return fmt.Sprintf("event-%d", len(m.Inserted)), nil
}

func (m *MockCalendarService) Share(ctx context.Context, calendarID, email, role string) error {
	if m.ShareErr != nil {
		return m.ShareErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SharedIDs[calendarID] = email
	return nil
}

func (m *MockCalendarService) Name() string { return "mock" }

// MemoryLedger is an in-memory test double for the synced event ledger.
type MemoryLedger struct {
	mu     sync.Mutex
	events map[string]*models.SyncedEvent

	RecordErr error
}

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{events: map[string]*models.SyncedEvent{}}
}

func ledgerKey(calendarID, person, date string) string {
	return calendarID + "|" + person + "|" + date
}

func (l *MemoryLedger) Record(ev *models.SyncedEvent) (bool, error) {
	if l.RecordErr != nil {
		return false, l.RecordErr
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	key := ledgerKey(ev.CalendarID, ev.Person, ev.EventDate)
	if _, ok := l.events[key]; ok {
		return false, nil
	}
	l.events[key] = ev
	return true, nil
}

func (l *MemoryLedger) Exists(calendarID, person string, date models.GregorianDate) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	_, ok := l.events[ledgerKey(calendarID, person, date.ISO())]
	return ok, nil
}

func (l *MemoryLedger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.events)
}

// FakeConverter is a map-backed test double for [hebrew.Converter].
// Lookups outside its table fail the way impossible dates do.
type FakeConverter struct {
	ToGreg map[models.HebrewDate]models.GregorianDate
	ToHeb  map[models.GregorianDate]models.HebrewDate
}

func (f *FakeConverter) ToGregorian(date models.HebrewDate) (models.GregorianDate, error) {
	if g, ok := f.ToGreg[date]; ok {
		return g, nil
	}
	return models.GregorianDate{}, fmt.Errorf("%w: %v", shared.ErrInvalidHebrewDate, date)
}

func (f *FakeConverter) ToHebrew(date models.GregorianDate) (models.HebrewDate, error) {
	if h, ok := f.ToHeb[date]; ok {
		return h, nil
	}
	return models.HebrewDate{}, errors.New("date not in fake table")
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
