// package services defines the interfaces for remote calendar providers.
//
// Google Calendar is the only implementation so far.
package services

import (
	"context"

	"golang.org/x/oauth2"
)

// CalendarService defines the interface for calendar providers that can
// hold the generated birthday events.
type CalendarService interface {
	// Authenticate installs a stored token, or exchanges an auth code
	// for one (supplied as "auth_code" in credentials).
	Authenticate(ctx context.Context, credentials map[string]string) error

	// Calendars retrieves all calendars visible to the authenticated user.
	Calendars(ctx context.Context) ([]Calendar, error)

	// EnsureCalendar finds the calendar with the given summary, creating
	// it when absent.
	EnsureCalendar(ctx context.Context, summary, timezone string) (*Calendar, error)

	// InsertEvent inserts an all-day event into the calendar.
	// Returns the provider's event ID.
	InsertEvent(ctx context.Context, calendarID string, event Event) (string, error)

	// Share grants email access to the calendar with the given role
	// ("reader" or "writer").
	Share(ctx context.Context, calendarID, email, role string) error

	// Name returns the name of the provider (e.g., "Google Calendar")
	Name() string
}

// OAuthService is implemented by providers that authenticate with a
// browser-based OAuth flow.
type OAuthService interface {
	GetAuthURL(state string) string
	GetOAuthConfig() *oauth2.Config
	Token() *oauth2.Token
}

// Calendar represents a calendar from any provider
type Calendar struct {
	ID       string
	Summary  string
	Timezone string
	Primary  bool
}

// Event represents an all-day event to be inserted
type Event struct {
	Summary     string
	Description string
	Date        string // YYYY-MM-DD
}
