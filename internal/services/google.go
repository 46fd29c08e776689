// Google Calendar implementation of [CalendarService]
//
// API reference: https://developers.google.com/calendar/api/v3/reference
package services

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/desertthunder/luach/internal/shared"
)

// GoogleCalendarService implements the CalendarService interface for
// the Google Calendar API. Uses [oauth2] for authentication.
type GoogleCalendarService struct {
	config *oauth2.Config
	token  *oauth2.Token
	svc    *calendar.Service
}

// NewGoogleCalendarService creates a new Google Calendar service with
// the given OAuth2 credentials.
func NewGoogleCalendarService(clientID, clientSecret, redirectURI string) (*GoogleCalendarService, error) {
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("%w: client_id and client_secret are required", shared.ErrMissingCredentials)
	}
	if redirectURI == "" {
		redirectURI = "http://localhost:8080/callback"
	}

	config := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  redirectURI,
		Scopes:       []string{calendar.CalendarScope},
		Endpoint:     google.Endpoint,
	}

	return &GoogleCalendarService{config: config}, nil
}

func (g *GoogleCalendarService) Name() string {
	return "Google Calendar"
}

// GetAuthURL returns the OAuth2 authorization URL for user login.
func (g *GoogleCalendarService) GetAuthURL(state string) string {
	return g.config.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// GetOAuthConfig exposes the OAuth2 configuration for the callback server.
func (g *GoogleCalendarService) GetOAuthConfig() *oauth2.Config {
	return g.config
}

// Token returns the current token, nil before Authenticate succeeds.
func (g *GoogleCalendarService) Token() *oauth2.Token {
	return g.token
}

// Authenticate installs a stored token or exchanges an auth code, then
// builds the API client. Credentials keys: "auth_code", or
// "access_token" with optional "refresh_token".
func (g *GoogleCalendarService) Authenticate(ctx context.Context, credentials map[string]string) error {
	if authCode, ok := credentials["auth_code"]; ok && authCode != "" {
		token, err := g.config.Exchange(ctx, authCode)
		if err != nil {
			return fmt.Errorf("%w: exchanging auth code: %v", shared.ErrAuthFailed, err)
		}
		return g.UseToken(ctx, token)
	}

	if accessToken, ok := credentials["access_token"]; ok && accessToken != "" {
		token := &oauth2.Token{
			AccessToken:  accessToken,
			RefreshToken: credentials["refresh_token"],
		}
		if expiry, err := time.Parse(time.RFC3339, credentials["token_expiry"]); err == nil {
			token.Expiry = expiry
		}
		return g.UseToken(ctx, token)
	}

	return fmt.Errorf("%w: access_token or auth_code required", shared.ErrMissingCredentials)
}

// UseToken installs an existing token and builds the API client.
// The client refreshes the token transparently when it has a refresh
// token.
func (g *GoogleCalendarService) UseToken(ctx context.Context, token *oauth2.Token) error {
	svc, err := calendar.NewService(ctx, option.WithHTTPClient(g.config.Client(ctx, token)))
	if err != nil {
		return fmt.Errorf("%w: building calendar client: %v", shared.ErrServiceUnavailable, err)
	}

	g.token = token
	g.svc = svc
	return nil
}

// Calendars retrieves all calendars on the user's calendar list,
// following pagination.
func (g *GoogleCalendarService) Calendars(ctx context.Context) ([]Calendar, error) {
	if g.svc == nil {
		return nil, shared.ErrNotAuthenticated
	}

	var calendars []Calendar
	pageToken := ""
	for {
		call := g.svc.CalendarList.List().Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		list, err := call.Do()
		if err != nil {
			return nil, fmt.Errorf("%w: listing calendars: %v", shared.ErrAPIRequest, err)
		}

		for _, item := range list.Items {
			calendars = append(calendars, Calendar{
				ID:       item.Id,
				Summary:  item.Summary,
				Timezone: item.TimeZone,
				Primary:  item.Primary,
			})
		}

		pageToken = list.NextPageToken
		if pageToken == "" {
			break
		}
	}

	return calendars, nil
}

// EnsureCalendar finds the calendar with the given summary, creating it
// when absent.
func (g *GoogleCalendarService) EnsureCalendar(ctx context.Context, summary, timezone string) (*Calendar, error) {
	if g.svc == nil {
		return nil, shared.ErrNotAuthenticated
	}

	calendars, err := g.Calendars(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range calendars {
		if c.Summary == summary {
			return &c, nil
		}
	}

	created, err := g.svc.Calendars.Insert(&calendar.Calendar{
		Summary:  summary,
		TimeZone: timezone,
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: creating calendar %q: %v", shared.ErrAPIRequest, summary, err)
	}

	return &Calendar{
		ID:       created.Id,
		Summary:  created.Summary,
		Timezone: created.TimeZone,
	}, nil
}

// InsertEvent inserts an all-day event. All-day events carry a date
// without a time component, and the exclusive end date is the next day.
func (g *GoogleCalendarService) InsertEvent(ctx context.Context, calendarID string, event Event) (string, error) {
	if g.svc == nil {
		return "", shared.ErrNotAuthenticated
	}

	start, err := time.Parse("2006-01-02", event.Date)
	if err != nil {
		return "", fmt.Errorf("%w: event date %q: %v", shared.ErrInvalidArgument, event.Date, err)
	}
	end := start.AddDate(0, 0, 1)

	created, err := g.svc.Events.Insert(calendarID, &calendar.Event{
		Summary:     event.Summary,
		Description: event.Description,
		Start:       &calendar.EventDateTime{Date: start.Format("2006-01-02")},
		End:         &calendar.EventDateTime{Date: end.Format("2006-01-02")},
	}).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("%w: inserting event %q: %v", shared.ErrAPIRequest, event.Summary, err)
	}

	return created.Id, nil
}

// Share grants email access to the calendar.
func (g *GoogleCalendarService) Share(ctx context.Context, calendarID, email, role string) error {
	if g.svc == nil {
		return shared.ErrNotAuthenticated
	}
	if role == "" {
		role = "writer"
	}

	rule := &calendar.AclRule{
		Role:  role,
		Scope: &calendar.AclRuleScope{Type: "user", Value: email},
	}

	if _, err := g.svc.Acl.Insert(calendarID, rule).Context(ctx).Do(); err != nil {
		return fmt.Errorf("%w: sharing calendar with %s: %v", shared.ErrAPIRequest, email, err)
	}
	return nil
}
