package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/desertthunder/luach/internal/shared"
)

func TestNewGoogleCalendarService(t *testing.T) {
	svc, err := NewGoogleCalendarService("id", "secret", "")
	if err != nil {
		t.Fatalf("NewGoogleCalendarService() error = %v", err)
	}

	cfg := svc.GetOAuthConfig()
	if cfg.RedirectURL != "http://localhost:8080/callback" {
		t.Errorf("default redirect = %q", cfg.RedirectURL)
	}
	if len(cfg.Scopes) != 1 || !strings.Contains(cfg.Scopes[0], "calendar") {
		t.Errorf("scopes = %v, want calendar scope", cfg.Scopes)
	}
}

func TestNewGoogleCalendarServiceMissingCredentials(t *testing.T) {
	if _, err := NewGoogleCalendarService("", "secret", ""); !errors.Is(err, shared.ErrMissingCredentials) {
		t.Errorf("error = %v, want ErrMissingCredentials", err)
	}
	if _, err := NewGoogleCalendarService("id", "", ""); !errors.Is(err, shared.ErrMissingCredentials) {
		t.Errorf("error = %v, want ErrMissingCredentials", err)
	}
}

func TestGetAuthURL(t *testing.T) {
	svc, err := NewGoogleCalendarService("id", "secret", "http://localhost:9999/cb")
	if err != nil {
		t.Fatalf("NewGoogleCalendarService() error = %v", err)
	}

	u := svc.GetAuthURL("abc123")
	if !strings.Contains(u, "state=abc123") {
		t.Errorf("auth URL missing state: %s", u)
	}
	if !strings.Contains(u, "access_type=offline") {
		t.Errorf("auth URL missing offline access: %s", u)
	}
}

func TestAuthenticateMissingCredentials(t *testing.T) {
	svc, _ := NewGoogleCalendarService("id", "secret", "")

	err := svc.Authenticate(context.Background(), map[string]string{})
	if !errors.Is(err, shared.ErrMissingCredentials) {
		t.Errorf("Authenticate() error = %v, want ErrMissingCredentials", err)
	}
}

func TestUnauthenticatedCalls(t *testing.T) {
	svc, _ := NewGoogleCalendarService("id", "secret", "")
	ctx := context.Background()

	if _, err := svc.Calendars(ctx); !errors.Is(err, shared.ErrNotAuthenticated) {
		t.Errorf("Calendars() error = %v, want ErrNotAuthenticated", err)
	}
	if _, err := svc.EnsureCalendar(ctx, "x", "UTC"); !errors.Is(err, shared.ErrNotAuthenticated) {
		t.Errorf("EnsureCalendar() error = %v, want ErrNotAuthenticated", err)
	}
	if _, err := svc.InsertEvent(ctx, "cal", Event{}); !errors.Is(err, shared.ErrNotAuthenticated) {
		t.Errorf("InsertEvent() error = %v, want ErrNotAuthenticated", err)
	}
	if err := svc.Share(ctx, "cal", "a@b.c", "reader"); !errors.Is(err, shared.ErrNotAuthenticated) {
		t.Errorf("Share() error = %v, want ErrNotAuthenticated", err)
	}
}
