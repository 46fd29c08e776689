package main

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"

	"github.com/desertthunder/luach/internal/server"
	"github.com/desertthunder/luach/internal/services"
	"github.com/desertthunder/luach/internal/shared"
)

// googleService builds the calendar service from config credentials.
func (r *Runner) googleService(config *shared.Config) (*services.GoogleCalendarService, error) {
	creds := config.Credentials.Google
	if creds.ClientID == "" || creds.ClientSecret == "" {
		return nil, fmt.Errorf("%w: google client_id and client_secret must be set in config.toml", shared.ErrMissingCredentials)
	}
	return services.NewGoogleCalendarService(creds.ClientID, creds.ClientSecret, creds.RedirectURI)
}

// AuthLogin performs the OAuth2 authentication flow for Google Calendar.
//
// Starts a local HTTP server, opens browser for user authorization, and exchanges auth code for tokens.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")
	config := r.loadOrCreateConfig(configPath)

	svc, err := r.googleService(config)
	if err != nil {
		return err
	}

	token, err := r.doOAuth(config, svc)
	if err != nil {
		return err
	}

	if err := config.Credentials.Google.Update(token); err != nil {
		return fmt.Errorf("failed to update google credentials: %w", err)
	}

	if err := shared.SaveConfig(configPath, config); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	r.writePlainln("✓ Authorization successful")
	r.writePlain("✓ Tokens saved to %s\n\n", configPath)
	r.writePlain("You can now use: luach sync run --csv birthdays.csv\n")

	return nil
}

// AuthStatus checks whether saved credentials can reach the Calendar API.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	config := r.loadOrCreateConfig(cmd.String("config"))

	token := config.Credentials.Google.Token()
	if token == nil {
		r.writePlain("✗ Not authenticated. Run 'luach auth login'\n")
		return nil
	}

	svc, err := r.googleService(config)
	if err != nil {
		return err
	}
	if err := svc.UseToken(ctx, token); err != nil {
		return err
	}

	calendars, err := svc.Calendars(ctx)
	if err != nil {
		r.writePlain("✗ Saved token rejected: %v\n", err)
		return fmt.Errorf("%w: %v", shared.ErrNotAuthenticated, err)
	}

	r.writePlain("✓ Authenticated\n")
	r.writePlain("Calendars visible: %d\n", len(calendars))
	return nil
}

// doOAuth executes the OAuth2 authorization flow with a local HTTP server
func (r *Runner) doOAuth(config *shared.Config, oauthSrv services.OAuthService) (*oauth2.Token, error) {
	state, err := shared.GenerateState()
	if err != nil {
		return nil, fmt.Errorf("failed to generate state token: %w", err)
	}

	authURL := oauthSrv.GetAuthURL(state)
	oauthHandler := server.NewOAuthHandler(oauthSrv.GetOAuthConfig(), state)

	serverAddr := fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)
	httpServer := server.NewCallbackServer(serverAddr, oauthHandler)

	serverErrors := make(chan error, 1)
	go func() {
		r.logger.Infof("starting OAuth callback server at %v", serverAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	time.Sleep(100 * time.Millisecond)

	r.writePlain("→ Opening browser for Google authorization...\n")
	if err := shared.OpenBrowser(authURL); err != nil {
		r.logger.Warnf("failed to open browser automatically %v", err)
		r.writePlainln("⚠ Could not open browser automatically.")
		r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
	}

	r.writePlain("→ Waiting for authorization (2 minute timeout)...\n")

	timeout := time.NewTimer(2 * time.Minute)
	defer timeout.Stop()

	var result server.OAuthResult

	select {
	case result = <-oauthHandler.Result():
		// Got result from callback
	case err := <-serverErrors:
		return nil, fmt.Errorf("server error: %w", err)
	case <-timeout.C:
		return nil, fmt.Errorf("%w: authorization timed out after 2 minutes", shared.ErrTimeout)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		r.logger.Warn("error shutting down server", "error", err)
	}

	if result.Error() != nil {
		return nil, fmt.Errorf("authorization failed: %w", result.Error())
	}

	if result.Token == nil {
		return nil, fmt.Errorf("no token received")
	}

	return result.Token, nil
}
