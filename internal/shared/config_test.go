package shared

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "luach.db" {
			t.Errorf("expected database path luach.db, got %s", config.Database.Path)
		}

		if config.Server.Port != 8080 {
			t.Errorf("expected server port 8080, got %d", config.Server.Port)
		}

		if config.Calendar.Name != "Hebrew Birthdays" {
			t.Errorf("expected calendar name Hebrew Birthdays, got %s", config.Calendar.Name)
		}

		if config.Calendar.YearsAhead != 5 {
			t.Errorf("expected years_ahead 5, got %d", config.Calendar.YearsAhead)
		}

		if config.Credentials.Google.RedirectURI != "http://localhost:8080/callback" {
			t.Errorf("expected default redirect URI, got %s", config.Credentials.Google.RedirectURI)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Database.Path != defaultConfig.Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[database]
path = "/custom/path.db"
max_open_conns = 20
max_idle_conns = 10

[server]
host = "0.0.0.0"
port = 9090

[calendar]
name = "Family Birthdays"
timezone = "America/New_York"
start_year = 2020
years_ahead = 10

[credentials.google]
client_id = "test_client_id"
client_secret = "test_secret"
redirect_uri = "http://localhost:9090/callback"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}

		if config.Calendar.Name != "Family Birthdays" {
			t.Errorf("expected calendar name Family Birthdays, got %s", config.Calendar.Name)
		}

		if config.Credentials.Google.ClientID != "test_client_id" {
			t.Errorf("expected google client_id test_client_id, got %s", config.Credentials.Google.ClientID)
		}
	})

	t.Run("SaveConfig round trip", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		config := DefaultConfig()
		config.Credentials.Google.ClientID = "saved_id"
		config.Calendar.ShareEmail = "family@example.com"

		if err := SaveConfig(configPath, config); err != nil {
			t.Fatalf("failed to save config: %v", err)
		}

		loaded, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load saved config: %v", err)
		}

		if loaded.Credentials.Google.ClientID != "saved_id" {
			t.Errorf("expected client_id saved_id, got %s", loaded.Credentials.Google.ClientID)
		}
		if loaded.Calendar.ShareEmail != "family@example.com" {
			t.Errorf("expected share_email family@example.com, got %s", loaded.Calendar.ShareEmail)
		}
	})
}

func TestGoogleConfigToken(t *testing.T) {
	t.Run("no saved token", func(t *testing.T) {
		g := GoogleConfig{}
		if g.Token() != nil {
			t.Error("expected nil token for empty credentials")
		}
	})

	t.Run("rebuilds saved token", func(t *testing.T) {
		expiry := time.Now().Add(time.Hour).Truncate(time.Second)
		g := GoogleConfig{
			AccessToken:  "access",
			RefreshToken: "refresh",
			TokenExpiry:  expiry.Format(time.RFC3339),
		}

		tok := g.Token()
		if tok == nil {
			t.Fatal("expected token")
		}
		if tok.AccessToken != "access" || tok.RefreshToken != "refresh" {
			t.Errorf("token = %+v", tok)
		}
		if !tok.Expiry.Equal(expiry) {
			t.Errorf("expected expiry %v, got %v", expiry, tok.Expiry)
		}
	})

	t.Run("Update stores token fields", func(t *testing.T) {
		g := GoogleConfig{RefreshToken: "old_refresh"}
		expiry := time.Now().Add(time.Hour)

		err := g.Update(&oauth2.Token{AccessToken: "new_access", Expiry: expiry})
		if err != nil {
			t.Fatalf("update error = %v", err)
		}

		if g.AccessToken != "new_access" {
			t.Errorf("expected access token new_access, got %s", g.AccessToken)
		}
		if g.RefreshToken != "old_refresh" {
			t.Error("refresh token should survive when the new token has none")
		}
		if g.TokenExpiry == "" {
			t.Error("expected token expiry to be recorded")
		}
	})

	t.Run("Update rejects empty token", func(t *testing.T) {
		g := GoogleConfig{}
		if err := g.Update(nil); err == nil {
			t.Error("expected error for nil token")
		}
		if err := g.Update(&oauth2.Token{}); err == nil {
			t.Error("expected error for token without access token")
		}
	})
}
