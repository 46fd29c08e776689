package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/luach/internal/shared"
	tu "github.com/desertthunder/luach/internal/testing"
)

func newTestRunner(t *testing.T) (*Runner, *bytes.Buffer) {
	t.Helper()

	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Config:   shared.DefaultConfig(),
		Calendar: tu.NewMockCalendarService("Hebrew Birthdays"),
		Ledger:   tu.NewMemoryLedger(),
		Output:   output,
	})
	return runner, output
}

// runCommand executes the full CLI with the given args against the runner.
func runCommand(t *testing.T, r *Runner, args ...string) error {
	t.Helper()

	app := &cli.Command{
		Name:     "luach",
		Commands: r.register(),
	}
	return app.Run(context.Background(), append([]string{"luach"}, args...))
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			calendar := tu.NewMockCalendarService("cal")
			ledger := tu.NewMemoryLedger()

			runner := NewRunner(RunnerOpts{
				Config:   config,
				Logger:   logger,
				Output:   output,
				Calendar: calendar,
				Ledger:   ledger,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.engine == nil {
				t.Error("expected engine to be built")
			}
		})

		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
			if runner.converter == nil {
				t.Error("expected default converter to be set")
			}
		})
	})
}

func TestConvertToGregorian(t *testing.T) {
	runner, output := newTestRunner(t)

	if err := runCommand(t, runner, "convert", "to-greg", "5785", "7", "1"); err != nil {
		t.Fatalf("convert to-greg error = %v", err)
	}
	if !strings.Contains(output.String(), "2024-10-03") {
		t.Errorf("output = %q", output.String())
	}
}

func TestConvertToGregorianInvalid(t *testing.T) {
	runner, _ := newTestRunner(t)

	// Adar II does not exist in 5785.
	err := runCommand(t, runner, "convert", "to-greg", "5785", "13", "1")
	if err == nil {
		t.Fatal("expected error for nonexistent date")
	}
}

func TestConvertToHebrew(t *testing.T) {
	runner, output := newTestRunner(t)

	if err := runCommand(t, runner, "convert", "to-hebrew", "2024-10-03"); err != nil {
		t.Fatalf("convert to-hebrew error = %v", err)
	}
	if !strings.Contains(output.String(), "1 Tishrei 5785") {
		t.Errorf("output = %q", output.String())
	}
}

func TestConvertToHebrewBadDate(t *testing.T) {
	runner, _ := newTestRunner(t)

	if err := runCommand(t, runner, "convert", "to-hebrew", "03/10/2024"); err == nil {
		t.Fatal("expected error for malformed date")
	}
}

func TestConvertParse(t *testing.T) {
	runner, output := newTestRunner(t)

	if err := runCommand(t, runner, "convert", "parse", "א", "תשרי", "תשפ״ה"); err != nil {
		t.Fatalf("convert parse error = %v", err)
	}
	text := output.String()
	if !strings.Contains(text, "1 Tishrei 5785") || !strings.Contains(text, "2024-10-03") {
		t.Errorf("output = %q", text)
	}
}

func TestOccurrences(t *testing.T) {
	runner, output := newTestRunner(t)

	if err := runCommand(t, runner, "occurrences", "--start", "2024", "--years", "3", "7", "1"); err != nil {
		t.Fatalf("occurrences error = %v", err)
	}

	text := output.String()
	for _, want := range []string{"2024-10-03", "2025-09-23", "2026-09-12"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %s: %q", want, text)
		}
	}
}

func TestSyncRunDryRun(t *testing.T) {
	runner, output := newTestRunner(t)

	dir := t.TempDir()
	csvPath := filepath.Join(dir, "birthdays.csv")
	csv := "שם,יום,חודש,שנה\nרבקה,א,תשרי,תשמ״ה\n"
	if err := os.WriteFile(csvPath, []byte(csv), 0644); err != nil {
		t.Fatalf("writing CSV: %v", err)
	}

	err := runCommand(t, runner, "sync", "run",
		"--config", filepath.Join(dir, "config.toml"),
		"--csv", csvPath,
		"--start", "2024", "--years", "2",
		"--dry-run")
	if err != nil {
		t.Fatalf("sync run error = %v", err)
	}

	text := output.String()
	if !strings.Contains(text, "Created:  2") {
		t.Errorf("output = %q", text)
	}
}

func TestSyncPlanWritesCSV(t *testing.T) {
	runner, output := newTestRunner(t)

	dir := t.TempDir()
	csvPath := filepath.Join(dir, "birthdays.csv")
	csv := "שם,יום,חודש,שנה\nרבקה,א,תשרי,\n"
	if err := os.WriteFile(csvPath, []byte(csv), 0644); err != nil {
		t.Fatalf("writing CSV: %v", err)
	}

	outPath := filepath.Join(dir, "schedule.csv")
	err := runCommand(t, runner, "sync", "plan",
		"--csv", csvPath,
		"--start", "2024", "--years", "1",
		"--format", "csv",
		"--output", outPath)
	if err != nil {
		t.Fatalf("sync plan error = %v", err)
	}

	tu.AssertFileExists(t, outPath)
	content := tu.MustReadFile(t, outPath)
	if !strings.Contains(content, "2024-10-03") {
		t.Errorf("schedule file = %q", content)
	}
	if !strings.Contains(output.String(), "Schedule written") {
		t.Errorf("output = %q", output.String())
	}
}

func TestCalendarList(t *testing.T) {
	runner, output := newTestRunner(t)
	dir := t.TempDir()

	err := runCommand(t, runner, "calendar", "list", "--config", filepath.Join(dir, "config.toml"))
	if err != nil {
		t.Fatalf("calendar list error = %v", err)
	}
	if !strings.Contains(output.String(), "Hebrew Birthdays") {
		t.Errorf("output = %q", output.String())
	}
}
