package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/luach/internal/shared"
	"github.com/desertthunder/luach/internal/tasks"
	"github.com/desertthunder/luach/internal/ui"
)

// TUI launches the interactive terminal UI for birthday sync.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	config := r.loadOrCreateConfig(cmd.String("config"))

	records, err := r.readRecords(cmd.String("csv"))
	if err != nil {
		return err
	}

	if err := r.connect(ctx, config); err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/luach-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	planOpts := r.planOptsFrom(cmd, config)
	syncOpts := tasks.SyncOpts{
		CalendarName: config.Calendar.Name,
		Timezone:     config.Calendar.Timezone,
		ShareEmail:   config.Calendar.ShareEmail,
		ShareRole:    config.Calendar.ShareRole,
	}

	model := ui.NewModel(ctx, r.engine, records, planOpts, syncOpts)
	p := tea.NewProgram(model)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
