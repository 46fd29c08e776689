// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

var configFlag = &cli.StringFlag{
	Name:    "config",
	Aliases: []string{"c"},
	Usage:   "Path to configuration file",
	Value:   "config.toml",
}

// setupCommand handles setup operations for database and configuration.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "database",
				Usage:  "Initialize database and run migrations",
				Flags:  []cli.Flag{configFlag},
				Action: r.SetupDatabase,
			},
			{
				Name:   "config",
				Usage:  "Create a config.toml from the template",
				Flags:  []cli.Flag{configFlag},
				Action: r.SetupConfig,
			},
		},
	}
}

// authCommand handles Google Calendar authentication
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Manage Google Calendar authentication",
		Commands: []*cli.Command{
			{
				Name:   "login",
				Usage:  "Authenticate with Google using OAuth2",
				Flags:  []cli.Flag{configFlag},
				Action: r.AuthLogin,
			},
			{
				Name:   "status",
				Usage:  "Check whether saved credentials are usable",
				Flags:  []cli.Flag{configFlag},
				Action: r.AuthStatus,
			},
		},
	}
}

// convertCommand handles one-off date conversions
func convertCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "convert",
		Aliases: []string{"conv"},
		Usage:   "Convert between Hebrew and Gregorian dates",
		Commands: []*cli.Command{
			{
				Name:  "to-greg",
				Usage: "Convert a Hebrew date (year month day) to Gregorian",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "year"},
					&cli.StringArg{Name: "month"},
					&cli.StringArg{Name: "day"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.ConvertToGregorian,
			},
			{
				Name:  "to-hebrew",
				Usage: "Convert a Gregorian date (YYYY-MM-DD) to Hebrew",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "date"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.ConvertToHebrew,
			},
			{
				Name:  "parse",
				Usage: "Parse a Hebrew date written in Hebrew letters (day month year)",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "day"},
					&cli.StringArg{Name: "month"},
					&cli.StringArg{Name: "year"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.ConvertParse,
			},
		},
	}
}

// occurrencesCommand projects a recurring Hebrew day onto Gregorian years
func occurrencesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "occurrences",
		Aliases: []string{"occ"},
		Usage:   "Find the Gregorian dates of a Hebrew day over a span of years",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "month"},
			&cli.StringArg{Name: "day"},
		},
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "start",
				Usage: "First Gregorian year (default: current year)",
			},
			&cli.IntFlag{
				Name:    "years",
				Aliases: []string{"n"},
				Usage:   "Number of Gregorian years to cover",
				Value:   5,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Occurrences,
	}
}

// syncCommand handles the CSV to calendar pipeline
func syncCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "sync",
		Usage: "Sync Hebrew birthdays to a calendar",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Read birthdays from CSV and push events to Google Calendar",
				Flags: []cli.Flag{
					configFlag,
					&cli.StringFlag{
						Name:     "csv",
						Usage:    "Path to the birthday CSV file",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "start",
						Usage: "First Gregorian year (default: current year)",
					},
					&cli.IntFlag{
						Name:    "years",
						Aliases: []string{"n"},
						Usage:   "Number of Gregorian years to cover (default from config)",
					},
					&cli.StringFlag{
						Name:  "share",
						Usage: "Email address to share the calendar with",
					},
					&cli.BoolFlag{
						Name:  "dry-run",
						Usage: "Compute and report without writing to the calendar",
					},
				},
				Action: r.SyncRun,
			},
			{
				Name:  "plan",
				Usage: "Compute the schedule from CSV and export it without syncing",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "csv",
						Usage:    "Path to the birthday CSV file",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "start",
						Usage: "First Gregorian year (default: current year)",
					},
					&cli.IntFlag{
						Name:    "years",
						Aliases: []string{"n"},
						Usage:   "Number of Gregorian years to cover",
						Value:   5,
					},
					&cli.StringFlag{
						Name:  "format",
						Usage: "Export format: text, json, csv, ics, markdown",
						Value: "text",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (default: stdout)",
					},
				},
				Action: r.SyncPlan,
			},
		},
	}
}

// calendarCommand handles direct calendar operations
func calendarCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "calendar",
		Aliases: []string{"cal"},
		Usage:   "Google Calendar operations",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List calendars visible to the authenticated user",
				Flags: []cli.Flag{
					configFlag,
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.CalendarList,
			},
			{
				Name:  "share",
				Usage: "Share a calendar with an email address",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "email"},
				},
				Flags: []cli.Flag{
					configFlag,
					&cli.StringFlag{
						Name:  "role",
						Usage: "Access role: reader or writer",
						Value: "writer",
					},
				},
				Action: r.CalendarShare,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command for interactive sync.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch interactive TUI for birthday sync",
		Flags: []cli.Flag{
			configFlag,
			&cli.StringFlag{
				Name:     "csv",
				Usage:    "Path to the birthday CSV file",
				Required: true,
			},
			&cli.IntFlag{
				Name:  "start",
				Usage: "First Gregorian year (default: current year)",
			},
			&cli.IntFlag{
				Name:    "years",
				Aliases: []string{"n"},
				Usage:   "Number of Gregorian years to cover (default from config)",
			},
		},
		Action: r.TUI,
	}
}
