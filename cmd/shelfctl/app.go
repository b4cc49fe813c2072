package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/vytor/gameshelf/internal/config"
	"github.com/vytor/gameshelf/internal/db"
	"github.com/vytor/gameshelf/internal/jobs"
	"github.com/vytor/gameshelf/internal/logger"
	"github.com/vytor/gameshelf/internal/repository/sqlite"
	"github.com/vytor/gameshelf/internal/services"
)

// app holds the flags and services shared by every subcommand.
type app struct {
	out      io.Writer
	dbPath   string
	userID   string
	timezone string
	logLevel string
	now      func() time.Time

	database *db.DB
	insights services.InsightsService
	library  services.LibraryService
}

func newRootCmd(out io.Writer) *cobra.Command {
	cfg := config.Load()
	a := &app{out: out, now: time.Now}

	cmd := &cobra.Command{
		Use:   "shelfctl",
		Short: "Inspect and maintain a gameshelf library",
		Long: `shelfctl reads a gameshelf database directly and prints reports as JSON.

Examples:
  shelfctl import library.yaml --user alice
  shelfctl summary --user alice
  shelfctl year 2024 --user alice --timezone Europe/Lisbon
`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.open()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.dbPath, "db", cfg.DBPath, "SQLite database path")
	flags.StringVar(&a.userID, "user", "", "User whose library to use (required)")
	flags.StringVar(&a.timezone, "timezone", cfg.Timezone, "IANA timezone used for calendar days")
	flags.StringVar(&a.logLevel, "log-level", "WARN", "Log level written to stderr")
	_ = cmd.MarkPersistentFlagRequired("user")

	cmd.AddCommand(
		a.importCmd(),
		a.exportCmd(),
		a.summaryCmd(),
		a.weekCmd(),
		a.monthCmd(),
		a.yearCmd(),
		a.doomsdayCmd(),
		a.streaksCmd(),
	)
	return cmd
}

func (a *app) open() error {
	logger.SetDefault(logger.New(
		logger.WithOutput(os.Stderr),
		logger.WithLevel(logger.ParseLevel(a.logLevel)),
	))

	loc, err := config.Config{Timezone: a.timezone}.Location()
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", a.timezone, err)
	}
	database, err := db.Open(a.dbPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}

	repo := sqlite.NewGameRepository(database.DB)
	a.database = database
	a.insights = services.NewInsightsService(repo, a.now, loc)
	a.library = services.NewLibraryService(repo, jobs.NoopQueue{}, a.now)
	return nil
}

func (a *app) close() error {
	if a.database == nil {
		return nil
	}
	err := a.database.Close()
	a.database = nil
	return err
}

func (a *app) printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.out, string(data))
	return err
}

// report wraps a library-wide insight as a subcommand body.
func report[T any](a *app, fn func(s services.InsightsService, ctx context.Context, userID string) (T, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		out, err := fn(a.insights, cmd.Context(), a.userID)
		if err != nil {
			return err
		}
		return a.printJSON(out)
	}
}

func (a *app) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import games from a YAML library file ('-' reads stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}
			res, err := a.library.Import(cmd.Context(), a.userID, r)
			if err != nil {
				return err
			}
			return a.printJSON(res)
		},
	}
}

func (a *app) exportCmd() *cobra.Command {
	var outPath string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the library as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if outPath == "" {
				return a.library.Export(cmd.Context(), a.userID, a.out)
			}
			f, err := os.Create(outPath)
			if err != nil {
				return err
			}
			if err := a.library.Export(cmd.Context(), a.userID, f); err != nil {
				f.Close()
				return err
			}
			return f.Close()
		},
	}
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Write to a file instead of stdout")
	return cmd
}

func (a *app) summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Library-wide spending, hours and completion summary",
		Args:  cobra.NoArgs,
		RunE:  report(a, services.InsightsService.Summary),
	}
}

func (a *app) weekCmd() *cobra.Command {
	var weeksAgo int
	cmd := &cobra.Command{
		Use:   "week",
		Short: "Week in review",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := a.insights.Week(cmd.Context(), a.userID, weeksAgo)
			if err != nil {
				return err
			}
			return a.printJSON(out)
		},
	}
	cmd.Flags().IntVar(&weeksAgo, "weeks-ago", 0, "How many weeks back to report")
	return cmd
}

func (a *app) monthCmd() *cobra.Command {
	var monthsAgo int
	cmd := &cobra.Command{
		Use:   "month",
		Short: "Month in review",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := a.insights.Month(cmd.Context(), a.userID, monthsAgo)
			if err != nil {
				return err
			}
			return a.printJSON(out)
		},
	}
	cmd.Flags().IntVar(&monthsAgo, "months-ago", 0, "How many months back to report")
	return cmd
}

func (a *app) yearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "year [year]",
		Short: "Year in review, defaulting to the current year",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			year := a.now().Year()
			if len(args) == 1 {
				y, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid year %q", args[0])
				}
				year = y
			}
			out, err := a.insights.Year(cmd.Context(), a.userID, year)
			if err != nil {
				return err
			}
			return a.printJSON(out)
		},
	}
}

func (a *app) doomsdayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doomsday",
		Short: "Project when the backlog clears at the current pace",
		Args:  cobra.NoArgs,
		RunE:  report(a, services.InsightsService.Doomsday),
	}
}

func (a *app) streaksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "streaks",
		Short: "Current and longest daily play streaks",
		Args:  cobra.NoArgs,
		RunE:  report(a, services.InsightsService.Streaks),
	}
}
