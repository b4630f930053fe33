package ui

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/weekview/internal/config"
	"github.com/javiermolinar/weekview/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	config     *config.Config
	root       *cobra.Command
	configPath string
	debug      bool // Enable debug logging
	noColor    bool
	events     string // events file for the preview, overrides input.events
	now        func() time.Time
}

// NewApp creates a new CLI application. Configuration is loaded before any
// command runs so --config can point at another file.
func NewApp() *App {
	a := &App{now: time.Now}

	a.root = &cobra.Command{
		Use:   "weekview",
		Short: "Lay out calendar events on a week grid",
		Long: `weekview computes week-view calendar layouts.

It buckets events into days, resolves overlaps into side-by-side lanes,
turns times into pixel boxes and checks selections against disabled
hours. Without a subcommand it opens a terminal preview of the week.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			setupLogging(cmd.ErrOrStderr(), a.debug)
			if a.noColor {
				DisableColor()
			}
			return a.loadConfig()
		},
		RunE: func(_ *cobra.Command, _ []string) error {
			events := a.events
			if events == "" {
				events = a.config.Input.Events
			}
			return tui.Run(tui.Options{
				Config: a.config,
				Events: events,
				Debug:  a.debug,
				Now:    a.now,
			})
		},
	}

	// Add global flags
	a.root.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default ~/.config/weekview/config.toml)")
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging")
	a.root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable color output")
	a.root.Flags().StringVarP(&a.events, "events", "e", "", "Events file to preview (YAML, JSON or ICS)")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.layoutCmd())
	a.root.AddCommand(a.checkCmd())
	a.root.AddCommand(a.timesCmd())
	a.root.AddCommand(a.exportCmd())

	return a
}

func (a *App) loadConfig() error {
	path := a.configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if a.noColor {
		cfg.UI.NoColor = true
	}
	a.config = cfg
	return nil
}

// setupLogging installs the default text logger on w.
func setupLogging(w io.Writer, debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "weekview %s (commit: %s)\n", Version, Commit)
		},
	}
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// SetArgs overrides the command line, for tests.
func (a *App) SetArgs(args []string) {
	a.root.SetArgs(args)
}

// SetOutput redirects command output, for tests.
func (a *App) SetOutput(out, errOut io.Writer) {
	a.root.SetOut(out)
	a.root.SetErr(errOut)
}
