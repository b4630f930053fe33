package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/weekview/internal/config"
	"github.com/javiermolinar/weekview/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	var (
		initOnly bool
		show     bool
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.`,
		Example: `  weekview config
  weekview config --show
  weekview config --init --config ./weekview.toml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := a.configPath
			if path == "" {
				path = config.DefaultConfigPath()
			}
			out := cmd.OutOrStdout()

			switch {
			case show:
				printConfig(out, a.config)
				return nil
			case initOnly:
				_, err := ensureConfigFile(out, path, a.config)
				return err
			}
			return runConfigInteractive(cmd.InOrStdin(), out, path, a.config)
		},
	}

	cmd.Flags().BoolVar(&initOnly, "init", false, "Write the config file if missing, without prompting")
	cmd.Flags().BoolVar(&show, "show", false, "Print the effective configuration and exit")
	return cmd
}

// ensureConfigFile writes cfg to path when no file exists there.
func ensureConfigFile(out io.Writer, path string, cfg *config.Config) (created bool, err error) {
	_, statErr := os.Stat(path)
	if statErr == nil {
		fmt.Fprintf(out, "Config file: %s\n", path)
		return false, nil
	}
	if !errors.Is(statErr, fs.ErrNotExist) {
		return false, fmt.Errorf("checking config file: %w", statErr)
	}

	fmt.Fprintln(out, "No config file found. Creating with default values...")
	if err := cfg.SaveTo(path); err != nil {
		return false, fmt.Errorf("saving config: %w", err)
	}
	fmt.Fprintf(out, "Created %s\n", path)
	return true, nil
}

func runConfigInteractive(in io.Reader, out io.Writer, path string, cfg *config.Config) error {
	if _, err := ensureConfigFile(out, path, cfg); err != nil {
		return err
	}
	fmt.Fprintln(out)

	// Display current config
	printConfig(out, cfg)

	reader := bufio.NewReader(in)
	if !promptYesNo(reader, out, "\nWould you like to edit the configuration?") {
		return nil
	}

	edited := *cfg
	edited.View.NumberOfDays = promptInt(reader, out, "Number of days (1, 3, 5, 7)", cfg.View.NumberOfDays)
	edited.View.TimeStep = promptInt(reader, out, "Time step (minutes)", cfg.View.TimeStep)
	edited.View.BeginAgendaAt = promptValue(reader, out, "Agenda begins at", cfg.View.BeginAgendaAt)
	edited.View.EndAgendaAt = promptValue(reader, out, "Agenda ends at", cfg.View.EndAgendaAt)
	edited.View.PageStartAt.Weekday = promptValue(reader, out, "Page starts on weekday (empty for today)", cfg.View.PageStartAt.Weekday)
	edited.View.FormatDateHeader = promptValue(reader, out, "Date header format", cfg.View.FormatDateHeader)
	edited.Locale.Name = promptValue(reader, out, "Locale", cfg.Locale.Name)
	edited.Input.Events = promptValue(reader, out, "Events file", cfg.Input.Events)
	edited.UI.Theme = promptTheme(reader, out, cfg.UI.Theme)

	// Validate before saving
	if err := edited.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := edited.SaveTo(path); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	*cfg = edited

	fmt.Fprintln(out, "\nConfiguration saved!")
	return nil
}

func printConfig(out io.Writer, cfg *config.Config) {
	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintln(out, "──────────────────────")
	fmt.Fprintln(out, "[view]")
	fmt.Fprintf(out, "  number_of_days      = %d\n", cfg.View.NumberOfDays)
	fmt.Fprintf(out, "  hours_in_display    = %v\n", cfg.View.HoursInDisplay)
	fmt.Fprintf(out, "  time_step           = %d\n", cfg.View.TimeStep)
	fmt.Fprintf(out, "  begin_agenda_at     = %s\n", cfg.View.BeginAgendaAt)
	fmt.Fprintf(out, "  end_agenda_at       = %s\n", cfg.View.EndAgendaAt)
	fmt.Fprintf(out, "  right_to_left       = %t\n", cfg.View.RightToLeft)
	if cfg.View.PageStartAt.Weekday != "" {
		fmt.Fprintf(out, "  page_start_at       = %s\n", cfg.View.PageStartAt.Weekday)
	} else if cfg.View.PageStartAt.Left != 0 {
		fmt.Fprintf(out, "  page_start_at.left  = %d\n", cfg.View.PageStartAt.Left)
	}
	fmt.Fprintf(out, "  format_date_header  = %s\n", cfg.View.FormatDateHeader)

	if len(cfg.Disabled) > 0 {
		fmt.Fprintln(out, "\n[disabled]")
		days := make([]string, 0, len(cfg.Disabled))
		for day := range cfg.Disabled {
			days = append(days, day)
		}
		sort.Strings(days)
		for _, day := range days {
			fmt.Fprintf(out, "  %-19s = %s\n", day, strings.Join(cfg.Disabled[day], ", "))
		}
	}

	fmt.Fprintln(out, "\n[locale]")
	fmt.Fprintf(out, "  name                = %s\n", cfg.Locale.Name)
	fmt.Fprintln(out, "\n[input]")
	fmt.Fprintf(out, "  events              = %s\n", cfg.Input.Events)
	fmt.Fprintln(out, "\n[ui]")
	fmt.Fprintf(out, "  theme               = %s\n", cfg.UI.Theme)
}

func promptYesNo(reader *bufio.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, out io.Writer, label, current string) string {
	if current == "" {
		fmt.Fprintf(out, "  %s: ", label)
	} else {
		fmt.Fprintf(out, "  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptInt(reader *bufio.Reader, out io.Writer, label string, current int) int {
	for {
		value := promptValue(reader, out, label, strconv.Itoa(current))
		n, err := strconv.Atoi(value)
		if err == nil {
			return n
		}
		fmt.Fprintf(out, "  Invalid number %q\n", value)
	}
}

func promptTheme(reader *bufio.Reader, out io.Writer, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := strings.ToLower(promptValue(reader, out, label, current))
		if theme.IsAvailable(value) {
			return value
		}
		if _, err := reader.Peek(1); err != nil {
			// Input exhausted; keep the current theme.
			return current
		}
		fmt.Fprintf(out, "  Invalid theme %q. Available: %s\n", value, options)
	}
}
