package ui

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/weekview/internal/config"
	"github.com/javiermolinar/weekview/internal/constraint"
	"github.com/javiermolinar/weekview/internal/dateutil"
	"github.com/javiermolinar/weekview/internal/event"
	"github.com/javiermolinar/weekview/internal/layout"
	"github.com/javiermolinar/weekview/internal/locale"
	"github.com/javiermolinar/weekview/internal/source"
)

var errNoEvents = errors.New("no events file: pass --events or set [input] events")

// layoutFlags are shared by commands that lay out a page.
type layoutFlags struct {
	events string
	date   string
	days   int
	rtl    bool
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.events, "events", "e", "", "Events file (.toml, .yaml, .json, .ics)")
	cmd.Flags().StringVarP(&f.date, "date", "d", "", "Date on the page: YYYY-MM-DD, today, tomorrow, monday, next-week...")
	cmd.Flags().IntVar(&f.days, "days", 0, "Number of days (1, 3, 5 or 7; default from config)")
	cmd.Flags().BoolVar(&f.rtl, "rtl", false, "List days right to left")
}

// apply overrides the config with flags that were set.
func (f *layoutFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed("days") {
		if !slices.Contains(config.AvailableNumberOfDays, f.days) {
			return fmt.Errorf("--days must be one of %v, got %d", config.AvailableNumberOfDays, f.days)
		}
		cfg.View.NumberOfDays = f.days
	}
	if cmd.Flags().Changed("rtl") {
		cfg.View.RightToLeft = f.rtl
	}
	if f.events != "" {
		cfg.Input.Events = f.events
	}
	return nil
}

// page loads the events and lays out the page containing the requested date.
func (a *App) page(cmd *cobra.Command, f *layoutFlags) (layout.Page, error) {
	cfg := *a.config
	if err := f.apply(cmd, &cfg); err != nil {
		return layout.Page{}, err
	}

	date, err := dateutil.ParseRelativeDate(f.date, a.now())
	if err != nil {
		return layout.Page{}, err
	}
	view, err := cfg.LayoutView(date)
	if err != nil {
		return layout.Page{}, err
	}

	events, week, err := loadEvents(cfg.Input.Events, view)
	if err != nil {
		return layout.Page{}, err
	}
	if !week.IsEmpty() {
		view.Disabled = view.Disabled.Merge(week)
	}

	return layout.Compute(events, view)
}

// loadEvents reads the events file, expanding recurrences over the view.
// Disabled ranges found in the file are returned alongside.
func loadEvents(path string, view layout.View) ([]*event.Event, constraint.Week, error) {
	if path == "" {
		return nil, constraint.Week{}, errNoEvents
	}
	res, err := source.Load(path, source.Options{
		Location:    view.Start.Location(),
		WindowStart: view.Start,
		WindowEnd:   view.Start.AddDate(0, 0, view.NumberOfDays),
	})
	if err != nil {
		return nil, constraint.Week{}, err
	}
	if len(res.Disabled) == 0 {
		return res.Events, constraint.Week{}, nil
	}

	fileCfg := config.Config{Disabled: res.Disabled}
	week, err := fileCfg.DisabledWeek()
	if err != nil {
		return nil, constraint.Week{}, fmt.Errorf("%s: %w", path, err)
	}
	return res.Events, week, nil
}

func (a *App) locale() (locale.Locale, error) {
	return a.config.ResolveLocale(locale.NewRegistry())
}

func (a *App) layoutCmd() *cobra.Command {
	var (
		flags   layoutFlags
		asJSON  bool
		copyOut bool
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Lay out a page of events",
		Long: `Bucket the events of one page into days, resolve overlaps into lanes
and compute the box of every event.

The page is chosen from --date and the configured page_start_at, so a
7-day page starting on Monday shows the whole week containing the date.`,
		Example: `  weekview layout --events week.yaml
  weekview layout -e work.ics --date next-week --days 5
  weekview layout -e week.toml --json --copy`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			page, err := a.page(cmd, &flags)
			if err != nil {
				return err
			}
			l, err := a.locale()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			header := a.config.View.FormatDateHeader

			if asJSON || copyOut {
				data, err := json.MarshalIndent(PageToJSON(page, l, header), "", "  ")
				if err != nil {
					return fmt.Errorf("encoding layout: %w", err)
				}
				if copyOut {
					if err := clipboard.WriteAll(string(data)); err != nil {
						return fmt.Errorf("copying layout: %w", err)
					}
					fmt.Fprintln(cmd.ErrOrStderr(), formatMuted("Copied layout JSON to clipboard"))
				}
				if asJSON {
					fmt.Fprintln(out, string(data))
					return nil
				}
			}

			first, last := page.Days[0].Date, page.Days[len(page.Days)-1].Date
			if first.After(last) {
				first, last = last, first
			}
			fmt.Fprintf(out, "\n  %s\n", formatHeader(fmt.Sprintf("%s - %s",
				l.Format(first, "ddd D MMM"), l.Format(last, "ddd D MMM YYYY"))))
			fmt.Fprintln(out, rule(74))
			PrintPage(out, page, PrintOpts{Locale: l, HeaderLayout: header, Verbose: verbose})
			fmt.Fprintln(out, rule(74))
			fmt.Fprintf(out, "  %s\n\n", pageSummary(page))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the layout as JSON")
	cmd.Flags().BoolVar(&copyOut, "copy", false, "Copy the layout JSON to the clipboard")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show pixel boxes")
	return cmd
}

// pageSummary counts the timed events on a page and their busy time.
func pageSummary(page layout.Page) string {
	var events, minutes int
	for _, d := range page.Days {
		events += len(d.Boxes)
		for _, b := range d.Boxes {
			minutes += b.EndMinute() - b.StartMinute()
		}
	}
	return fmt.Sprintf("Days: %d  |  Events: %d  |  Scheduled: %s  |  All-day rows: %d",
		len(page.Days), events, FormatDuration(minutes), page.AllDayLanes)
}
