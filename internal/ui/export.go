package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/weekview/internal/dateutil"
	"github.com/javiermolinar/weekview/internal/event"
	"github.com/javiermolinar/weekview/internal/interval"
	"github.com/javiermolinar/weekview/internal/source"
)

func (a *App) exportCmd() *cobra.Command {
	var (
		flags  layoutFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the events of a page as iCalendar",
		Long: `Write the events visible on one page as an iCalendar document.

Recurring events are written as their individual occurrences.`,
		Example: `  weekview export -e week.yaml > week.ics
  weekview export -e week.toml --date next-week -o next.ics`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := *a.config
			if err := flags.apply(cmd, &cfg); err != nil {
				return err
			}
			date, err := dateutil.ParseRelativeDate(flags.date, a.now())
			if err != nil {
				return err
			}
			view, err := cfg.LayoutView(date)
			if err != nil {
				return err
			}
			events, _, err := loadEvents(cfg.Input.Events, view)
			if err != nil {
				return err
			}

			end := view.Start.AddDate(0, 0, view.NumberOfDays)
			visible := make([]*event.Event, 0, len(events))
			for _, e := range events {
				if interval.Overlaps(e.Start, e.End, view.Start, end) {
					visible = append(visible, e)
				}
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("creating %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}
			if err := source.Encode(w, visible); err != nil {
				return fmt.Errorf("writing calendar: %w", err)
			}
			if output != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d events to %s\n", len(visible), output)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write to a file instead of stdout")
	return cmd
}
