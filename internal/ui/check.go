package ui

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/weekview/internal/constraint"
	"github.com/javiermolinar/weekview/internal/dateutil"
	"github.com/javiermolinar/weekview/internal/edit"
	"github.com/javiermolinar/weekview/internal/interval"
)

var errEmptyInterval = errors.New("end must be after start")

func (a *App) checkCmd() *cobra.Command {
	var (
		date   string
		start  string
		end    string
		events string
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check whether an interval avoids disabled hours",
		Long: `Check a candidate interval against the configured disabled ranges.

Touching a disabled range is allowed; overlapping it is not. With
--events, disabled ranges declared in the events file are also applied.
The command exits non-zero when the interval is not admissible.`,
		Example: `  weekview check --date monday --start 09:00 --end 10:30
  weekview check -d 2025-01-15 -s 12:30 -E 14:00 -e week.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			day, err := dateutil.ParseRelativeDate(date, a.now())
			if err != nil {
				return err
			}
			from, err := interval.ParseClock(start)
			if err != nil {
				return fmt.Errorf("--start: %w", err)
			}
			to, err := interval.ParseClock(end)
			if err != nil {
				return fmt.Errorf("--end: %w", err)
			}
			if to <= from {
				return fmt.Errorf("%s-%s: %w", start, end, errEmptyInterval)
			}

			week, err := a.config.DisabledWeek()
			if err != nil {
				return err
			}
			if events != "" {
				view, err := a.config.LayoutView(day)
				if err != nil {
					return err
				}
				_, fileWeek, err := loadEvents(events, view)
				if err != nil {
					return err
				}
				week = week.Merge(fileWeek)
			}

			c := constraint.Candidate{
				Start: interval.OnDate(day, from),
				End:   interval.OnDate(day, to),
			}
			span := fmt.Sprintf("%s %s-%s", day.Format("Mon 2006-01-02"), start, end)

			out := cmd.OutOrStdout()
			if week.Admissible(c, nil) {
				fmt.Fprintf(out, "%s %s\n", formatOK("✓"), span)
				return nil
			}

			fmt.Fprintf(out, "%s %s\n", formatBad("✗"), span)
			for _, r := range week.ForDate(day) {
				if interval.MinutesOverlap(from, to, r.Start, r.End) {
					fmt.Fprintf(out, "    %s\n", formatDisabled(fmt.Sprintf("overlaps %s", r)))
				}
			}
			return fmt.Errorf("%s: %w", span, edit.ErrNotAdmissible)
		},
	}

	cmd.Flags().StringVarP(&date, "date", "d", "", "Date of the interval (default today)")
	cmd.Flags().StringVarP(&start, "start", "s", "", "Start time (HH:MM)")
	cmd.Flags().StringVarP(&end, "end", "E", "", "End time (HH:MM)")
	cmd.Flags().StringVarP(&events, "events", "e", "", "Events file with extra disabled ranges")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}
