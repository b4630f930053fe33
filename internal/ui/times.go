package ui

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/weekview/internal/geometry"
)

func (a *App) timesCmd() *cobra.Command {
	var (
		step   int
		format string
	)

	cmd := &cobra.Command{
		Use:   "times",
		Short: "Print the time labels of the agenda",
		Example: `  weekview times
  weekview times --step 30 --format "h:mm a"`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			v, err := a.config.Vertical()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("step") {
				step = a.config.View.TimeStep
			}
			if step <= 0 {
				return fmt.Errorf("--step must be positive, got %d", step)
			}
			if format == "" {
				format = a.config.View.FormatTimeLabel
			}

			height := geometry.TimeLabelHeight(a.config.View.HoursInDisplay, step, a.config.Layout.AgendaHeight)
			out := cmd.OutOrStdout()
			for i, label := range geometry.Labels(v.Begin, v.End, step, format) {
				fmt.Fprintf(out, "%8s  %s\n", label, formatMuted(fmt.Sprintf("y=%.0f", float64(i)*height)))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&step, "step", 0, "Minutes between labels (default from config)")
	cmd.Flags().StringVar(&format, "format", "", "Label format, e.g. H:mm or h:mm a (default from config)")
	return cmd
}
