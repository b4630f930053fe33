package ui

import (
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Color definitions for consistent styling across the UI.
var (
	// Day headers and section titles
	colorHeader = color.New(color.Bold)

	// Event boxes: cyan, the lane index stands out
	colorEvent = color.New(color.FgCyan)

	// All-day entries
	colorAllDay = color.New(color.FgMagenta)

	// Disabled ranges: dim, they are background information
	colorDisabled = color.New(color.FgWhite, color.Faint)

	// Warnings for dropped events
	colorWarn = color.New(color.FgYellow)

	// Admissibility verdicts
	colorOK  = color.New(color.FgGreen, color.Bold)
	colorBad = color.New(color.FgRed, color.Bold)

	// Muted: for secondary information
	colorMuted = color.New(color.FgWhite, color.Faint)
)

// termWidth returns the terminal width, or a default if detection fails.
func termWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // sensible default
	}
	return width
}

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

// EnableColor enables color output (if terminal supports it).
func EnableColor() {
	color.NoColor = false
}

func formatHeader(s string) string   { return colorHeader.Sprint(s) }
func formatEvent(s string) string    { return colorEvent.Sprint(s) }
func formatAllDay(s string) string   { return colorAllDay.Sprint(s) }
func formatDisabled(s string) string { return colorDisabled.Sprint(s) }
func formatWarn(s string) string     { return colorWarn.Sprint(s) }
func formatOK(s string) string       { return colorOK.Sprint(s) }
func formatBad(s string) string      { return colorBad.Sprint(s) }
func formatMuted(s string) string    { return colorMuted.Sprint(s) }
