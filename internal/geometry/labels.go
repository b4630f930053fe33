package geometry

import (
	"fmt"
	"math"
	"strings"

	"github.com/javiermolinar/weekview/internal/interval"
)

// DefaultTimesColumnWidth is the share of the window taken by time labels.
const DefaultTimesColumnWidth = 0.18

// Dimensions holds the horizontal sizes of one page.
type Dimensions struct {
	PageWidth       float64
	DayWidth        float64
	TimeLabelsWidth float64
}

// Horizontal splits the window width into the times column and the page.
// timesColumnWidth is a fraction of windowWidth; zero uses the default.
func Horizontal(windowWidth float64, numberOfDays int, timesColumnWidth float64) Dimensions {
	if timesColumnWidth <= 0 || timesColumnWidth >= 1 {
		timesColumnWidth = DefaultTimesColumnWidth
	}
	if numberOfDays < 1 {
		numberOfDays = 1
	}
	labels := windowWidth * timesColumnWidth
	page := windowWidth - labels
	return Dimensions{
		PageWidth:       page,
		DayWidth:        page / float64(numberOfDays),
		TimeLabelsWidth: labels,
	}
}

// XToDayIndex returns the day column under a horizontal offset.
func XToDayIndex(x, dayWidth float64) int {
	if dayWidth <= 0 {
		return 0
	}
	return int(math.Floor(x / dayWidth))
}

// TimeLabelHeight returns the pixel height of one time label row when
// hoursInDisplay hours fill agendaHeight and labels are timeStep minutes apart.
func TimeLabelHeight(hoursInDisplay float64, timeStep int, agendaHeight float64) float64 {
	if hoursInDisplay <= 0 || timeStep <= 0 {
		return 0
	}
	labelsInDisplay := math.Ceil(hoursInDisplay * 60 / float64(timeStep))
	return agendaHeight / labelsInDisplay
}

// Labels returns the times column labels from begin to end every step minutes.
// A begin outside the day starts at midnight.
func Labels(begin, end, step int, layout string) []string {
	if step <= 0 {
		return nil
	}
	if begin < 0 || begin >= interval.MinutesPerDay {
		begin = 0
	}
	var out []string
	for m := begin; m < end && m < interval.MinutesPerDay; m += step {
		out = append(out, FormatClock(m, layout))
	}
	return out
}

// FormatClock renders minutes of day with a small clock layout language:
// HH/H (24h, padded or not), hh/h (12h), mm (minutes), A/a (AM/PM).
// Any other character is copied as is.
func FormatClock(minute int, layout string) string {
	if layout == "" {
		layout = "H:mm"
	}
	hour := (minute / 60) % 24
	mins := minute % 60
	hour12 := hour % 12
	if hour12 == 0 {
		hour12 = 12
	}

	var b strings.Builder
	for i := 0; i < len(layout); {
		rest := layout[i:]
		switch {
		case strings.HasPrefix(rest, "HH"):
			fmt.Fprintf(&b, "%02d", hour)
			i += 2
		case strings.HasPrefix(rest, "hh"):
			fmt.Fprintf(&b, "%02d", hour12)
			i += 2
		case strings.HasPrefix(rest, "mm"):
			fmt.Fprintf(&b, "%02d", mins)
			i += 2
		case rest[0] == 'H':
			fmt.Fprintf(&b, "%d", hour)
			i++
		case rest[0] == 'h':
			fmt.Fprintf(&b, "%d", hour12)
			i++
		case rest[0] == 'A':
			b.WriteString(meridiem(hour, true))
			i++
		case rest[0] == 'a':
			b.WriteString(meridiem(hour, false))
			i++
		default:
			b.WriteByte(rest[0])
			i++
		}
	}
	return b.String()
}

func meridiem(hour int, upper bool) string {
	s := "am"
	if hour >= 12 {
		s = "pm"
	}
	if upper {
		return strings.ToUpper(s)
	}
	return s
}
