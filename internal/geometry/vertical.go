// Package geometry maps clock times to pixel offsets and back.
package geometry

import (
	"errors"
	"math"

	"github.com/javiermolinar/weekview/internal/interval"
)

// Geometry errors.
var (
	ErrInvalidWindow     = errors.New("visible window must satisfy 0 <= begin < end <= 1440")
	ErrInvalidDimensions = errors.New("agenda height and hours in display must be positive")
)

const (
	// StepMinutes is the size of one quantised grid step.
	StepMinutes = 15
	// StepsPerHour is the number of grid steps per hour.
	StepsPerHour = 60 / StepMinutes
)

// Vertical maps minutes of day inside a visible window to vertical offsets.
// Begin and End are minutes since midnight; Resolution is pixels per minute.
type Vertical struct {
	Begin      int
	End        int
	Resolution float64
}

// NewVertical derives a Vertical from the agenda height and the number of
// hours that should fit in it.
func NewVertical(agendaHeight, hoursInDisplay float64, begin, end int) (Vertical, error) {
	if begin < 0 || end > interval.MinutesPerDay || begin >= end {
		return Vertical{}, ErrInvalidWindow
	}
	if agendaHeight <= 0 || hoursInDisplay <= 0 {
		return Vertical{}, ErrInvalidDimensions
	}
	return Vertical{
		Begin:      begin,
		End:        end,
		Resolution: agendaHeight / (hoursInDisplay * 60),
	}, nil
}

// FromHours builds a Vertical from whole visible hours.
func FromHours(minHour, maxHour int, resolution float64) Vertical {
	return Vertical{Begin: minHour * 60, End: maxHour * 60, Resolution: resolution}
}

// MinHour returns the first visible hour.
func (v Vertical) MinHour() int {
	return v.Begin / 60
}

// MaxHour returns the hour at which the visible window ends (rounded up).
func (v Vertical) MaxHour() int {
	return (v.End + 59) / 60
}

// Clamp limits a minute of day to the visible window.
func (v Vertical) Clamp(minute int) int {
	return min(max(minute, v.Begin), v.End)
}

// ToY converts a minute of day to a vertical pixel offset.
// Minutes outside the window clamp to the nearest boundary pixel.
func (v Vertical) ToY(minute int) float64 {
	return float64(v.Clamp(minute)-v.Begin) * v.Resolution
}

// ToMinutes converts a vertical pixel offset to the nearest minute of day,
// clamped to the visible window.
func (v Vertical) ToMinutes(y float64) int {
	if v.Resolution <= 0 {
		return v.Begin
	}
	m := v.Begin + int(math.Round(y/v.Resolution))
	return v.Clamp(m)
}

// ToSecondsInDay converts a vertical pixel offset to whole seconds since
// midnight, clamped to the visible window.
func (v Vertical) ToSecondsInDay(y float64) int {
	if v.Resolution <= 0 {
		return v.Begin * 60
	}
	secs := v.Begin*60 + int(math.Floor(y/v.Resolution*60))
	return min(max(secs, v.Begin*60), v.End*60)
}

// Height returns the pixel distance between two minutes of day.
func (v Vertical) Height(startMinute, endMinute int) float64 {
	return v.ToY(endMinute) - v.ToY(startMinute)
}

// Total returns the pixel height of the whole visible window.
func (v Vertical) Total() float64 {
	return float64(v.End-v.Begin) * v.Resolution
}

// StepHeight returns the pixel height of one grid step.
func (v Vertical) StepHeight() float64 {
	return StepMinutes * v.Resolution
}

// ToY is the free-function form of Vertical.ToY.
func ToY(minute, minHour, maxHour int, resolution float64) float64 {
	return FromHours(minHour, maxHour, resolution).ToY(minute)
}

// ToTime is the inverse of ToY, returning minutes since midnight.
func ToTime(y float64, minHour, maxHour int, resolution float64) int {
	return FromHours(minHour, maxHour, resolution).ToMinutes(y)
}

// Snap rounds minute down to a multiple of step.
func Snap(minute, step int) int {
	if step <= 0 {
		return minute
	}
	if minute < 0 {
		return -((-minute + step - 1) / step) * step
	}
	return (minute / step) * step
}

// SnapNearest rounds minute to the nearest multiple of step.
func SnapNearest(minute, step int) int {
	if step <= 0 {
		return minute
	}
	return Snap(minute+step/2, step)
}

// IndexToMinutes converts a quarter-hour grid index to minutes of day.
func IndexToMinutes(index int) int {
	return index * StepMinutes
}

// MinutesToIndex converts minutes of day to the grid index containing it.
func MinutesToIndex(minute int) int {
	return Snap(minute, StepMinutes) / StepMinutes
}

// IndexLabel returns the "HH:MM" label of a grid index.
func IndexLabel(index int) string {
	return interval.FormatClock(IndexToMinutes(index))
}
