// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/weekview/internal/bucket"
	"github.com/javiermolinar/weekview/internal/constraint"
	"github.com/javiermolinar/weekview/internal/dateutil"
	"github.com/javiermolinar/weekview/internal/geometry"
	"github.com/javiermolinar/weekview/internal/interval"
	"github.com/javiermolinar/weekview/internal/layout"
	"github.com/javiermolinar/weekview/internal/locale"
)

// AvailableNumberOfDays lists the supported page sizes.
var AvailableNumberOfDays = []int{1, 3, 5, 7}

// Config holds the application configuration.
type Config struct {
	View     ViewConfig          `toml:"view"`
	Layout   LayoutConfig        `toml:"layout"`
	Disabled map[string][]string `toml:"disabled"` // weekday -> ["HH:MM-HH:MM", ...]
	Locale   LocaleConfig        `toml:"locale"`
	Input    InputConfig         `toml:"input"`
	UI       UIConfig            `toml:"ui"`
}

// ViewConfig holds the calendar window settings.
type ViewConfig struct {
	NumberOfDays      int               `toml:"number_of_days"`
	HoursInDisplay    float64           `toml:"hours_in_display"`
	TimeStep          int               `toml:"time_step"`       // minutes between time labels
	BeginAgendaAt     string            `toml:"begin_agenda_at"` // e.g., "08:00"
	EndAgendaAt       string            `toml:"end_agenda_at"`   // e.g., "20:00"
	StartHour         int               `toml:"start_hour"`      // first hour scrolled into view
	RightToLeft       bool              `toml:"right_to_left"`
	PrependMostRecent bool              `toml:"prepend_most_recent"`
	PageStartAt       PageStartAtConfig `toml:"page_start_at"`
	FormatTimeLabel   string            `toml:"format_time_label"`  // e.g., "H:mm"
	FormatDateHeader  string            `toml:"format_date_header"` // e.g., "ddd D"
	ShowNowLine       bool              `toml:"show_now_line"`
	MinEditSteps      int               `toml:"min_edit_steps"` // shortest edit, quarter hours
}

// PageStartAtConfig sets where pages begin. Weekday wins over Left.
type PageStartAtConfig struct {
	Left    int    `toml:"left"`
	Weekday string `toml:"weekday"`
}

// LayoutConfig holds the pixel geometry used by the layout command.
type LayoutConfig struct {
	WindowWidth      float64 `toml:"window_width"`
	AgendaHeight     float64 `toml:"agenda_height"`
	TimesColumnWidth float64 `toml:"times_column_width"` // fraction of window_width
}

// LocaleConfig selects a locale and optionally defines its tables.
type LocaleConfig struct {
	Name          string   `toml:"name"`
	Months        []string `toml:"months,omitempty"`
	MonthsShort   []string `toml:"months_short,omitempty"`
	Weekdays      []string `toml:"weekdays,omitempty"`
	WeekdaysShort []string `toml:"weekdays_short,omitempty"`
}

// InputConfig holds the default events file.
type InputConfig struct {
	Events string `toml:"events"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme   string `toml:"theme"` // "mocha", "macchiato", "frappe", "latte"
	NoColor bool   `toml:"no_color"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		View: ViewConfig{
			NumberOfDays:     7,
			HoursInDisplay:   6,
			TimeStep:         60,
			BeginAgendaAt:    "00:00",
			EndAgendaAt:      "24:00",
			StartHour:        8,
			FormatTimeLabel:  "H:mm",
			FormatDateHeader: "ddd D",
			ShowNowLine:      true,
			MinEditSteps:     1,
		},
		Layout: LayoutConfig{
			WindowWidth:      1000,
			AgendaHeight:     600,
			TimesColumnWidth: geometry.DefaultTimesColumnWidth,
		},
		Disabled: map[string][]string{},
		Locale: LocaleConfig{
			Name: "en",
		},
		UI: UIConfig{
			Theme: "frappe",
		},
	}
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "weekview", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Input.Events = expandPath(cfg.Input.Events)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("WEEKVIEW_NUMBER_OF_DAYS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("WEEKVIEW_NUMBER_OF_DAYS: %w", err)
		}
		cfg.View.NumberOfDays = n
	}
	if v := os.Getenv("WEEKVIEW_HOURS_IN_DISPLAY"); v != "" {
		h, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("WEEKVIEW_HOURS_IN_DISPLAY: %w", err)
		}
		cfg.View.HoursInDisplay = h
	}
	if v := os.Getenv("WEEKVIEW_TIME_STEP"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("WEEKVIEW_TIME_STEP: %w", err)
		}
		cfg.View.TimeStep = n
	}
	if v := os.Getenv("WEEKVIEW_BEGIN_AGENDA_AT"); v != "" {
		cfg.View.BeginAgendaAt = v
	}
	if v := os.Getenv("WEEKVIEW_END_AGENDA_AT"); v != "" {
		cfg.View.EndAgendaAt = v
	}
	if v := os.Getenv("WEEKVIEW_RIGHT_TO_LEFT"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("WEEKVIEW_RIGHT_TO_LEFT: %w", err)
		}
		cfg.View.RightToLeft = b
	}
	if v := os.Getenv("WEEKVIEW_LOCALE"); v != "" {
		cfg.Locale.Name = v
	}
	if v := os.Getenv("WEEKVIEW_EVENTS"); v != "" {
		cfg.Input.Events = v
	}
	if v := os.Getenv("WEEKVIEW_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		cfg.UI.NoColor = true
	}
	return nil
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if !slices.Contains(AvailableNumberOfDays, c.View.NumberOfDays) {
		return fmt.Errorf("number_of_days must be one of %v, got %d", AvailableNumberOfDays, c.View.NumberOfDays)
	}
	if c.View.HoursInDisplay <= 0 || c.View.HoursInDisplay > 24 {
		return fmt.Errorf("hours_in_display must be in (0, 24], got %v", c.View.HoursInDisplay)
	}
	if c.View.TimeStep <= 0 || c.View.TimeStep > 60*24 {
		return fmt.Errorf("time_step must be a positive number of minutes, got %d", c.View.TimeStep)
	}
	begin, end, err := c.agendaWindow()
	if err != nil {
		return err
	}
	if begin >= end {
		return errors.New("begin_agenda_at must be before end_agenda_at")
	}
	if c.View.StartHour < 0 || c.View.StartHour > 23 {
		return fmt.Errorf("start_hour must be in [0, 23], got %d", c.View.StartHour)
	}
	if c.View.MinEditSteps < 0 {
		return fmt.Errorf("min_edit_steps must not be negative, got %d", c.View.MinEditSteps)
	}
	if c.View.PageStartAt.Weekday != "" {
		if _, err := dateutil.ParseWeekday(c.View.PageStartAt.Weekday); err != nil {
			return fmt.Errorf("page_start_at.weekday: %w: %s", err, c.View.PageStartAt.Weekday)
		}
	}
	if c.Layout.WindowWidth <= 0 || c.Layout.AgendaHeight <= 0 {
		return errors.New("window_width and agenda_height must be positive")
	}
	if c.Layout.TimesColumnWidth < 0 || c.Layout.TimesColumnWidth >= 1 {
		return fmt.Errorf("times_column_width must be a fraction in [0, 1), got %v", c.Layout.TimesColumnWidth)
	}
	if _, err := c.DisabledWeek(); err != nil {
		return err
	}
	return nil
}

func (c *Config) agendaWindow() (begin, end int, err error) {
	begin, err = interval.ParseClock(c.View.BeginAgendaAt)
	if err != nil {
		return 0, 0, fmt.Errorf("begin_agenda_at: %w", err)
	}
	end, err = interval.ParseClock(c.View.EndAgendaAt)
	if err != nil {
		return 0, 0, fmt.Errorf("end_agenda_at: %w", err)
	}
	return begin, end, nil
}

// DisabledWeek parses the [disabled] section.
func (c *Config) DisabledWeek() (constraint.Week, error) {
	ranges := make(map[time.Weekday][]constraint.Range, len(c.Disabled))
	for name, specs := range c.Disabled {
		day, err := dateutil.ParseWeekday(name)
		if err != nil {
			return constraint.Week{}, fmt.Errorf("disabled: %w: %s", err, name)
		}
		for _, s := range specs {
			r, err := constraint.ParseRange(s)
			if err != nil {
				return constraint.Week{}, fmt.Errorf("disabled.%s: %w", name, err)
			}
			ranges[day] = append(ranges[day], r)
		}
	}
	return constraint.NewWeek(ranges)
}

// Vertical returns the time-to-pixel mapping for the configured agenda.
func (c *Config) Vertical() (geometry.Vertical, error) {
	begin, end, err := c.agendaWindow()
	if err != nil {
		return geometry.Vertical{}, err
	}
	return geometry.NewVertical(c.Layout.AgendaHeight, c.View.HoursInDisplay, begin, end)
}

// Dimensions returns the horizontal page dimensions.
func (c *Config) Dimensions() geometry.Dimensions {
	return geometry.Horizontal(c.Layout.WindowWidth, c.View.NumberOfDays, c.Layout.TimesColumnWidth)
}

// Direction returns the day order for bucketing.
func (c *Config) Direction() bucket.Direction {
	if c.View.RightToLeft {
		return bucket.Reversed
	}
	return bucket.Forward
}

// PageSign is +1 when the next page is in the future and -1 when the most
// recent days are prepended.
func (c *Config) PageSign() int {
	if c.View.PrependMostRecent {
		return -1
	}
	return 1
}

// PageStartAt converts the page_start_at table.
func (c *Config) PageStartAt() dateutil.PageStartAt {
	at := dateutil.PageStartAt{Left: c.View.PageStartAt.Left}
	if day, err := dateutil.ParseWeekday(c.View.PageStartAt.Weekday); err == nil {
		at.Weekday = day
		at.UseWeekday = true
	}
	return at
}

// LayoutView builds the pipeline view for the page containing date.
func (c *Config) LayoutView(date time.Time) (layout.View, error) {
	v, err := c.Vertical()
	if err != nil {
		return layout.View{}, err
	}
	week, err := c.DisabledWeek()
	if err != nil {
		return layout.View{}, err
	}
	return layout.View{
		Start:        dateutil.PageStart(date, c.PageStartAt()),
		NumberOfDays: c.View.NumberOfDays,
		Direction:    c.Direction(),
		DayWidth:     c.Dimensions().DayWidth,
		Vertical:     v,
		Disabled:     week,
	}, nil
}

// ResolveLocale returns the configured locale. Custom tables, when present,
// are registered under the configured name first.
func (c *Config) ResolveLocale(reg *locale.Registry) (locale.Locale, error) {
	lc := c.Locale
	if len(lc.Months)+len(lc.MonthsShort)+len(lc.Weekdays)+len(lc.WeekdaysShort) > 0 {
		var l locale.Locale
		if len(lc.Months) != 12 || len(lc.MonthsShort) != 12 || len(lc.Weekdays) != 7 || len(lc.WeekdaysShort) != 7 {
			return locale.Locale{}, fmt.Errorf("locale %s: %w: need 12 months and 7 weekdays", lc.Name, locale.ErrIncomplete)
		}
		copy(l.Months[:], lc.Months)
		copy(l.MonthsShort[:], lc.MonthsShort)
		copy(l.Weekdays[:], lc.Weekdays)
		copy(l.WeekdaysShort[:], lc.WeekdaysShort)
		if err := reg.Add(lc.Name, l); err != nil {
			return locale.Locale{}, err
		}
	}
	return reg.Get(lc.Name)
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
