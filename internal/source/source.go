// Package source loads events and disabled ranges from TOML, YAML, JSON and
// iCalendar files.
package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/javiermolinar/weekview/internal/event"
)

// Loader errors.
var (
	ErrUnknownFormat     = errors.New("unknown events file format")
	ErrInvalidTime       = errors.New("invalid time value")
	ErrMissingEnd        = errors.New("timed event needs an end")
	ErrInvalidRecurrence = errors.New("invalid recurrence rule")
)

// Format is an events file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatICS  Format = "ics"
)

// DefaultMaxOccurrences caps recurrence expansion per event.
const DefaultMaxOccurrences = 500

// idNamespace seeds name-based IDs for events that have none.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("weekview:event"))

// DetectFormat picks a format from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".ics", ".ical", ".ifb":
		return FormatICS, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

// Options control decoding.
type Options struct {
	// Location for times without an offset. Nil means time.Local.
	Location *time.Location
	// WindowStart and WindowEnd bound recurrence expansion. When WindowEnd
	// is zero recurring events keep only their first occurrence.
	WindowStart time.Time
	WindowEnd   time.Time
	// MaxOccurrences caps expansion per event; zero uses DefaultMaxOccurrences.
	MaxOccurrences int
}

func (o Options) location() *time.Location {
	if o.Location == nil {
		return time.Local
	}
	return o.Location
}

// Result is the decoded content of one file.
type Result struct {
	Events []*event.Event
	// Disabled holds weekday -> "HH:MM-HH:MM" ranges found in the file.
	Disabled map[string][]string
	// Truncated lists events whose recurrence hit the occurrence cap.
	Truncated []string
}

// record is one event as written in TOML, YAML or JSON.
type record struct {
	ID               string   `toml:"id" yaml:"id" json:"id"`
	Description      string   `toml:"description" yaml:"description" json:"description"`
	Start            string   `toml:"start" yaml:"start" json:"start"`
	End              string   `toml:"end" yaml:"end" json:"end"`
	AllDay           bool     `toml:"all_day" yaml:"all_day" json:"all_day"`
	Color            string   `toml:"color" yaml:"color" json:"color"`
	DisableDrag      bool     `toml:"disable_drag" yaml:"disable_drag" json:"disable_drag"`
	DisablePress     bool     `toml:"disable_press" yaml:"disable_press" json:"disable_press"`
	DisableLongPress bool     `toml:"disable_long_press" yaml:"disable_long_press" json:"disable_long_press"`
	Overlap          string   `toml:"overlap" yaml:"overlap" json:"overlap"`
	RRule            string   `toml:"rrule" yaml:"rrule" json:"rrule"`
	ExDates          []string `toml:"exdates" yaml:"exdates" json:"exdates"`
}

type document struct {
	Events   []record            `toml:"events" yaml:"events" json:"events"`
	Disabled map[string][]string `toml:"disabled" yaml:"disabled" json:"disabled"`
}

// item is a decoded event before recurrence expansion.
type item struct {
	event   event.Event
	rule    string
	exdates []time.Time
}

// Load reads and decodes the file at path, choosing the format from its
// extension.
func Load(path string, opts Options) (Result, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return Result{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("reading events file: %w", err)
	}
	res, err := Decode(bytes.NewReader(data), format, opts)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return res, nil
}

// Decode reads events in the given format.
func Decode(r io.Reader, format Format, opts Options) (Result, error) {
	var (
		items    []item
		disabled map[string][]string
		err      error
	)
	switch format {
	case FormatICS:
		items, err = decodeICS(r, opts.location())
	case FormatTOML, FormatYAML, FormatJSON:
		var doc document
		if doc, err = decodeDocument(r, format); err == nil {
			items, err = fromRecords(doc.Events, opts.location())
			disabled = doc.Disabled
		}
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return Result{}, err
	}

	events, truncated := expand(items, opts)
	return Result{Events: events, Disabled: disabled, Truncated: truncated}, nil
}

func decodeDocument(r io.Reader, format Format) (document, error) {
	var doc document
	switch format {
	case FormatTOML:
		dec := toml.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return document{}, fmt.Errorf("parsing TOML: %w", err)
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return document{}, fmt.Errorf("parsing YAML: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return document{}, fmt.Errorf("parsing JSON: %w", err)
		}
	}
	return doc, nil
}

func fromRecords(records []record, loc *time.Location) ([]item, error) {
	items := make([]item, 0, len(records))
	for i, rec := range records {
		it, err := fromRecord(rec, loc)
		if err != nil {
			name := rec.ID
			if name == "" {
				name = rec.Description
			}
			return nil, fmt.Errorf("event %d (%s): %w", i, name, err)
		}
		items = append(items, it)
	}
	return items, nil
}

func fromRecord(rec record, loc *time.Location) (item, error) {
	start, err := ParseTime(rec.Start, loc)
	if err != nil {
		return item{}, fmt.Errorf("start: %w", err)
	}

	var end time.Time
	switch {
	case rec.End != "":
		if end, err = ParseTime(rec.End, loc); err != nil {
			return item{}, fmt.Errorf("end: %w", err)
		}
	case rec.AllDay:
		end = start.AddDate(0, 0, 1)
	default:
		return item{}, ErrMissingEnd
	}
	if rec.AllDay {
		start = midnight(start, loc)
		end = midnight(end, loc)
	}

	it := item{
		event: event.Event{
			ID:               rec.ID,
			Description:      rec.Description,
			Start:            start,
			End:              end,
			AllDay:           rec.AllDay,
			Color:            rec.Color,
			DisableDrag:      rec.DisableDrag,
			DisablePress:     rec.DisablePress,
			DisableLongPress: rec.DisableLongPress,
			Overlap:          event.OverlapMode(strings.ToLower(rec.Overlap)),
		},
		rule: strings.TrimPrefix(strings.TrimSpace(rec.RRule), "RRULE:"),
	}
	if it.rule != "" {
		if _, err := rrule.StrToRRule(it.rule); err != nil {
			return item{}, fmt.Errorf("%w: %v", ErrInvalidRecurrence, err)
		}
	}
	if it.event.ID == "" {
		it.event.ID = generatedID(rec.Description, start)
	}
	for _, s := range rec.ExDates {
		ex, err := ParseTime(s, loc)
		if err != nil {
			return item{}, fmt.Errorf("exdate: %w", err)
		}
		it.exdates = append(it.exdates, ex)
	}
	return it, nil
}

// timeLayouts are tried in order; the first carries its own offset.
var timeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTime accepts RFC 3339 timestamps and offset-less date or date-time
// values, which are read in loc.
func ParseTime(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrInvalidTime)
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(loc), nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTime, s)
}

func midnight(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// generatedID derives a stable ID from the event's content so reloading the
// same file yields the same IDs.
func generatedID(description string, start time.Time) string {
	name := description + "|" + start.UTC().Format(time.RFC3339)
	return uuid.NewSHA1(idNamespace, []byte(name)).String()
}
