// Package tui provides the terminal preview of the week view.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/javiermolinar/weekview/internal/bucket"
	"github.com/javiermolinar/weekview/internal/config"
	"github.com/javiermolinar/weekview/internal/constraint"
	"github.com/javiermolinar/weekview/internal/dateutil"
	"github.com/javiermolinar/weekview/internal/edit"
	"github.com/javiermolinar/weekview/internal/event"
	"github.com/javiermolinar/weekview/internal/layout"
	"github.com/javiermolinar/weekview/internal/locale"
	"github.com/javiermolinar/weekview/internal/tui/commands"
	"github.com/javiermolinar/weekview/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeSelect      // Selecting a new interval on the grid
	ModeDrag        // Moving an event
	ModeResize      // Moving one edge of an event
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeSelect:
		return "select"
	case ModeDrag:
		return "drag"
	case ModeResize:
		return "resize"
	default:
		return fmt.Sprintf("unknown(%d)", int(m))
	}
}

// modeFor maps an edit gesture to the mode shown in the footer.
func modeFor(k edit.Kind) Mode {
	switch k {
	case edit.Select:
		return ModeSelect
	case edit.Drag:
		return ModeDrag
	default:
		return ModeResize
	}
}

// Position is a cursor position: a day column and the minute of day at the
// top of the cursor row.
type Position struct {
	Day    int
	Minute int
}

// Options configures Run.
type Options struct {
	Config *config.Config
	Events string // events file; empty shows an empty week
	Debug  bool
	Now    func() time.Time
}

// Model is the main TUI model.
type Model struct {
	// Dependencies
	config     *config.Config
	eventsPath string
	now        func() time.Time

	// Theme and styles
	theme  *theme.Theme
	styles *Styles
	locale locale.Locale
	keys   keyMap
	help   help.Model

	// Page state
	view       layout.View
	configWeek constraint.Week
	events     []*event.Event
	edited     map[string]*event.Event // edits survive reloads
	memo       *layout.Memo
	page       layout.Page
	loading    bool

	// Interaction
	cursor    Position
	focus     int // index into the events under the cursor
	mode      Mode
	session   edit.Session
	delta     edit.Delta
	selection *constraint.Candidate // last committed selection

	// Terminal dimensions and layout
	width      int
	height     int
	rowMinutes int // minutes per grid row (15, 30 or 60)
	scroll     int // minute of day at the top of the grid

	// Messages
	statusMsg  string
	statusErr  bool
	statusTime time.Time

	err error
}

// New creates a new TUI model showing the page that contains today.
func New(opts Options) (Model, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		return Model{}, err
	}
	l, err := cfg.ResolveLocale(locale.NewRegistry())
	if err != nil {
		return Model{}, err
	}
	view, err := cfg.LayoutView(now())
	if err != nil {
		return Model{}, err
	}

	m := Model{
		config:     cfg,
		eventsPath: opts.Events,
		now:        now,
		theme:      t,
		styles:     NewStyles(t),
		locale:     l,
		keys:       newKeyMap(),
		help:       help.New(),
		view:       view,
		configWeek: view.Disabled,
		edited:     make(map[string]*event.Event),
		memo:       &layout.Memo{},
		loading:    true,
		rowMinutes: 60,
		scroll:     max(cfg.View.StartHour*60, view.Vertical.Begin),
		session: edit.New(edit.Config{
			Disabled: view.Disabled,
			MinSteps: cfg.View.MinEditSteps,
			TimeStep: cfg.View.TimeStep,
		}),
	}
	m.cursor = Position{Day: m.dayIndex(now()), Minute: m.scroll}
	m.recompute()
	return m, nil
}

// Init loads the events of the first page.
func (m Model) Init() tea.Cmd {
	return m.loadCmd()
}

// Run starts the TUI.
func Run(opts Options) error {
	if err := InitDebugLogger(opts.Debug); err != nil {
		return err
	}
	defer CloseDebugLogger()

	if opts.Config != nil && opts.Config.UI.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	model, err := New(opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func (m Model) loadCmd() tea.Cmd {
	return commands.LoadEvents(m.eventsPath, commands.Window{
		Start: m.view.Start,
		End:   m.view.Start.AddDate(0, 0, m.view.NumberOfDays),
	})
}

// applyLoaded installs freshly loaded events, reapplying in-memory edits.
func (m *Model) applyLoaded(msg commands.EventsLoadedMsg) {
	events := msg.Events
	for _, e := range m.edited {
		events = event.Replace(events, e)
	}
	m.events = events
	m.view.Disabled = m.configWeek.Merge(msg.Disabled)
	m.session = edit.New(edit.Config{
		Disabled: m.view.Disabled,
		MinSteps: m.config.View.MinEditSteps,
		TimeStep: m.config.View.TimeStep,
	})
	m.loading = false
	m.recompute()
}

// recompute lays out the current page.
func (m *Model) recompute() {
	page, err := m.memo.Compute(m.events, m.view)
	if err != nil {
		m.err = err
		LogError("layout", err)
		return
	}
	m.page = page
	m.cursor.Day = min(max(m.cursor.Day, 0), len(page.Days)-1)
	LogPage(m.view.Start, len(page.Days), len(m.events), len(page.Warnings))
}

// pageStep is how far one page flip moves. Pages anchored to a weekday
// always move by whole weeks so they stay anchored.
func (m Model) pageStep() int {
	if m.config.PageStartAt().UseWeekday {
		return 7 * ((m.view.NumberOfDays + 6) / 7)
	}
	return m.view.NumberOfDays
}

// shiftPage moves forward (dir > 0) or backward in display order.
func (m *Model) shiftPage(dir int) tea.Cmd {
	days := dir * m.config.PageSign() * m.pageStep()
	m.view.Start = dateutil.TruncateToDay(m.view.Start).AddDate(0, 0, days)
	m.loading = true
	m.focus = 0
	return m.loadCmd()
}

// goTo shows the page containing date with the cursor on it.
func (m *Model) goTo(date time.Time) tea.Cmd {
	m.view.Start = dateutil.PageStart(date, m.config.PageStartAt())
	m.cursor.Day = m.dayIndex(date)
	m.loading = true
	return m.loadCmd()
}

// dayIndex returns the column showing date, or 0 when it is not visible.
func (m Model) dayIndex(date time.Time) int {
	days := dateutil.Days(m.view.Start, m.view.NumberOfDays, m.view.Direction == bucket.Reversed)
	target := dateutil.TruncateToDay(date)
	for i, d := range days {
		if d.Equal(target) {
			return i
		}
	}
	return 0
}

// cursorDate returns the date of the cursor column.
func (m Model) cursorDate() time.Time {
	if m.cursor.Day < len(m.page.Days) {
		return m.page.Days[m.cursor.Day].Date
	}
	return m.view.Start
}

// setStatus shows a temporary message in the footer.
func (m *Model) setStatus(msg string, isErr bool) tea.Cmd {
	m.statusMsg = msg
	m.statusErr = isErr
	m.statusTime = m.now().Add(3 * time.Second)
	return commands.ClearStatusAfter(3 * time.Second)
}
