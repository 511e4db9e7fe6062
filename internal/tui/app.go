package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/language"

	"github.com/jask/elections/internal/election"
	"github.com/jask/elections/internal/listing"
	"github.com/jask/elections/internal/service"
)

// clockInterval is how often remaining-time badges are refreshed.
const clockInterval = time.Minute

// Options wires the App to its collaborators.
type Options struct {
	Catalog *service.CatalogService
	// Formatter defaults to French.
	Formatter *election.Formatter
	Location  *time.Location
	// Now defaults to time.Now.
	Now func() time.Time
	// Types is the initial selection, matched loosely against the
	// catalog once it has loaded.
	Types  []string
	Logger *slog.Logger
}

// App is the election list screen.
type App struct {
	ctx       context.Context
	catalog   *service.CatalogService
	format    *election.Formatter
	loc       *time.Location
	now       func() time.Time
	preselect []string
	log       *slog.Logger

	state    listing.State
	keys     keyMap
	spinner  spinner.Model
	viewport viewport.Model

	chipCursor int
	rowCursor  int
	width      int
	height     int
	notice     string
	// follow scrolls the highlighted card into view on the next layout.
	follow bool
}

type catalogMsg []election.Record

type errMsg struct{ error }

type clockMsg time.Time

func New(ctx context.Context, opts Options) *App {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	format := opts.Formatter
	if format == nil {
		format, _ = election.NewFormatter(language.French)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = dimStyle
	return &App{
		ctx:       ctx,
		catalog:   opts.Catalog,
		format:    format,
		loc:       loc,
		now:       now,
		preselect: append([]string(nil), opts.Types...),
		log:       logger,
		state:     listing.Initial(),
		keys:      newKeyMap(),
		spinner:   sp,
		viewport:  viewport.New(0, 0),
		follow:    true,
	}
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, a.loadCatalog(), tickClock())
}

func (a *App) loadCatalog() tea.Cmd {
	return func() tea.Msg {
		records, err := a.catalog.Load(a.ctx)
		if err != nil {
			return errMsg{err}
		}
		return catalogMsg(records)
	}
}

func tickClock() tea.Cmd {
	return tea.Tick(clockInterval, func(t time.Time) tea.Msg { return clockMsg(t) })
}

// State exposes the current list state.
func (a *App) State() listing.State { return a.state }

func (a *App) dispatch(act listing.Action) {
	a.state = listing.Reduce(a.state, act)
	a.clampCursors()
	a.follow = true
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := a.update(msg)
	a.layout()
	return model, cmd
}

func (a *App) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = m.Width
		a.height = m.Height
		a.follow = true
	case spinner.TickMsg:
		if !a.state.Loading() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(m)
		return a, cmd
	case catalogMsg:
		if !a.state.Loading() {
			return a, nil
		}
		a.dispatch(listing.Loaded{Records: m})
		a.applyPreselection()
	case errMsg:
		a.log.Error("catalog unavailable", "error", m.error)
		a.dispatch(listing.Failed{Err: m.error})
	case clockMsg:
		return a, tickClock()
	case tea.KeyMsg:
		return a.handleKey(m)
	}
	return a, nil
}

// applyPreselection turns the configured type names into a selection on
// the freshly loaded catalog. Names that match nothing are reported.
func (a *App) applyPreselection() {
	if len(a.preselect) == 0 {
		return
	}
	resolved, unknown := service.ResolveTypes(a.preselect, a.state.Types())
	for _, u := range unknown {
		a.log.Warn("unknown election type ignored", "type", u)
	}
	for _, label := range resolved {
		if !a.state.Selection().Has(label) {
			a.dispatch(listing.ToggleType{Label: label})
		}
	}
	if len(unknown) > 0 {
		a.notice = "Type inconnu ignoré : " + joinLabels(unknown)
	}
	a.preselect = nil
}

func (a *App) handleKey(m tea.KeyMsg) (tea.Model, tea.Cmd) {
	types := a.state.Types()
	switch {
	case key.Matches(m, a.keys.Quit):
		return a, tea.Quit
	case key.Matches(m, a.keys.Left):
		if a.chipCursor > 0 {
			a.chipCursor--
		}
	case key.Matches(m, a.keys.Right):
		if a.chipCursor < len(types)-1 {
			a.chipCursor++
		}
	case key.Matches(m, a.keys.Toggle):
		if len(types) > 0 {
			a.dispatch(listing.ToggleType{Label: types[a.chipCursor]})
			a.notice = ""
		}
	case key.Matches(m, a.keys.Reset):
		if !a.state.Selection().Empty() {
			a.dispatch(listing.ClearTypes{})
			a.notice = ""
		}
	case key.Matches(m, a.keys.Up):
		if a.rowCursor > 0 {
			a.rowCursor--
		}
		a.follow = true
	case key.Matches(m, a.keys.Down):
		if a.rowCursor < a.visibleCount()-1 {
			a.rowCursor++
		}
		a.follow = true
	case key.Matches(m, a.keys.PageUp):
		a.viewport.SetYOffset(a.viewport.YOffset - max(1, a.viewport.Height/2))
	case key.Matches(m, a.keys.PageDown):
		a.viewport.SetYOffset(a.viewport.YOffset + max(1, a.viewport.Height/2))
	}
	return a, nil
}

func (a *App) visibleCount() int {
	return len(a.project().Entries)
}

func (a *App) project() listing.View {
	return a.state.Project(a.now(), a.loc)
}

func (a *App) clampCursors() {
	if n := len(a.state.Types()); a.chipCursor >= n {
		a.chipCursor = max(0, n-1)
	}
	if n := a.visibleCount(); a.rowCursor >= n {
		a.rowCursor = max(0, n-1)
	}
}
