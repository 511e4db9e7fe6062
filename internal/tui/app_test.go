package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"

	"github.com/jask/elections/internal/catalog"
	"github.com/jask/elections/internal/election"
	"github.com/jask/elections/internal/listing"
	"github.com/jask/elections/internal/service"
	"github.com/jask/elections/internal/testdata"
)

type stubProvider struct {
	records []election.Record
	err     error
}

func (p stubProvider) Load(context.Context) ([]election.Record, error) {
	return p.records, p.err
}

var fixedNow = time.Date(2026, time.October, 17, 12, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T, p catalog.Provider, types ...string) *App {
	t.Helper()
	a := New(context.Background(), Options{
		Catalog:  &service.CatalogService{Provider: p},
		Location: time.UTC,
		Now:      func() time.Time { return fixedNow },
		Types:    types,
	})
	// No height: the whole list renders unscrolled.
	a.Update(tea.WindowSizeMsg{Width: 200})
	return a
}

// load runs the catalog command synchronously, as the runtime would.
func load(t *testing.T, a *App) {
	t.Helper()
	msg := a.loadCatalog()()
	a.Update(msg)
}

func press(a *App, keys ...tea.KeyMsg) {
	for _, k := range keys {
		a.Update(k)
	}
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keySpace = tea.KeyMsg{Type: tea.KeySpace}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyPgDn  = tea.KeyMsg{Type: tea.KeyPgDown}
	keyPgUp  = tea.KeyMsg{Type: tea.KeyPgUp}
)

func TestLoadingThenCatalog(t *testing.T) {
	a := newTestApp(t, catalog.FixtureProvider{})
	require.NotNil(t, a.Init())

	view := a.View()
	require.Contains(t, view, appTitle)
	require.Contains(t, view, loadingText)
	require.NotContains(t, view, emptyText)
	require.Contains(t, view, "Service-Public.fr")

	load(t, a)
	t.Log("catalog delivered")

	view = a.View()
	require.NotContains(t, view, loadingText)
	require.NotContains(t, view, resetText, "reset action only shows with an active filter")
	for _, want := range []string{
		"Élections municipales",
		"Élection présidentielle",
		"Date à définir",
		"Terminée",
		"Format de l'élection : 2 tours",
		"Format de l'élection : 1 tour",
		"Précédent vote",
		"Fixation de la date précise",
		sourceURL,
	} {
		require.Contains(t, view, want)
	}

	require.Less(t, strings.Index(view, "Élections municipales"), strings.Index(view, "Élection présidentielle"))
	require.Less(t, strings.Index(view, "(série 2)"), strings.Index(view, "Élection présidentielle"))
	require.Less(t, strings.Index(view, "Élections départementales"), strings.Index(view, "Élections régionales"))
}

func TestSpinnerStopsOnceLoaded(t *testing.T) {
	a := newTestApp(t, catalog.FixtureProvider{})
	_, cmd := a.Update(a.spinner.Tick())
	require.NotNil(t, cmd)

	load(t, a)
	_, cmd = a.Update(spinner.TickMsg{})
	require.Nil(t, cmd)
}

func TestToggleAndResetWithKeys(t *testing.T) {
	a := newTestApp(t, catalog.FixtureProvider{})
	load(t, a)
	require.Equal(t, []string{
		"Départementales", "Européennes", "Législatives", "Municipales",
		"Présidentielle", "Régionales", "Sénatoriales",
	}, a.State().Types())

	press(a, keyRight, keyRight, keyRight, keySpace)
	require.Equal(t, []string{"Municipales"}, a.State().Selection().Labels())

	view := a.View()
	require.Contains(t, view, resetText)
	require.Contains(t, view, "Élections municipales")
	require.NotContains(t, view, "Élection présidentielle")

	press(a, keyRight, keySpace)
	require.Equal(t, []string{"Municipales", "Présidentielle"}, a.State().Selection().Labels())
	require.Contains(t, a.View(), "Élection présidentielle")

	press(a, keySpace)
	require.Equal(t, []string{"Municipales"}, a.State().Selection().Labels())

	press(a, runes("r"))
	require.True(t, a.State().Selection().Empty())
	require.NotContains(t, a.View(), resetText)
}

func TestChipCursorStaysInRange(t *testing.T) {
	a := newTestApp(t, catalog.FixtureProvider{})
	press(a, keySpace, keyRight)
	require.True(t, a.State().Selection().Empty(), "no chips before the catalog arrives")

	load(t, a)
	press(a, keyLeft, keyLeft, keySpace)
	require.Equal(t, []string{"Départementales"}, a.State().Selection().Labels())

	for i := 0; i < 20; i++ {
		press(a, keyRight)
	}
	press(a, keySpace)
	require.True(t, a.State().Selection().Has("Sénatoriales"))
}

func TestRowCursorFollowsFilter(t *testing.T) {
	a := newTestApp(t, catalog.FixtureProvider{})
	load(t, a)

	for i := 0; i < 20; i++ {
		press(a, keyDown)
	}
	require.Equal(t, 7, a.rowCursor)

	press(a, keyRight, keySpace)
	require.Equal(t, 0, a.rowCursor)
	require.Contains(t, a.View(), "Scrutin proportionnel de liste à un tour", "details pane follows the highlighted card")
}

func TestViewFitsWindowHeight(t *testing.T) {
	a := newTestApp(t, catalog.FixtureProvider{})
	a.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	require.LessOrEqual(t, lipgloss.Height(a.View()), 24, "loading screen")

	load(t, a)
	view := a.View()
	require.LessOrEqual(t, lipgloss.Height(view), 24)
	require.Contains(t, view, appTitle)
	require.Contains(t, view, "Élections municipales")
	require.NotContains(t, view, "(série 1)")

	for i := 0; i < 7; i++ {
		press(a, keyDown)
		require.LessOrEqual(t, lipgloss.Height(a.View()), 24, "after %d moves", i+1)
	}
	require.Equal(t, 7, a.rowCursor)

	view = a.View()
	require.Contains(t, view, appTitle, "header stays on screen")
	require.Contains(t, view, "Municipales", "chips stay on screen")
	require.Contains(t, view, "Élections sénatoriales (série 1)", "highlighted card is scrolled into view")
	require.NotContains(t, view, "Élections municipales")
	require.Contains(t, view, "pgup/pgdn")

	press(a, keyUp)
	require.Contains(t, a.View(), "Élections européennes")
}

func TestViewShrinksWithWindow(t *testing.T) {
	a := newTestApp(t, catalog.FixtureProvider{})
	load(t, a)
	press(a, keyDown, keyDown, keyDown)

	for _, h := range []int{40, 24, 12, 3} {
		a.Update(tea.WindowSizeMsg{Width: 60, Height: h})
		require.LessOrEqual(t, lipgloss.Height(a.View()), h, "height %d", h)
	}
}

func TestPageKeysScrollList(t *testing.T) {
	a := newTestApp(t, catalog.FixtureProvider{})
	a.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	load(t, a)
	require.Zero(t, a.viewport.YOffset)

	press(a, keyPgDn)
	offset := a.viewport.YOffset
	require.Positive(t, offset)
	require.Equal(t, 0, a.rowCursor, "paging leaves the highlight alone")

	a.Update(clockMsg(fixedNow))
	require.Equal(t, offset, a.viewport.YOffset, "a redraw keeps the scroll position")

	press(a, keyPgUp)
	require.Zero(t, a.viewport.YOffset)
}

func TestDetailsPaneOnlyForHighlightedCard(t *testing.T) {
	a := newTestApp(t, catalog.FixtureProvider{})
	load(t, a)

	view := a.View()
	require.Contains(t, view, "Scrutin proportionnel de liste avec prime majoritaire")
	require.NotContains(t, view, "Scrutin uninominal majoritaire à deux tours")

	press(a, keyDown, keyDown)
	view = a.View()
	require.NotContains(t, view, "Scrutin proportionnel de liste avec prime majoritaire")
	require.Contains(t, view, "Scrutin uninominal majoritaire à deux tours")
}

func TestRetrievalFailureShowsAlert(t *testing.T) {
	a := newTestApp(t, stubProvider{err: errors.New("network down")})
	load(t, a)

	require.Equal(t, listing.PhaseFailed, a.State().Phase())
	view := a.View()
	require.Contains(t, view, errorTitle)
	require.Contains(t, view, errorText)
	require.NotContains(t, view, loadingText)
	require.NotContains(t, view, emptyText)
	require.NotContains(t, view, "network down", "internal errors stay in the log")

	press(a, keySpace, runes("r"))
	require.True(t, a.State().Selection().Empty())
}

func TestEmptyCatalogMessage(t *testing.T) {
	a := newTestApp(t, stubProvider{})
	load(t, a)
	require.Contains(t, a.View(), emptyText)
}

func TestPreselectedTypes(t *testing.T) {
	a := newTestApp(t, catalog.FixtureProvider{}, "municipale", "presidentielle", "cantonales")
	load(t, a)

	require.Equal(t, []string{"Municipales", "Présidentielle"}, a.State().Selection().Labels())
	view := a.View()
	require.Contains(t, view, resetText)
	require.Contains(t, view, "cantonales")
	require.NotContains(t, view, "Élections européennes")
}

func TestCountdownBadge(t *testing.T) {
	records := []election.Record{
		testdata.Election("soon", "Municipales", testdata.Fixed("2026-10-18")),
		testdata.Election("later", "Législatives", testdata.Fixed("2026-11-27")),
	}
	a := newTestApp(t, stubProvider{records: records})
	load(t, a)

	view := a.View()
	require.Contains(t, view, "1 jour restant")
	require.Contains(t, view, "41 jours restants")
	require.Contains(t, view, "18 octobre 2026")
	require.NotContains(t, view, "Date à définir")
}

func TestQuit(t *testing.T) {
	a := newTestApp(t, catalog.FixtureProvider{})
	_, cmd := a.Update(runes("q"))
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestClockTickReschedules(t *testing.T) {
	a := newTestApp(t, catalog.FixtureProvider{})
	_, cmd := a.Update(clockMsg(fixedNow))
	require.NotNil(t, cmd)
}
