package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/jask/elections/internal/election"
	"github.com/jask/elections/internal/listing"
)

const (
	appTitle     = "Prochaines Élections Françaises"
	loadingText  = "Chargement des élections…"
	errorTitle   = "Erreur"
	errorText    = "Échec de la récupération des données électorales. Veuillez réessayer plus tard."
	emptyText    = "Aucune élection à venir ne correspond aux critères sélectionnés."
	resetText    = "Réinitialiser les filtres"
	pendingText  = "Date à définir"
	sourceText   = "Source des données : Service-Public.fr"
	sourceURL    = "https://www.service-public.fr/particuliers/vosdroits/F1939"
	defaultWidth = 80
	minCardWidth = 40
	clockLayout  = "02/01/2006 15:04"
	chipMarker   = "✓ "
)

func (a *App) View() string {
	v := a.project()
	width := a.viewWidth()

	var body string
	switch {
	case v.Loading:
		body = a.spinner.View() + " " + dimStyle.Render(loadingText)
	case v.Err != nil:
		body = alertStyle.Width(width - 2).Render(labelStyle.Foreground(colorError).Render(errorTitle) + "\n" + errorText)
	case len(v.Entries) == 0:
		body = emptyStyle.Render(emptyText)
	case a.height > 0:
		body = a.viewport.View()
	default:
		body, _, _ = a.renderEntries(v.Entries, width)
	}

	out := a.renderTop(v, width) + "\n" + body + "\n" + a.renderBottom(v, width)
	if a.height > 0 {
		out = clipHeight(out, a.height)
	}
	return out
}

// layout sizes the card viewport to the rows left between the top and
// bottom bars and scrolls the highlighted card into view when asked to.
func (a *App) layout() {
	v := a.project()
	if a.height <= 0 || v.Loading || v.Err != nil || len(v.Entries) == 0 {
		return
	}
	width := a.viewWidth()
	content, start, end := a.renderEntries(v.Entries, width)
	chrome := lipgloss.Height(a.renderTop(v, width)) + lipgloss.Height(a.renderBottom(v, width))
	a.viewport.Width = width
	a.viewport.Height = max(1, a.height-chrome)
	a.viewport.SetContent(content)
	a.viewport.SetYOffset(a.viewport.YOffset)
	if !a.follow {
		return
	}
	a.follow = false
	switch {
	case start < a.viewport.YOffset:
		a.viewport.SetYOffset(start)
	case end > a.viewport.YOffset+a.viewport.Height:
		// A card taller than the viewport shows from its top.
		a.viewport.SetYOffset(min(start, end-a.viewport.Height))
	}
}

func (a *App) viewWidth() int {
	if a.width <= 0 {
		return defaultWidth
	}
	return a.width
}

// renderTop is everything above the card list, ending with a blank line.
func (a *App) renderTop(v listing.View, width int) string {
	lines := []string{a.renderHeader(width)}
	if chips := a.renderChips(v, width); chips != "" {
		lines = append(lines, chips)
	}
	if !v.Selection.Empty() {
		lines = append(lines, resetStyle.Render("↺ "+resetText+" (r)"))
	}
	if a.notice != "" {
		lines = append(lines, dimStyle.Render(a.notice))
	}
	return strings.Join(append(lines, ""), "\n")
}

// renderBottom is the source attribution and key help, after a blank line.
func (a *App) renderBottom(v listing.View, width int) string {
	source := footerStyle.Render(sourceText + " (" + sourceURL + ")")
	if lipgloss.Width(source) > width {
		source = footerStyle.Render(sourceText) + "\n" + footerStyle.Render(sourceURL)
	}
	return "\n" + source + "\n" + ansi.Truncate(a.renderHelp(v), width, "…")
}

func clipHeight(s string, height int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	return strings.Join(lines, "\n")
}

func (a *App) renderHeader(width int) string {
	title := titleStyle.Render(appTitle)
	clock := clockStyle.Render(a.now().In(a.loc).Format(clockLayout))
	gap := width - lipgloss.Width(title) - lipgloss.Width(clock)
	if gap < 1 {
		gap = 1
	}
	return title + strings.Repeat(" ", gap) + clock
}

// renderChips lays the type chips out in as many rows as the width needs.
func (a *App) renderChips(v listing.View, width int) string {
	if len(v.Types) == 0 {
		return ""
	}
	var rows, row []string
	rowWidth := 0
	for i, t := range v.Types {
		color := typeColor(t)
		style := chipStyle.BorderForeground(colorSurface1).Foreground(color)
		marker := ""
		if v.Selection.Has(t) {
			style = style.BorderForeground(color).Bold(true)
			marker = chipMarker
		}
		if i == a.chipCursor {
			style = style.BorderForeground(colorFocus).Underline(true)
		}
		chip := style.Render(marker + t)
		w := lipgloss.Width(chip)
		if len(row) > 0 && rowWidth+w > width {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row, rowWidth = nil, 0
		}
		row = append(row, chip)
		rowWidth += w
	}
	rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	return strings.Join(rows, "\n")
}

// renderEntries renders the cards and reports the line span [start, end) of
// the highlighted one.
func (a *App) renderEntries(entries []listing.Entry, width int) (content string, start, end int) {
	cardWidth := max(minCardWidth, width) - 2
	cards := make([]string, 0, len(entries))
	line := 0
	for i, e := range entries {
		style := cardStyle
		if i == a.rowCursor {
			style = cardFocusStyle
		}
		card := style.Width(cardWidth).Render(a.renderCard(e, i == a.rowCursor))
		h := lipgloss.Height(card)
		if i == a.rowCursor {
			start, end = line, line+h
		}
		line += h
		cards = append(cards, card)
	}
	return strings.Join(cards, "\n"), start, end
}

func (a *App) renderCard(e listing.Entry, focused bool) string {
	r := e.Record
	typeBadge := badgeStyle.Background(typeColor(r.Type)).Render(r.Type)
	lines := []string{
		cardTitleStyle.Render(r.Name) + "  " + typeBadge,
	}
	if r.Description != "" {
		lines = append(lines, dimStyle.Render(r.Description))
	}

	date := labelStyle.Render("Date : ") + a.format.FormatRounds(r.Dates)
	if first, ok := r.FirstRound(); ok && !first.IsDateFixed {
		date += " " + pendingStyle.Render(pendingText)
	}
	remaining := badgeStyle.Background(urgencyColor(e.Urgency)).Render(a.format.RemainingLabel(e.Remaining))
	lines = append(lines, "", date+"  "+remaining)
	lines = append(lines, labelStyle.Render("Format de l'élection : ")+a.format.RoundsLabel(r.Rounds))
	if r.PreviousElection != "" {
		lines = append(lines, labelStyle.Render("Précédent vote : ")+dimStyle.Render(r.PreviousElection))
	}
	if r.DateFixation != "" {
		lines = append(lines, labelStyle.Render("Fixation de la date précise : ")+dimStyle.Render(r.DateFixation))
	}
	if focused {
		if d := renderDetails(r); d != "" {
			lines = append(lines, detailStyle.Render(d))
		}
	}
	return strings.Join(lines, "\n")
}

// renderDetails shows the voting method of the highlighted election.
func renderDetails(r election.Record) string {
	var parts []string
	if r.ModeScrutin != "" {
		parts = append(parts, labelStyle.Render("Mode de scrutin : ")+r.ModeScrutin)
	}
	if r.DetailsScrutin != "" {
		parts = append(parts, dimStyle.Render(r.DetailsScrutin))
	}
	return strings.Join(parts, "\n")
}

func (a *App) renderHelp(v listing.View) string {
	scrolls := a.height > 0 && a.viewport.TotalLineCount() > a.viewport.Height
	bindings := a.keys.help(len(v.Types) > 0, !v.Selection.Empty(), len(v.Entries) > 0, scrolls)
	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		if h.Key == "" && h.Desc == "" {
			continue
		}
		parts = append(parts, keyStyle.Render(h.Key)+descStyle.Render(" "+h.Desc))
	}
	return strings.Join(parts, descStyle.Render("  "))
}

func joinLabels(labels []string) string {
	return strings.Join(labels, ", ")
}
