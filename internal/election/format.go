package election

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ErrUnsupportedLocale is returned for locales other than French.
var ErrUnsupportedLocale = errors.New("unsupported locale")

var frenchMonths = [...]string{
	"janvier", "février", "mars", "avril", "mai", "juin",
	"juillet", "août", "septembre", "octobre", "novembre", "décembre",
}

var frenchBase, _ = language.French.Base()

// ParseLocale parses a BCP 47 tag such as "fr-FR".
func ParseLocale(s string) (language.Tag, error) {
	tag, err := language.Parse(strings.TrimSpace(s))
	if err != nil {
		return language.Und, fmt.Errorf("%w: %q: %v", ErrUnsupportedLocale, s, err)
	}
	return tag, nil
}

// Formatter renders dates and labels for display.
type Formatter struct {
	tag     language.Tag
	printer *message.Printer
}

// NewFormatter returns a formatter for tag. Only French is supported.
func NewFormatter(tag language.Tag) (*Formatter, error) {
	if base, _ := tag.Base(); base != frenchBase {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLocale, tag)
	}
	return &Formatter{tag: tag, printer: message.NewPrinter(tag)}, nil
}

func (f *Formatter) Locale() language.Tag { return f.tag }

// FormatDate renders "15 mars 2026" for a fixed date and "mars 2026"
// otherwise. The stored day of an approximate date is never shown.
func (f *Formatter) FormatDate(rd RoundDate) string {
	if rd.Date.Month < time.January || rd.Date.Month > time.December {
		return rd.Date.String()
	}
	month := frenchMonths[rd.Date.Month-1]
	if d, ok := rd.Day(); ok {
		return fmt.Sprintf("%d %s %d", d, month, rd.Date.Year)
	}
	return fmt.Sprintf("%s %d", month, rd.Date.Year)
}

// RemainingLabel renders the countdown badge text.
func (f *Formatter) RemainingLabel(rem Remaining) string {
	switch {
	case rem.Completed:
		return "Terminée"
	case rem.Days <= 1:
		return "1 jour restant"
	default:
		return f.printer.Sprintf("%d jours restants", rem.Days)
	}
}

// RoundsLabel renders "1 tour" / "2 tours".
func (f *Formatter) RoundsLabel(n int) string {
	if n > 1 {
		return f.printer.Sprintf("%d tours", n)
	}
	return f.printer.Sprintf("%d tour", n)
}

// RoundName renders the ordinal name of round n.
func (f *Formatter) RoundName(n, of int) string {
	switch {
	case n == 1:
		return "1er tour"
	case n == 2 && of == 2:
		return "2nd tour"
	default:
		return fmt.Sprintf("%de tour", n)
	}
}

// FormatRounds lists every round with its date.
func (f *Formatter) FormatRounds(dates []RoundDate) string {
	if len(dates) == 1 {
		return f.FormatDate(dates[0])
	}
	parts := make([]string, 0, len(dates))
	for _, rd := range dates {
		parts = append(parts, fmt.Sprintf("%s : %s", f.RoundName(rd.Round, len(dates)), f.FormatDate(rd)))
	}
	return strings.Join(parts, " · ")
}
