// Package election holds the election catalog model and the pure
// query/projection functions used to list upcoming elections.
package election

import (
	"cmp"
	"fmt"
	"strings"
	"time"
)

const civilLayout = "2006-01-02"

// CivilDate is a calendar day without time of day or zone.
type CivilDate struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseCivilDate parses a YYYY-MM-DD string.
func ParseCivilDate(s string) (CivilDate, error) {
	t, err := time.Parse(civilLayout, strings.TrimSpace(s))
	if err != nil {
		return CivilDate{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// MustCivilDate is ParseCivilDate for literals known to be valid.
func MustCivilDate(s string) CivilDate {
	d, err := ParseCivilDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// DateOf returns the calendar day of t in t's location.
func DateOf(t time.Time) CivilDate {
	y, m, d := t.Date()
	return CivilDate{Year: y, Month: m, Day: d}
}

func (d CivilDate) IsZero() bool { return d == CivilDate{} }

// In returns midnight of d in loc (time.Local when loc is nil).
func (d CivilDate) In(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to
// or after o.
func (d CivilDate) Compare(o CivilDate) int {
	if c := cmp.Compare(d.Year, o.Year); c != 0 {
		return c
	}
	if c := cmp.Compare(d.Month, o.Month); c != 0 {
		return c
	}
	return cmp.Compare(d.Day, o.Day)
}

func (d CivilDate) Before(o CivilDate) bool { return d.Compare(o) < 0 }

func (d CivilDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

func (d CivilDate) MarshalText() ([]byte, error) {
	if d.IsZero() {
		return []byte{}, nil
	}
	return []byte(d.String()), nil
}

func (d *CivilDate) UnmarshalText(b []byte) error {
	if len(strings.TrimSpace(string(b))) == 0 {
		*d = CivilDate{}
		return nil
	}
	parsed, err := ParseCivilDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// RoundDate is the scheduled day of one voting round. When IsDateFixed is
// false only the year and month are known; the stored day is a placeholder.
type RoundDate struct {
	Round       int       `json:"round" validate:"min=1"`
	Date        CivilDate `json:"date"`
	IsDateFixed bool      `json:"isDateFixed"`
}

// Day returns the day of month only when it is officially fixed.
func (rd RoundDate) Day() (int, bool) {
	if !rd.IsDateFixed {
		return 0, false
	}
	return rd.Date.Day, true
}

// Approximate reports whether the round is only known to the month.
func (rd RoundDate) Approximate() bool { return !rd.IsDateFixed }

// Record is one election of the catalog.
type Record struct {
	ID               string      `json:"id" validate:"required"`
	Type             string      `json:"type" validate:"required"`
	Name             string      `json:"name" validate:"required"`
	Description      string      `json:"description"`
	Rounds           int         `json:"rounds" validate:"min=1"`
	Dates            []RoundDate `json:"dates" validate:"required,dive"`
	PreviousElection string      `json:"previousElection,omitempty"`
	DateFixation     string      `json:"dateFixation,omitempty"`
	ModeScrutin      string      `json:"modeScrutin,omitempty"`
	DetailsScrutin   string      `json:"detailsScrutin,omitempty"`
}

// FirstRound returns the first round, if any.
func (r Record) FirstRound() (RoundDate, bool) {
	if len(r.Dates) == 0 {
		return RoundDate{}, false
	}
	return r.Dates[0], true
}

// Clone returns a copy that shares no slices with r.
func (r Record) Clone() Record {
	out := r
	if r.Dates != nil {
		out.Dates = append([]RoundDate(nil), r.Dates...)
	}
	return out
}

// New validates r and returns an independent copy of it.
func New(r Record) (Record, error) {
	if err := Validate(r); err != nil {
		return Record{}, err
	}
	return r.Clone(), nil
}

// NewCatalog validates every record and rejects duplicate ids. It returns
// independent copies in input order, or an error and no records.
func NewCatalog(records []Record) ([]Record, error) {
	out := make([]Record, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for _, r := range records {
		rec, err := New(r)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[rec.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, rec.ID)
		}
		seen[rec.ID] = struct{}{}
		out = append(out, rec)
	}
	return out, nil
}
