// Package listing holds the session state of the election list and the
// single function that advances it.
package listing

import (
	"time"

	"github.com/jask/elections/internal/election"
)

// Phase is the catalog lifecycle: loading once, then ready or failed.
type Phase int

const (
	PhaseLoading Phase = iota
	PhaseReady
	PhaseFailed
)

// State is an immutable snapshot; Reduce returns a new one for each action.
type State struct {
	phase     Phase
	records   []election.Record
	types     []string
	selection election.Selection
	err       error
}

// Initial is the state before the catalog arrives: loading, no filter.
func Initial() State {
	return State{phase: PhaseLoading}
}

// Action is an intent applied by Reduce.
type Action interface {
	isAction()
}

// Loaded delivers the catalog.
type Loaded struct {
	Records []election.Record
}

// Failed reports that the catalog could not be retrieved.
type Failed struct {
	Err error
}

// ToggleType adds or removes a type from the filter.
type ToggleType struct {
	Label string
}

// ClearTypes empties the filter.
type ClearTypes struct{}

func (Loaded) isAction()     {}
func (Failed) isAction()     {}
func (ToggleType) isAction() {}
func (ClearTypes) isAction() {}

// Reduce applies a to s. The catalog is accepted only once: load results
// arriving after the first one are ignored.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case Loaded:
		if s.phase != PhaseLoading {
			return s
		}
		records := make([]election.Record, len(a.Records))
		for i, r := range a.Records {
			records[i] = r.Clone()
		}
		s.phase = PhaseReady
		s.records = records
		s.types = election.Types(records)
		s.err = nil
	case Failed:
		if s.phase != PhaseLoading {
			return s
		}
		s.phase = PhaseFailed
		s.records = nil
		s.types = nil
		s.err = a.Err
	case ToggleType:
		s.selection = s.selection.Toggle(a.Label)
	case ClearTypes:
		s.selection = s.selection.Clear()
	}
	return s
}

func (s State) Phase() Phase { return s.phase }

func (s State) Loading() bool { return s.phase == PhaseLoading }

func (s State) Err() error { return s.err }

func (s State) Selection() election.Selection { return s.selection }

func (s State) Types() []string { return append([]string(nil), s.types...) }

func (s State) Len() int { return len(s.records) }

// Entry is one election of the projected list.
type Entry struct {
	Record    election.Record
	Remaining election.Remaining
	Urgency   election.Urgency
}

// View is everything the presentation layer renders.
type View struct {
	Loading   bool
	Err       error
	Types     []string
	Selection election.Selection
	Entries   []Entry
}

// Project filters and sorts the catalog and computes the remaining time
// of each election as seen at now, with round dates read in loc.
func (s State) Project(now time.Time, loc *time.Location) View {
	v := View{
		Loading:   s.Loading(),
		Err:       s.err,
		Types:     s.Types(),
		Selection: s.selection,
	}
	if s.phase != PhaseReady {
		return v
	}
	sorted := election.SortByFirstRound(election.Filter(s.records, s.selection))
	v.Entries = make([]Entry, 0, len(sorted))
	for _, r := range sorted {
		rem := election.RemainingAt(r, now, loc)
		v.Entries = append(v.Entries, Entry{
			Record:    r,
			Remaining: rem,
			Urgency:   election.Classify(rem),
		})
	}
	return v
}
