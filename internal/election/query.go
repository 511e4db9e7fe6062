package election

import (
	"maps"
	"slices"
)

// Types returns the distinct election types in byte-wise lexicographic
// order of the raw labels.
func Types(records []Record) []string {
	seen := make(map[string]struct{}, len(records))
	out := make([]string, 0, len(records))
	for _, r := range records {
		if _, ok := seen[r.Type]; ok {
			continue
		}
		seen[r.Type] = struct{}{}
		out = append(out, r.Type)
	}
	slices.Sort(out)
	return out
}

// Selection is the set of election types the user filters on. The zero
// value is the empty selection, which lets every record through.
// Selections are values: Toggle and Clear return new selections.
type Selection struct {
	labels map[string]struct{}
}

// NewSelection builds a selection holding labels; duplicates collapse.
func NewSelection(labels ...string) Selection {
	if len(labels) == 0 {
		return Selection{}
	}
	set := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		set[l] = struct{}{}
	}
	return Selection{labels: set}
}

// Toggle adds label when absent and removes it when present.
func (s Selection) Toggle(label string) Selection {
	next := make(map[string]struct{}, len(s.labels)+1)
	maps.Copy(next, s.labels)
	if _, ok := next[label]; ok {
		delete(next, label)
	} else {
		next[label] = struct{}{}
	}
	return Selection{labels: next}
}

func (s Selection) Clear() Selection { return Selection{} }

func (s Selection) Has(label string) bool {
	_, ok := s.labels[label]
	return ok
}

func (s Selection) Len() int { return len(s.labels) }

func (s Selection) Empty() bool { return len(s.labels) == 0 }

// Labels returns the selected labels sorted.
func (s Selection) Labels() []string {
	out := slices.Collect(maps.Keys(s.labels))
	slices.Sort(out)
	return out
}

// Matches reports whether r passes the filter.
func (s Selection) Matches(r Record) bool {
	return s.Empty() || s.Has(r.Type)
}

// Filter keeps the records matching sel, in input order.
func Filter(records []Record, sel Selection) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if sel.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}

// SortByFirstRound returns records ordered by the date of their first
// round. Equal dates keep their input order. Records without rounds sort
// last.
func SortByFirstRound(records []Record) []Record {
	out := slices.Clone(records)
	slices.SortStableFunc(out, compareFirstRound)
	return out
}

func compareFirstRound(a, b Record) int {
	fa, okA := a.FirstRound()
	fb, okB := b.FirstRound()
	switch {
	case !okA && !okB:
		return 0
	case !okA:
		return 1
	case !okB:
		return -1
	}
	return fa.Date.Compare(fb.Date)
}
