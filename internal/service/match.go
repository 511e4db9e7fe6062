package service

import (
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const maxTypeDistance = 2

// foldLabel lowercases and strips diacritics: "Présidentielle" -> "presidentielle".
func foldLabel(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		out = strings.TrimSpace(s)
	}
	return strings.ToLower(out)
}

// ResolveTypes maps labels typed by a user (config file, flags) onto the
// known catalog types. Matching tries, in order: exact folded match,
// unique folded prefix of at least three letters, then the closest label
// within a small edit distance. Labels that match nothing are returned in
// unknown. resolved holds no duplicates.
func ResolveTypes(wanted, known []string) (resolved, unknown []string) {
	folded := make([]string, len(known))
	for i, k := range known {
		folded[i] = foldLabel(k)
	}
	seen := map[string]struct{}{}
	add := func(label string) {
		if _, ok := seen[label]; ok {
			return
		}
		seen[label] = struct{}{}
		resolved = append(resolved, label)
	}

	for _, w := range wanted {
		fw := foldLabel(w)
		if fw == "" {
			continue
		}
		if idx := matchType(fw, folded); idx >= 0 {
			add(known[idx])
			continue
		}
		unknown = append(unknown, w)
	}
	return resolved, unknown
}

func matchType(fw string, folded []string) int {
	for i, f := range folded {
		if f == fw {
			return i
		}
	}

	if len([]rune(fw)) >= 3 {
		hit := -1
		for i, f := range folded {
			if strings.HasPrefix(f, fw) {
				if hit >= 0 {
					hit = -2
					break
				}
				hit = i
			}
		}
		if hit >= 0 {
			return hit
		}
	}

	best, bestDist, tie := -1, maxTypeDistance+1, false
	for i, f := range folded {
		d := levenshtein.ComputeDistance(fw, f)
		switch {
		case d < bestDist:
			best, bestDist, tie = i, d, false
		case d == bestDist:
			tie = true
		}
	}
	if tie {
		return -1
	}
	return best
}
