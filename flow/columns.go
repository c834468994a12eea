package flow

import (
	"strings"
	"sync"
)

// ColumnCandidates defines accepted header tokens for locating the source,
// destination and amount columns. Tokens are compared against headers that
// were lowercased and stripped of internal spaces.
type ColumnCandidates struct {
	Source      []string `json:"source"`
	Destination []string `json:"destination"`
	Amount      []string `json:"amount"`
}

var (
	columnCandidatesMu sync.RWMutex
	activeCandidates   = defaultColumnCandidates()
)

func defaultColumnCandidates() ColumnCandidates {
	return ColumnCandidates{
		Source:      []string{"from"},
		Destination: []string{"to"},
		Amount:      []string{"amount", "amt"},
	}
}

// DefaultColumnCandidates returns the built-in column detection candidates.
func DefaultColumnCandidates() ColumnCandidates {
	return defaultColumnCandidates().clone()
}

// SetColumnCandidates updates the candidates used during header resolution.
// Fields left nil fall back to the built-in defaults, allowing callers to
// override only the roles they need.
func SetColumnCandidates(candidates ColumnCandidates) {
	columnCandidatesMu.Lock()
	defer columnCandidatesMu.Unlock()
	activeCandidates = candidates.withDefaults()
}

func getColumnCandidates() ColumnCandidates {
	columnCandidatesMu.RLock()
	defer columnCandidatesMu.RUnlock()
	return activeCandidates.clone()
}

func (c ColumnCandidates) withDefaults() ColumnCandidates {
	defaults := defaultColumnCandidates()
	return ColumnCandidates{
		Source:      pickStrings(c.Source, defaults.Source),
		Destination: pickStrings(c.Destination, defaults.Destination),
		Amount:      pickStrings(c.Amount, defaults.Amount),
	}
}

func (c ColumnCandidates) clone() ColumnCandidates {
	return ColumnCandidates{
		Source:      cloneStrings(c.Source),
		Destination: cloneStrings(c.Destination),
		Amount:      cloneStrings(c.Amount),
	}
}

func pickStrings(custom, fallback []string) []string {
	if custom == nil {
		return cloneStrings(fallback)
	}
	return cloneStrings(custom)
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}

// findColumn returns the index of the first header matching any candidate
// exactly, then falls back to the first header containing a candidate as a
// substring. Left-to-right order wins on ambiguity, so a substring hit on an
// unrelated earlier header shadows a better later one; callers relying on
// exact names are unaffected because the exact pass runs over all headers
// first. Returns -1 when nothing matches.
func findColumn(headers []string, candidates []string) int {
	keys := make([]string, len(headers))
	for i, h := range headers {
		keys[i] = matchKey(h)
	}
	for i, key := range keys {
		for _, cand := range candidates {
			if key == cand {
				return i
			}
		}
	}
	for i, key := range keys {
		if key == "" {
			continue
		}
		for _, cand := range candidates {
			if strings.Contains(key, cand) {
				return i
			}
		}
	}
	return -1
}
