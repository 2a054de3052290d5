package topology

import "strings"

// SynonymTable maps a canonical station id to the lower-cased, accent
// preserving alternative spellings that must resolve to it (§3 "Synonym
// table"). Synonym sets of distinct stations are disjoint by construction:
// NewSynonymTable resolves conflicts by first entry wins.
type SynonymTable struct {
	// canonical station id -> synonym strings (lower-case)
	byStation map[string][]string
	// lower-case synonym -> canonical station id, first writer wins
	index map[string]string
}

// NewSynonymTable builds a table from a raw station id -> alternative
// spellings mapping. Entries are processed in the order given by order (a
// deterministic iteration order supplied by the caller, since Go map
// iteration is randomized) so that conflicting synonyms resolve to
// whichever station claims them first; a nil order falls back to map
// iteration order, under which conflicts resolve arbitrarily.
func NewSynonymTable(raw map[string][]string, order []string) *SynonymTable {
	t := &SynonymTable{
		byStation: make(map[string][]string, len(raw)),
		index:     make(map[string]string),
	}

	keys := order
	if keys == nil {
		for k := range raw {
			keys = append(keys, k)
		}
	}

	for _, stationID := range keys {
		for _, alt := range raw[stationID] {
			lower := strings.ToLower(strings.TrimSpace(alt))
			if lower == "" {
				continue
			}
			if _, taken := t.index[lower]; taken {
				continue // first match wins deterministically, per §3
			}
			t.index[lower] = stationID
			t.byStation[stationID] = append(t.byStation[stationID], lower)
		}
	}

	return t
}

// Resolve returns the canonical station id for a lower-cased synonym, if
// any. The input is matched case-insensitively.
func (t *SynonymTable) Resolve(text string) (stationID string, ok bool) {
	stationID, ok = t.index[strings.ToLower(strings.TrimSpace(text))]
	return
}

// For returns every synonym registered for a station id.
func (t *SynonymTable) For(stationID string) []string {
	return t.byStation[stationID]
}
