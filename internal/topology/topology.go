package topology

import (
	"fmt"
	"sort"
	"strings"
)

// Topology is the immutable, process-lifetime view of the transit network:
// stations, lines, segments and two precomputed indices (§9 "Graph
// representation for §4.E"): line -> ordered segments, and unordered
// endpoint-pair -> colocated segments.
type Topology struct {
	stations map[string]Station
	lines    map[string]Line
	segments []Segment

	segmentsByLine map[string][]int // line id -> segment indices, sorted by rank
	colocated      map[string][]int // colocation key -> segment indices
	ringLines      map[string]bool
	synonyms       *SynonymTable
}

// Build validates the invariants of §3 and constructs the derived indices.
// A violation here is a programmer/data error: the caller (cmd/*/main.go)
// is expected to treat it as fatal and exit, per §7.
func Build(stations []Station, lines []Line, ringLineIDs []string, synonyms *SynonymTable) (*Topology, error) {
	t := &Topology{
		stations:       make(map[string]Station, len(stations)),
		lines:          make(map[string]Line, len(lines)),
		segmentsByLine: make(map[string][]int, len(lines)),
		colocated:      make(map[string][]int),
		ringLines:      make(map[string]bool, len(ringLineIDs)),
		synonyms:       synonyms,
	}

	for _, id := range ringLineIDs {
		t.ringLines[id] = true
	}

	for _, l := range lines {
		if len(l.Stations) < 2 {
			return nil, fmt.Errorf("topology: line %q has fewer than 2 stations", l.ID)
		}
		l.Ring = t.ringLines[l.ID]
		if _, exists := t.lines[l.ID]; exists {
			return nil, fmt.Errorf("topology: duplicate line id %q", l.ID)
		}
		t.lines[l.ID] = l
	}

	for _, s := range stations {
		for _, lid := range s.Lines {
			if _, ok := t.lines[lid]; !ok {
				return nil, fmt.Errorf("topology: station %q references unknown line %q", s.ID, lid)
			}
		}
		if _, exists := t.stations[s.ID]; exists {
			return nil, fmt.Errorf("topology: duplicate station id %q", s.ID)
		}
		t.stations[s.ID] = s
	}

	for _, l := range t.lines {
		for i := 0; i < len(l.Stations)-1; i++ {
			from, to := l.Stations[i], l.Stations[i+1]
			sid := fmt.Sprintf("%s.%s:%s", l.ID, from, to)
			seg := Segment{SID: sid, Line: l.ID, From: from, To: to, Rank: i}
			idx := len(t.segments)
			t.segments = append(t.segments, seg)
			t.segmentsByLine[l.ID] = append(t.segmentsByLine[l.ID], idx)
			key := colocationKey(from, to)
			t.colocated[key] = append(t.colocated[key], idx)
		}
	}

	for lid, idxs := range t.segmentsByLine {
		sort.Slice(idxs, func(i, j int) bool { return t.segments[idxs[i]].Rank < t.segments[idxs[j]].Rank })
		for i, idx := range idxs {
			if t.segments[idx].Rank != i {
				return nil, fmt.Errorf("topology: line %q segments are not contiguous 0..N-2", lid)
			}
		}
	}

	return t, nil
}

// Station looks up a station by id.
func (t *Topology) Station(id string) (Station, bool) {
	s, ok := t.stations[id]
	return s, ok
}

// Line looks up a line by id.
func (t *Topology) Line(id string) (Line, bool) {
	l, ok := t.lines[id]
	return l, ok
}

// IsRing reports whether the given line id is a configured ring line.
func (t *Topology) IsRing(lineID string) bool {
	return t.ringLines[lineID]
}

// LineIDsByDescendingLength returns every known line id, sorted by descending length (§4.B.1
// step 3, used by line detection so that e.g. "S41" is tried before a
// hypothetical shorter prefix of it).
func (t *Topology) LineIDsByDescendingLength() []string {
	ids := make([]string, 0, len(t.lines))
	for id := range t.lines {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if len(ids[i]) != len(ids[j]) {
			return len(ids[i]) > len(ids[j])
		}
		return ids[i] < ids[j]
	})
	return ids
}

// StationsOnLine returns every station id on the given line, in order.
func (t *Topology) StationsOnLine(lineID string) []string {
	l, ok := t.lines[lineID]
	if !ok {
		return nil
	}
	return l.Stations
}

// AllStationIDs returns every known station id.
func (t *Topology) AllStationIDs() []string {
	ids := make([]string, 0, len(t.stations))
	for id := range t.stations {
		ids = append(ids, id)
	}
	return ids
}

// Synonyms returns the loaded synonym table.
func (t *Topology) Synonyms() *SynonymTable {
	return t.synonyms
}

// SegmentsForLine returns the segments of a line, sorted by rank.
func (t *Topology) SegmentsForLine(lineID string) []Segment {
	idxs := t.segmentsByLine[lineID]
	out := make([]Segment, len(idxs))
	for i, idx := range idxs {
		out[i] = t.segments[idx]
	}
	return out
}

// AllSegments returns every segment in the topology.
func (t *Topology) AllSegments() []Segment {
	return t.segments
}

// Colocated returns every segment sharing the unordered endpoint pair
// {a, b}, i.e. the physical track of a given segment.
func (t *Topology) Colocated(a, b string) []Segment {
	idxs := t.colocated[colocationKey(a, b)]
	out := make([]Segment, len(idxs))
	for i, idx := range idxs {
		out[i] = t.segments[idx]
	}
	return out
}

// LinesOfStation returns the line ids a station lies on.
func (t *Topology) LinesOfStation(stationID string) []string {
	s, ok := t.stations[stationID]
	if !ok {
		return nil
	}
	return s.Lines
}

// IsTerminus reports whether stationID is the first or last station of
// lineID's ordered sequence (§4.C V3).
func (t *Topology) IsTerminus(lineID, stationID string) bool {
	l, ok := t.lines[lineID]
	if !ok {
		return false
	}
	first, last := l.Termini()
	return stationID == first || stationID == last
}

// normalizeKey lower-cases for case-insensitive comparisons used throughout
// the extractor/verifier.
func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
