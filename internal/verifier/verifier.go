// Package verifier implements §4.C: a small, ordered set of topology-aware
// correction rules applied to a freshly extracted Candidate. Grounded on
// original_source/packages/FreiFahren_BE-NLP/verify_info.py's habit of
// running independent cross-field corrections one after another over a
// single mutable record; here each rule takes an immutable Candidate and
// returns a (possibly identical) new one. No rule rejects a candidate; the
// one error Verify can return is the tagger's, when rule V3 re-runs station
// detection.
package verifier

import (
	"context"
	"regexp"
	"strings"

	"github.com/freifahren/sichtungskern/internal/extractor"
	"github.com/freifahren/sichtungskern/internal/ner"
	"github.com/freifahren/sichtungskern/internal/topology"
)

var ringWordPattern = regexp.MustCompile(`(?i)\b(ring|ringbahn)\b`)

// ringLineID is the canonical ring line used by rule V1. Berlin's two ring
// services (S41 clockwise, S42 counter-clockwise) share the same physical
// track; the source always names S41 when a report only says "Ringbahn".
const ringLineID = "S41"

// Verify implements §4.C in full, rules V1 through V4, in order. Rule V3
// re-runs station detection, so Verify needs the same topology/tagger
// dependencies the Extractor used to build candidate in the first place.
func Verify(ctx context.Context, candidate *extractor.Candidate, text string, topo *topology.Topology, tagger ner.Tagger) (*extractor.Candidate, error) {
	if candidate == nil {
		return nil, nil
	}
	result := *candidate

	result = ringLineImplicit(result, text, topo)
	result = ringDirectionless(result, topo)

	swapped, err := directionAsName(ctx, result, text, topo, tagger)
	if err != nil {
		return nil, err
	}
	result = swapped

	result = soleLineInference(result, topo)

	return &result, nil
}

// ringLineImplicit is rule V1: a bare "ring"/"ringbahn" mention implies S41
// when no line was otherwise detected.
func ringLineImplicit(c extractor.Candidate, text string, topo *topology.Topology) extractor.Candidate {
	if c.LineID != nil {
		return c
	}
	stripped := strings.NewReplacer(",", "", ".", "").Replace(strings.ToLower(text))
	if !ringWordPattern.MatchString(stripped) {
		return c
	}
	if _, ok := topo.Line(ringLineID); !ok {
		return c
	}
	id := ringLineID
	c.LineID = &id
	return c
}

// ringDirectionless is rule V2: ring lines have no terminus, so a detected
// direction on one is never meaningful.
func ringDirectionless(c extractor.Candidate, topo *topology.Topology) extractor.Candidate {
	if c.LineID == nil || !topo.IsRing(*c.LineID) {
		return c
	}
	c.DirectionStationID = nil
	return c
}

// directionAsName is rule V3: a terminus named directly after the line id
// in the raw text ("U8 Wittenau") is idiomatically a direction, not the
// sighted station — re-resolve the real station with that token removed.
func directionAsName(ctx context.Context, c extractor.Candidate, text string, topo *topology.Topology, tagger ner.Tagger) (extractor.Candidate, error) {
	if c.StationID == nil || c.DirectionStationID == nil || c.LineID == nil {
		return c, nil
	}

	tokens := strings.Fields(strings.ToLower(strings.NewReplacer(",", " ", ".", " ", "-", " ", "/", " ").Replace(text)))
	lineIdx := -1
	for i, tok := range tokens {
		if strings.EqualFold(tok, *c.LineID) {
			lineIdx = i
			break
		}
	}
	if lineIdx == -1 || lineIdx+1 >= len(tokens) {
		return c, nil
	}

	nextToken := tokens[lineIdx+1]
	terminusID, ok := extractor.ResolveWord(topo, c.LineID, nextToken)
	if !ok || !topo.IsTerminus(*c.LineID, terminusID) {
		return c, nil
	}

	withoutToken := removeWholeWord(text, nextToken)
	reresolved, err := extractor.DetectStation(ctx, withoutToken, topo, tagger, c.LineID)
	if err != nil {
		return c, err
	}
	if reresolved.Station == nil || *reresolved.Station == terminusID || (c.StationID != nil && *reresolved.Station == *c.StationID) {
		return c, nil
	}

	c.StationID = reresolved.Station
	id := terminusID
	c.DirectionStationID = &id
	return c, nil
}

// soleLineInference is rule V4: a station that lies on exactly one line
// settles the line field when extraction left it null.
func soleLineInference(c extractor.Candidate, topo *topology.Topology) extractor.Candidate {
	if c.StationID == nil || c.LineID != nil {
		return c
	}
	lines := topo.LinesOfStation(*c.StationID)
	if len(lines) != 1 {
		return c
	}
	id := lines[0]
	c.LineID = &id
	return c
}

func removeWholeWord(text, word string) string {
	re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(word) + `\b`)
	return strings.Join(strings.Fields(re.ReplaceAllString(text, " ")), " ")
}
