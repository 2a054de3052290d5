package extractor

import (
	"context"

	"github.com/freifahren/sichtungskern/internal/errs"
	"github.com/freifahren/sichtungskern/internal/ner"
	"github.com/freifahren/sichtungskern/internal/topology"
)

// Candidate is the output of extraction: optional line, station, and
// direction, any subset of which may be absent (§2's Ticket-Inspector
// Candidate entity).
type Candidate struct {
	LineID          *string
	StationID       *string
	DirectionStationID *string
}

func (c Candidate) isEmpty() bool {
	return c.LineID == nil && c.StationID == nil && c.DirectionStationID == nil
}

// Extract implements §4.B in full: line detection, then direction
// detection on the full text, then station detection on the residual text
// constrained by the detected line. Returns nil iff no line, station, or
// direction was found.
func Extract(ctx context.Context, text string, topo *topology.Topology, tagger ner.Tagger) (*Candidate, error) {
	var lineID *string
	if m := DetectLine(text, topo); m.Kind == errs.OneMatch {
		lineID = strPtr(m.Value)
	}

	pool := buildPool(topo, lineID)
	resolver := func(word string) (string, bool) {
		return resolveAgainstPool(word, pool, matchThreshold)
	}
	dir := DetectDirection(text, resolver)

	station, err := DetectStation(ctx, dir.Residual, topo, tagger, lineID)
	if err != nil {
		return nil, err
	}

	directionID := dir.Direction
	if directionID == nil {
		// §4.B.3 step 4: the secret-direction rule only applies when
		// direction detection itself came up empty.
		directionID = station.SecretDirection
	}

	candidate := Candidate{
		LineID:             lineID,
		StationID:          station.Station,
		DirectionStationID: directionID,
	}
	if candidate.isEmpty() {
		return nil, nil
	}
	return &candidate, nil
}
