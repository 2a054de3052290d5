package risk

import "github.com/freifahren/sichtungskern/internal/topology"

// contributeFull is the contract variant: all three channels, full
// temporal and spatial decay, exactly §4.E.1–§4.E.3.
func contributeFull(topo *topology.Topology, accum map[string]*channels, report Report, lineID string, isMulti bool, ageSeconds float64) {
	directBase := 0.0
	if report.DirectionID != nil {
		directBase = 0.8
	}

	bidirectBase := 1.0
	if report.DirectionID != nil {
		bidirectBase = 0.2
	}
	if isMulti {
		bidirectBase *= 0.2
	}

	lineBase := 0.05
	if report.StationID == nil {
		lineBase = 0.1
	}

	directTime := temporalDecay(ageSeconds, directTemporal)
	bidirectTime := temporalDecay(ageSeconds, bidirectTemporal)
	lineTime := temporalDecay(ageSeconds, lineTemporal)

	var anchor int
	var hasAnchor bool
	if report.StationID != nil {
		anchor, hasAnchor = anchorRank(topo, lineID, *report.StationID)
	}

	for _, seg := range topo.SegmentsForLine(lineID) {
		c := accum[seg.SID]

		if !hasAnchor {
			// No station, or station isn't an endpoint of any segment on
			// this line (§4.E.6): line-wide only, no spatial decay.
			c.addLine(lineBase * lineTime)
			continue
		}

		distance := seg.Rank - anchor
		c.addDirect(directBase * directTime * spatialDecay(distance, directSpatial))
		c.addBidirect(bidirectBase * bidirectTime * spatialDecay(distance, bidirectSpatial))
		c.addLine(lineBase * lineTime * spatialDecay(distance, lineSpatial))
	}
}
