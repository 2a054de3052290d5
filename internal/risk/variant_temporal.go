package risk

import "github.com/freifahren/sichtungskern/internal/topology"

// contributeTemporal is a degraded fallback (§9, RISK_ENGINE_VARIANT=temporal):
// direct and bidirectional channels with temporal decay, but no spatial
// decay — a report affects every segment of its line equally regardless of
// distance from the anchor. Never the default.
func contributeTemporal(topo *topology.Topology, accum map[string]*channels, report Report, lineID string, isMulti bool, ageSeconds float64) {
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

	directTime := temporalDecay(ageSeconds, directTemporal)
	bidirectTime := temporalDecay(ageSeconds, bidirectTemporal)

	for _, seg := range topo.SegmentsForLine(lineID) {
		c := accum[seg.SID]
		c.addDirect(directBase * directTime)
		c.addBidirect(bidirectBase * bidirectTime)
	}
}
