package risk

import "github.com/freifahren/sichtungskern/internal/topology"

// contributeMinimal is a degraded fallback (§9, RISK_ENGINE_VARIANT=minimal):
// direct channel only, with no temporal or spatial decay at all: a report
// with both a station and a direction adds 0.8 to its anchor segment and
// nothing to any other segment. Exists for deployments that want a cheap,
// decay-free approximation; never the default.
func contributeMinimal(topo *topology.Topology, accum map[string]*channels, report Report, lineID string, isMulti bool, ageSeconds float64) {
	if report.DirectionID == nil || report.StationID == nil {
		return
	}

	anchor, ok := anchorRank(topo, lineID, *report.StationID)
	if !ok {
		return
	}

	for _, seg := range topo.SegmentsForLine(lineID) {
		if seg.Rank == anchor {
			accum[seg.SID].addDirect(0.8)
		}
	}
}
