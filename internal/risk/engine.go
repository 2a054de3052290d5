package risk

import (
	"time"

	"github.com/freifahren/sichtungskern/internal/topology"
)

// Variant selects which subset of §4.E.1's channel/decay machinery a
// Predict call exercises. Full is the only one spec.md actually specifies;
// the other two exist purely as degraded fallbacks (§9, RISK_ENGINE_VARIANT)
// and must never be the default.
type Variant int

const (
	VariantFull Variant = iota
	VariantMinimal
	VariantTemporal
)

// Engine implements §4.E.
type Engine struct {
	topo    *topology.Topology
	variant Variant
}

// NewEngine binds an engine to a topology and a channel variant.
func NewEngine(topo *topology.Topology, variant Variant) *Engine {
	return &Engine{topo: topo, variant: variant}
}

// contributeFunc dispatches to the channel/decay machinery for the
// engine's configured variant.
func (e *Engine) contributeFunc() contributeFunc {
	switch e.variant {
	case VariantMinimal:
		return contributeMinimal
	case VariantTemporal:
		return contributeTemporal
	default:
		return contributeFull
	}
}

// contributeFunc accumulates one report's contribution to every segment of
// lineID into accum.
type contributeFunc func(topo *topology.Topology, accum map[string]*channels, report Report, lineID string, isMulti bool, ageSeconds float64)

// anchorRank implements §4.E.2: the rank of the first segment on lineID
// whose endpoints include stationID, in rank order.
func anchorRank(topo *topology.Topology, lineID, stationID string) (int, bool) {
	for _, seg := range topo.SegmentsForLine(lineID) {
		if seg.From == stationID || seg.To == stationID {
			return seg.Rank, true
		}
	}
	return 0, false
}

// Predict implements §4.E.3–§4.E.6: accumulate every report's contribution
// onto every segment of its line(s), take the final clamped sum per
// segment, propagate across colocated segments, and quantize. Never
// returns an error: malformed reports (unknown line, station not an
// endpoint of any segment on its line) are silently degraded per §4.E.6,
// not rejected.
func (e *Engine) Predict(reports []Report, now time.Time) map[string]string {
	segments := e.topo.AllSegments()
	accum := make(map[string]*channels, len(segments))
	for _, seg := range segments {
		accum[seg.SID] = &channels{}
	}

	contribute := e.contributeFunc()

	for _, report := range reports {
		ageSeconds := now.Sub(report.Timestamp).Seconds()
		isMulti := len(report.Lines) > 1

		for _, lineID := range report.Lines {
			if _, ok := e.topo.Line(lineID); !ok {
				continue // line absent from topology: silently dropped (§4.E.6)
			}
			contribute(e.topo, accum, report, lineID, isMulti, ageSeconds)
		}
	}

	risks := make(map[string]float64, len(segments))
	for sid, c := range accum {
		risks[sid] = c.total()
	}
	propagateColocation(e.topo, risks)

	return quantize(risks)
}

// propagateColocation implements §4.E.4's overlap propagation: every
// segment sharing a physical track with another receives the max risk
// among the colocated set.
func propagateColocation(topo *topology.Topology, risks map[string]float64) {
	seen := make(map[string]bool)
	for _, seg := range topo.AllSegments() {
		key := seg.From + "\x00" + seg.To
		if seg.From > seg.To {
			key = seg.To + "\x00" + seg.From
		}
		if seen[key] {
			continue
		}
		seen[key] = true

		group := topo.Colocated(seg.From, seg.To)
		if len(group) < 2 {
			continue
		}
		max := 0.0
		for _, g := range group {
			if risks[g.SID] > max {
				max = risks[g.SID]
			}
		}
		for _, g := range group {
			risks[g.SID] = max
		}
	}
}
