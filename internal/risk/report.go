// Package risk implements §4.E: given a stream of timestamped sighting
// reports and the static topology, it scores every segment and quantizes
// the score to one of four colors. Grounded on
// original_source/packages/backend/api/prediction/risk_model.py, the
// three-channel beta-binomial model spec.md §9 names as canonical (the
// repository also carries an older networkx-graph-distance model and an R
// prototype under the same directory; neither is the contract here).
package risk

import "time"

// Report is the risk engine's view of a confirmed sighting (§3's Report
// entity): optional station, optional direction, and the line(s) it
// applies to. Distinct from catalog.Report, which also carries the author
// and free-text message fields the risk engine never needs.
type Report struct {
	StationID   *string
	Timestamp   time.Time
	DirectionID *string
	Lines       []string
}
