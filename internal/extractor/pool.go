package extractor

import (
	"strings"

	"github.com/freifahren/sichtungskern/internal/topology"
)

// candidatePool maps every lower-cased name (canonical station name or
// synonym) to the canonical station id it resolves to (§4.B.3 step 1).
type candidatePool map[string]string

// buildPool constructs the candidate pool: if a line is known, every
// station on that line plus their synonyms; otherwise every station and
// every synonym.
func buildPool(topo *topology.Topology, lineID *string) candidatePool {
	pool := make(candidatePool)

	addStation := func(id string) {
		st, ok := topo.Station(id)
		if !ok {
			return
		}
		pool[strings.ToLower(st.Name)] = id
		for _, syn := range topo.Synonyms().For(id) {
			pool[syn] = id
		}
	}

	if lineID != nil {
		for _, sid := range topo.StationsOnLine(*lineID) {
			addStation(sid)
		}
		return pool
	}

	for _, sid := range topo.AllStationIDs() {
		addStation(sid)
	}
	return pool
}
