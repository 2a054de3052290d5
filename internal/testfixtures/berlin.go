// Package testfixtures builds a small, hand-picked slice of the real Berlin
// transit network for use across the test suites of every package that
// needs a topology (extractor, verifier, risk, catalog). It mirrors the
// stations named in spec.md's end-to-end scenarios (§8).
package testfixtures

import "github.com/freifahren/sichtungskern/internal/topology"

// Berlin returns a fresh topology built from the fixture network. Fresh on
// every call so tests can't observe cross-test mutation (there is none —
// Topology is immutable after Build — but a fresh value keeps tests honest).
func Berlin() (*topology.Topology, error) {
	lines := []topology.Line{
		{ID: "U8", Stations: []string{"hermannplatz", "schoenleinstr", "kottbusser-tor", "moritzplatz", "wittenau"}},
		{ID: "U6", Stations: []string{"alt-mariendorf", "mehringdamm", "friedrichstr", "schumacherplatz", "alt-tegel"}},
		{ID: "U9", Stations: []string{"rathaus-steglitz", "osloerstr", "leopoldplatz"}},
		{ID: "S41", Stations: []string{"suedkreuz", "tempelhof", "ostkreuz", "gesundbrunnen", "suedkreuz-loop"}},
		{ID: "S9", Stations: []string{"zoologischer-garten", "papestr", "rathaus-steglitz"}},
	}

	stations := []topology.Station{
		{ID: "hermannplatz", Name: "Hermannplatz", Lines: []string{"U8"}},
		{ID: "schoenleinstr", Name: "Schönleinstraße", Lines: []string{"U8"}},
		{ID: "kottbusser-tor", Name: "Kottbusser Tor", Lines: []string{"U8"}},
		{ID: "moritzplatz", Name: "Moritzplatz", Lines: []string{"U8"}},
		{ID: "wittenau", Name: "Wittenau", Lines: []string{"U8"}},
		{ID: "alt-mariendorf", Name: "Alt-Mariendorf", Lines: []string{"U6"}},
		{ID: "mehringdamm", Name: "Mehringdamm", Lines: []string{"U6"}},
		{ID: "friedrichstr", Name: "Friedrichstraße", Lines: []string{"U6"}},
		{ID: "schumacherplatz", Name: "Schumacher-Platz", Lines: []string{"U6"}},
		{ID: "alt-tegel", Name: "Alt-Tegel", Lines: []string{"U6"}},
		{ID: "rathaus-steglitz", Name: "Rathaus Steglitz", Lines: []string{"U9", "S9"}},
		{ID: "osloerstr", Name: "Osloer Straße", Lines: []string{"U9"}},
		{ID: "leopoldplatz", Name: "Leopoldplatz", Lines: []string{"U9"}},
		{ID: "suedkreuz", Name: "Südkreuz", Lines: []string{"S41"}},
		{ID: "tempelhof", Name: "Tempelhof", Lines: []string{"S41"}},
		{ID: "ostkreuz", Name: "Ostkreuz", Lines: []string{"S41"}},
		{ID: "gesundbrunnen", Name: "Gesundbrunnen", Lines: []string{"S41"}},
		{ID: "suedkreuz-loop", Name: "Südkreuz", Lines: []string{"S41"}},
		{ID: "zoologischer-garten", Name: "Zoologischer Garten", Lines: []string{"S9"}},
		{ID: "papestr", Name: "Papestraße", Lines: []string{"S9"}},
	}

	synonymOrder := []string{"mehringdamm", "zoologischer-garten", "osloerstr"}
	synonyms := map[string][]string{
		"mehringdamm":         {"merhingdam", "mehringdam"},
		"zoologischer-garten": {"zoo"},
		"osloerstr":           {"osloerstraße", "osloerstrasse"},
	}

	return topology.Build(stations, lines, []string{"S41", "S42"}, topology.NewSynonymTable(synonyms, synonymOrder))
}
