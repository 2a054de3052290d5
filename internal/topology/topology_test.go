package topology_test

import (
	"testing"

	"github.com/freifahren/sichtungskern/internal/testfixtures"
	"github.com/freifahren/sichtungskern/internal/topology"
	"github.com/stretchr/testify/require"
)

func TestBuild_SegmentsAreContiguousPerLine(t *testing.T) {
	topo, err := testfixtures.Berlin()
	require.NoError(t, err)

	segs := topo.SegmentsForLine("U8")
	require.Len(t, segs, 4)
	for i, s := range segs {
		require.Equal(t, i, s.Rank)
	}
}

func TestBuild_RejectsLineWithFewerThanTwoStations(t *testing.T) {
	_, err := topology.Build(
		[]topology.Station{{ID: "a", Lines: []string{"X"}}},
		[]topology.Line{{ID: "X", Stations: []string{"a"}}},
		nil, topology.NewSynonymTable(nil, nil),
	)
	require.Error(t, err)
}

func TestBuild_RejectsStationReferencingUnknownLine(t *testing.T) {
	_, err := topology.Build(
		[]topology.Station{{ID: "a", Lines: []string{"GHOST"}}},
		[]topology.Line{{ID: "X", Stations: []string{"a", "b"}}},
		nil, topology.NewSynonymTable(nil, nil),
	)
	require.Error(t, err)
}

func TestColocated_SharedTrackAcrossLines(t *testing.T) {
	// U9 and S9 both have rathaus-steglitz; craft a colocated pair directly.
	stations := []topology.Station{
		{ID: "a", Lines: []string{"L1", "L2"}},
		{ID: "b", Lines: []string{"L1", "L2"}},
	}
	lines := []topology.Line{
		{ID: "L1", Stations: []string{"a", "b"}},
		{ID: "L2", Stations: []string{"a", "b"}},
	}
	topo, err := topology.Build(stations, lines, nil, topology.NewSynonymTable(nil, nil))
	require.NoError(t, err)

	colocated := topo.Colocated("a", "b")
	require.Len(t, colocated, 2)
}

func TestSynonymTable_FirstMatchWinsDeterministically(t *testing.T) {
	raw := map[string][]string{
		"station-a": {"platz"},
		"station-b": {"platz"},
	}
	table := topology.NewSynonymTable(raw, []string{"station-a", "station-b"})
	id, ok := table.Resolve("Platz")
	require.True(t, ok)
	require.Equal(t, "station-a", id)
}

func TestIsTerminus(t *testing.T) {
	topo, err := testfixtures.Berlin()
	require.NoError(t, err)
	require.True(t, topo.IsTerminus("U8", "hermannplatz"))
	require.True(t, topo.IsTerminus("U8", "wittenau"))
	require.False(t, topo.IsTerminus("U8", "moritzplatz"))
}
