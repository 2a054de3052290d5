package verifier

import (
	"context"
	"testing"

	"github.com/freifahren/sichtungskern/internal/extractor"
	"github.com/freifahren/sichtungskern/internal/ner"
	"github.com/freifahren/sichtungskern/internal/testfixtures"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

type emptyTagger struct{}

func (emptyTagger) Tag(ctx context.Context, text string) ([]ner.Span, error) {
	return nil, nil
}

func TestVerify_Nil(t *testing.T) {
	topo, err := testfixtures.Berlin()
	require.NoError(t, err)

	result, err := Verify(context.Background(), nil, "irrelevant", topo, emptyTagger{})
	require.NoError(t, err)
	require.Nil(t, result)
}

func TestVerify_RingLineImplicit(t *testing.T) {
	topo, err := testfixtures.Berlin()
	require.NoError(t, err)

	candidate := &extractor.Candidate{StationID: strPtr("tempelhof")}
	result, err := Verify(context.Background(), candidate, "Kontrolleur auf der Ringbahn gesehen", topo, emptyTagger{})
	require.NoError(t, err)
	require.NotNil(t, result.LineID)
	require.Equal(t, "S41", *result.LineID)
}

func TestVerify_RingDirectionless(t *testing.T) {
	topo, err := testfixtures.Berlin()
	require.NoError(t, err)

	candidate := &extractor.Candidate{
		LineID:             strPtr("S41"),
		StationID:          strPtr("tempelhof"),
		DirectionStationID: strPtr("ostkreuz"),
	}
	result, err := Verify(context.Background(), candidate, "S41 Tempelhof richtung Ostkreuz", topo, emptyTagger{})
	require.NoError(t, err)
	require.Nil(t, result.DirectionStationID)
}

func TestVerify_DirectionAsNameSwapsStationAndDirection(t *testing.T) {
	topo, err := testfixtures.Berlin()
	require.NoError(t, err)

	// "U8 Wittenau" reads like the sighting is at Wittenau, but Wittenau is
	// a terminus of U8, so it's really the direction; the true station
	// (Hermannplatz) must be re-resolved from the rest of the text.
	candidate := &extractor.Candidate{
		LineID:             strPtr("U8"),
		StationID:          strPtr("wittenau"),
		DirectionStationID: strPtr("wittenau"),
	}
	tagger := rerunTagger{spans: []ner.Span{{Text: "Hermannplatz"}}}

	result, err := Verify(context.Background(), candidate, "U8 Wittenau Hermannplatz gesichtet", topo, tagger)
	require.NoError(t, err)
	require.NotNil(t, result.StationID)
	require.Equal(t, "hermannplatz", *result.StationID)
	require.NotNil(t, result.DirectionStationID)
	require.Equal(t, "wittenau", *result.DirectionStationID)
}

func TestVerify_SoleLineInference(t *testing.T) {
	topo, err := testfixtures.Berlin()
	require.NoError(t, err)

	candidate := &extractor.Candidate{StationID: strPtr("hermannplatz")}
	result, err := Verify(context.Background(), candidate, "Kontrolleur bei Hermannplatz", topo, emptyTagger{})
	require.NoError(t, err)
	require.NotNil(t, result.LineID)
	require.Equal(t, "U8", *result.LineID)
}

func TestVerify_SoleLineInferenceSkippedWhenStationOnMultipleLines(t *testing.T) {
	topo, err := testfixtures.Berlin()
	require.NoError(t, err)

	candidate := &extractor.Candidate{StationID: strPtr("rathaus-steglitz")}
	result, err := Verify(context.Background(), candidate, "Kontrolleur bei Rathaus Steglitz", topo, emptyTagger{})
	require.NoError(t, err)
	require.Nil(t, result.LineID)
}

type rerunTagger struct {
	spans []ner.Span
}

func (r rerunTagger) Tag(ctx context.Context, text string) ([]ner.Span, error) {
	return r.spans, nil
}
