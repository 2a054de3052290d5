package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTopologySource_ReadLinesAndStations(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v0/lines", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"U8": ["hermannplatz", "wittenau"]}`))
	})
	mux.HandleFunc("/stations", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"hermannplatz": {"name": "Hermannplatz", "coordinates": {"latitude": 52.0, "longitude": 13.0}, "lines": ["U8"]}, "wittenau": {"name": "Wittenau", "coordinates": {"latitude": 52.6, "longitude": 13.3}, "lines": ["U8"]}}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	src := NewTopologySource(server.URL, t.TempDir())

	lines, err := src.ReadLines(context.Background())
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.Equal(t, "U8", lines[0].ID)

	stations, err := src.ReadStations(context.Background())
	require.NoError(t, err)
	require.Len(t, stations, 2)
}

func TestTopologySource_ReadSynonyms_MissingFileIsEmpty(t *testing.T) {
	src := NewTopologySource("http://example.invalid", t.TempDir())
	synonyms, err := src.ReadSynonyms(context.Background())
	require.NoError(t, err)
	require.Empty(t, synonyms)
}
