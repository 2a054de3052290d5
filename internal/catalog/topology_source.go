package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/freifahren/sichtungskern/internal/topology"
)

// TopologySource implements topology.Source against the live backend
// catalog (GET /v0/lines, GET /stations — §6), for deployments that want
// the network definition pulled from the same service as everything else
// instead of baked into the image or a bucket. Synonyms have no catalog
// endpoint, so they always come from a local file.
type TopologySource struct {
	baseURL      string
	httpClient   *http.Client
	synonymsFile topology.FileSource
}

// NewTopologySource builds a catalog-backed topology source. synonymsDir is
// the local directory still holding synonyms.json.
func NewTopologySource(baseURL string, synonymsDir string) *TopologySource {
	return &TopologySource{
		baseURL:      baseURL,
		httpClient:   &http.Client{},
		synonymsFile: topology.FileSource{Dir: synonymsDir},
	}
}

func (s *TopologySource) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog: %s returned status %d", path, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func (s *TopologySource) ReadLines(ctx context.Context) ([]topology.Line, error) {
	body, err := s.get(ctx, "/v0/lines")
	if err != nil {
		return nil, fmt.Errorf("catalog: reading lines: %w", err)
	}
	var byID map[string][]string
	if err := json.Unmarshal(body, &byID); err != nil {
		return nil, fmt.Errorf("catalog: parsing lines response: %w", err)
	}
	lines := make([]topology.Line, 0, len(byID))
	for id, stations := range byID {
		lines = append(lines, topology.Line{ID: id, Stations: stations})
	}
	return lines, nil
}

type catalogStation struct {
	Name        string  `json:"name"`
	Coordinates struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"coordinates"`
	Lines []string `json:"lines"`
}

func (s *TopologySource) ReadStations(ctx context.Context) ([]topology.Station, error) {
	body, err := s.get(ctx, "/stations")
	if err != nil {
		return nil, fmt.Errorf("catalog: reading stations: %w", err)
	}
	var byID map[string]catalogStation
	if err := json.Unmarshal(body, &byID); err != nil {
		return nil, fmt.Errorf("catalog: parsing stations response: %w", err)
	}
	stations := make([]topology.Station, 0, len(byID))
	for id, st := range byID {
		stations = append(stations, topology.Station{
			ID:        id,
			Name:      st.Name,
			Latitude:  st.Coordinates.Latitude,
			Longitude: st.Coordinates.Longitude,
			Lines:     st.Lines,
		})
	}
	return stations, nil
}

func (s *TopologySource) ReadSynonyms(ctx context.Context) (map[string][]string, error) {
	return s.synonymsFile.ReadSynonyms(ctx)
}

var _ topology.Source = (*TopologySource)(nil)
