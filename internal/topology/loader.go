package topology

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Source reads the three static artifacts produced by the (out-of-scope)
// topology-builder scripts: lines, stations and synonyms. Two
// implementations exist: a local-filesystem one (the default) and an
// S3-backed one for deployments where the artifacts are published to a
// bucket instead of baked into the image.
type Source interface {
	ReadLines(ctx context.Context) ([]Line, error)
	ReadStations(ctx context.Context) ([]Station, error)
	ReadSynonyms(ctx context.Context) (map[string][]string, error)
}

// LoadFromSource reads all three artifacts from src, builds the synonym
// table with a deterministic station-id iteration order, and validates the
// topology invariants via Build.
func LoadFromSource(ctx context.Context, src Source, ringLineIDs []string) (*Topology, error) {
	lines, err := src.ReadLines(ctx)
	if err != nil {
		return nil, fmt.Errorf("topology: reading lines: %w", err)
	}
	stations, err := src.ReadStations(ctx)
	if err != nil {
		return nil, fmt.Errorf("topology: reading stations: %w", err)
	}
	rawSynonyms, err := src.ReadSynonyms(ctx)
	if err != nil {
		return nil, fmt.Errorf("topology: reading synonyms: %w", err)
	}

	order := make([]string, 0, len(rawSynonyms))
	for id := range rawSynonyms {
		order = append(order, id)
	}
	sort.Strings(order)

	synonyms := NewSynonymTable(rawSynonyms, order)

	return Build(stations, lines, ringLineIDs, synonyms)
}

// FileSource reads the three artifacts as JSON files from a local
// directory: lines.json (`{line_id: [station_id, ...]}`), stations.json
// (`{station_id: {name, coordinates:{latitude,longitude}, lines:[...]}}`)
// and synonyms.json (`{station_id: [alt, ...]}`); lines and stations match
// the shapes returned by the backend catalog in §6.
type FileSource struct {
	Dir string
}

func (f FileSource) path(name string) string {
	return filepath.Join(f.Dir, name)
}

func (f FileSource) ReadLines(ctx context.Context) ([]Line, error) {
	raw, err := os.ReadFile(f.path("lines.json"))
	if err != nil {
		return nil, err
	}
	var byID map[string][]string
	if err := json.Unmarshal(raw, &byID); err != nil {
		return nil, fmt.Errorf("topology: parsing lines.json: %w", err)
	}
	lines := make([]Line, 0, len(byID))
	for id, stations := range byID {
		lines = append(lines, Line{ID: id, Stations: stations})
	}
	return lines, nil
}

type stationJSON struct {
	Name        string   `json:"name"`
	Coordinates struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"coordinates"`
	Lines []string `json:"lines"`
}

func (f FileSource) ReadStations(ctx context.Context) ([]Station, error) {
	raw, err := os.ReadFile(f.path("stations.json"))
	if err != nil {
		return nil, err
	}
	var byID map[string]stationJSON
	if err := json.Unmarshal(raw, &byID); err != nil {
		return nil, fmt.Errorf("topology: parsing stations.json: %w", err)
	}
	stations := make([]Station, 0, len(byID))
	for id, s := range byID {
		stations = append(stations, Station{
			ID:        id,
			Name:      s.Name,
			Latitude:  s.Coordinates.Latitude,
			Longitude: s.Coordinates.Longitude,
			Lines:     s.Lines,
		})
	}
	return stations, nil
}

func (f FileSource) ReadSynonyms(ctx context.Context) (map[string][]string, error) {
	raw, err := os.ReadFile(f.path("synonyms.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return map[string][]string{}, nil
		}
		return nil, err
	}
	var out map[string][]string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("topology: parsing synonyms.json: %w", err)
	}
	return out, nil
}
