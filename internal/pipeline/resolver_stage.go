package pipeline

import (
	"context"
	"fmt"

	"github.com/freifahren/sichtungskern/internal/catalog"
	"github.com/freifahren/sichtungskern/internal/errs"
	"github.com/freifahren/sichtungskern/internal/risk"
	"github.com/freifahren/sichtungskern/internal/topology"
)

// ResolverStage is §4.D: resolve the candidate's station and direction
// display names against the external catalog to obtain the ids the backend
// itself considers canonical (our topology ids are a local snapshot; the
// catalog is authoritative), then emit the confirmed sighting.
type ResolverStage struct {
	Topo    *topology.Topology
	Catalog catalog.Client
	// Sink, if set, also records the confirmed sighting (by local topology
	// ids, which the risk engine's anchor selection needs) so a running
	// internal/api GET /segment-colors reflects chat-sourced reports too,
	// not only ones submitted through the HTTP form handlers.
	Sink *risk.Store
}

func NewResolverStage(topo *topology.Topology, client catalog.Client) *ResolverStage {
	return &ResolverStage{Topo: topo, Catalog: client}
}

func (*ResolverStage) Name() string { return "catalog_resolver" }

func (r *ResolverStage) Run(ctx context.Context, s *State) (*State, error) {
	if s.Done || s.Candidate == nil {
		s.Done = true
		if s.DropReason == "" {
			s.DropReason = "no_candidate"
		}
		return s, nil
	}

	c := s.Candidate
	report := catalog.Report{
		Timestamp: s.Now,
		Line:      c.LineID,
		Author:    s.Author,
		Message:   s.Message,
	}

	stationID, err := r.resolve(ctx, c.StationID)
	if err != nil {
		return nil, err
	}
	report.StationID = stationID

	directionID, err := r.resolve(ctx, c.DirectionStationID)
	if err != nil {
		return nil, err
	}
	report.DirectionID = directionID

	if err := r.Catalog.SubmitReport(ctx, report); err != nil {
		return nil, fmt.Errorf("pipeline: submit report: %w", err)
	}

	if r.Sink != nil && c.LineID != nil {
		r.Sink.Add(risk.Report{
			StationID:   c.StationID,
			Timestamp:   s.Now,
			DirectionID: c.DirectionStationID,
			Lines:       []string{*c.LineID},
		})
	}

	s.Report = &report
	return s, nil
}

// resolve looks up the canonical catalog id for a locally-resolved topology
// station id, by name. A nil input, a not-found lookup, or a local id the
// topology no longer recognizes all surface as a nil id rather than an
// error, per §4.D's "line alone is still useful" guidance. A transport
// error propagates, per §4.D's "surface to caller for retry at a higher
// layer".
func (r *ResolverStage) resolve(ctx context.Context, localID *string) (*string, error) {
	if localID == nil {
		return nil, nil
	}
	station, ok := r.Topo.Station(*localID)
	if !ok {
		return nil, nil
	}

	result := r.Catalog.ResolveName(ctx, station.Name)
	switch result.Kind {
	case errs.Resolved:
		id := result.ID
		return &id, nil
	case errs.NotFound:
		return nil, nil
	default:
		return nil, fmt.Errorf("pipeline: resolve name %q: %w", station.Name, result.Err)
	}
}
