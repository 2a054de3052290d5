package pipeline

import (
	"context"
	"fmt"

	"github.com/freifahren/sichtungskern/internal/extractor"
	"github.com/freifahren/sichtungskern/internal/ner"
	"github.com/freifahren/sichtungskern/internal/topology"
)

// ExtractorStage is §4.B: line/direction/station detection and candidate
// assembly over the current topology snapshot.
type ExtractorStage struct {
	Topo   *topology.Topology
	Tagger ner.Tagger
}

func NewExtractorStage(topo *topology.Topology, tagger ner.Tagger) *ExtractorStage {
	return &ExtractorStage{Topo: topo, Tagger: tagger}
}

func (*ExtractorStage) Name() string { return "extractor" }

func (e *ExtractorStage) Run(ctx context.Context, s *State) (*State, error) {
	if s.Done {
		return s, nil
	}

	candidate, err := extractor.Extract(ctx, s.Text, e.Topo, e.Tagger)
	if err != nil {
		return nil, fmt.Errorf("pipeline: extractor stage: %w", err)
	}
	if candidate == nil {
		s.Done = true
		s.DropReason = "nothing_extracted"
		return s, nil
	}
	s.Candidate = candidate
	return s, nil
}
