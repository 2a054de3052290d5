package pipeline

import (
	"context"
	"fmt"

	"github.com/freifahren/sichtungskern/internal/ner"
	"github.com/freifahren/sichtungskern/internal/topology"
	"github.com/freifahren/sichtungskern/internal/verifier"
)

// VerifierStage is §4.C: rules V1-V4, applied in order over the extractor's
// candidate.
type VerifierStage struct {
	Topo   *topology.Topology
	Tagger ner.Tagger
}

func NewVerifierStage(topo *topology.Topology, tagger ner.Tagger) *VerifierStage {
	return &VerifierStage{Topo: topo, Tagger: tagger}
}

func (*VerifierStage) Name() string { return "verifier" }

func (v *VerifierStage) Run(ctx context.Context, s *State) (*State, error) {
	if s.Done {
		return s, nil
	}

	corrected, err := verifier.Verify(ctx, s.Candidate, s.Text, v.Topo, v.Tagger)
	if err != nil {
		return nil, fmt.Errorf("pipeline: verifier stage: %w", err)
	}
	s.Candidate = corrected
	return s, nil
}
