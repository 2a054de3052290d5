// Package pipeline wires §4's fixed four-stage chain (A Guard → B Extractor
// → C Verifier → D Catalog Resolver) and §5's bounded worker pool over
// incoming chat updates. Grounded on the teacher's internal/tools/pipeline.go
// BaggagePipeline, generalized: the teacher computes execution order from
// declared Tool dependencies via a topological sort, but §2 already fixes
// our order (A, D and E are leaves; B depends on topology; C depends on B
// and topology), so the sort collapses to a literal four-element slice
// instead of a general graph. The one-stage-one-responsibility shape and
// the Name()/Run() signature survive the generalization.
package pipeline

import (
	"context"
	"time"

	"github.com/freifahren/sichtungskern/internal/catalog"
	"github.com/freifahren/sichtungskern/internal/extractor"
)

// State is the value threaded through the chain. Each stage either advances
// it or marks it Done with a reason, short-circuiting the remaining stages —
// the fixed-chain analogue of the teacher's per-tool baggage map.
type State struct {
	Text    string
	Now     time.Time
	Author  int64
	Message *string

	Candidate *extractor.Candidate
	Report    *catalog.Report

	Done       bool
	DropReason string
}

// Stage is one link in the fixed chain.
type Stage interface {
	Name() string
	Run(ctx context.Context, s *State) (*State, error)
}
