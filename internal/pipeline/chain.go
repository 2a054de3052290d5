package pipeline

import (
	"context"
	"fmt"

	"github.com/freifahren/sichtungskern/internal/tracing"
)

// Chain runs a fixed, ordered sequence of stages over one State, stopping
// early once a stage marks it Done.
type Chain struct {
	stages []Stage
}

// NewChain builds the fixed A->B->C->D chain in the order §2 requires.
func NewChain(stages ...Stage) *Chain {
	return &Chain{stages: stages}
}

func (c *Chain) Run(ctx context.Context, s *State) (*State, error) {
	for _, stage := range c.stages {
		if s.Done {
			break
		}
		var err error
		spanCtx, end := tracing.StartStage(ctx, stage.Name())
		s, err = stage.Run(spanCtx, s)
		end(err)
		if err != nil {
			return nil, fmt.Errorf("pipeline: stage %q: %w", stage.Name(), err)
		}
	}
	return s, nil
}
