package pipeline

import (
	"context"

	"github.com/freifahren/sichtungskern/internal/guard"
)

// GuardStage is §4.A: reject obvious spam before any expensive work runs.
type GuardStage struct{}

func NewGuardStage() *GuardStage { return &GuardStage{} }

func (*GuardStage) Name() string { return "guard" }

func (*GuardStage) Run(_ context.Context, s *State) (*State, error) {
	if !guard.Accept(s.Text) {
		s.Done = true
		s.DropReason = "guard_rejected"
	}
	return s, nil
}
