package in

import (
	"context"

	"unhook/internal/modules/intervention/dto"
)

type Usecase interface {
	// Synthesize draws one result per session from a persona's response
	// mix. Pure: nothing is persisted.
	Synthesize(ctx context.Context, input dto.SynthesizeInput) ([]dto.Result, error)
	Persist(ctx context.Context, results []dto.Result) error

	// Live path.
	RecordDecision(ctx context.Context, input dto.DecisionInput) (dto.Result, error)
	CompleteOutcome(ctx context.Context, input dto.OutcomeInput) (dto.Result, error)
	ForApp(ctx context.Context, app string) ([]dto.Result, error)
}
