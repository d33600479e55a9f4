package in

import (
	"context"

	"unhook/internal/modules/timeline/dto"
)

type Usecase interface {
	// Synthesize generates a quick-reopen-adjusted session set without
	// persisting it. Same input (seed included) reproduces identical
	// output.
	Synthesize(ctx context.Context, input dto.SynthesizeInput) (dto.SynthesizeOutput, error)
	// Normalize converts pre-merged external records (the real-usage
	// extractor path) into ordered, dated sessions with reopen flags.
	Normalize(ctx context.Context, records []dto.RecordInput) (dto.SynthesizeOutput, error)
	// Persist upserts sessions in order and returns their store ids.
	Persist(ctx context.Context, sessions []dto.Session) ([]int64, error)
	Record(ctx context.Context, input dto.RecordInput) (dto.Session, error)
	List(ctx context.Context, input dto.ListInput) ([]dto.Session, error)
}
