package in

import (
	"context"

	"unhook/internal/modules/extract/dto"
)

type Usecase interface {
	Register(ctx context.Context, input dto.RegisterInput) (dto.Manifest, error)
	List(ctx context.Context) ([]dto.Manifest, error)
	// Check starts the extractor and asks it for metadata, verifying
	// binary integrity on the way.
	Check(ctx context.Context, name string) (dto.Metadata, error)
	// Pull extracts validated usage records for a window. Totals under
	// the configured minimum come back as ErrInsufficientData.
	Pull(ctx context.Context, input dto.PullInput) (dto.PullOutput, error)
}
