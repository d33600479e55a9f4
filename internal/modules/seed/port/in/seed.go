package in

import (
	"context"

	"unhook/internal/modules/seed/dto"
)

type Usecase interface {
	// Seed builds one coherent synthetic dataset for a persona and
	// bulk-writes it transactionally.
	Seed(ctx context.Context, input dto.SeedInput) (dto.SeedOutput, error)
	// SeedFromExtractor ingests real usage from a registered extractor,
	// falling back to a synthetic baseline when there is too little.
	SeedFromExtractor(ctx context.Context, input dto.ExtractorSeedInput) (dto.SeedOutput, error)
}
