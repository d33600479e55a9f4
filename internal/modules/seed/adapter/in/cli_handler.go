package in

import (
	"context"

	seeddto "unhook/internal/modules/seed/dto"
	seedin "unhook/internal/modules/seed/port/in"
)

type CLIHandler struct {
	usecase seedin.Usecase
}

func NewCLIHandler(usecase seedin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Seed(ctx context.Context, persona string, days int, apps []string, seed int64) (seeddto.SeedOutput, error) {
	return h.usecase.Seed(ctx, seeddto.SeedInput{Persona: persona, Days: days, Apps: apps, Seed: seed})
}

func (h CLIHandler) SeedFromExtractor(ctx context.Context, extractor string, days int, seed int64) (seeddto.SeedOutput, error) {
	return h.usecase.SeedFromExtractor(ctx, seeddto.ExtractorSeedInput{Extractor: extractor, Days: days, Seed: seed})
}
