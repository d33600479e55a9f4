package in

import (
	"context"

	personadto "unhook/internal/modules/persona/dto"
	personain "unhook/internal/modules/persona/port/in"
)

type CLIHandler struct {
	usecase personain.Usecase
}

func NewCLIHandler(usecase personain.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]personadto.Profile, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Show(ctx context.Context, name string) (personadto.Profile, error) {
	return h.usecase.Get(ctx, name)
}

func (h CLIHandler) Detect(ctx context.Context, invalidate bool) (personadto.Detection, error) {
	return h.usecase.Detect(ctx, personadto.DetectInput{Invalidate: invalidate})
}
