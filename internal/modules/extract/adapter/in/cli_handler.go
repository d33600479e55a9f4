package in

import (
	"context"

	extractdto "unhook/internal/modules/extract/dto"
	extractin "unhook/internal/modules/extract/port/in"
)

type CLIHandler struct {
	usecase extractin.Usecase
}

func NewCLIHandler(usecase extractin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Register(ctx context.Context, name, binary string) (extractdto.Manifest, error) {
	return h.usecase.Register(ctx, extractdto.RegisterInput{Name: name, Binary: binary})
}

func (h CLIHandler) List(ctx context.Context) ([]extractdto.Manifest, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Check(ctx context.Context, name string) (extractdto.Metadata, error) {
	return h.usecase.Check(ctx, name)
}
