package in

import (
	"context"

	timelinedto "unhook/internal/modules/timeline/dto"
	timelinein "unhook/internal/modules/timeline/port/in"
)

type CLIHandler struct {
	usecase timelinein.Usecase
}

func NewCLIHandler(usecase timelinein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Record(ctx context.Context, app string, startMS, endMS int64) (timelinedto.Session, error) {
	return h.usecase.Record(ctx, timelinedto.RecordInput{App: app, StartMS: startMS, EndMS: endMS})
}

func (h CLIHandler) List(ctx context.Context, app string, startMS, endMS int64) ([]timelinedto.Session, error) {
	return h.usecase.List(ctx, timelinedto.ListInput{App: app, StartMS: startMS, EndMS: endMS})
}
