package in

import (
	"context"

	goaldto "unhook/internal/modules/goal/dto"
	goalin "unhook/internal/modules/goal/port/in"
)

type CLIHandler struct {
	usecase goalin.Usecase
}

func NewCLIHandler(usecase goalin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]goaldto.Goal, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Set(ctx context.Context, app string, limitMinutes int) (goaldto.Goal, error) {
	return h.usecase.Set(ctx, goaldto.SetInput{App: app, DailyLimitMinutes: limitMinutes})
}

func (h CLIHandler) Rollover(ctx context.Context, date string) (goaldto.RolloverOutput, error) {
	return h.usecase.Rollover(ctx, goaldto.RolloverInput{Date: date})
}

func (h CLIHandler) ActivateFreeze(ctx context.Context, app, date string) (goaldto.FreezeStatus, error) {
	return h.usecase.ActivateFreeze(ctx, goaldto.FreezeInput{App: app, Date: date})
}

func (h CLIHandler) Recovery(ctx context.Context, app string) (goaldto.Recovery, error) {
	return h.usecase.Recovery(ctx, app)
}
