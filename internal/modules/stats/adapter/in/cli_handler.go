package in

import (
	"context"

	statsdto "unhook/internal/modules/stats/dto"
	statsin "unhook/internal/modules/stats/port/in"
)

type CLIHandler struct {
	usecase statsin.Usecase
}

func NewCLIHandler(usecase statsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Query(ctx context.Context, app, fromDate, toDate string) ([]statsdto.DailyStat, error) {
	return h.usecase.Query(ctx, statsdto.QueryInput{App: app, FromDate: fromDate, ToDate: toDate})
}
