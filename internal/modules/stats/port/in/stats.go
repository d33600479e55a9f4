package in

import (
	"context"

	"unhook/internal/modules/stats/dto"
)

type Usecase interface {
	// Aggregate is pure: it derives daily stats without persisting.
	Aggregate(ctx context.Context, input dto.AggregateInput) ([]dto.DailyStat, error)
	Persist(ctx context.Context, stats []dto.DailyStat) error
	Query(ctx context.Context, input dto.QueryInput) ([]dto.DailyStat, error)
}
