package usecase

import (
	"context"

	"unhook/internal/modules/stats/domain"
	"unhook/internal/modules/stats/dto"
	statsin "unhook/internal/modules/stats/port/in"
	"unhook/internal/modules/stats/service"
)

type Interactor struct {
	svc *service.StatsService
}

func NewInteractor(svc *service.StatsService) statsin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Aggregate(_ context.Context, input dto.AggregateInput) ([]dto.DailyStat, error) {
	usage := make([]domain.Usage, 0, len(input.Usage))
	for _, u := range input.Usage {
		usage = append(usage, domain.Usage{App: u.App, Date: u.Date, DurationMS: u.DurationMS})
	}
	return toDTO(i.svc.Aggregate(usage, input.Estimate, input.Synthetic)), nil
}

func (i *Interactor) Persist(ctx context.Context, stats []dto.DailyStat) error {
	return i.svc.Persist(ctx, fromDTO(stats))
}

func (i *Interactor) Query(ctx context.Context, input dto.QueryInput) ([]dto.DailyStat, error) {
	stats, err := i.svc.InRange(ctx, input.App, input.FromDate, input.ToDate)
	if err != nil {
		return nil, err
	}
	return toDTO(stats), nil
}

func toDTO(stats []domain.DailyStat) []dto.DailyStat {
	out := make([]dto.DailyStat, 0, len(stats))
	for _, s := range stats {
		out = append(out, dto.DailyStat(s))
	}
	return out
}

func fromDTO(stats []dto.DailyStat) []domain.DailyStat {
	out := make([]domain.DailyStat, 0, len(stats))
	for _, s := range stats {
		out = append(out, domain.DailyStat(s))
	}
	return out
}
