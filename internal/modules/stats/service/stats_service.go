package service

import (
	"context"
	"fmt"

	"unhook/internal/modules/stats/domain"
	statsout "unhook/internal/modules/stats/port/out"
)

type StatsService struct {
	store                statsout.StatStore
	alertShownFraction   float64
	alertProceedFraction float64
}

func NewStatsService(store statsout.StatStore, alertShownFraction, alertProceedFraction float64) *StatsService {
	return &StatsService{
		store:                store,
		alertShownFraction:   alertShownFraction,
		alertProceedFraction: alertProceedFraction,
	}
}

func (s *StatsService) Aggregate(usage []domain.Usage, estimate, synthetic bool) []domain.DailyStat {
	policy := domain.EstimatePolicy{
		Enabled:              estimate,
		AlertShownFraction:   s.alertShownFraction,
		AlertProceedFraction: s.alertProceedFraction,
	}
	return domain.Aggregate(usage, policy, synthetic)
}

func (s *StatsService) Persist(ctx context.Context, stats []domain.DailyStat) error {
	for _, stat := range stats {
		if err := s.store.Upsert(ctx, stat); err != nil {
			return fmt.Errorf("persist stat %s/%s: %w", stat.Date, stat.App, err)
		}
	}
	return nil
}

func (s *StatsService) InRange(ctx context.Context, app, fromDate, toDate string) ([]domain.DailyStat, error) {
	return s.store.InRange(ctx, app, fromDate, toDate)
}
