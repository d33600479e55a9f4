package service

import (
	"context"
	"fmt"
	"time"

	"unhook/internal/modules/intervention/domain"
	interventionout "unhook/internal/modules/intervention/port/out"
	"unhook/internal/platform/clock"
)

type InterventionService struct {
	clock clock.Clock
	store interventionout.ResultStore
}

func NewInterventionService(clk clock.Clock, store interventionout.ResultStore) *InterventionService {
	return &InterventionService{clock: clk, store: store}
}

func (s *InterventionService) Location() *time.Location {
	return s.clock.Location()
}

func (s *InterventionService) Persist(ctx context.Context, results []domain.InterventionResult) error {
	for _, result := range results {
		if err := s.store.Upsert(ctx, result); err != nil {
			return fmt.Errorf("persist intervention result for session %d: %w", result.SessionID, err)
		}
	}
	return nil
}

// RecordDecision writes the pending record at decision time. Temporal
// context is derived from the session start, not the decision instant.
func (s *InterventionService) RecordDecision(ctx context.Context, result domain.InterventionResult, startMS int64) (domain.InterventionResult, error) {
	hour, weekday, weekend, lateNight := domain.TemporalContext(startMS, s.clock.Location())
	result.HourOfDay = hour
	result.DayOfWeek = weekday
	result.IsWeekend = weekend
	result.IsLateNight = lateNight
	result.OutcomeRecorded = false
	result.FinalDurationMS = 0
	result.EndedNormally = false
	if err := s.store.Upsert(ctx, result); err != nil {
		return domain.InterventionResult{}, fmt.Errorf("record decision for session %d: %w", result.SessionID, err)
	}
	return result, nil
}

// CompleteOutcome fills the outcome fields exactly once. A second call
// for the same session returns the stored record untouched.
func (s *InterventionService) CompleteOutcome(ctx context.Context, sessionID, finalMS int64, normal bool) (domain.InterventionResult, error) {
	result, err := s.store.BySession(ctx, sessionID)
	if err != nil {
		return domain.InterventionResult{}, err
	}
	if result.OutcomeRecorded {
		return result, nil
	}
	result.OutcomeRecorded = true
	result.FinalDurationMS = finalMS
	result.EndedNormally = normal
	if err := s.store.Upsert(ctx, result); err != nil {
		return domain.InterventionResult{}, fmt.Errorf("complete outcome for session %d: %w", sessionID, err)
	}
	return result, nil
}

func (s *InterventionService) ForApp(ctx context.Context, app string) ([]domain.InterventionResult, error) {
	return s.store.ForApp(ctx, app)
}
