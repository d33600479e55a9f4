package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"unhook/internal/modules/intervention/domain"
	"unhook/internal/modules/intervention/service"
	"unhook/internal/platform/clock"
	apperrors "unhook/internal/platform/errors"
)

type memResultStore struct {
	results map[int64]domain.InterventionResult
	upserts int
}

func newMemResultStore() *memResultStore {
	return &memResultStore{results: map[int64]domain.InterventionResult{}}
}

func (m *memResultStore) Upsert(_ context.Context, result domain.InterventionResult) error {
	m.upserts++
	m.results[result.SessionID] = result
	return nil
}

func (m *memResultStore) BySession(_ context.Context, sessionID int64) (domain.InterventionResult, error) {
	result, ok := m.results[sessionID]
	if !ok {
		return domain.InterventionResult{}, apperrors.ErrNotFound
	}
	return result, nil
}

func (m *memResultStore) ForApp(_ context.Context, app string) ([]domain.InterventionResult, error) {
	out := []domain.InterventionResult{}
	for _, r := range m.results {
		if r.App == app {
			out = append(out, r)
		}
	}
	return out, nil
}

func newService(store *memResultStore) *service.InterventionService {
	instant := time.Date(2026, time.March, 5, 10, 0, 0, 0, time.UTC)
	return service.NewInterventionService(clock.Fixed{Instant: instant}, store)
}

func TestRecordDecisionLeavesOutcomePending(t *testing.T) {
	t.Parallel()

	store := newMemResultStore()
	svc := newService(store)
	start := time.Date(2026, time.March, 4, 23, 30, 0, 0, time.UTC)

	result, err := svc.RecordDecision(context.Background(), domain.InterventionResult{
		SessionID:       9,
		App:             "instagram",
		UserChoice:      domain.ChoiceProceed,
		DurationSoFarMS: 45_000,
	}, start.UnixMilli())
	if err != nil {
		t.Fatalf("record decision: %v", err)
	}
	if result.OutcomeRecorded || result.FinalDurationMS != 0 {
		t.Fatalf("live decision must leave the outcome pending, got %+v", result)
	}
	if result.HourOfDay != 23 || !result.IsLateNight || result.DayOfWeek != int(time.Wednesday) {
		t.Fatalf("temporal context must come from the session start, got %+v", result)
	}
}

func TestCompleteOutcomeExactlyOnce(t *testing.T) {
	t.Parallel()

	store := newMemResultStore()
	svc := newService(store)
	ctx := context.Background()
	start := time.Date(2026, time.March, 4, 9, 0, 0, 0, time.UTC)

	if _, err := svc.RecordDecision(ctx, domain.InterventionResult{SessionID: 9, App: "instagram"}, start.UnixMilli()); err != nil {
		t.Fatalf("record decision: %v", err)
	}

	first, err := svc.CompleteOutcome(ctx, 9, 180_000, true)
	if err != nil {
		t.Fatalf("complete outcome: %v", err)
	}
	if !first.OutcomeRecorded || first.FinalDurationMS != 180_000 || !first.EndedNormally {
		t.Fatalf("outcome not applied: %+v", first)
	}

	upserts := store.upserts
	second, err := svc.CompleteOutcome(ctx, 9, 999_999, false)
	if err != nil {
		t.Fatalf("repeat completion should not error: %v", err)
	}
	if second.FinalDurationMS != 180_000 || !second.EndedNormally {
		t.Fatalf("repeat completion must not overwrite the outcome: %+v", second)
	}
	if store.upserts != upserts {
		t.Fatalf("repeat completion must not write")
	}
}

func TestCompleteOutcomeUnknownSession(t *testing.T) {
	t.Parallel()

	svc := newService(newMemResultStore())
	if _, err := svc.CompleteOutcome(context.Background(), 404, 1, true); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("unknown session should report not found, got %v", err)
	}
}
