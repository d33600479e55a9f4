package usecase_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"unhook/internal/modules/goal/domain"
	"unhook/internal/modules/goal/dto"
	goalin "unhook/internal/modules/goal/port/in"
	"unhook/internal/modules/goal/service"
	"unhook/internal/modules/goal/usecase"
	statsdto "unhook/internal/modules/stats/dto"
	timelinedto "unhook/internal/modules/timeline/dto"
	"unhook/internal/platform/clock"
	apperrors "unhook/internal/platform/errors"
)

type memGoalStore struct {
	goals map[string]domain.Goal
}

func newMemGoalStore(goals ...domain.Goal) *memGoalStore {
	store := &memGoalStore{goals: map[string]domain.Goal{}}
	for _, g := range goals {
		store.goals[g.App] = g
	}
	return store
}

func (m *memGoalStore) Upsert(_ context.Context, goal domain.Goal) error {
	m.goals[goal.App] = goal
	return nil
}

func (m *memGoalStore) Get(_ context.Context, app string) (domain.Goal, error) {
	goal, ok := m.goals[app]
	if !ok {
		return domain.Goal{}, apperrors.ErrNotFound
	}
	return goal, nil
}

func (m *memGoalStore) List(context.Context) ([]domain.Goal, error) {
	out := make([]domain.Goal, 0, len(m.goals))
	for _, g := range m.goals {
		out = append(out, g)
	}
	return out, nil
}

type memRecoveryStore struct {
	recoveries map[string]domain.StreakRecovery
}

func (m *memRecoveryStore) Get(_ context.Context, app string) (domain.StreakRecovery, error) {
	rec, ok := m.recoveries[app]
	if !ok {
		return domain.StreakRecovery{}, apperrors.ErrNotFound
	}
	return rec, nil
}

func (m *memRecoveryStore) Upsert(_ context.Context, rec domain.StreakRecovery) error {
	if m.recoveries == nil {
		m.recoveries = map[string]domain.StreakRecovery{}
	}
	m.recoveries[rec.App] = rec
	return nil
}

func (m *memRecoveryStore) List(context.Context) ([]domain.StreakRecovery, error) {
	out := make([]domain.StreakRecovery, 0, len(m.recoveries))
	for _, rec := range m.recoveries {
		out = append(out, rec)
	}
	return out, nil
}

func (m *memRecoveryStore) Delete(_ context.Context, app string) error {
	delete(m.recoveries, app)
	return nil
}

type memFreezeStore struct {
	inventory domain.FreezeInventory
	grants    map[string]domain.FreezeGrant
}

func (m *memFreezeStore) Inventory(context.Context) (domain.FreezeInventory, error) {
	return m.inventory, nil
}

func (m *memFreezeStore) SaveInventory(_ context.Context, inv domain.FreezeInventory) error {
	m.inventory = inv
	return nil
}

func (m *memFreezeStore) Grant(_ context.Context, app, date string) (domain.FreezeGrant, error) {
	grant, ok := m.grants[app+"|"+date]
	if !ok {
		return domain.FreezeGrant{}, apperrors.ErrNotFound
	}
	return grant, nil
}

func (m *memFreezeStore) UpsertGrant(_ context.Context, grant domain.FreezeGrant) error {
	if m.grants == nil {
		m.grants = map[string]domain.FreezeGrant{}
	}
	m.grants[grant.App+"|"+grant.Date] = grant
	return nil
}

type fakeTimeline struct {
	sessions []timelinedto.Session
}

func (f *fakeTimeline) Synthesize(context.Context, timelinedto.SynthesizeInput) (timelinedto.SynthesizeOutput, error) {
	return timelinedto.SynthesizeOutput{}, nil
}

func (f *fakeTimeline) Normalize(context.Context, []timelinedto.RecordInput) (timelinedto.SynthesizeOutput, error) {
	return timelinedto.SynthesizeOutput{}, nil
}

func (f *fakeTimeline) Persist(context.Context, []timelinedto.Session) ([]int64, error) {
	return nil, nil
}

func (f *fakeTimeline) Record(context.Context, timelinedto.RecordInput) (timelinedto.Session, error) {
	return timelinedto.Session{}, nil
}

func (f *fakeTimeline) List(context.Context, timelinedto.ListInput) ([]timelinedto.Session, error) {
	return f.sessions, nil
}

// fakeStats fails Persist the first failPersists times, then succeeds.
type fakeStats struct {
	failPersists int
	persistCalls int
}

func (f *fakeStats) Aggregate(_ context.Context, input statsdto.AggregateInput) ([]statsdto.DailyStat, error) {
	stats := make([]statsdto.DailyStat, 0, len(input.Usage))
	for _, u := range input.Usage {
		stats = append(stats, statsdto.DailyStat{Date: u.Date, App: u.App, TotalDurationMS: u.DurationMS, SessionCount: 1})
	}
	return stats, nil
}

func (f *fakeStats) Persist(context.Context, []statsdto.DailyStat) error {
	f.persistCalls++
	if f.persistCalls <= f.failPersists {
		return fmt.Errorf("disk full")
	}
	return nil
}

func (f *fakeStats) Query(context.Context, statsdto.QueryInput) ([]statsdto.DailyStat, error) {
	return nil, nil
}

func testPolicy() service.Policy {
	return service.Policy{
		RecoveryLengthDays:     3,
		RecoveryRetentionDays:  30,
		MinStreakForRecovery:   3,
		MonthlyFreezeAllowance: 2,
		RetryBudget:            3,
	}
}

func newFixture(goals *memGoalStore, stats *fakeStats, sessions []timelinedto.Session) goalin.Usecase {
	clk := clock.Fixed{Instant: time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC)}
	svc := service.NewGoalService(clk, goals, &memRecoveryStore{}, &memFreezeStore{}, testPolicy())
	return usecase.NewInteractor(svc, &fakeTimeline{sessions: sessions}, stats)
}

func instagramGoal() domain.Goal {
	return domain.Goal{App: "instagram", DailyLimitMinutes: 60, StartDate: "2026-02-01", CurrentStreak: 2, LongestStreak: 5}
}

func daySessions() []timelinedto.Session {
	return []timelinedto.Session{
		{ID: 1, App: "instagram", StartMS: 1_000, DurationMS: 1_800_000, Date: "2026-03-04"},
	}
}

func TestRolloverRetriesTransientStoreFailures(t *testing.T) {
	t.Parallel()

	goals := newMemGoalStore(instagramGoal())
	stats := &fakeStats{failPersists: 1}
	uc := newFixture(goals, stats, daySessions())

	out, err := uc.Rollover(context.Background(), dto.RolloverInput{})
	if err != nil {
		t.Fatalf("rollover: %v", err)
	}
	if out.Attempts != 2 {
		t.Fatalf("attempts = %d, want 2", out.Attempts)
	}
	if out.Date != "2026-03-04" {
		t.Fatalf("default day = %s, want yesterday 2026-03-04", out.Date)
	}
	if len(out.Results) != 1 {
		t.Fatalf("results = %d, want 1", len(out.Results))
	}
	r := out.Results[0]
	if !r.Met || r.Broke || r.Frozen || r.Skipped {
		t.Fatalf("30min under a 60min limit should be met, got %+v", r)
	}
	if r.CurrentStreak != 3 || r.LongestStreak != 5 {
		t.Fatalf("streak = %d/%d, want 3/5", r.CurrentStreak, r.LongestStreak)
	}
	if stats.persistCalls != 2 {
		t.Fatalf("stats persisted %d times, want 2", stats.persistCalls)
	}
}

func TestRolloverExhaustsRetryBudget(t *testing.T) {
	t.Parallel()

	goals := newMemGoalStore(instagramGoal())
	stats := &fakeStats{failPersists: 10}
	uc := newFixture(goals, stats, daySessions())

	_, err := uc.Rollover(context.Background(), dto.RolloverInput{})
	if !errors.Is(err, apperrors.ErrRetryable) {
		t.Fatalf("exhausted budget should surface the retryable failure, got %v", err)
	}
	if stats.persistCalls != 3 {
		t.Fatalf("stats persist tried %d times, want the full budget of 3", stats.persistCalls)
	}
	// Goal stamps happen after stats, so the day stays re-runnable.
	goal := goals.goals["instagram"]
	if goal.CurrentStreak != 2 || goal.LastUpdatedDate != "" {
		t.Fatalf("failed rollover must leave the goal untouched, got %+v", goal)
	}
}

func TestRolloverRejectsMalformedDate(t *testing.T) {
	t.Parallel()

	goals := newMemGoalStore(instagramGoal())
	stats := &fakeStats{}
	uc := newFixture(goals, stats, daySessions())

	_, err := uc.Rollover(context.Background(), dto.RolloverInput{Date: "not-a-date"})
	if !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("malformed date should be invalid input, got %v", err)
	}
	if stats.persistCalls != 0 {
		t.Fatalf("nothing should be persisted for a malformed date")
	}
}

func TestRolloverRerunSkipsStampedDay(t *testing.T) {
	t.Parallel()

	goals := newMemGoalStore(instagramGoal())
	stats := &fakeStats{}
	uc := newFixture(goals, stats, daySessions())

	if _, err := uc.Rollover(context.Background(), dto.RolloverInput{}); err != nil {
		t.Fatalf("first rollover: %v", err)
	}
	out, err := uc.Rollover(context.Background(), dto.RolloverInput{})
	if err != nil {
		t.Fatalf("second rollover: %v", err)
	}
	if !out.Results[0].Skipped {
		t.Fatalf("re-run of a stamped day must be skipped, got %+v", out.Results[0])
	}
	goal := goals.goals["instagram"]
	if goal.CurrentStreak != 3 {
		t.Fatalf("re-run must not advance the streak twice, got %d", goal.CurrentStreak)
	}
}
