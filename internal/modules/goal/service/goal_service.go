package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"unhook/internal/modules/goal/domain"
	goalout "unhook/internal/modules/goal/port/out"
	"unhook/internal/platform/clock"
	apperrors "unhook/internal/platform/errors"
)

const dateLayout = "2006-01-02"

// Policy carries the rollover tunables; values come from
// config.Tuning.
type Policy struct {
	RecoveryLengthDays     int
	RecoveryRetentionDays  int
	MinStreakForRecovery   int
	MonthlyFreezeAllowance int
	RetryBudget            int
}

type GoalService struct {
	clock      clock.Clock
	goals      goalout.GoalStore
	recoveries goalout.RecoveryStore
	freezes    goalout.FreezeStore
	policy     Policy
}

func NewGoalService(clk clock.Clock, goals goalout.GoalStore, recoveries goalout.RecoveryStore, freezes goalout.FreezeStore, policy Policy) *GoalService {
	return &GoalService{clock: clk, goals: goals, recoveries: recoveries, freezes: freezes, policy: policy}
}

func (s *GoalService) RetryBudget() int {
	if s.policy.RetryBudget < 1 {
		return 1
	}
	return s.policy.RetryBudget
}

// Yesterday is the default rollover day.
func (s *GoalService) Yesterday() string {
	return s.clock.Now().In(s.clock.Location()).AddDate(0, 0, -1).Format(dateLayout)
}

func (s *GoalService) Today() string {
	return s.clock.Now().In(s.clock.Location()).Format(dateLayout)
}

// DayBounds returns the [start, end) unix-millisecond window of a local
// calendar day.
func (s *GoalService) DayBounds(date string) (int64, int64, error) {
	day, err := time.ParseInLocation(dateLayout, date, s.clock.Location())
	if err != nil {
		return 0, 0, fmt.Errorf("%w: bad date %q", apperrors.ErrInvalidInput, date)
	}
	return day.UnixMilli(), day.AddDate(0, 0, 1).UnixMilli(), nil
}

func (s *GoalService) Persist(ctx context.Context, goals []domain.Goal) error {
	for _, goal := range goals {
		if err := s.goals.Upsert(ctx, goal); err != nil {
			return fmt.Errorf("persist goal %s: %w", goal.App, err)
		}
	}
	return nil
}

func (s *GoalService) List(ctx context.Context) ([]domain.Goal, error) {
	return s.goals.List(ctx)
}

func (s *GoalService) Set(ctx context.Context, app string, limitMinutes int) (domain.Goal, error) {
	goal, err := s.goals.Get(ctx, app)
	if errors.Is(err, apperrors.ErrNotFound) {
		goal = domain.Goal{App: app, StartDate: s.Today()}
	} else if err != nil {
		return domain.Goal{}, err
	}
	goal.DailyLimitMinutes = limitMinutes
	if err := s.goals.Upsert(ctx, goal); err != nil {
		return domain.Goal{}, fmt.Errorf("save goal %s: %w", app, err)
	}
	return goal, nil
}

func (s *GoalService) Recovery(ctx context.Context, app string) (domain.StreakRecovery, error) {
	return s.recoveries.Get(ctx, app)
}

// ActivateFreeze consumes one credit from the inventory and grants
// cover for (app, date). The rollover never touches the inventory for
// consumption, so retried rollovers cannot double-spend.
func (s *GoalService) ActivateFreeze(ctx context.Context, app, date string) (domain.FreezeInventory, error) {
	if date == "" {
		date = s.Today()
	}
	inv, err := s.freezes.Inventory(ctx)
	if err != nil {
		return domain.FreezeInventory{}, fmt.Errorf("load freeze inventory: %w", err)
	}
	inv = inv.ResetForMonth(monthOf(date), s.policy.MonthlyFreezeAllowance)
	if _, err := s.freezes.Grant(ctx, app, date); err == nil {
		// Already covered; activation is idempotent per (app, date).
		return inv, s.freezes.SaveInventory(ctx, inv)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return domain.FreezeInventory{}, err
	}
	if inv.Available <= 0 {
		return domain.FreezeInventory{}, apperrors.ErrFreezeUnavailable
	}
	inv.Available--
	if err := s.freezes.SaveInventory(ctx, inv); err != nil {
		return domain.FreezeInventory{}, fmt.Errorf("save freeze inventory: %w", err)
	}
	if err := s.freezes.UpsertGrant(ctx, domain.FreezeGrant{App: app, Date: date}); err != nil {
		return domain.FreezeInventory{}, fmt.Errorf("grant freeze: %w", err)
	}
	return inv, nil
}

// DayResult reports what ApplyDay did for one goal.
type DayResult struct {
	Goal           domain.Goal
	Change         domain.StreakChange
	UsageMinutes   int
	RecoveryOpened bool
	RecoveryDone   bool
}

// ApplyDay runs the streak state machine for every goal against one
// day's per-app usage. All mutations are idempotent per (day, entity);
// store failures come back marked retryable for the caller's budget.
func (s *GoalService) ApplyDay(ctx context.Context, day string, usageMinutes map[string]int) ([]DayResult, error) {
	inv, err := s.freezes.Inventory(ctx)
	if err != nil {
		return nil, apperrors.Retryable(fmt.Errorf("load freeze inventory: %w", err))
	}
	if reset := inv.ResetForMonth(monthOf(s.Today()), s.policy.MonthlyFreezeAllowance); reset != inv {
		if err := s.freezes.SaveInventory(ctx, reset); err != nil {
			return nil, apperrors.Retryable(fmt.Errorf("reset freeze inventory: %w", err))
		}
	}

	goals, err := s.goals.List(ctx)
	if err != nil {
		return nil, apperrors.Retryable(fmt.Errorf("list goals: %w", err))
	}

	results := make([]DayResult, 0, len(goals))
	for _, goal := range goals {
		result, err := s.applyGoalDay(ctx, goal, day, usageMinutes[goal.App])
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	if err := s.collectExpiredRecoveries(ctx, day); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *GoalService) applyGoalDay(ctx context.Context, goal domain.Goal, day string, usage int) (DayResult, error) {
	frozen := false
	grant, err := s.freezes.Grant(ctx, goal.App, day)
	switch {
	case err == nil:
		frozen = true
	case !errors.Is(err, apperrors.ErrNotFound):
		return DayResult{}, apperrors.Retryable(fmt.Errorf("load freeze grant: %w", err))
	}

	updated, change := domain.AdvanceStreak(goal, usage, frozen, day)
	result := DayResult{Goal: updated, Change: change, UsageMinutes: usage}
	if !change.Processed {
		return result, nil
	}

	if change.Frozen && !grant.Applied {
		grant.Applied = true
		if err := s.freezes.UpsertGrant(ctx, grant); err != nil {
			return DayResult{}, apperrors.Retryable(fmt.Errorf("mark freeze applied: %w", err))
		}
	}

	// Progress any active recovery before opening a new one, so a break
	// day never counts toward the recovery it creates.
	recovery, err := s.recoveries.Get(ctx, goal.App)
	if err == nil && !recovery.Complete {
		advanced := domain.AdvanceRecovery(recovery, usage <= updated.DailyLimitMinutes, day, s.policy.RecoveryLengthDays)
		if advanced != recovery {
			if err := s.recoveries.Upsert(ctx, advanced); err != nil {
				return DayResult{}, apperrors.Retryable(fmt.Errorf("progress recovery: %w", err))
			}
			result.RecoveryDone = advanced.Complete
		}
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return DayResult{}, apperrors.Retryable(fmt.Errorf("load recovery: %w", err))
	}

	if change.Broke && change.PreviousStreak >= s.policy.MinStreakForRecovery {
		if err != nil || recovery.Complete {
			opened := domain.StreakRecovery{
				App:            goal.App,
				PreviousStreak: change.PreviousStreak,
				StartDate:      s.Today(),
			}
			if err := s.recoveries.Upsert(ctx, opened); err != nil {
				return DayResult{}, apperrors.Retryable(fmt.Errorf("open recovery: %w", err))
			}
			result.RecoveryOpened = true
		}
	}

	// Goal stamp goes last: a crash before this point leaves the day
	// unstamped and the whole pass re-runnable.
	if err := s.goals.Upsert(ctx, updated); err != nil {
		return DayResult{}, apperrors.Retryable(fmt.Errorf("save goal %s: %w", goal.App, err))
	}
	return result, nil
}

func (s *GoalService) collectExpiredRecoveries(ctx context.Context, day string) error {
	recoveries, err := s.recoveries.List(ctx)
	if err != nil {
		return apperrors.Retryable(fmt.Errorf("list recoveries: %w", err))
	}
	cutoff, err := time.ParseInLocation(dateLayout, day, s.clock.Location())
	if err != nil {
		return fmt.Errorf("%w: bad rollover day %q", apperrors.ErrInvalidInput, day)
	}
	for _, rec := range recoveries {
		if !rec.Complete || rec.CompletedDate == "" {
			continue
		}
		completed, err := time.ParseInLocation(dateLayout, rec.CompletedDate, s.clock.Location())
		if err != nil {
			continue
		}
		if cutoff.Sub(completed) >= time.Duration(s.policy.RecoveryRetentionDays)*24*time.Hour {
			if err := s.recoveries.Delete(ctx, rec.App); err != nil {
				return apperrors.Retryable(fmt.Errorf("delete expired recovery: %w", err))
			}
		}
	}
	return nil
}

func monthOf(date string) string {
	if len(date) >= 7 {
		return date[:7]
	}
	return date
}
