package usecase

import (
	"context"
	"errors"
	"fmt"

	"unhook/internal/modules/goal/domain"
	"unhook/internal/modules/goal/dto"
	goalin "unhook/internal/modules/goal/port/in"
	"unhook/internal/modules/goal/service"
	statsdto "unhook/internal/modules/stats/dto"
	statsin "unhook/internal/modules/stats/port/in"
	timelinedto "unhook/internal/modules/timeline/dto"
	timelinein "unhook/internal/modules/timeline/port/in"
	apperrors "unhook/internal/platform/errors"
	"unhook/internal/platform/random"
)

type Interactor struct {
	svc      *service.GoalService
	timeline timelinein.Usecase
	stats    statsin.Usecase
}

func NewInteractor(svc *service.GoalService, timeline timelinein.Usecase, stats statsin.Usecase) goalin.Usecase {
	return &Interactor{svc: svc, timeline: timeline, stats: stats}
}

func (i *Interactor) Generate(_ context.Context, input dto.GenerateInput) ([]dto.Goal, error) {
	if input.HasGoals && (input.StreakDays[0] > input.StreakDays[1] || input.StreakDays[0] < 0) {
		return nil, fmt.Errorf("%w: inverted streak range", apperrors.ErrInvalidProfile)
	}
	goals := domain.GenerateGoals(random.New(input.Seed), input.Apps, domain.GenerateParams{
		HasGoals:       input.HasGoals,
		ComplianceRate: input.ComplianceRate,
		StreakDays:     input.StreakDays,
		StartDate:      input.StartDate,
	})
	return toDTO(goals), nil
}

func (i *Interactor) Persist(ctx context.Context, goals []dto.Goal) error {
	return i.svc.Persist(ctx, fromDTO(goals))
}

func (i *Interactor) List(ctx context.Context) ([]dto.Goal, error) {
	goals, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	return toDTO(goals), nil
}

func (i *Interactor) Set(ctx context.Context, input dto.SetInput) (dto.Goal, error) {
	if input.App == "" || input.DailyLimitMinutes <= 0 {
		return dto.Goal{}, fmt.Errorf("%w: app and positive limit required", apperrors.ErrInvalidInput)
	}
	goal, err := i.svc.Set(ctx, input.App, input.DailyLimitMinutes)
	if err != nil {
		return dto.Goal{}, err
	}
	return goalToDTO(goal), nil
}

// Rollover retries transient failures up to the configured budget.
// Every mutation underneath is idempotent per day, so a retry that
// repeats completed work is harmless.
func (i *Interactor) Rollover(ctx context.Context, input dto.RolloverInput) (dto.RolloverOutput, error) {
	day := input.Date
	if day == "" {
		day = i.svc.Yesterday()
	}
	budget := i.svc.RetryBudget()
	var lastErr error
	for attempt := 1; attempt <= budget; attempt++ {
		results, err := i.rolloverOnce(ctx, day)
		if err == nil {
			return dto.RolloverOutput{Date: day, Attempts: attempt, Results: results}, nil
		}
		lastErr = err
		if !errors.Is(err, apperrors.ErrRetryable) {
			break
		}
	}
	return dto.RolloverOutput{}, fmt.Errorf("rollover for %s: %w", day, lastErr)
}

func (i *Interactor) rolloverOnce(ctx context.Context, day string) ([]dto.GoalRollover, error) {
	startMS, endMS, err := i.svc.DayBounds(day)
	if err != nil {
		return nil, err
	}
	sessions, err := i.timeline.List(ctx, timelinedto.ListInput{StartMS: startMS, EndMS: endMS})
	if err != nil {
		return nil, apperrors.Retryable(fmt.Errorf("load sessions for %s: %w", day, err))
	}

	usage := make([]statsdto.Usage, 0, len(sessions))
	minutesByApp := map[string]int{}
	for _, s := range sessions {
		usage = append(usage, statsdto.Usage{App: s.App, Date: s.Date, DurationMS: s.DurationMS})
		minutesByApp[s.App] += int(s.DurationMS / 60_000)
	}

	// Live path: exact counts only, never the synthesis estimates.
	dayStats, err := i.stats.Aggregate(ctx, statsdto.AggregateInput{Usage: usage})
	if err != nil {
		return nil, err
	}
	if err := i.stats.Persist(ctx, dayStats); err != nil {
		return nil, apperrors.Retryable(fmt.Errorf("persist day stats: %w", err))
	}

	results, err := i.svc.ApplyDay(ctx, day, minutesByApp)
	if err != nil {
		return nil, err
	}

	out := make([]dto.GoalRollover, 0, len(results))
	for _, r := range results {
		out = append(out, dto.GoalRollover{
			App:            r.Goal.App,
			UsageMinutes:   r.UsageMinutes,
			Skipped:        !r.Change.Processed,
			Met:            r.Change.Met,
			Frozen:         r.Change.Frozen,
			Broke:          r.Change.Broke,
			CurrentStreak:  r.Goal.CurrentStreak,
			LongestStreak:  r.Goal.LongestStreak,
			RecoveryOpened: r.RecoveryOpened,
			RecoveryDone:   r.RecoveryDone,
		})
	}
	return out, nil
}

func (i *Interactor) ActivateFreeze(ctx context.Context, input dto.FreezeInput) (dto.FreezeStatus, error) {
	if input.App == "" {
		return dto.FreezeStatus{}, fmt.Errorf("%w: app is required", apperrors.ErrInvalidInput)
	}
	inv, err := i.svc.ActivateFreeze(ctx, input.App, input.Date)
	if err != nil {
		return dto.FreezeStatus{}, err
	}
	date := input.Date
	if date == "" {
		date = i.svc.Today()
	}
	return dto.FreezeStatus{App: input.App, Date: date, Remaining: inv.Available}, nil
}

func (i *Interactor) Recovery(ctx context.Context, app string) (dto.Recovery, error) {
	rec, err := i.svc.Recovery(ctx, app)
	if err != nil {
		return dto.Recovery{}, err
	}
	return dto.Recovery{
		App:               rec.App,
		PreviousStreak:    rec.PreviousStreak,
		StartDate:         rec.StartDate,
		DaysElapsed:       rec.DaysElapsed,
		Complete:          rec.Complete,
		CompletedDate:     rec.CompletedDate,
		NotificationShown: rec.NotificationShown,
	}, nil
}

func goalToDTO(g domain.Goal) dto.Goal {
	return dto.Goal{
		App:               g.App,
		DailyLimitMinutes: g.DailyLimitMinutes,
		StartDate:         g.StartDate,
		CurrentStreak:     g.CurrentStreak,
		LongestStreak:     g.LongestStreak,
		LastUpdatedDate:   g.LastUpdatedDate,
	}
}

func toDTO(goals []domain.Goal) []dto.Goal {
	out := make([]dto.Goal, 0, len(goals))
	for _, g := range goals {
		out = append(out, goalToDTO(g))
	}
	return out
}

func fromDTO(goals []dto.Goal) []domain.Goal {
	out := make([]domain.Goal, 0, len(goals))
	for _, g := range goals {
		out = append(out, domain.Goal{
			App:               g.App,
			DailyLimitMinutes: g.DailyLimitMinutes,
			StartDate:         g.StartDate,
			CurrentStreak:     g.CurrentStreak,
			LongestStreak:     g.LongestStreak,
			LastUpdatedDate:   g.LastUpdatedDate,
		})
	}
	return out
}
