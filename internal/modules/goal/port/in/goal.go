package in

import (
	"context"

	"unhook/internal/modules/goal/dto"
)

type Usecase interface {
	// Generate derives goals from persona parameters without
	// persisting; a persona without goals yields an empty set.
	Generate(ctx context.Context, input dto.GenerateInput) ([]dto.Goal, error)
	// Persist upserts goals by app key.
	Persist(ctx context.Context, goals []dto.Goal) error
	List(ctx context.Context) ([]dto.Goal, error)
	Set(ctx context.Context, input dto.SetInput) (dto.Goal, error)
	// Rollover closes out one day: aggregates real usage, advances or
	// breaks streaks, progresses recoveries. Safe to re-run for the
	// same day.
	Rollover(ctx context.Context, input dto.RolloverInput) (dto.RolloverOutput, error)
	// ActivateFreeze consumes one freeze credit for an (app, date).
	ActivateFreeze(ctx context.Context, input dto.FreezeInput) (dto.FreezeStatus, error)
	Recovery(ctx context.Context, app string) (dto.Recovery, error)
}
