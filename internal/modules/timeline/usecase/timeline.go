package usecase

import (
	"context"
	"fmt"

	"unhook/internal/modules/timeline/domain"
	"unhook/internal/modules/timeline/dto"
	timelinein "unhook/internal/modules/timeline/port/in"
	"unhook/internal/modules/timeline/service"
	apperrors "unhook/internal/platform/errors"
)

type Interactor struct {
	svc *service.TimelineService
}

func NewInteractor(svc *service.TimelineService) timelinein.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Synthesize(_ context.Context, input dto.SynthesizeInput) (dto.SynthesizeOutput, error) {
	if input.Days < 0 {
		return dto.SynthesizeOutput{}, fmt.Errorf("%w: negative day count", apperrors.ErrInvalidInput)
	}
	for _, r := range [][2]int{input.SessionsPerDay, input.AverageSessionMinutes, input.LongestSessionMinutes} {
		if r[0] > r[1] || r[0] < 0 {
			return dto.SynthesizeOutput{}, fmt.Errorf("%w: inverted sampling range", apperrors.ErrInvalidProfile)
		}
	}
	bp := domain.Blueprint{
		SessionsPerDay:        input.SessionsPerDay,
		AverageSessionMinutes: input.AverageSessionMinutes,
		LongestSessionMinutes: input.LongestSessionMinutes,
		ExtendedSessionRate:   input.ExtendedSessionRate,
		QuickReopenRate:       input.QuickReopenRate,
		WeekendMultiplier:     input.WeekendMultiplier,
		TimeOfDay: domain.TimeDistribution{
			Morning:   input.TimeOfDay[0],
			Midday:    input.TimeOfDay[1],
			Evening:   input.TimeOfDay[2],
			LateNight: input.TimeOfDay[3],
			VeryLate:  input.TimeOfDay[4],
		},
	}
	sessions, reopens := i.svc.Synthesize(bp, input.Seed, input.Days, input.Apps)
	return dto.SynthesizeOutput{Sessions: toDTO(sessions), QuickReopens: reopens}, nil
}

func (i *Interactor) Normalize(_ context.Context, records []dto.RecordInput) (dto.SynthesizeOutput, error) {
	sessions := make([]domain.Session, 0, len(records))
	for _, rec := range records {
		if rec.EndMS <= rec.StartMS {
			return dto.SynthesizeOutput{}, fmt.Errorf("%w: session end before start for %s", apperrors.ErrInvalidInput, rec.App)
		}
		sessions = append(sessions, domain.Session{
			App:                rec.App,
			StartMS:            rec.StartMS,
			EndMS:              rec.EndMS,
			Interrupted:        rec.Interrupted,
			InterruptionReason: rec.InterruptionReason,
		})
	}
	normalized, reopens := i.svc.Normalize(sessions)
	return dto.SynthesizeOutput{Sessions: toDTO(normalized), QuickReopens: reopens}, nil
}

func (i *Interactor) Persist(ctx context.Context, sessions []dto.Session) ([]int64, error) {
	return i.svc.Persist(ctx, fromDTO(sessions))
}

func (i *Interactor) Record(ctx context.Context, input dto.RecordInput) (dto.Session, error) {
	if input.App == "" {
		return dto.Session{}, fmt.Errorf("%w: app is required", apperrors.ErrInvalidInput)
	}
	if input.EndMS <= input.StartMS {
		return dto.Session{}, fmt.Errorf("%w: session end before start", apperrors.ErrInvalidInput)
	}
	session, err := i.svc.Record(ctx, domain.Session{
		App:                input.App,
		StartMS:            input.StartMS,
		EndMS:              input.EndMS,
		Interrupted:        input.Interrupted,
		InterruptionReason: input.InterruptionReason,
	})
	if err != nil {
		return dto.Session{}, err
	}
	return sessionToDTO(session), nil
}

func (i *Interactor) List(ctx context.Context, input dto.ListInput) ([]dto.Session, error) {
	sessions, err := i.svc.InRange(ctx, input.App, input.StartMS, input.EndMS)
	if err != nil {
		return nil, err
	}
	return toDTO(sessions), nil
}

func sessionToDTO(s domain.Session) dto.Session {
	return dto.Session{
		ID:                 s.ID,
		App:                s.App,
		StartMS:            s.StartMS,
		EndMS:              s.EndMS,
		DurationMS:         s.DurationMS,
		Date:               s.Date,
		Interrupted:        s.Interrupted,
		InterruptionReason: s.InterruptionReason,
	}
}

func toDTO(sessions []domain.Session) []dto.Session {
	out := make([]dto.Session, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, sessionToDTO(s))
	}
	return out
}

func fromDTO(sessions []dto.Session) []domain.Session {
	out := make([]domain.Session, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, domain.Session{
			ID:                 s.ID,
			App:                s.App,
			StartMS:            s.StartMS,
			EndMS:              s.EndMS,
			DurationMS:         s.DurationMS,
			Date:               s.Date,
			Interrupted:        s.Interrupted,
			InterruptionReason: s.InterruptionReason,
		})
	}
	return out
}
