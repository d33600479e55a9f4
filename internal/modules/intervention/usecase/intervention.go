package usecase

import (
	"context"
	"fmt"

	"unhook/internal/modules/intervention/domain"
	"unhook/internal/modules/intervention/dto"
	interventionin "unhook/internal/modules/intervention/port/in"
	"unhook/internal/modules/intervention/service"
	apperrors "unhook/internal/platform/errors"
	"unhook/internal/platform/random"
)

type Interactor struct {
	svc *service.InterventionService
}

func NewInteractor(svc *service.InterventionService) interventionin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Synthesize(_ context.Context, input dto.SynthesizeInput) ([]dto.Result, error) {
	for _, w := range input.Response {
		if w < 0 {
			return nil, fmt.Errorf("%w: negative response weight", apperrors.ErrInvalidProfile)
		}
	}
	for _, w := range input.DecisionTime {
		if w < 0 {
			return nil, fmt.Errorf("%w: negative decision-time weight", apperrors.ErrInvalidProfile)
		}
	}

	sessions := make([]domain.Session, 0, len(input.Sessions))
	for _, s := range input.Sessions {
		sessions = append(sessions, domain.Session(s))
	}
	results := domain.Synthesize(random.New(input.Seed), sessions, input.QuickReopen, domain.Blueprint{
		Response:      input.Response,
		DecisionTime:  input.DecisionTime,
		CurrentStreak: input.CurrentStreak,
	}, i.svc.Location())
	return toDTO(results), nil
}

func (i *Interactor) Persist(ctx context.Context, results []dto.Result) error {
	return i.svc.Persist(ctx, fromDTO(results))
}

func (i *Interactor) RecordDecision(ctx context.Context, input dto.DecisionInput) (dto.Result, error) {
	if input.SessionID <= 0 || input.App == "" {
		return dto.Result{}, fmt.Errorf("%w: session id and app are required", apperrors.ErrInvalidInput)
	}
	kind := input.InterventionType
	switch kind {
	case "":
		kind = domain.TypeReminder
	case domain.TypeReminder, domain.TypeTimer:
	default:
		return dto.Result{}, fmt.Errorf("%w: unknown intervention type %q", apperrors.ErrInvalidInput, kind)
	}
	result, err := i.svc.RecordDecision(ctx, domain.InterventionResult{
		SessionID:         input.SessionID,
		App:               input.App,
		InterventionType:  kind,
		ContentType:       input.ContentType,
		SessionCountToday: input.SessionCount,
		QuickReopen:       input.QuickReopen,
		DurationSoFarMS:   input.DurationSoFarMS,
		UserChoice:        input.UserChoice,
		DecisionTimeMS:    input.DecisionTimeMS,
	}, input.StartMS)
	if err != nil {
		return dto.Result{}, err
	}
	return dto.Result(result), nil
}

func (i *Interactor) CompleteOutcome(ctx context.Context, input dto.OutcomeInput) (dto.Result, error) {
	result, err := i.svc.CompleteOutcome(ctx, input.SessionID, input.FinalDurationMS, input.EndedNormally)
	if err != nil {
		return dto.Result{}, err
	}
	return dto.Result(result), nil
}

func (i *Interactor) ForApp(ctx context.Context, app string) ([]dto.Result, error) {
	results, err := i.svc.ForApp(ctx, app)
	if err != nil {
		return nil, err
	}
	return toDTO(results), nil
}

func toDTO(results []domain.InterventionResult) []dto.Result {
	out := make([]dto.Result, 0, len(results))
	for _, r := range results {
		out = append(out, dto.Result(r))
	}
	return out
}

func fromDTO(results []dto.Result) []domain.InterventionResult {
	out := make([]domain.InterventionResult, 0, len(results))
	for _, r := range results {
		out = append(out, domain.InterventionResult(r))
	}
	return out
}
