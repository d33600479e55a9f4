package in

import (
	"context"

	interventiondto "unhook/internal/modules/intervention/dto"
	interventionin "unhook/internal/modules/intervention/port/in"
)

type CLIHandler struct {
	usecase interventionin.Usecase
}

func NewCLIHandler(usecase interventionin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) RecordDecision(ctx context.Context, input interventiondto.DecisionInput) (interventiondto.Result, error) {
	return h.usecase.RecordDecision(ctx, input)
}

func (h CLIHandler) CompleteOutcome(ctx context.Context, sessionID, finalDurationMS int64, endedNormally bool) (interventiondto.Result, error) {
	return h.usecase.CompleteOutcome(ctx, interventiondto.OutcomeInput{
		SessionID:       sessionID,
		FinalDurationMS: finalDurationMS,
		EndedNormally:   endedNormally,
	})
}

func (h CLIHandler) ForApp(ctx context.Context, app string) ([]interventiondto.Result, error) {
	return h.usecase.ForApp(ctx, app)
}
