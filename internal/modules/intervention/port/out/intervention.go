package out

import (
	"context"

	"unhook/internal/modules/intervention/domain"
)

type ResultStore interface {
	Upsert(ctx context.Context, result domain.InterventionResult) error
	BySession(ctx context.Context, sessionID int64) (domain.InterventionResult, error)
	ForApp(ctx context.Context, app string) ([]domain.InterventionResult, error)
}
