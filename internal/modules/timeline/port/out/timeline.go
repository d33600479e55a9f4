package out

import (
	"context"

	"unhook/internal/modules/timeline/domain"
)

type SessionStore interface {
	// Upsert inserts by (app, start) natural key and returns the
	// store-assigned id, so reseeding the same timeline is idempotent.
	Upsert(ctx context.Context, session domain.Session) (int64, error)
	InRange(ctx context.Context, app string, startMS, endMS int64) ([]domain.Session, error)
}
