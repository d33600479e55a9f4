package out

import (
	"context"

	"unhook/internal/modules/stats/domain"
)

type StatStore interface {
	// Upsert writes by (date, app) natural key; recomputing a day is
	// always safe.
	Upsert(ctx context.Context, stat domain.DailyStat) error
	InRange(ctx context.Context, app, fromDate, toDate string) ([]domain.DailyStat, error)
}
