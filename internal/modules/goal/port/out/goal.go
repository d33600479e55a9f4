package out

import (
	"context"

	"unhook/internal/modules/goal/domain"
)

type GoalStore interface {
	Upsert(ctx context.Context, goal domain.Goal) error
	Get(ctx context.Context, app string) (domain.Goal, error)
	List(ctx context.Context) ([]domain.Goal, error)
}

type RecoveryStore interface {
	Get(ctx context.Context, app string) (domain.StreakRecovery, error)
	Upsert(ctx context.Context, recovery domain.StreakRecovery) error
	List(ctx context.Context) ([]domain.StreakRecovery, error)
	Delete(ctx context.Context, app string) error
}

type FreezeStore interface {
	Inventory(ctx context.Context) (domain.FreezeInventory, error)
	SaveInventory(ctx context.Context, inventory domain.FreezeInventory) error
	Grant(ctx context.Context, app, date string) (domain.FreezeGrant, error)
	UpsertGrant(ctx context.Context, grant domain.FreezeGrant) error
}
