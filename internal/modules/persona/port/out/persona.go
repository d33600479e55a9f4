package out

import (
	"context"

	"unhook/internal/modules/persona/domain"
)

// ProfileStore supplies custom profile packs layered over the built-in
// registry.
type ProfileStore interface {
	List(ctx context.Context) ([]domain.Profile, error)
}
