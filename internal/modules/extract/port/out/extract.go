package out

import (
	"context"

	"unhook/internal/modules/extract/domain"
)

type ManifestStore interface {
	Load(ctx context.Context) ([]domain.Manifest, error)
	Save(ctx context.Context, manifests []domain.Manifest) error
}

type Host interface {
	GetMetadata(ctx context.Context, manifest domain.Manifest) (domain.Metadata, error)
	ExtractSessions(ctx context.Context, manifest domain.Manifest, startMS, endMS int64) ([]domain.Record, error)
}
