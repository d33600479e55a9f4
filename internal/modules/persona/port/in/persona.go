package in

import (
	"context"

	"unhook/internal/modules/persona/dto"
)

type Usecase interface {
	List(ctx context.Context) ([]dto.Profile, error)
	Get(ctx context.Context, name string) (dto.Profile, error)
	// Detect classifies recent live usage to the nearest registered
	// persona, answering from the TTL cache when it is warm.
	Detect(ctx context.Context, input dto.DetectInput) (dto.Detection, error)
}
