package usecase

import (
	"context"

	"unhook/internal/modules/extract/dto"
	extractin "unhook/internal/modules/extract/port/in"
	"unhook/internal/modules/extract/service"
)

type Interactor struct {
	svc *service.ExtractService
}

func NewInteractor(svc *service.ExtractService) extractin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Register(ctx context.Context, input dto.RegisterInput) (dto.Manifest, error) {
	manifest, err := i.svc.Register(ctx, input.Name, input.Binary)
	if err != nil {
		return dto.Manifest{}, err
	}
	return dto.Manifest(manifest), nil
}

func (i *Interactor) List(ctx context.Context) ([]dto.Manifest, error) {
	manifests, err := i.svc.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.Manifest, 0, len(manifests))
	for _, m := range manifests {
		out = append(out, dto.Manifest(m))
	}
	return out, nil
}

func (i *Interactor) Check(ctx context.Context, name string) (dto.Metadata, error) {
	meta, err := i.svc.Metadata(ctx, name)
	if err != nil {
		return dto.Metadata{}, err
	}
	return dto.Metadata(meta), nil
}

func (i *Interactor) Pull(ctx context.Context, input dto.PullInput) (dto.PullOutput, error) {
	records, total, err := i.svc.Pull(ctx, input.Name, input.StartMS, input.EndMS)
	if err != nil {
		return dto.PullOutput{}, err
	}
	out := dto.PullOutput{Records: make([]dto.Record, 0, len(records)), TotalMinutes: total}
	for _, r := range records {
		out.Records = append(out.Records, dto.Record(r))
	}
	return out, nil
}
