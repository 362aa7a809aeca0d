package usecase

import (
	"context"

	"formnav/internal/modules/bookmark/domain"
	"formnav/internal/modules/bookmark/dto"
	bookmarkin "formnav/internal/modules/bookmark/port/in"
	"formnav/internal/modules/bookmark/service"
)

type Interactor struct {
	registry *service.Registry
}

func NewInteractor(registry *service.Registry) bookmarkin.Usecase {
	return &Interactor{registry: registry}
}

func (i *Interactor) Initialize(ctx context.Context) ([]dto.BookmarkOutput, error) {
	return toOutputs(i.registry.Initialize(ctx))
}

func (i *Interactor) List(ctx context.Context) ([]dto.BookmarkOutput, error) {
	return toOutputs(i.registry.List(ctx))
}

func (i *Interactor) Get(ctx context.Context, index int) (dto.BookmarkOutput, error) {
	b, err := i.registry.Get(ctx, index)
	if err != nil {
		return dto.BookmarkOutput{}, err
	}
	return dto.BookmarkOutput{Index: index, Label: b.Label, Fragment: b.Fragment}, nil
}

func (i *Interactor) Add(ctx context.Context, input dto.AddInput) ([]dto.BookmarkOutput, error) {
	return toOutputs(i.registry.Add(ctx, input.Label, input.Fragment))
}

func (i *Interactor) Edit(ctx context.Context, input dto.EditInput) ([]dto.BookmarkOutput, error) {
	return toOutputs(i.registry.Edit(ctx, input.Index, input.Label, input.Fragment))
}

func (i *Interactor) Remove(ctx context.Context, input dto.RemoveInput) ([]dto.BookmarkOutput, error) {
	return toOutputs(i.registry.Remove(ctx, input.Index))
}

func (i *Interactor) Save(ctx context.Context, input dto.SaveInput) ([]dto.BookmarkOutput, error) {
	req := domain.SaveRequest{Kind: domain.SaveKind(input.Kind), Index: input.Index}
	return toOutputs(i.registry.Save(ctx, req, input.Label, input.Fragment))
}

func (i *Interactor) Sync(ctx context.Context) ([]dto.BookmarkOutput, error) {
	return toOutputs(i.registry.Sync(ctx))
}

// toOutputs keeps the list even when err is set, so a persistence failure
// still hands the caller the in-memory state.
func toOutputs(list domain.List, err error) ([]dto.BookmarkOutput, error) {
	if list == nil {
		return nil, err
	}
	out := make([]dto.BookmarkOutput, 0, len(list))
	for idx, b := range list {
		out = append(out, dto.BookmarkOutput{Index: idx, Label: b.Label, Fragment: b.Fragment})
	}
	return out, err
}
