package in

import (
	"context"

	"formnav/internal/modules/bookmark/dto"
	bookmarkin "formnav/internal/modules/bookmark/port/in"
)

type CLIHandler struct {
	usecase bookmarkin.Usecase
}

func NewCLIHandler(usecase bookmarkin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]dto.BookmarkOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Add(ctx context.Context, label, fragment string) ([]dto.BookmarkOutput, error) {
	return h.usecase.Add(ctx, dto.AddInput{Label: label, Fragment: fragment})
}

func (h CLIHandler) Edit(ctx context.Context, index int, label, fragment string) ([]dto.BookmarkOutput, error) {
	return h.usecase.Edit(ctx, dto.EditInput{Index: index, Label: label, Fragment: fragment})
}

func (h CLIHandler) Remove(ctx context.Context, index int) ([]dto.BookmarkOutput, error) {
	return h.usecase.Remove(ctx, dto.RemoveInput{Index: index})
}
