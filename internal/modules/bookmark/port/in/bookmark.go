package in

import (
	"context"

	"formnav/internal/modules/bookmark/dto"
)

// Usecase is the registry surface. Mutations that fail to persist return the
// updated in-memory list together with an error wrapping ErrPersistence.
type Usecase interface {
	Initialize(ctx context.Context) ([]dto.BookmarkOutput, error)
	List(ctx context.Context) ([]dto.BookmarkOutput, error)
	Get(ctx context.Context, index int) (dto.BookmarkOutput, error)
	Add(ctx context.Context, input dto.AddInput) ([]dto.BookmarkOutput, error)
	Edit(ctx context.Context, input dto.EditInput) ([]dto.BookmarkOutput, error)
	Remove(ctx context.Context, input dto.RemoveInput) ([]dto.BookmarkOutput, error)
	Save(ctx context.Context, input dto.SaveInput) ([]dto.BookmarkOutput, error)
	Sync(ctx context.Context) ([]dto.BookmarkOutput, error)
}
