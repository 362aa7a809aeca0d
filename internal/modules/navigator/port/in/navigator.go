package in

import (
	"context"

	"formnav/internal/modules/navigator/dto"
)

type Usecase interface {
	Navigate(ctx context.Context, input dto.NavigateInput) (dto.NavigateOutput, error)
}
