package in

import (
	"context"

	"formnav/internal/modules/page/dto"
)

type Usecase interface {
	Capture(ctx context.Context, input dto.CaptureInput) (dto.CaptureOutput, error)
	CaptureLive(ctx context.Context) (dto.CaptureOutput, error)
}
