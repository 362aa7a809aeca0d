package in

import (
	"context"

	"formnav/internal/modules/page/dto"
	pagein "formnav/internal/modules/page/port/in"
)

type CLIHandler struct {
	usecase pagein.Usecase
}

func NewCLIHandler(usecase pagein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Capture(ctx context.Context, url, title string, headings []string, html string) (dto.CaptureOutput, error) {
	return h.usecase.Capture(ctx, dto.CaptureInput{URL: url, Title: title, Headings: headings, HTML: html})
}

func (h CLIHandler) CaptureLive(ctx context.Context) (dto.CaptureOutput, error) {
	return h.usecase.CaptureLive(ctx)
}
