package usecase

import (
	"context"

	"formnav/internal/modules/page/domain"
	"formnav/internal/modules/page/dto"
	pagein "formnav/internal/modules/page/port/in"
	"formnav/internal/modules/page/service"
)

type Interactor struct {
	svc *service.CaptureService
}

func NewInteractor(svc *service.CaptureService) pagein.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Capture(ctx context.Context, input dto.CaptureInput) (dto.CaptureOutput, error) {
	info := domain.PageInfo{Title: input.Title, Headings: input.Headings}
	return toOutput(i.svc.Capture(ctx, input.URL, info, input.HTML))
}

func (i *Interactor) CaptureLive(ctx context.Context) (dto.CaptureOutput, error) {
	return toOutput(i.svc.CaptureLive(ctx))
}

func toOutput(c domain.Capture, err error) (dto.CaptureOutput, error) {
	if err != nil {
		return dto.CaptureOutput{}, err
	}
	return dto.CaptureOutput{
		URL:        c.URL,
		Fragment:   c.Fragment,
		Label:      c.Label,
		Capturable: c.Capturable,
	}, nil
}
