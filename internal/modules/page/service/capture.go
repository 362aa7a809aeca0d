package service

import (
	"context"
	"fmt"

	"formnav/internal/modules/page/domain"
	pageout "formnav/internal/modules/page/port/out"
	apperrors "formnav/internal/platform/errors"
)

type CaptureService struct {
	extractor *Extractor
	parser    pageout.DocumentParser
	live      pageout.LiveSource
}

// NewCaptureService accepts a nil live source; CaptureLive then reports
// ErrUnavailable.
func NewCaptureService(extractor *Extractor, parser pageout.DocumentParser, live pageout.LiveSource) *CaptureService {
	return &CaptureService{extractor: extractor, parser: parser, live: live}
}

// Capture builds a candidate from a URL and page details. A non-empty html
// document replaces info.
func (s *CaptureService) Capture(ctx context.Context, rawURL string, info domain.PageInfo, html string) (domain.Capture, error) {
	loc, err := domain.ParseLocation(rawURL)
	if err != nil {
		return domain.Capture{}, err
	}
	out := domain.Capture{URL: loc.String()}
	fragment := s.extractor.Fragment(loc)
	if fragment == "" {
		return out, nil
	}
	if html != "" {
		if s.parser == nil {
			return domain.Capture{}, fmt.Errorf("%w: no document parser configured", apperrors.ErrUnavailable)
		}
		parsed, err := s.parser.Parse(ctx, html)
		if err != nil {
			return domain.Capture{}, fmt.Errorf("%w: parse page: %v", apperrors.ErrInvalidInput, err)
		}
		info = parsed
	}
	out.Fragment = fragment
	out.Label = s.extractor.Label(info)
	out.Capturable = true
	return out, nil
}

func (s *CaptureService) CaptureLive(ctx context.Context) (domain.Capture, error) {
	if s.live == nil {
		return domain.Capture{}, fmt.Errorf("%w: no live browser configured", apperrors.ErrUnavailable)
	}
	snap, err := s.live.Snapshot(ctx)
	if err != nil {
		return domain.Capture{}, fmt.Errorf("%w: read live page: %w", apperrors.ErrUnavailable, err)
	}
	return s.Capture(ctx, snap.URL, snap.Page, "")
}
