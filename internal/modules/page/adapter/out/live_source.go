package out

import (
	"context"

	"formnav/internal/modules/page/domain"
	pageout "formnav/internal/modules/page/port/out"
)

// LivePage is the slice of a browser tab the live source reads.
type LivePage interface {
	URL(ctx context.Context) (string, error)
	Title(ctx context.Context) (string, error)
	Headings(ctx context.Context) ([]string, error)
}

type LiveSource struct {
	page LivePage
}

func NewLiveSource(page LivePage) pageout.LiveSource {
	return &LiveSource{page: page}
}

func (s *LiveSource) Snapshot(ctx context.Context) (domain.Snapshot, error) {
	url, err := s.page.URL(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}
	title, err := s.page.Title(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}
	headings, err := s.page.Headings(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}
	return domain.Snapshot{URL: url, Page: domain.PageInfo{Title: title, Headings: headings}}, nil
}
