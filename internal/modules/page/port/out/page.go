package out

import (
	"context"

	"formnav/internal/modules/page/domain"
)

// DocumentParser reads title and headings out of a serialized page.
type DocumentParser interface {
	Parse(ctx context.Context, html string) (domain.PageInfo, error)
}

// LiveSource reads the page a real browser tab is showing right now.
type LiveSource interface {
	Snapshot(ctx context.Context) (domain.Snapshot, error)
}
