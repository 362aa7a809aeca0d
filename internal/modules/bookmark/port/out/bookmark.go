package out

import (
	"context"

	"formnav/internal/modules/bookmark/domain"
)

// Store is durable storage for the bookmark list under one namespaced key.
// Load returns defaults when nothing has been written yet. Save replaces the
// whole list.
type Store interface {
	Load(ctx context.Context, defaults domain.List) (domain.List, error)
	Save(ctx context.Context, list domain.List) error
}
