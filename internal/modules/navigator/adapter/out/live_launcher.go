package out

import (
	"context"

	navigatorout "formnav/internal/modules/navigator/port/out"
)

// Tab is a browser page that can be pointed at a new location.
type Tab interface {
	Goto(ctx context.Context, url string) error
}

// LiveLauncher navigates an already attached tab in place.
type LiveLauncher struct {
	tab Tab
}

func NewLiveLauncher(tab Tab) navigatorout.Launcher {
	return LiveLauncher{tab: tab}
}

func (l LiveLauncher) Open(ctx context.Context, url string) error {
	return l.tab.Goto(ctx, url)
}
