package out

import (
	"context"
	"io"
	"sync"

	"github.com/cli/browser"

	navigatorout "formnav/internal/modules/navigator/port/out"
)

var silenceOpener sync.Once

// SystemLauncher opens targets in the user's default browser.
type SystemLauncher struct{}

// NewSystemLauncher silences the opener's stdout, which carries native
// messaging frames when running as a host.
func NewSystemLauncher() navigatorout.Launcher {
	silenceOpener.Do(func() {
		browser.Stdout = io.Discard
	})
	return SystemLauncher{}
}

func (SystemLauncher) Open(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return browser.OpenURL(url)
}
