package out

import "context"

// Launcher applies a computed location in a real browser.
type Launcher interface {
	Open(ctx context.Context, url string) error
}
