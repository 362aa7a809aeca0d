// Package livebrowser drives a real Chromium tab through Playwright. It either
// attaches to a running browser over CDP or launches a headless one.
package livebrowser

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/playwright-community/playwright-go"
	"go.uber.org/zap"

	apperrors "formnav/internal/platform/errors"
)

const headingSelector = "h1, h2, h3, h4"

type Options struct {
	// CDPEndpoint is a DevTools URL such as http://127.0.0.1:9222. Empty
	// launches a private headless browser instead.
	CDPEndpoint string
	Logger      *zap.Logger
}

// Browser connects lazily on first use and keeps a single page handle.
type Browser struct {
	opts Options

	mu      sync.Mutex
	pw      *playwright.Playwright
	browser playwright.Browser
	page    playwright.Page
}

func New(opts Options) *Browser {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Browser{opts: opts}
}

func (b *Browser) URL(ctx context.Context) (string, error) {
	page, err := b.currentPage(ctx)
	if err != nil {
		return "", err
	}
	return page.URL(), nil
}

func (b *Browser) Title(ctx context.Context) (string, error) {
	page, err := b.currentPage(ctx)
	if err != nil {
		return "", err
	}
	title, err := page.Title()
	if err != nil {
		return "", fmt.Errorf("read page title: %w", err)
	}
	return title, nil
}

func (b *Browser) Headings(ctx context.Context) ([]string, error) {
	page, err := b.currentPage(ctx)
	if err != nil {
		return nil, err
	}
	texts, err := page.Locator(headingSelector).AllTextContents()
	if err != nil {
		return nil, fmt.Errorf("read page headings: %w", err)
	}
	return texts, nil
}

func (b *Browser) Goto(ctx context.Context, url string) error {
	page, err := b.currentPage(ctx)
	if err != nil {
		return err
	}
	if _, err := page.Goto(url); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	return nil
}

// Close detaches from an attached browser and closes a launched one.
func (b *Browser) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var firstErr error
	if b.browser != nil {
		if err := b.browser.Close(); err != nil {
			firstErr = err
		}
		b.browser = nil
		b.page = nil
	}
	if b.pw != nil {
		if err := b.pw.Stop(); err != nil && firstErr == nil {
			firstErr = err
		}
		b.pw = nil
	}
	return firstErr
}

func (b *Browser) currentPage(ctx context.Context) (playwright.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.page != nil && !b.page.IsClosed() {
		return b.page, nil
	}
	if err := b.connectLocked(); err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrUnavailable, err)
	}
	page, err := b.pickPageLocked()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrUnavailable, err)
	}
	b.page = page
	return page, nil
}

func (b *Browser) connectLocked() error {
	if b.browser != nil && b.browser.IsConnected() {
		return nil
	}
	if b.pw == nil {
		pw, err := playwright.Run(&playwright.RunOptions{
			Verbose: false,
			Stdout:  io.Discard,
			Stderr:  io.Discard,
		})
		if err != nil {
			return fmt.Errorf("start playwright: %w", err)
		}
		b.pw = pw
	}

	var (
		browser playwright.Browser
		err     error
	)
	if b.opts.CDPEndpoint != "" {
		browser, err = b.pw.Chromium.ConnectOverCDP(b.opts.CDPEndpoint)
	} else {
		browser, err = b.pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{Headless: playwright.Bool(true)})
	}
	if err != nil {
		return fmt.Errorf("open browser: %w", err)
	}
	b.browser = browser
	b.opts.Logger.Info("live browser connected",
		zap.String("cdp_endpoint", b.opts.CDPEndpoint),
		zap.String("version", browser.Version()),
	)
	return nil
}

// pickPageLocked prefers the most recently opened tab of an attached
// browser.
func (b *Browser) pickPageLocked() (playwright.Page, error) {
	for _, bc := range b.browser.Contexts() {
		pages := bc.Pages()
		for i := len(pages) - 1; i >= 0; i-- {
			if !pages[i].IsClosed() {
				return pages[i], nil
			}
		}
	}
	page, err := b.browser.NewPage()
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	return page, nil
}
