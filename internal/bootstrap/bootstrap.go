package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	bookmarkinadapter "formnav/internal/modules/bookmark/adapter/in"
	bookmarkoutadapter "formnav/internal/modules/bookmark/adapter/out"
	bookmarkdomain "formnav/internal/modules/bookmark/domain"
	bookmarkout "formnav/internal/modules/bookmark/port/out"
	bookmarkservice "formnav/internal/modules/bookmark/service"
	bookmarkusecase "formnav/internal/modules/bookmark/usecase"
	bridgeinadapter "formnav/internal/modules/bridge/adapter/in"
	bridgein "formnav/internal/modules/bridge/port/in"
	bridgeservice "formnav/internal/modules/bridge/service"
	bridgeusecase "formnav/internal/modules/bridge/usecase"
	navigatorinadapter "formnav/internal/modules/navigator/adapter/in"
	navigatoroutadapter "formnav/internal/modules/navigator/adapter/out"
	navigatordomain "formnav/internal/modules/navigator/domain"
	navigatorout "formnav/internal/modules/navigator/port/out"
	navigatorservice "formnav/internal/modules/navigator/service"
	navigatorusecase "formnav/internal/modules/navigator/usecase"
	pageinadapter "formnav/internal/modules/page/adapter/in"
	pageoutadapter "formnav/internal/modules/page/adapter/out"
	pageout "formnav/internal/modules/page/port/out"
	pageservice "formnav/internal/modules/page/service"
	pageusecase "formnav/internal/modules/page/usecase"
	"formnav/internal/platform/clock"
	"formnav/internal/platform/config"
	"formnav/internal/platform/id"
	"formnav/internal/platform/livebrowser"
	"formnav/internal/platform/metrics"
	uiapp "formnav/internal/ui/app"
)

const flushTimeout = 5 * time.Second

type App struct {
	Config  config.Config
	Logger  *zap.Logger
	Metrics *metrics.Metrics

	BookmarkCLI  bookmarkinadapter.CLIHandler
	NavigatorCLI navigatorinadapter.CLIHandler
	PageCLI      pageinadapter.CLIHandler
	Bridge       bridgein.Usecase
	JSONRPC      *bridgeinadapter.JSONRPCServer
	HTTP         *bridgeinadapter.HTTPServer

	registry *bookmarkservice.Registry
	closers  []func() error
}

func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	app := &App{Config: cfg, Logger: logger, Metrics: metrics.New()}

	store, err := app.newStore()
	if err != nil {
		return nil, err
	}
	app.registry = bookmarkservice.NewRegistry(store, bookmarkdomain.Defaults(), logger.Named("registry"))
	bookmarkUC := bookmarkusecase.NewInteractor(app.registry)

	var (
		live     pageout.LiveSource
		launcher navigatorout.Launcher = navigatoroutadapter.NewSystemLauncher()
	)
	if cfg.LiveBrowserCDP != "" {
		browser := livebrowser.New(livebrowser.Options{CDPEndpoint: cfg.LiveBrowserCDP, Logger: logger.Named("livebrowser")})
		app.closers = append(app.closers, browser.Close)
		live = pageoutadapter.NewLiveSource(browser)
		launcher = navigatoroutadapter.NewLiveLauncher(browser)
	}

	extractor := pageservice.NewExtractor(clock.SystemClock{}, cfg.TitleSuffix, time.Local)
	pageUC := pageusecase.NewInteractor(pageservice.NewCaptureService(extractor, pageoutadapter.NewHTMLParser(), live))

	navigatorUC := navigatorusecase.NewInteractor(
		navigatorservice.NewNavigator(navigatordomain.AllowList{
			Domain:        cfg.AllowedDomain,
			AllowLoopback: cfg.AllowLoopback,
			AllowFile:     cfg.AllowFile,
		}),
		bookmarkUC,
		launcher,
	)

	bridgeUC := bridgeusecase.NewInteractor(bridgeservice.NewDispatcher(bridgeservice.Dependencies{
		Bookmarks: bookmarkUC,
		Navigator: navigatorUC,
		Pages:     pageUC,
		Recorder:  app.Metrics,
		IDs:       id.UUID{},
		Logger:    logger.Named("bridge"),
	}))

	app.BookmarkCLI = bookmarkinadapter.NewCLIHandler(bookmarkUC)
	app.NavigatorCLI = navigatorinadapter.NewCLIHandler(navigatorUC)
	app.PageCLI = pageinadapter.NewCLIHandler(pageUC)
	app.Bridge = bridgeUC
	app.JSONRPC = bridgeinadapter.NewJSONRPCServer(bridgeUC)
	app.HTTP = bridgeinadapter.NewHTTPServer(bridgeUC, app.Metrics, logger.Named("http"))
	return app, nil
}

func (a *App) newStore() (bookmarkout.Store, error) {
	switch a.Config.StoreDriver {
	case config.StoreDriverSQLite:
		store, err := bookmarkoutadapter.NewSQLiteStore(a.Config.DBPath, a.Config.StorageKey)
		if err != nil {
			return nil, fmt.Errorf("new sqlite store: %w", err)
		}
		a.closers = append(a.closers, store.Close)
		return store, nil
	case config.StoreDriverMemory:
		return bookmarkoutadapter.NewMemoryStore(), nil
	default:
		return bookmarkoutadapter.NewFileStore(a.Config.StorePath, a.Config.StorageKey), nil
	}
}

// ServeNative runs the browser native messaging host on the given streams.
func (a *App) ServeNative(ctx context.Context, in io.Reader, out io.Writer) error {
	return bridgeinadapter.NewNativeHost(a.Bridge, in, out).Run(ctx)
}

// Close flushes unsaved bookmarks and releases stores and browsers.
func (a *App) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
	defer cancel()

	var errs []error
	if a.registry != nil {
		if err := a.registry.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("flush bookmarks: %w", err))
		}
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	_ = a.Logger.Sync()
	return errors.Join(errs...)
}

func RunTUI(bridge uiapp.Bridge, pageURL string, launch bool) error {
	model := uiapp.NewModel(bridge, pageURL, launch)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
