package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"formnav/internal/bootstrap"
	bookmarkdto "formnav/internal/modules/bookmark/dto"
	bridgeoutadapter "formnav/internal/modules/bridge/adapter/out"
	bridgedto "formnav/internal/modules/bridge/dto"
	pagedto "formnav/internal/modules/page/dto"
	"formnav/internal/platform/config"
	"formnav/internal/platform/logging"
	uiapp "formnav/internal/ui/app"
)

const defaultPageURL = "https://app.fasttax.com/"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// rootOptions are the persistent flags every subcommand resolves its config
// from.
type rootOptions struct {
	dataDir string
	store   string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "formnav",
		Short:         "Bookmarks for routes inside the tax web application",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.dataDir, "data-dir", config.DefaultDataDir(), "directory holding config, storage and the bridge socket")
	root.PersistentFlags().StringVar(&opts.store, "store", "", "override the store driver (json, sqlite, memory)")

	root.AddCommand(newServeCmd(opts))
	root.AddCommand(newNativeHostCmd(opts))
	root.AddCommand(newTUICmd(opts))
	root.AddCommand(newPingCmd(opts))
	root.AddCommand(newToggleCmd(opts))
	root.AddCommand(newBookmarkCmd(opts))
	root.AddCommand(newGotoCmd(opts))
	root.AddCommand(newCaptureCmd(opts))
	return root
}

func loadConfig(opts *rootOptions) (config.Config, error) {
	cfg, err := config.New(opts.dataDir)
	if err != nil {
		return config.Config{}, err
	}
	if opts.store != "" {
		cfg.StoreDriver = opts.store
		if err := cfg.Validate(); err != nil {
			return config.Config{}, err
		}
	}
	return cfg, nil
}

func loadApp(opts *rootOptions) (*bootstrap.App, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(logging.Config{Level: cfg.LogLevel, Development: cfg.LogDevelopment})
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg, logger)
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	var (
		httpAddr string
		noHTTP   bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the bridge on the unix socket and loopback HTTP",
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			app, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer func() {
				err = errors.Join(err, app.Close())
			}()
			gin.SetMode(gin.ReleaseMode)
			ctx, stop := signalContext()
			defer stop()

			addr := app.Config.HTTPAddr
			if httpAddr != "" {
				addr = httpAddr
			}
			errs := make(chan error, 2)
			running := 1
			go func() {
				errs <- app.JSONRPC.Serve(ctx, app.Config.SocketPath)
			}()
			if !noHTTP {
				running++
				go func() {
					errs <- app.HTTP.Serve(ctx, addr)
				}()
			}
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "bridge listening on %s\n", app.Config.SocketPath)

			var firstErr error
			for i := 0; i < running; i++ {
				if serveErr := <-errs; serveErr != nil && firstErr == nil {
					firstErr = serveErr
					stop()
				}
			}
			return firstErr
		},
	}
	cmd.Flags().StringVar(&httpAddr, "http-addr", "", "override the HTTP listen address")
	cmd.Flags().BoolVar(&noHTTP, "no-http", false, "serve only the unix socket")
	return cmd
}

func newNativeHostCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "native-host [origin]",
		Short: "Speak the browser native messaging protocol on stdin/stdout",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			app, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer func() {
				err = errors.Join(err, app.Close())
			}()
			ctx, stop := signalContext()
			defer stop()
			return app.ServeNative(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

func newTUICmd(opts *rootOptions) *cobra.Command {
	var (
		pageURL string
		launch  bool
		remote  bool
	)
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Run the bookmark panel in the terminal",
		RunE: func(_ *cobra.Command, _ []string) (err error) {
			if remote {
				cfg, err := loadConfig(opts)
				if err != nil {
					return err
				}
				return bootstrap.RunTUI(bridgeoutadapter.NewJSONRPCClient(cfg.SocketPath), pageURL, launch)
			}
			app, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer func() {
				err = errors.Join(err, app.Close())
			}()
			return bootstrap.RunTUI(uiapp.NewLocalBridge(app.Bridge), pageURL, launch)
		},
	}
	cmd.Flags().StringVar(&pageURL, "url", defaultPageURL, "page the navigation starts from")
	cmd.Flags().BoolVar(&launch, "launch", true, "open navigation targets in a browser")
	cmd.Flags().BoolVar(&remote, "remote", false, "talk to a running `formnav serve` instead of opening storage directly")
	return cmd
}

func newPingCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that a bridge is serving",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			resp, err := bridgeoutadapter.NewJSONRPCClient(cfg.SocketPath).Ping(ctx)
			if err != nil {
				return fmt.Errorf("bridge unreachable: %w", err)
			}
			if err := responseError(resp); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "pong")
			return nil
		},
	}
}

func newToggleCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle",
		Short: "Toggle the panel of a running bridge",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			resp, err := bridgeoutadapter.NewJSONRPCClient(cfg.SocketPath).Handle(ctx, bridgedto.Request{Action: "togglePanel"})
			if err != nil {
				return fmt.Errorf("bridge unreachable: %w", err)
			}
			if err := responseError(resp); err != nil {
				return err
			}
			state := "hidden"
			if resp.Visible != nil && *resp.Visible {
				state = "visible"
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "panel "+state)
			return nil
		},
	}
}

func newBookmarkCmd(opts *rootOptions) *cobra.Command {
	bookmark := &cobra.Command{Use: "bookmark", Short: "Manage saved bookmarks"}

	bookmark.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List bookmarks",
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			app, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer func() {
				err = errors.Join(err, app.Close())
			}()
			list, err := app.BookmarkCLI.List(context.Background())
			if err != nil {
				return err
			}
			printBookmarks(cmd, list)
			return nil
		},
	})

	bookmark.AddCommand(&cobra.Command{
		Use:   "add <label> <fragment>",
		Short: "Append a bookmark",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			app, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer func() {
				err = errors.Join(err, app.Close())
			}()
			list, err := app.BookmarkCLI.Add(context.Background(), args[0], args[1])
			printBookmarks(cmd, list)
			return err
		},
	})

	bookmark.AddCommand(&cobra.Command{
		Use:   "edit <index> <label> <fragment>",
		Short: "Replace the bookmark at index",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			app, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer func() {
				err = errors.Join(err, app.Close())
			}()
			list, err := app.BookmarkCLI.Edit(context.Background(), index, args[1], args[2])
			printBookmarks(cmd, list)
			return err
		},
	})

	bookmark.AddCommand(&cobra.Command{
		Use:     "rm <index>",
		Aliases: []string{"remove"},
		Short:   "Remove the bookmark at index",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			index, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			app, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer func() {
				err = errors.Join(err, app.Close())
			}()
			list, err := app.BookmarkCLI.Remove(context.Background(), index)
			printBookmarks(cmd, list)
			return err
		},
	})
	return bookmark
}

func newGotoCmd(opts *rootOptions) *cobra.Command {
	var (
		pageURL  string
		fragment string
		launch   bool
	)
	cmd := &cobra.Command{
		Use:   "goto [index]",
		Short: "Compute (and optionally open) the location of a bookmark",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			if len(args) == 0 && fragment == "" {
				return fmt.Errorf("an index or --fragment is required")
			}
			app, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer func() {
				err = errors.Join(err, app.Close())
			}()
			ctx := context.Background()
			var target string
			if len(args) == 1 {
				index, err := parseIndex(args[0])
				if err != nil {
					return err
				}
				out, err := app.NavigatorCLI.GotoIndex(ctx, pageURL, index, launch)
				target = out.Target
				if err != nil {
					return err
				}
			} else {
				out, err := app.NavigatorCLI.GotoFragment(ctx, pageURL, fragment, launch)
				target = out.Target
				if err != nil {
					return err
				}
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), target)
			return nil
		},
	}
	cmd.Flags().StringVar(&pageURL, "url", defaultPageURL, "current page location")
	cmd.Flags().StringVar(&fragment, "fragment", "", "route to jump to instead of a saved bookmark")
	cmd.Flags().BoolVar(&launch, "launch", false, "open the target in a browser")
	return cmd
}

func newCaptureCmd(opts *rootOptions) *cobra.Command {
	var (
		pageURL  string
		title    string
		headings []string
		htmlFile string
		live     bool
		save     bool
	)
	cmd := &cobra.Command{
		Use:   "capture",
		Short: "Derive a bookmark from a page location and its title or HTML",
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			app, err := loadApp(opts)
			if err != nil {
				return err
			}
			defer func() {
				err = errors.Join(err, app.Close())
			}()
			ctx := context.Background()

			var html string
			if htmlFile != "" {
				b, err := os.ReadFile(htmlFile)
				if err != nil {
					return fmt.Errorf("read html: %w", err)
				}
				html = string(b)
			}
			var out pagedto.CaptureOutput
			if live {
				out, err = app.PageCLI.CaptureLive(ctx)
			} else {
				out, err = app.PageCLI.Capture(ctx, pageURL, title, headings, html)
			}
			if err != nil {
				return err
			}
			if !out.Capturable {
				return fmt.Errorf("no bookmarkable route in %s", out.URL)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", out.Label, out.Fragment)
			if !save {
				return nil
			}
			list, err := app.BookmarkCLI.Add(ctx, out.Label, out.Fragment)
			printBookmarks(cmd, list)
			return err
		},
	}
	cmd.Flags().StringVar(&pageURL, "url", "", "page location including its hash")
	cmd.Flags().StringVar(&title, "title", "", "page title")
	cmd.Flags().StringSliceVar(&headings, "heading", nil, "page headings in document order")
	cmd.Flags().StringVar(&htmlFile, "html-file", "", "saved page HTML to read title and headings from")
	cmd.Flags().BoolVar(&live, "live", false, "read the page from the configured live browser")
	cmd.Flags().BoolVar(&save, "save", false, "append the captured bookmark")
	return cmd
}

func printBookmarks(cmd *cobra.Command, list []bookmarkdto.BookmarkOutput) {
	for _, b := range list {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", b.Index, b.Label, b.Fragment)
	}
}

func parseIndex(raw string) (int, error) {
	index, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid index %q", raw)
	}
	return index, nil
}

func responseError(resp bridgedto.Response) error {
	if resp.OK() {
		return nil
	}
	return fmt.Errorf("%s: %s", resp.Code, resp.Error)
}
