package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"doc-recon/internal/logger"
	"doc-recon/internal/openapi"
	"doc-recon/internal/page"
	"doc-recon/internal/pipeline"
	"doc-recon/internal/server"

	"github.com/spf13/cobra"
)

type serveOptions struct {
	addr     string
	baseURL  string
	interval time.Duration
}

func newServeCmd(global *globalOptions) *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve [url|file]",
		Short: "Scrape a page and serve the result with a live Redoc viewer",
		Long: `Scrapes the page once and serves the document at /openapi.json and
/openapi.yaml with a Redoc page at /. Local files are watched and re-scraped on
every save; remote pages are re-scraped when --interval is set. Open pages
reload through the /events stream.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, global, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "Listen address (default: server.addr from config)")
	cmd.Flags().StringVar(&opts.baseURL, "base-url", "", "Server URL for the document (default: origin of the page URL)")
	cmd.Flags().DurationVar(&opts.interval, "interval", 0, "Re-scrape remote pages at this interval (0 disables)")
	return cmd
}

func runServe(cmd *cobra.Command, global *globalOptions, opts *serveOptions, args []string) error {
	ctx := cmd.Context()

	cfg, err := global.setup(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer logger.Close()

	if len(args) == 1 {
		cfg.Source.URL = args[0]
	}
	if opts.baseURL != "" {
		cfg.Source.BaseURL = opts.baseURL
	}
	if opts.addr != "" {
		cfg.Server.Addr = opts.addr
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	runner, err := pipeline.NewRunner(cfg, nil)
	if err != nil {
		return err
	}

	target := cfg.Source.URL
	rebuild := func(ctx context.Context) (*openapi.Document, error) {
		// The page cache would otherwise answer every tick with the first copy
		if r, ok := runner.Source.(*page.Router); ok {
			r.Invalidate(target)
		}
		res := runner.Run(ctx, target, cfg.Source.BaseURL)
		if res.Summary.FetchError != "" {
			return nil, errors.New(res.Summary.FetchError)
		}
		return res.Document, nil
	}

	doc := runner.Run(ctx, target, cfg.Source.BaseURL).Document
	options := server.DefaultOptions()
	options.AllowedOrigins = cfg.Server.AllowedOrigins
	srv, err := server.New(doc, options)
	if err != nil {
		return fmt.Errorf("invalid document: %w", err)
	}

	if updates := watchTarget(ctx, target, options.DebounceTime, opts.interval); updates != nil {
		go srv.Follow(ctx, updates, rebuild)
	}

	httpServer := &http.Server{
		Addr:        cfg.Server.Addr,
		Handler:     srv.Handler(nil),
		BaseContext: func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()
	logger.Info("Serving %s at %s", target, displayURL(cfg.Server.Addr))

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

// watchTarget returns the update stream for target: file events for local
// files, ticks for remote pages when interval is set, nil otherwise.
func watchTarget(ctx context.Context, target string, debounce, interval time.Duration) <-chan error {
	if !page.IsRemote(target) {
		path, ok := page.LocalPath(target)
		if !ok {
			return nil
		}
		w, err := server.WatchFile(path, debounce)
		if err != nil {
			logger.Warn("Unable to watch for file updates: %v", err)
			return nil
		}
		go func() {
			<-ctx.Done()
			w.Close()
		}()
		logger.Info("Watching %s for changes", path)
		return w.Update
	}

	if interval <= 0 {
		return nil
	}

	ticks := make(chan error)
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		defer close(ticks)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				select {
				case ticks <- nil:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	logger.Info("Re-scraping %s every %s", target, interval)
	return ticks
}

func displayURL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr
	}
	if host == "" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}
