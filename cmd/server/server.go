package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	mandel "github.com/marben/escape_mandel"
	"github.com/marben/escape_mandel/render"
	"github.com/marben/irpc"
)

type options struct {
	port      int
	workers   int
	staticDir string
	origins   []string
	encoding  string
	logLevel  string
	limits    mandel.Limits
}

// main is the entry point for the Mandelbrot server.
// Frames are rendered here on a dispatcher; clients only ask for them.
func main() {
	if err := newCommand().ExecuteContext(context.Background()); err != nil {
		// cobra has already printed the error
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Serve Mandelbrot frames over websocket and HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// At this point usage information has already been printed if obviously incorrect.
			cmd.SilenceUsage = true
			return run(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&opts.port, "port", 8080, "HTTP port")
	flags.IntVar(&opts.workers, "workers", 0, "frames rendered concurrently (0 = GOMAXPROCS)")
	flags.StringVar(&opts.staticDir, "static", "./static", "directory served at / (empty disables)")
	flags.StringSliceVar(&opts.origins, "origin", nil, "allowed cross-origin websocket hosts")
	flags.StringVar(&opts.encoding, "encoding", mandel.EncodingZstd, "preferred websocket message encoding (zstd or raw)")
	flags.IntVar(&opts.limits.MaxPixels, "max-pixels", mandel.MaxFramePixels, "largest frame, in pixels, a client may ask for")
	flags.IntVar(&opts.limits.MaxIterations, "max-iterations", mandel.DefaultIterationLimit, "largest iteration budget a client may ask for")
	flags.StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	return cmd
}

func newLogger(level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})), nil
}

func run(ctx context.Context, opts options) error {
	logger, err := newLogger(opts.logLevel)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)
	render.SetLogger(logger)

	// The dispatcher renders every frame, whichever endpoint asked for it.
	dispatcher := render.NewDispatcher(opts.workers, render.WithMaxPixels(opts.limits.MaxPixels))
	defer dispatcher.Close()

	svc, err := mandel.NewService(dispatcher,
		mandel.WithOriginPatterns(opts.origins...),
		mandel.WithEncoding(opts.encoding),
		mandel.WithLimits(opts.limits),
	)
	if err != nil {
		return err
	}
	go func() {
		if err := svc.Serve(); !errors.Is(err, irpc.ErrServerClosed) {
			slog.Error("irpc server", "err", err)
		}
	}()
	defer svc.Close()

	httpServer := webServer(opts.port, opts.staticDir, svc, dispatcher, opts.limits)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		errc <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("httpServer: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("httpServer.Shutdown: %w", err)
	}
	return nil
}
