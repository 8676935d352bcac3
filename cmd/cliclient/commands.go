package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	mandel "github.com/marben/escape_mandel"
	"github.com/marben/escape_mandel/render"
)

func newRenderCommand() *cobra.Command {
	var (
		view    viewFlags
		workers int
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render an image on this machine",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := view.request(cmd)
			if err != nil {
				return err
			}
			cmd.SilenceUsage = true

			start := time.Now()
			frame, err := render.RenderRequest(mandel.Supersample(req, view.supersample), render.WithWorkers(workers))
			if err != nil {
				return err
			}
			slog.Info("rendered", "width", frame.Width, "height", frame.Height, "elapsed", time.Since(start))
			return view.save(frame)
		},
	}
	view.register(cmd)
	cmd.Flags().IntVar(&workers, "workers", 0, "render goroutines (0 = GOMAXPROCS)")
	return cmd
}

func newFetchCommand() *cobra.Command {
	var (
		view    viewFlags
		server  string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Render an image on a server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := view.request(cmd)
			if err != nil {
				return err
			}
			cmd.SilenceUsage = true

			ctx := cmd.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			slog.Info("connecting", "server", server)
			client, err := mandel.Dial(ctx, server)
			if err != nil {
				return fmt.Errorf("failed to connect to server: %w", err)
			}
			defer client.Close()

			start := time.Now()
			frame, err := client.RenderFrame(ctx, mandel.Supersample(req, view.supersample))
			if err != nil {
				return fmt.Errorf("client.RenderFrame: %w", err)
			}
			slog.Info("received", "width", frame.Width, "height", frame.Height, "elapsed", time.Since(start))
			return view.save(frame)
		},
	}
	view.register(cmd)
	cmd.Flags().StringVar(&server, "server", "ws://localhost:8080/ws", "websocket endpoint of the server")
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Minute, "give up after this long (0 = never)")
	return cmd
}

func newRegionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "regions",
		Short: "List the landmark regions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range mandel.LandmarkNames() {
				r := mandel.Landmarks[name]
				fmt.Fprintf(cmd.OutOrStdout(), "%-22s re [%g, %g] im [%g, %g]\n", name, r.Xmin, r.Xmax, r.Ymin, r.Ymax)
			}
			return nil
		},
	}
}
