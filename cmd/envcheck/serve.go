package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "github.com/aretw0/envcheck/internal/adapters/http"
	"github.com/aretw0/envcheck/internal/cli"
	"github.com/aretw0/envcheck/internal/presentation/tui"
	"github.com/aretw0/envcheck/pkg/observability"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var serveCmd = &cobra.Command{
	Use:   "serve [dir]",
	Short: "Start the HTTP API",
	Long: `Serves the workspace declarations and check reports as a JSON API, with
Prometheus metrics on /metrics. With --watch, the workspace is re-checked
whenever a schema or env file changes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		port, _ := cmd.Flags().GetString("port")
		watch, _ := cmd.Flags().GetBool("watch")

		metrics := observability.NewMetrics()
		eng, closeFn, opts, err := newEngine(cmd, args, metrics)
		if err != nil {
			return err
		}
		defer closeFn()

		logger := cli.CreateLoggerWithFormat(opts.Debug, opts.LogFormat)
		srv := &http.Server{
			Addr:              ":" + port,
			Handler:           httpadapter.NewHandler(eng, metrics.Handler(), logger),
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if cli.IsTerminal(os.Stderr) {
			tui.PrintBanner(os.Stderr, cli.Palette(os.Stderr, opts.NoColor))
		}

		g, ctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			fmt.Fprintf(cmd.ErrOrStderr(), "Starting envcheck server on %s\n", srv.Addr)
			fmt.Fprintf(cmd.ErrOrStderr(), "Workspace: %s\n", eng.Root())
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			// Give outstanding requests a deadline for completion.
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				_ = srv.Close()
				return fmt.Errorf("graceful shutdown did not complete: %w", err)
			}
			fmt.Fprintln(cmd.ErrOrStderr(), "envcheck server stopped gracefully")
			return nil
		})
		if watch {
			g.Go(func() error {
				return recheckOnChange(ctx, eng, logger)
			})
		}

		return g.Wait()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().BoolP("watch", "w", false, "Re-check whenever a schema or env file changes")
}
