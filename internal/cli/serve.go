package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/nikbrunner/nexus/internal/httpserver"
	"github.com/nikbrunner/nexus/internal/httpserver/deps"
	"github.com/nikbrunner/nexus/internal/logger"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API",
		Long: `Serve the bookmark collection over HTTP.

Examples:
  nexus serve
  nexus serve --addr 127.0.0.1:8080`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			e, err := setup(ctx, setupOptions{})
			if err != nil {
				return err
			}
			defer e.close()

			cfg := e.cfg.Server
			if addr != "" {
				cfg.Addr = addr
			}

			server := httpserver.New(cfg, e.log, deps.Deps{
				Logger:    e.log,
				Library:   e.lib,
				Themes:    e.themes,
				Signal:    e.signal(),
				Analyzer:  e.enricher,
				StartTime: time.Now(),
				Version:   cmd.Root().Version,
			})

			errCh := make(chan error, 1)
			go func() {
				if err := server.Start(); err != nil {
					errCh <- fmt.Errorf("http server error: %w", err)
				}
				close(errCh)
			}()

			select {
			case err, ok := <-errCh:
				if ok {
					return err
				}
				return nil
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer cancel()
			if err := server.Stop(shutdownCtx); err != nil {
				e.log.Error("graceful shutdown failed", logger.Error(err))
				return err
			}
			e.log.Info("server stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from server.addr)")
	return cmd
}
