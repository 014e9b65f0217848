package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/xavierca1/ghostreach/internal/infra/http/handlers"
	"github.com/xavierca1/ghostreach/internal/infra/http/middleware"
	"github.com/xavierca1/ghostreach/internal/infra/http/server"
	"github.com/xavierca1/ghostreach/internal/logger"
)

const shutdownTimeout = 10 * time.Second

func (a *app) serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the read-only lead status API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			db, repo, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer db.Close()

			limiter := middleware.NewRateLimiter(60, time.Minute)
			defer limiter.Stop()

			router := server.NewRouter(server.Deps{
				Leads:       handlers.NewLeadHandler(repo, a.log),
				Health:      handlers.NewHealthHandler(db, a.settings.Vault, Version),
				RateLimiter: limiter,
			})
			srv := server.NewServer(a.settings.Addr, router)

			errCh := make(chan error, 1)
			go func() {
				a.log.Info("Status API listening", logger.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			a.log.Info("Shutting down status API")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().String("addr", "", "listen address (default :8080)")
	return cmd
}
