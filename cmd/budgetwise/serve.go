package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"budgetwise/internal/backend"
	apphttp "budgetwise/internal/http"
	"budgetwise/internal/log"
	"budgetwise/internal/middleware/ratelimit"
	"budgetwise/internal/services"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard web server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, err := bootstrap(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			backendCfg, err := backend.FromAppConfig(cfg)
			if err != nil {
				return err
			}
			snap, source, err := backend.LoadSnapshot(ctx, backend.NewFactory(logger), backendCfg)
			if err != nil {
				return err
			}
			defer func() {
				if err := source.Close(); err != nil {
					logger.Warn("Failed to close data source", log.FieldError, err)
				}
			}()
			if err := snap.Validate(); err != nil {
				return err
			}

			opts := apphttp.Options{
				Addr:           cfg.Addr(),
				Snapshot:       snap,
				Drafts:         services.NewExpenseService(logger),
				Logger:         logger,
				CacheSize:      cfg.ViewCacheSize,
				CacheTTL:       cfg.ViewCacheTTL,
				RateLimit:      ratelimit.Config{RequestsPerMinute: cfg.RateLimitPerMinute},
				TrustedProxies: cfg.TrustedProxies,
			}
			if p, ok := source.Source.(backend.Pinger); ok {
				opts.Ready = p
			}

			srv, err := apphttp.NewServer(opts)
			if err != nil {
				return err
			}

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				logger.Info("Starting budgetwise server",
					log.FieldOperation, log.OpStartup,
					"addr", srv.Addr,
					log.FieldSource, cfg.DataSource,
					log.FieldCount, len(snap.Transactions))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
			g.Go(func() error {
				<-gctx.Done()
				logger.Info("Shutting down server", log.FieldOperation, log.OpShutdown)

				shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			})

			if err := g.Wait(); err != nil {
				return err
			}
			logger.Info("Server stopped gracefully")
			return nil
		},
	}
}
