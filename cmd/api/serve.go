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

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/cache"
	dbpkg "github.com/BruksfildServices01/salon-scheduler/internal/db"
	"github.com/BruksfildServices01/salon-scheduler/internal/logs"
	"github.com/BruksfildServices01/salon-scheduler/internal/routes"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

func newServeCommand() *cobra.Command {
	var shutdownTimeout time.Duration

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			log := logs.New(cfg)
			slog.SetDefault(log)

			db, err := dbpkg.NewDB(cfg, log)
			if err != nil {
				return err
			}

			if cfg.AutoMigrate {
				if err := dbpkg.Migrate(db); err != nil {
					return err
				}
			}

			deps := routes.Deps{
				Log:   log,
				Clock: timezone.NewClock(cfg.Timezone),
				Cache: cache.Nop{},
			}

			// ------ audit sinks ------
			sinks := []audit.Sink{audit.New(db)}

			if cfg.CacheEnabled() {
				rdb, err := cache.NewRedis(cfg)
				if err != nil {
					log.Warn("availability cache disabled", slog.Any("error", err))
				} else {
					defer rdb.Close()
					availability := cache.NewAvailabilityCache(rdb, cfg.AvailabilityCacheTTL, log)
					deps.Cache = availability
					sinks = append(sinks, availability)
				}
			}

			deps.Audit = audit.NewDispatcher(log, sinks...)
			defer deps.Audit.Close()

			// ------ http ------
			gin.SetMode(gin.ReleaseMode)
			r := gin.New()
			routes.RegisterRoutes(r, db, cfg, deps)

			srv := &http.Server{
				Addr:              cfg.Addr(),
				Handler:           r,
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				log.Info("server running",
					slog.String("addr", cfg.Addr()),
					slog.String("timezone", cfg.Timezone),
					slog.Bool("cache", cfg.CacheEnabled()),
				)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("failed to start server: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			log.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("graceful shutdown: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().DurationVar(&shutdownTimeout, "shutdown-timeout", 30*time.Second, "maximum time to wait for in-flight requests")

	return cmd
}
