package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/leadscout/internal/api"
	"github.com/jonesrussell/leadscout/internal/config"
	"github.com/jonesrussell/leadscout/internal/database"
	"github.com/jonesrussell/leadscout/internal/logger"
	"github.com/jonesrussell/leadscout/internal/metrics"
	"github.com/jonesrussell/leadscout/internal/pipeline"
)

const shutdownTimeout = 30 * time.Second

// ErrSweepRunning is returned when a sweep is requested while one is
// already in flight.
var ErrSweepRunning = errors.New("a sweep is already running")

// sweeper serializes pipeline sweeps. Only one sweep runs at a time;
// requests that arrive while one is in flight are refused.
type sweeper struct {
	pipeline *pipeline.Pipeline
	cfg      *config.Config
	running  atomic.Bool
	logger   logger.Logger
}

// StartSweep launches a sweep in the background. It returns
// ErrSweepRunning when a previous sweep has not finished.
func (s *sweeper) StartSweep() error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrSweepRunning
	}

	go func() {
		defer s.running.Store(false)

		run, err := s.pipeline.Run(context.Background(), runSnapshot(s.cfg))
		if err != nil {
			s.logger.Error("sweep failed", logger.Error(err))
			return
		}
		s.logger.Info("sweep finished",
			logger.String("run_id", run.ID),
			logger.Int("discovered", run.Discovered),
			logger.Int("qualified", run.Qualified),
			logger.Int("rejected", run.Rejected),
			logger.Int("errors", run.Errors))
	}()
	return nil
}

// httpdCommand serves the HTTP API and schedules periodic sweeps.
func httpdCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "httpd",
		Short: "Serve the HTTP API and run scheduled sweeps",
		RunE: func(cmd *cobra.Command, _ []string) error {
			deps, err := newAppDeps()
			if err != nil {
				return err
			}
			defer func() {
				_ = deps.Logger.Sync()
			}()
			cfg := deps.Config
			log := deps.Logger

			db, err := openDatabase(cfg)
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer func() {
				_ = db.Close()
			}()

			p, store, err := newPipeline(cmd.Context(), deps, db, metrics.New())
			if err != nil {
				return err
			}
			defer func() {
				_ = store.Close()
			}()

			cat, err := loadCatalog(cfg)
			if err != nil {
				return fmt.Errorf("load catalog: %w", err)
			}

			sw := &sweeper{
				pipeline: p,
				cfg:      cfg,
				logger:   log,
			}

			handler := api.NewHandler(
				database.NewLeadsRepository(db),
				database.NewRejectionsRepository(db),
				database.NewRunsRepository(db),
				sw,
				log,
			)
			router := api.NewRouter(handler, cat, log)

			scheduler := cron.New()
			if cfg.Service.SweepSchedule != "" {
				if _, err := scheduler.AddFunc(cfg.Service.SweepSchedule, func() {
					if err := sw.StartSweep(); err != nil {
						log.Warn("scheduled sweep skipped", logger.Error(err))
					}
				}); err != nil {
					return fmt.Errorf("invalid sweep schedule %q: %w", cfg.Service.SweepSchedule, err)
				}
				scheduler.Start()
				defer scheduler.Stop()
				log.Info("sweep scheduler started",
					logger.String("schedule", cfg.Service.SweepSchedule))
			}

			server := &http.Server{
				Addr:         fmt.Sprintf(":%d", cfg.Service.Port),
				Handler:      router,
				ReadTimeout:  30 * time.Second,
				WriteTimeout: 30 * time.Second,
			}

			serverErrors := make(chan error, 1)
			go func() {
				log.Info("http server listening", logger.Int("port", cfg.Service.Port))
				serverErrors <- server.ListenAndServe()
			}()

			shutdown := make(chan os.Signal, 1)
			signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

			select {
			case err := <-serverErrors:
				return fmt.Errorf("server error: %w", err)
			case sig := <-shutdown:
				log.Info("shutdown signal received", logger.String("signal", sig.String()))

				ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()

				if err := server.Shutdown(ctx); err != nil {
					return fmt.Errorf("graceful shutdown failed: %w", err)
				}
				log.Info("server stopped")
			}
			return nil
		},
	}
}
