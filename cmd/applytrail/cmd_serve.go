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

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/applytrail/applytrail/internal/api"
	"github.com/applytrail/applytrail/internal/auth"
	"github.com/applytrail/applytrail/internal/config"
	"github.com/applytrail/applytrail/internal/db"
	"github.com/applytrail/applytrail/internal/db/migrations"
	"github.com/applytrail/applytrail/internal/dbpool"
	"github.com/applytrail/applytrail/internal/service"
	"github.com/applytrail/applytrail/internal/store"
)

const (
	activityQueueSize = 1000
	purgeInterval     = 24 * time.Hour
	shutdownTimeout   = 10 * time.Second
)

// serverEnv is the configuration, logger and database shared by the
// commands that run against the database directly.
type serverEnv struct {
	cfg  *config.Config
	log  *logrus.Logger
	pool *dbpool.Pool
}

func openServerEnv(ctx context.Context) (*serverEnv, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log := cfg.NewLogger()

	pool, err := dbpool.NewPool(ctx, cfg.DatabaseURL.Value(), cfg.DBMaxConns)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if err := db.RunMigrations(ctx, pool, log, migrations.FS); err != nil {
		pool.Close()
		return nil, err
	}

	return &serverEnv{cfg: cfg, log: log, pool: pool}, nil
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			env, err := openServerEnv(ctx)
			if err != nil {
				return err
			}
			defer env.pool.Close()

			return serve(ctx, env)
		},
	}
}

func serve(ctx context.Context, env *serverEnv) error {
	cfg, log := env.cfg, env.log
	base := store.Base{Pool: env.pool, Log: log}

	users := store.NewUserStore(base)
	companies := store.NewCompanyStore(base)
	roles := store.NewRoleStore(base)
	applications := store.NewApplicationStore(base)
	stages := store.NewStageStore(base)
	tasks := store.NewTaskStore(base)
	activityStore := store.NewActivityStore(base)

	worker := service.NewActivityWorker(activityStore, log, activityQueueSize)
	activity := service.NewActivityService(activityStore, log)
	sessions := auth.NewSessions(cfg.SessionSecret.Value(), cfg.SessionTTL)

	router := api.NewRouter(ctx, &api.RouterDeps{
		Log:          log,
		Pool:         env.pool,
		Verifier:     sessions,
		Sessions:     service.NewSessionService(users, sessions, log),
		Catalog:      service.NewCatalogService(companies, roles, worker, log),
		Applications: service.NewApplicationService(applications, worker, log),
		Stages:       service.NewStageService(stages, worker, log),
		Tasks:        service.NewTaskService(tasks, worker, log),
		World:        service.NewWorldService(roles, applications, stages, log),
		Activity:     activity,
		CORSOrigins:  cfg.CORSOrigins,
		Version:      version,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		worker.Run(gctx)
		return nil
	})

	g.Go(func() error {
		purgeLoop(gctx, activity, cfg.ActivityRetentionDays, log)
		return nil
	})

	g.Go(func() error {
		log.WithFields(logrus.Fields{"addr": srv.Addr, "version": version}).Info("applytrail listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx) //nolint:contextcheck // parent is already cancelled.
	})

	return g.Wait()
}

// purgeLoop removes expired activity entries once a day until ctx is done.
func purgeLoop(ctx context.Context, activity *service.ActivityService, retentionDays int, log *logrus.Logger) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := activity.PurgeActivity(ctx, retentionDays); err != nil && ctx.Err() == nil {
				log.WithError(err).Warn("activity purge failed")
			}
		}
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openServerEnv(cmd.Context())
			if err != nil {
				return err
			}
			env.pool.Close()

			fmt.Fprintf(cmd.OutOrStdout(), "schema at version %d\n", db.SchemaVersion())
			return nil
		},
	}
}

func newPurgeActivityCmd() *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "purge-activity",
		Short: "Delete activity log entries older than the retention period",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openServerEnv(cmd.Context())
			if err != nil {
				return err
			}
			defer env.pool.Close()

			if days <= 0 {
				days = env.cfg.ActivityRetentionDays
			}

			activity := service.NewActivityService(store.NewActivityStore(store.Base{Pool: env.pool, Log: env.log}), env.log)
			deleted, err := activity.PurgeActivity(cmd.Context(), days)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d activity entries older than %d days\n", deleted, days)
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", 0, "retention in days (default: ACTIVITY_RETENTION_DAYS)")
	return cmd
}
