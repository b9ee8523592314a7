package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"jira_dashboard/internal/app/di"
	"jira_dashboard/internal/app/router"
	"jira_dashboard/internal/app/scheduler"
	dashboardhandler "jira_dashboard/internal/feature/dashboard/transport/handler"
	dashboardusecase "jira_dashboard/internal/feature/dashboard/usecase"
	"jira_dashboard/internal/feature/issues/adapters/jira"
	"jira_dashboard/internal/feature/quotes/adapters/alphavantage"
	"jira_dashboard/internal/platform/config"
	"jira_dashboard/internal/platform/http/middleware"
	"jira_dashboard/internal/platform/logger"
	infraredis "jira_dashboard/internal/platform/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Warn().Err(err).Msg(".env could not be loaded; using system environment variables")
	}
	cfg := config.Load()
	lg := logger.New(cfg.AppEnv)

	jiraCfg := jira.LoadConfig()
	quoteCfg := alphavantage.LoadConfig()
	if err := cfg.Validate(append(jiraCfg.Missing(), quoteCfg.Missing()...)...); err != nil {
		lg.Fatal().Err(err).Msg("invalid configuration")
	}

	cred, err := middleware.NewCredentials(cfg.DashboardUsername, cfg.DashboardPassword, cfg.DashboardPasswordHash)
	if err != nil {
		lg.Fatal().Err(err).Msg("dashboard credentials")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Redis
	var rdb *redis.Client
	if cfg.RedisEnabled() {
		if tmp, err := infraredis.NewRedisClient(ctx, cfg.RedisAddr(), cfg.RedisPassword, lg); err != nil {
			lg.Warn().Msg("Redis unavailable. Keeping snapshots in memory.")
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					lg.Error().Err(err).Msg("failed to close Redis client")
				}
			}()
		}
	}

	// Usecase
	issues, err := di.NewIssueAggregator(jiraCfg, cfg.HTTPRetries, lg)
	if err != nil {
		lg.Fatal().Err(err).Msg("issue aggregator")
	}
	quotes := di.NewQuoteAggregator(quoteCfg, cfg.HTTPRetries, lg)
	store := di.NewSnapshotStore(rdb, cfg.SnapshotTTL)
	refresher := dashboardusecase.NewRefresher(issues, quotes, store, lg)
	view := dashboardusecase.NewView(store)

	// 初回描画: 失敗してもプレースホルダーが保存されるので起動は続行する
	initCtx, cancel := context.WithTimeout(ctx, cfg.TrackerRefresh)
	if err := refresher.RefreshAll(initCtx); err != nil {
		lg.Warn().Err(err).Msg("initial refresh incomplete")
	}
	cancel()

	sched, err := scheduler.New(lg,
		scheduler.Job{Name: "tracker", Every: cfg.TrackerRefresh, Run: refresher.RefreshTracker},
		scheduler.Job{Name: "quotes", Every: cfg.QuoteRefresh, Run: refresher.RefreshQuotes},
	)
	if err != nil {
		lg.Fatal().Err(err).Msg("scheduler")
	}
	sched.Start(ctx)
	defer sched.Stop()

	// Handler
	engine := router.NewRouter(cfg.AppEnv, lg, cred, router.Handlers{
		Page:    dashboardhandler.NewPageHandler(view, cfg.TrackerRefresh, cfg.QuoteRefresh, lg),
		Regions: dashboardhandler.NewRegionHandler(view),
		Health:  func(ctx context.Context) any { return view.Status(ctx) },
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		lg.Info().Str("addr", cfg.HTTPAddr).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		lg.Info().Msg("shutting down")
	case err := <-errCh:
		if err != nil {
			lg.Error().Err(err).Msg("server failed")
		}
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		lg.Error().Err(err).Msg("graceful shutdown failed")
	}
}
