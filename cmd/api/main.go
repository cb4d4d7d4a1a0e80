package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/manybotts/PingerB/internal/config"
	"github.com/manybotts/PingerB/internal/httpapi"
	"github.com/manybotts/PingerB/internal/logging"
	"github.com/manybotts/PingerB/internal/notify"
	"github.com/manybotts/PingerB/internal/probe"
	"github.com/manybotts/PingerB/internal/registry"
	"github.com/manybotts/PingerB/internal/repo"
	"github.com/manybotts/PingerB/internal/repo/memory"
	"github.com/manybotts/PingerB/internal/repo/postgres"
	"github.com/manybotts/PingerB/internal/scheduler"
	"github.com/manybotts/PingerB/internal/sweep"
)

func main() {
	cfg := config.FromEnv()
	logger, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var store repo.TargetStore
	var closeStore func()
	if cfg.DatabaseURL != "" {
		pg, err := postgres.New(ctx, cfg.DatabaseURL, cfg.DatabaseName, logger)
		if err != nil {
			logger.Fatal("store_connect_error", zap.Error(err))
		}
		store = pg
		closeStore = pg.Close
	} else {
		logger.Info("store_memory", zap.String("hint", "set DATABASE_URL for persistence"))
		store = memory.New()
		closeStore = func() {}
	}

	reg := registry.New(logger, store)
	exec := sweep.NewExecutor(logger, probe.NewHTTPChecker(cfg.ProbeTimeout), cfg.ProbeTimeout)

	slack := notify.NewSlack(cfg.SlackWebhook)
	var sink notify.Notifier = notify.Multi{}
	if slack != nil {
		sink = slack
	}
	sched := scheduler.NewManager(logger, reg, exec, sink)

	go sched.RunDefault(ctx, cfg.DefaultSweepInterval)
	if slack != nil && cfg.OpsIntervalMin > 0 {
		if err := sched.Schedule("ops", time.Duration(cfg.OpsIntervalMin)*time.Minute); err != nil {
			logger.Warn("ops_schedule_error", zap.Error(err))
		}
	}

	api := httpapi.NewServer(logger, reg)
	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: api.Router(cfg.AllowedOrigins, cfg.RateRPM, cfg.RateBurst),
	}

	go func() {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutCtx)
	}()

	logger.Info("api_listen", zap.String("addr", cfg.Addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("api_serve_error", zap.Error(err))
	}

	sched.Shutdown()
	closeStore()
	_ = logger.Sync()
}
