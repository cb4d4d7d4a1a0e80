package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/manybotts/PingerB/internal/bot"
	"github.com/manybotts/PingerB/internal/config"
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

	tg := notify.NewTelegram(cfg.TelegramToken)
	if tg == nil {
		logger.Fatal("missing_credential", zap.String("var", "TELEGRAM_TOKEN"))
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
	sched := scheduler.NewManager(logger, reg, exec, tg)

	go sched.RunDefault(ctx, cfg.DefaultSweepInterval)

	b := bot.New(logger, reg, sched, tg)
	b.Run(ctx)

	sched.Shutdown()
	closeStore()
	_ = logger.Sync()
}
