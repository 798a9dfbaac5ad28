package main

import (
	"context"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/subosito/gotenv"

	"github.com/Spok95/wb-price-bot/internal/bot"
	"github.com/Spok95/wb-price-bot/internal/checker"
	"github.com/Spok95/wb-price-bot/internal/config"
	"github.com/Spok95/wb-price-bot/internal/domain/history"
	"github.com/Spok95/wb-price-bot/internal/domain/pricestate"
	"github.com/Spok95/wb-price-bot/internal/domain/subscriptions"
	httpx "github.com/Spok95/wb-price-bot/internal/infra/http"
	"github.com/Spok95/wb-price-bot/internal/infra/logger"
	"github.com/Spok95/wb-price-bot/internal/notify"
	"github.com/Spok95/wb-price-bot/internal/wb"
)

func main() {
	_ = gotenv.Load() // .env не обязателен, секреты могут прийти из окружения

	cfg, err := config.Load("config/example.yaml")
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.App.Env)

	if cfg.Telegram.ChatID == 0 {
		log.Error("TG_CHAT_ID is not set, nowhere to send alerts")
		return
	}

	dataDir := cfg.Storage.DataDir
	subsRepo := subscriptions.NewRepo(filepath.Join(dataDir, "subscriptions.json"), log)
	stateRepo := pricestate.NewRepo(filepath.Join(dataDir, "state.json"), log)
	histRepo := history.NewRepo(filepath.Join(dataDir, "prices.csv"), log)
	if err := histRepo.Init(); err != nil {
		log.Error("history init failed", "err", err)
		return
	}

	wbClient := wb.NewClient(wb.Settings{
		Currency:     cfg.WB.Currency,
		Dest:         cfg.WB.Dest,
		SPP:          cfg.WB.SPP,
		PriceDivider: cfg.WB.PriceDivider,
		Timeout:      time.Duration(cfg.WB.TimeoutSeconds) * time.Second,
	})

	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		log.Error("telegram auth failed", "err", err)
		return
	}
	log.Info("telegram authorized", "account", api.Self.UserName)

	notifier := notify.NewTelegram(api, cfg.Telegram.ChatID)
	chk := checker.New(log, subsRepo, stateRepo, histRepo, wbClient, notifier, cfg.WB.Currency)

	interval := time.Duration(cfg.Check.IntervalMinutes) * time.Minute
	sched := checker.NewScheduler(chk, interval, log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go sched.Run(ctx)

	srv := httpx.New(cfg.HTTP.Addr, cfg.Metrics.Enabled)
	go func() {
		if err := srv.Start(); err != nil && err.Error() != "http: Server closed" {
			log.Error("http server error", "err", err)
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr)

	b := bot.New(bot.Deps{
		API:       api,
		Log:       log,
		OwnerChat: cfg.Telegram.ChatID,
		Subs:      subsRepo,
		State:     stateRepo,
		History:   histRepo,
		WB:        wbClient,
		Checker:   chk,
		Sched:     sched,
		Currency:  cfg.WB.Currency,
		Dest:      cfg.WB.Dest,
		CacheTTL:  time.Duration(cfg.Check.CacheTTLMinutes) * time.Minute,
		Interval:  interval,
	})

	log.Info("bot started", "interval", interval)
	if err := b.Run(ctx, 30); err != nil && ctx.Err() == nil {
		log.Error("bot stopped with error", "err", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("graceful shutdown complete")
}
