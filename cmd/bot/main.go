package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"homework_status_bot/internal/app"
	"homework_status_bot/internal/infra/config"
	"homework_status_bot/internal/infra/logger"
	"homework_status_bot/internal/infra/practicum"
	"homework_status_bot/internal/infra/scheduler"
	"homework_status_bot/internal/infra/telegram"

	"gopkg.in/telebot.v3"
)

func main() {
	fmt.Println("Homework Status Bot starting...")

	mainLogger := log.New(os.Stdout, "MAIN: ", log.LstdFlags|log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		mainLogger.Fatalf("FATAL: Could not load application configuration: %v", err)
	}

	logger.Init(cfg.LogLevel, cfg.Environment)
	appLogger := logger.Get()
	appLogger.WithField("environment", cfg.Environment).Info("Configuration loaded")

	// Initialize Telegram Bot
	pref := telebot.Settings{
		Token:  cfg.TelegramToken,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c telebot.Context) { // Global error handler
			entry := appLogger.WithError(err)
			if c != nil && c.Sender() != nil {
				entry = entry.WithField("sender_id", c.Sender().ID)
			}
			entry.Error("Telegram update handling failed")
		},
	}
	bot, err := telebot.NewBot(pref)
	if err != nil {
		appLogger.WithError(err).Fatal("Could not create Telegram bot")
	}

	// Wire the poll pipeline: API client, notifier, watcher.
	adapter := telegram.NewTelebotAdapter(bot)
	notifier := telegram.NewNotifier(adapter, cfg.TelegramChatID, appLogger.WithField("component", "notifier"))
	fetcher := practicum.NewClient(cfg.PracticumToken, appLogger.WithField("component", "practicum"))
	watcher := app.NewStatusWatcher(fetcher, notifier, appLogger.WithField("component", "watcher"))
	appLogger.Info("Status watcher initialized")

	// Register Handlers
	telegram.RegisterBotHandlers(bot, watcher, cfg.TelegramChatID, appLogger.WithField("component", "handlers"))
	appLogger.Info("Owner command handlers registered")

	// Optional daily digest
	if cfg.DigestCronSpec != "" {
		digest := scheduler.NewDigestScheduler(watcher, notifier, appLogger.WithField("component", "digest"), cfg.DigestCronSpec)
		if err := digest.Start(); err != nil {
			appLogger.WithError(err).Fatal("Could not start digest scheduler")
		}
		defer digest.Stop()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start bot in a goroutine so it doesn't block the poll loop
	go bot.Start()
	defer bot.Stop()

	appLogger.Info("Application setup complete. Watcher is starting...")

	if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		appLogger.WithError(err).Error("Status watcher terminated unexpectedly")
	}

	appLogger.Info("Application shut down gracefully")
}
