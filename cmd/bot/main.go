// cmd/bot/main.go
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"signup-bonus-tracker/internal/auth"
	"signup-bonus-tracker/internal/config"
	"signup-bonus-tracker/internal/eligibility"
	"signup-bonus-tracker/internal/service"
	"signup-bonus-tracker/internal/storage/postgres"
	"signup-bonus-tracker/internal/telegram"
)

func main() {
	cfg := config.MustLoad()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	})))

	if cfg.TelegramToken == "" {
		slog.Error("TELEGRAM_BOT_TOKEN not set")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := pgxpool.New(ctx, cfg.DBConn)
	if err != nil {
		slog.Error("Failed to connect to DB", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	store := postgres.NewStorage(db)
	svc := service.NewService(store,
		service.WithEngine(eligibility.NewEngine(eligibility.DefaultRules, cfg.FlagshipBrands)),
		service.WithPrimaryPlayer(cfg.PrimaryPlayer),
	)
	bot := telegram.NewBot(svc, store, auth.NewTokenService(cfg))

	botAPI, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		slog.Error("Failed to init bot", "error", err)
		os.Exit(1)
	}
	slog.Info("🤖 Bot started", "username", botAPI.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := botAPI.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			botAPI.StopReceivingUpdates()
			slog.Info("Bot stopped")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			bot.HandleUpdate(ctx, botAPI, update)
		}
	}
}
