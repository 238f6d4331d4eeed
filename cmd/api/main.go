// cmd/api/main.go
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"signup-bonus-tracker/internal/auth"
	"signup-bonus-tracker/internal/config"
	"signup-bonus-tracker/internal/eligibility"
	"signup-bonus-tracker/internal/handler"
	"signup-bonus-tracker/internal/middleware"
	"signup-bonus-tracker/internal/service"
	"signup-bonus-tracker/internal/storage/postgres"
	"signup-bonus-tracker/internal/telegram"
)

func main() {
	cfg := config.MustLoad()

	// Настройка логгера
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	slog.SetDefault(logger)

	pool, err := pgxpool.New(context.Background(), cfg.DBConn)
	if err != nil {
		slog.Error("Не удалось подключиться к БД", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("Ping БД не удался", "error", err)
		os.Exit(1)
	}
	slog.Info("✅ Подключились к PostgreSQL")

	store := postgres.NewStorage(pool)
	svc := service.NewService(store,
		service.WithEngine(eligibility.NewEngine(eligibility.DefaultRules, cfg.FlagshipBrands)),
		service.WithPrimaryPlayer(cfg.PrimaryPlayer),
	)

	// JWT
	tokenService := auth.NewTokenService(cfg)

	// Gin
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Telegram webhook: только если заданы и токен, и внешний адрес
	if cfg.TelegramToken != "" && cfg.WebhookBaseURL != "" {
		botAPI, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
		if err != nil {
			slog.Error("Не удалось инициализировать Telegram бота", "error", err)
			os.Exit(1)
		}

		webhookURL := cfg.WebhookBaseURL + "/telegram"
		wh, err := tgbotapi.NewWebhook(webhookURL)
		if err != nil {
			slog.Error("Некорректный адрес webhook", "url", webhookURL, "error", err)
			os.Exit(1)
		}
		if _, err := botAPI.Request(wh); err != nil {
			slog.Error("Не удалось установить webhook", "error", err)
			os.Exit(1)
		}
		slog.Info("Telegram webhook установлен", "url", webhookURL)

		bot := telegram.NewBot(svc, store, tokenService)
		router.POST("/telegram", func(c *gin.Context) {
			var update tgbotapi.Update
			if err := c.ShouldBindJSON(&update); err != nil {
				slog.Error("Ошибка парсинга обновления", "error", err)
				c.Status(http.StatusBadRequest)
				return
			}
			bot.HandleUpdate(c.Request.Context(), botAPI, update)
			c.Status(http.StatusOK)
		})
	}

	router.POST("/api/v1/login", handler.NewAuthHandler(tokenService).Login)

	authMiddleware := middleware.NewAuthMiddleware(tokenService)
	v1 := router.Group("/api/v1")
	v1.Use(authMiddleware.RequireAuth())
	handler.NewBonusHandler(svc).Register(v1)

	slog.Info("🚀 Сервер запущен", "port", cfg.ServerPort)
	if err := router.Run(cfg.ServerPort); err != nil {
		slog.Error("Сервер завершил работу с ошибкой", "error", err)
		os.Exit(1)
	}
}
