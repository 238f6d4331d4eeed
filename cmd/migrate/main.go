// cmd/migrate/main.go
package main

import (
	"database/sql"
	"log/slog"
	"os"
	"path/filepath"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"signup-bonus-tracker/internal/config"
)

func main() {
	cfg := config.MustLoad()

	db, err := sql.Open("pgx", cfg.DBConn)
	if err != nil {
		slog.Error("Не удалось открыть БД", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		slog.Error("Неподдерживаемый диалект", "error", err)
		os.Exit(1)
	}

	wd, err := os.Getwd()
	if err != nil {
		slog.Error("Не удалось получить рабочую директорию", "error", err)
		os.Exit(1)
	}

	migrationsDir := filepath.Join(wd, "migrations")

	// go run ./cmd/migrate [up|down|status]
	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	slog.Info("Применяем миграции", "dir", migrationsDir, "command", command)

	if err := goose.Run(command, db, migrationsDir); err != nil {
		slog.Error("Миграции завершились с ошибкой", "error", err)
		os.Exit(1)
	}

	slog.Info("✅ Миграции применены")
}
