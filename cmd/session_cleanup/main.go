package main

import (
	"context"
	"log"
	"time"

	"go.uber.org/zap"

	"bioscrap/internal/config"
	"bioscrap/internal/database"
	"bioscrap/internal/domain/booking"
	"bioscrap/internal/pkg/logger"
)

// One-shot purge of expired wizard sessions for deployments whose
// DATABASE_URL points at a shared database.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	lg, err := logger.New(cfg.IsProduction())
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = lg.Sync() }()

	db, err := database.Connect(cfg.DatabaseURL, lg)
	if err != nil {
		lg.Fatal("db connect failed", zap.Error(err))
	}
	if err := booking.AutoMigrate(db); err != nil {
		lg.Fatal("migration failed", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	n, err := booking.NewSessionRepository(db).DeleteExpired(ctx, time.Now().UTC())
	if err != nil {
		lg.Fatal("session cleanup failed", zap.Error(err))
	}
	lg.Info("session cleanup completed", zap.Int64("wizard_sessions", n))
}
