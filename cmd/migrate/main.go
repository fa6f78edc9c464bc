package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/SARVESHVARADKAR123/memberclub/internal/config"
	"github.com/SARVESHVARADKAR123/memberclub/internal/observability"
	"github.com/SARVESHVARADKAR123/memberclub/internal/repository"
)

func main() {
	url := config.DatabaseURL()
	observability.InitLogger("memberclub-migrate", "info")
	log := observability.Log

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := repository.NewDB(ctx, url)
	if err != nil {
		log.Fatal("db open failed", zap.Error(err))
	}
	defer db.Close()

	if err := repository.Migrate(ctx, db); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}
	log.Info("schema applied")
}
