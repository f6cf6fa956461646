package main

import (
	"context"
	"log"
	"net/http"

	"go.uber.org/zap"

	"github.com/spotit-game/spotit-backend/internal/config"
	"github.com/spotit-game/spotit-backend/internal/content"
	"github.com/spotit-game/spotit-backend/internal/httpapi"
	"github.com/spotit-game/spotit-backend/internal/registry"
	"github.com/spotit-game/spotit-backend/internal/room"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := buildLogger(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	var store content.Store = content.NewStaticStore(content.Defaults())
	if cfg.ContentDBDSN != "" {
		store, err = content.OpenPostgres(cfg.ContentDBDSN)
		if err != nil {
			logger.Fatal("content db", zap.Error(err))
		}
	}
	images, err := store.Images(ctx)
	if err != nil {
		logger.Fatal("load content", zap.Error(err))
	}
	if len(images) == 0 {
		logger.Warn("content store empty, falling back to defaults")
		images = content.Defaults()
	}

	roomCfg := room.Config{
		LevelTime:    cfg.LevelTime,
		TickInterval: cfg.TickInterval,
		PointsPerHit: cfg.PointsPerHit,
		GracePeriod:  cfg.GracePeriod,
	}
	reg := registry.New(ctx, images, roomCfg, cfg.MaxHotspots, logger)

	handler := httpapi.SetupRoutes(reg, logger, cfg.AllowedOrigins)

	logger.Info("listening", zap.String("addr", cfg.Addr), zap.Int("images", len(images)))
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		logger.Fatal("serve", zap.Error(err))
	}
}

func buildLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.LogDev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
