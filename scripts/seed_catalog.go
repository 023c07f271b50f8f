// Reloads the proficiency statements and listing cards from the catalog file.
//
// The server seeds an empty database on start; run this after editing the
// catalog so existing databases pick the change up. Stored submissions are
// not touched.
//
// Usage: go run scripts/seed_catalog.go [-config configs] [-catalog path]

package main

import (
	"context"
	"flag"
	"log"

	"french_assessment_backend/internal/config"
	"french_assessment_backend/internal/repository"
	"french_assessment_backend/pkg/database"
	"french_assessment_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	configDir := flag.String("config", "configs", "directory holding config.yaml")
	catalogPath := flag.String("catalog", "", "catalog file, defaults to catalog.path from the config")
	flag.Parse()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	path := cfg.Catalog.Path
	if *catalogPath != "" {
		path = *catalogPath
	}

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db, path); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	if err := database.Reseed(db, path); err != nil {
		log.Fatalf("Failed to reseed catalog: %v", err)
	}

	var rdb *redis.Client
	if cfg.Redis.Enabled {
		rdb, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			logger.Log.Warn("Redis unavailable, cached cards expire on their own", zap.Error(err))
		}
	}
	if rdb != nil {
		cards := repository.NewCardRepository(db, rdb, cfg.Catalog.CacheTTL)
		if err := cards.Invalidate(context.Background()); err != nil {
			logger.Log.Warn("Failed to clear card cache", zap.Error(err))
		}
	}

	logger.Log.Info("Catalog reseeded", zap.String("path", path))
}
