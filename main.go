package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"sceneforge/api"
	"sceneforge/assets"
	"sceneforge/audio"
	"sceneforge/project"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	store := initializeStore(logger)
	assetStore := initializeAssets(logger)

	srv := api.NewServer(logger, store, audio.NewMP3Decoder(), assetStore)
	r := srv.Router()

	logger.Info("starting API server", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

// initializeStore returns the Redis-backed project store when REDIS_ADDR is
// set, falling back to the in-memory store otherwise.
func initializeStore(logger *zap.Logger) project.Store {
	if os.Getenv("REDIS_ADDR") == "" {
		logger.Info("REDIS_ADDR not set; using in-memory project store")
		return project.NewMemoryStore()
	}
	store, err := project.NewRedisStoreFromEnv()
	if err != nil {
		logger.Fatal("redis project store init failed", zap.Error(err))
	}
	logger.Info("using redis project store")
	return store
}

// initializeAssets returns the S3 asset store if configured via env.
// Required: ASSETS_BUCKET. Optional: AWS_REGION, AWS_PROFILE,
// ASSETS_ENDPOINT, ASSETS_PATH_STYLE=true.
func initializeAssets(logger *zap.Logger) *assets.Store {
	if os.Getenv("ASSETS_BUCKET") == "" {
		logger.Info("ASSETS_BUCKET not set; script uploads disabled")
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	store, err := assets.NewStoreFromEnv(ctx)
	if err != nil {
		logger.Warn("asset store init failed; uploads disabled", zap.Error(err))
		return nil
	}
	return store
}
