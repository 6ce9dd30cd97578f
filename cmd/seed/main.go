// Command seed loads the demo site into the configured stores.
package main

import (
	"context"
	"os"
	"time"

	"github.com/lumenworks/sitecms/backend/go-services/internal/app"
	"github.com/lumenworks/sitecms/backend/go-services/internal/config"
	"github.com/lumenworks/sitecms/backend/go-services/internal/seed"
	"github.com/lumenworks/sitecms/backend/go-services/pkg/logger"
)

func main() {
	logger.Init(os.Getenv("LOG_LEVEL"))
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	a, err := app.New(ctx, cfg)
	if err != nil {
		logger.Fatalf("failed to start: %v", err)
	}
	defer a.Close()
	if a.Backends["content"] == app.BackendMemory {
		logger.Warn("content store is in memory; seeded data will not outlive this process")
	}
	if _, err := seed.Run(ctx, a); err != nil {
		logger.Errorf("seed failed: %v", err)
		a.Close()
		os.Exit(1)
	}
	_ = logger.Sync()
}
