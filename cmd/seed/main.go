package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"strings"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"auction_backend/internal/app/di"
	"auction_backend/internal/config"
	"auction_backend/internal/platform/db"
	"auction_backend/internal/platform/logging"
	platformredis "auction_backend/internal/platform/redis"
)

const defaultCategories = "Books,Electronics,Fashion,Home,Toys,Sports,Collectibles"

func main() {
	names := flag.String("categories", defaultCategories, "comma-separated category names to create")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	gdb, err := db.OpenDB(cfg.DB)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	// the listing tables must exist before seeding
	if err := db.Migrate(gdb); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}

	// Redis is only needed to invalidate the category cache
	var rdb *redisv9.Client
	if cfg.Redis.Enabled() {
		if tmp, err := platformredis.NewRedisClient(ctx, cfg.Redis); err == nil {
			rdb = tmp
			defer func() { _ = rdb.Close() }()
		}
	}

	created, err := di.NewCategorySeeder(gdb, rdb, cfg.CategoryCacheTTL).SeedCategories(ctx, strings.Split(*names, ","))
	if err != nil {
		slog.Error("seed failed", "error", err)
		os.Exit(1)
	}
	slog.Info("seed ok", "created", created)
}
