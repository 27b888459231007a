// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"auction_backend/internal/app/router"
	"auction_backend/internal/config"
	auctionadapters "auction_backend/internal/feature/auction/adapters"
	auctionhandler "auction_backend/internal/feature/auction/transport/handler"
	auctionusecase "auction_backend/internal/feature/auction/usecase"
	authadapters "auction_backend/internal/feature/auth/adapters"
	authhandler "auction_backend/internal/feature/auth/transport/handler"
	authusecase "auction_backend/internal/feature/auth/usecase"
	"auction_backend/internal/platform/cache"
	platformhandler "auction_backend/internal/platform/http/handler"
	jwtmw "auction_backend/internal/platform/jwt"
	"auction_backend/internal/platform/metrics"
	"auction_backend/internal/shared/ratelimiter"
)

// SessionPruner deletes sessions that can no longer be used.
type SessionPruner interface {
	PruneSessions(ctx context.Context) (int64, error)
}

// CategorySeeder creates categories that do not exist yet.
type CategorySeeder interface {
	SeedCategories(ctx context.Context, names []string) (int, error)
}

// App is the wired HTTP application.
type App struct {
	Router   *gin.Engine
	Sessions SessionPruner
	Metrics  *metrics.Metrics
}

// NewCategoryRepository returns the SQL category repository behind the Redis
// read-through cache. A nil rdb disables caching.
func NewCategoryRepository(db *gorm.DB, rdb *redis.Client, ttl time.Duration, m *metrics.Metrics) auctionusecase.CategoryRepository {
	cached := cache.NewCachingCategoryRepository(rdb, ttl, auctionadapters.NewCategoryRepository(db), "categories")
	if m != nil {
		cached.WithLookupObserver(m.RecordCacheLookup)
	}
	return cached
}

// NewCategorySeeder wires the listing usecase for the seed command.
func NewCategorySeeder(db *gorm.DB, rdb *redis.Client, ttl time.Duration) CategorySeeder {
	return auctionusecase.NewListingUsecase(
		auctionadapters.NewItemRepository(db),
		NewCategoryRepository(db, rdb, ttl, nil),
		auctionadapters.NewWatchlistRepository(db),
	)
}

// NewLimiter shares counters through Redis when it is available.
func NewLimiter(rdb *redis.Client, limit int, window time.Duration) ratelimiter.Limiter {
	if rdb != nil {
		return ratelimiter.NewRedisLimiter(rdb, limit, window, "ratelimit")
	}
	return ratelimiter.NewRateLimiter(limit, window)
}

func healthChecks(db *gorm.DB, rdb *redis.Client) []platformhandler.Check {
	checks := []platformhandler.Check{{
		Name: "database",
		Ping: func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}}
	if rdb != nil {
		checks = append(checks, platformhandler.Check{
			Name: "redis",
			Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		})
	}
	return checks
}

// NewApp wires repositories, usecases, handlers and the router.
func NewApp(cfg *config.Config, db *gorm.DB, rdb *redis.Client, logger *slog.Logger) *App {
	m := metrics.New()

	// Repository
	userRepo := authadapters.NewUserRepository(db)
	sessionRepo := NewSessionRepository(rdb, db)
	itemRepo := auctionadapters.NewItemRepository(db)
	bidRepo := auctionadapters.NewBidRepository(db)
	commentRepo := auctionadapters.NewCommentRepository(db)
	watchlistRepo := auctionadapters.NewWatchlistRepository(db)
	categoryRepo := NewCategoryRepository(db, rdb, cfg.CategoryCacheTTL, m)

	// Usecase
	tokens := jwtmw.NewGenerator(cfg.JWTSecret, cfg.JWTExpiration)
	authUC := authusecase.NewAuthUsecase(userRepo, sessionRepo, tokens, cfg.JWTExpiration)
	auctionUC := auctionusecase.NewAuctionUsecase(itemRepo, bidRepo, commentRepo, watchlistRepo)
	listingUC := auctionusecase.NewListingUsecase(itemRepo, categoryRepo, watchlistRepo)

	// Handler
	handlers := router.Handlers{
		Auth:     authhandler.NewAuthHandler(authUC),
		Items:    auctionhandler.NewItemHandler(auctionUC, m),
		Listings: auctionhandler.NewListingHandler(listingUC),
		Health:   platformhandler.NewHealthHandler(healthChecks(db, rdb)...),
	}

	// ルータ生成
	r := router.NewRouter(handlers, router.Options{
		JWT:         jwtmw.NewMiddleware(cfg.JWTSecret, authUC),
		Limiter:     NewLimiter(rdb, cfg.RateLimitRequests, cfg.RateLimitWindow),
		Metrics:     m,
		Logger:      logger,
		CORSOrigins: cfg.CORSAllowedOrigins,
	})

	return &App{Router: r, Sessions: authUC, Metrics: m}
}
