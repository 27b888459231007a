package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	auctionhandler "auction_backend/internal/feature/auction/transport/handler"
	authhandler "auction_backend/internal/feature/auth/transport/handler"
	platformhandler "auction_backend/internal/platform/http/handler"
	"auction_backend/internal/platform/http/middleware"
	jwtmw "auction_backend/internal/platform/jwt"
	"auction_backend/internal/platform/metrics"
	"auction_backend/internal/shared/ratelimiter"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Auth     *authhandler.AuthHandler
	Items    *auctionhandler.ItemHandler
	Listings *auctionhandler.ListingHandler
	Health   *platformhandler.HealthHandler
}

// Options carries the cross-cutting middleware dependencies.
type Options struct {
	JWT         *jwtmw.Middleware
	Limiter     ratelimiter.Limiter // applied to /login and /register
	Metrics     *metrics.Metrics    // optional
	Logger      *slog.Logger
	CORSOrigins []string // CORS is disabled when empty
}

func NewRouter(h Handlers, opt Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID())
	if opt.Logger != nil {
		r.Use(middleware.Logger(opt.Logger))
	}
	if opt.Metrics != nil {
		r.Use(opt.Metrics.Instrument())
		r.GET("/metrics", gin.WrapH(opt.Metrics.Handler()))
	}
	if len(opt.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  opt.CORSOrigins,
			AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowHeaders:  []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
			ExposeHeaders: []string{middleware.RequestIDHeader},
			MaxAge:        12 * time.Hour,
		}))
	}

	// 導通確認用
	r.GET("/healthz", h.Health.Health)
	r.HEAD("/healthz", h.Health.Health)
	r.OPTIONS("/healthz", h.Health.Health)

	// 認証不要
	r.GET("/categories", h.Listings.Categories)
	r.GET("/categories/:name", h.Listings.Category)
	r.GET("/items/:id/price", h.Items.Price)

	// ログイン・新規登録（レート制限付き）
	limited := r.Group("/")
	if opt.Limiter != nil {
		limited.Use(middleware.RateLimit(opt.Limiter, "auth"))
	}
	limited.POST("/login", h.Auth.Login)
	limited.POST("/register", h.Auth.Register)

	// トークンは任意。あれば検証して閲覧者として扱う
	optional := r.Group("/")
	optional.Use(opt.JWT.Optional())
	{
		optional.GET("/", h.Listings.Index)
		optional.GET("/items/:id", h.Items.Show)
		// 入札・ウォッチリスト・終了はユースケース側で認証を要求する
		optional.POST("/items/:id", h.Items.Act)
	}

	// 認証必須のルート
	auth := r.Group("/")
	auth.Use(opt.JWT.AuthRequired())
	{
		auth.GET("/watchlist", h.Listings.Watchlist)
		auth.GET("/create", h.Listings.CreateForm)
		auth.POST("/create", h.Listings.Create)
		auth.POST("/logout", h.Auth.Logout)
	}

	return r
}
