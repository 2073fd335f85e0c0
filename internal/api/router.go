package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/importwise/landedcost/internal/api/handler"
	"github.com/importwise/landedcost/internal/api/middleware"
	"github.com/importwise/landedcost/internal/core/domain"
	"github.com/importwise/landedcost/internal/core/service"
	"github.com/importwise/landedcost/internal/infrastructure/benchmark"
	"github.com/importwise/landedcost/internal/infrastructure/config"
	mongodb "github.com/importwise/landedcost/internal/infrastructure/db/mongo"
	redisdb "github.com/importwise/landedcost/internal/infrastructure/db/redis"
	"github.com/importwise/landedcost/internal/infrastructure/duty"
	"github.com/importwise/landedcost/pkg/logger"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client) *echo.Echo {
	log := logger.Get()

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("landedcost"))

	// --- Engine and services ---
	calc := service.NewCalculator(
		service.DefaultEngineConfig(),
		duty.NewStaticSource(),
		duty.NewFlatTariffResolver(cfg.TariffRate),
		log,
	)

	rateCache := redisdb.NewRateCache(rdb, cfg.Benchmark.CacheTTL)
	rateSource := benchmark.NewClient(cfg.Benchmark.BaseURL, cfg.Benchmark.Timeout, rateCache, log)

	quoteRepo := mongodb.NewQuoteRepository(db)
	quoteService := service.NewQuoteService(calc, quoteRepo, rateSource, log)

	authRepo := mongodb.NewAuthRepository(db)
	authService := service.NewAuthService(authRepo, cfg.JWTSecret, 24*time.Hour)

	// --- Handlers ---
	calculateHandler := handler.NewCalculateHandler(quoteService)
	quoteHandler := handler.NewQuoteHandler(quoteService)
	authHandler := handler.NewAuthHandler(authService)

	// --- Public calculation routes ---
	e.POST("/api/landed-cost/calculate", calculateHandler.Calculate)
	e.POST("/api/landed-cost/compare", calculateHandler.Compare)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Saved quotes (authenticated) ---
	authMiddleware := middleware.Auth(cfg.JWTSecret)
	quotes := e.Group("/v1/quotes", authMiddleware, middleware.RBAC(domain.RoleAdmin, domain.RoleBuyer))
	quotes.POST("", quoteHandler.Save)
	quotes.GET("", quoteHandler.List)
	quotes.GET("/:id", quoteHandler.Get)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())

	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	return e
}
