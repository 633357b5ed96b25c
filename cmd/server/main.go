package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stockseer/internal/cache"
	"stockseer/internal/config"
	"stockseer/internal/db"
	"stockseer/internal/handler"
	"stockseer/internal/predictor"
	"stockseer/internal/provider"
	"stockseer/internal/service"
	"stockseer/internal/store"
	"stockseer/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/trace"

	_ "stockseer/docs"
)

var (
	loadEnvFunc          = godotenv.Load
	loadConfigFunc       = config.Load
	initPostgresFunc     = db.InitPostgres
	initRedisFunc        = cache.InitRedis
	initTracerFunc       = tracing.InitTracer
	newQuoteProviderFunc = func(apiKey string, tracer trace.Tracer) service.QuoteProvider {
		return provider.NewAlphaVantageProvider(apiKey, tracer)
	}
	newRouterFunc          = gin.Default
	setupSignalNotify      = signal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           StockSeer API
// @version         1.0
// @description     Stock quotes, charts, predictions, watchlists and reviews.

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization

// @host      localhost:8080
// @BasePath  /
func main() {
	loadEnvFunc()

	cfg := loadConfigFunc()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := initPostgresFunc(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to Postgres: %v", err)
	}
	if pool != nil {
		defer pool.Close()
	}

	redisClient, err := initRedisFunc(ctx, cfg.RedisURL)
	if err != nil {
		log.Printf("Warning: Redis unavailable, rate limiting disabled: %v", err)
		redisClient = nil
	}

	tp, tracer, err := initTracerFunc(ctx, cfg.TracingEnabled, cfg.OTLPEndpoint)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	var st store.Store
	if pool != nil {
		st = store.NewPostgresStore(pool, tracer)
	} else {
		st = store.NewMemStore()
	}

	quoteProvider := newQuoteProviderFunc(cfg.AlphaVantageKey, tracer)

	authService := service.NewAuthService(tracer, st, cfg.SessionSecret, time.Duration(cfg.TokenTTLHours)*time.Hour)
	stockService := service.NewStockService(tracer, quoteProvider, predictor.NewDefault())
	watchlistService := service.NewWatchlistService(tracer, st, quoteProvider)
	reviewService := service.NewReviewService(tracer, st)

	h := handler.New(tracer, authService, stockService, watchlistService, reviewService)

	r := newRouterFunc()
	r.Use(otelgin.Middleware("stockseer"))

	h.RegisterRoutes(r, redisClient, cfg.RateLimitPerMin)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
