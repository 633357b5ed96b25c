package handler

import (
	"stockseer/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/trace"
)

type Handler struct {
	tracer           trace.Tracer
	authService      *service.AuthService
	stockService     *service.StockService
	watchlistService *service.WatchlistService
	reviewService    *service.ReviewService
}

func New(
	tracer trace.Tracer,
	authService *service.AuthService,
	stockService *service.StockService,
	watchlistService *service.WatchlistService,
	reviewService *service.ReviewService,
) *Handler {
	return &Handler{
		tracer:           tracer,
		authService:      authService,
		stockService:     stockService,
		watchlistService: watchlistService,
		reviewService:    reviewService,
	}
}

// RegisterRoutes mounts all endpoints. Auth routes are public; everything
// else under /api requires a bearer token. rateLimiter may be nil.
func (h *Handler) RegisterRoutes(r *gin.Engine, rateLimiter *redis.Client, perMinute int) {
	r.GET("/health", h.Health)

	api := r.Group("/api")
	if rateLimiter != nil {
		api.Use(RateLimit(rateLimiter, perMinute))
	}

	api.POST("/auth/register", h.Register)
	api.POST("/auth/login", h.Login)

	protected := api.Group("")
	protected.Use(h.RequireAuth())

	protected.GET("/stocks/quote/:symbol", h.GetQuote)
	protected.GET("/stocks/chart/:symbol/:range", h.GetChart)
	protected.GET("/predict/:symbol", h.Predict)

	protected.GET("/watchlist", h.GetWatchlist)
	protected.POST("/watchlist", h.AddToWatchlist)
	protected.DELETE("/watchlist/:symbol", h.RemoveFromWatchlist)

	protected.GET("/reviews", h.ListReviews)
	protected.POST("/reviews", h.CreateReview)
	protected.DELETE("/reviews/:id", h.DeleteReview)
}
