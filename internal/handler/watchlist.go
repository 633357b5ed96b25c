package handler

import (
	"errors"
	"net/http"
	"strings"

	"stockseer/internal/service"
	"stockseer/internal/store"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

type addWatchlistRequest struct {
	Symbol string `json:"symbol"`
}

// GetWatchlist godoc
// @Summary      List watched symbols
// @Description  Returns the user's watchlist hydrated with live quotes; symbols whose quote fetch fails are omitted
// @Tags         watchlist
// @Produce      json
// @Success      200  {array}   domain.WatchlistItem
// @Failure      500  {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/watchlist [get]
func (h *Handler) GetWatchlist(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-watchlist")
	defer span.End()

	items, err := h.watchlistService.List(ctx, userID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch watchlist"})
		return
	}

	c.JSON(http.StatusOK, items)
}

// AddToWatchlist godoc
// @Summary      Add a symbol to the watchlist
// @Tags         watchlist
// @Accept       json
// @Produce      json
// @Param        body  body  addWatchlistRequest  true  "Symbol to watch"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/watchlist [post]
func (h *Handler) AddToWatchlist(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.add-to-watchlist")
	defer span.End()

	var req addWatchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Symbol) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "symbol is required"})
		return
	}

	symbol := strings.ToUpper(strings.TrimSpace(req.Symbol))
	span.SetAttributes(attribute.String("symbol", symbol))

	if err := h.watchlistService.Add(ctx, userID(c), symbol); err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadyWatched):
			c.JSON(http.StatusBadRequest, gin.H{"error": "stock already in watchlist"})
		case errors.Is(err, store.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add to watchlist"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "added to watchlist", "symbol": symbol})
}

// RemoveFromWatchlist godoc
// @Summary      Remove a symbol from the watchlist
// @Description  Removing a symbol that is not watched is a no-op success
// @Tags         watchlist
// @Produce      json
// @Param        symbol  path  string  true  "Ticker symbol"
// @Success      200  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/watchlist/{symbol} [delete]
func (h *Handler) RemoveFromWatchlist(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.remove-from-watchlist")
	defer span.End()

	symbol := strings.ToUpper(c.Param("symbol"))
	span.SetAttributes(attribute.String("symbol", symbol))

	if err := h.watchlistService.Remove(ctx, userID(c), symbol); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove from watchlist"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "removed from watchlist"})
}
