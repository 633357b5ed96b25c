package handler

import (
	"errors"
	"net/http"
	"strings"

	"stockseer/internal/provider"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// GetQuote godoc
// @Summary      Get a stock quote
// @Description  Fetches a fresh quote for a ticker symbol from the upstream provider
// @Tags         stocks
// @Produce      json
// @Param        symbol  path  string  true  "Ticker symbol (e.g., AAPL)"
// @Success      200  {object}  domain.Quote
// @Failure      400  {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/stocks/quote/{symbol} [get]
func (h *Handler) GetQuote(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-quote")
	defer span.End()

	symbol := strings.ToUpper(c.Param("symbol"))
	span.SetAttributes(attribute.String("symbol", symbol))

	quote, err := h.stockService.GetQuote(ctx, symbol)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to fetch stock quote"})
		return
	}

	c.JSON(http.StatusOK, quote)
}

// GetChart godoc
// @Summary      Get chart series
// @Description  Fetches a price series for a symbol over the requested range
// @Tags         stocks
// @Produce      json
// @Param        symbol  path  string  true  "Ticker symbol"
// @Param        range   path  string  true  "Range (1D, 1W, 1M, 3M, 1Y, ALL)"
// @Success      200  {array}   domain.ChartPoint
// @Failure      400  {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/stocks/chart/{symbol}/{range} [get]
func (h *Handler) GetChart(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.get-chart")
	defer span.End()

	symbol := strings.ToUpper(c.Param("symbol"))
	rng := strings.ToUpper(c.Param("range"))
	span.SetAttributes(attribute.String("symbol", symbol), attribute.String("range", rng))

	points, err := h.stockService.GetChartSeries(ctx, symbol, rng)
	if err != nil {
		if errors.Is(err, provider.ErrInvalidRange) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported chart range: " + rng})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to fetch chart data"})
		return
	}

	c.JSON(http.StatusOK, points)
}

// Predict godoc
// @Summary      Get a prediction
// @Description  Fetches a fresh quote and generates a BUY/SELL/HOLD recommendation
// @Tags         predict
// @Produce      json
// @Param        symbol  path  string  true  "Ticker symbol"
// @Success      200  {object}  domain.Prediction
// @Failure      400  {object}  map[string]string
// @Security     BearerAuth
// @Router       /api/predict/{symbol} [get]
func (h *Handler) Predict(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "handler.predict")
	defer span.End()

	symbol := strings.ToUpper(c.Param("symbol"))
	span.SetAttributes(attribute.String("symbol", symbol))

	prediction, err := h.stockService.Predict(ctx, symbol)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to generate prediction"})
		return
	}

	c.JSON(http.StatusOK, prediction)
}
