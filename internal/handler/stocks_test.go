package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"stockseer/internal/domain"
	"stockseer/internal/provider"
)

func TestGetQuote(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "Ann", "ann@example.com")

	w := env.do(t, http.MethodGet, "/api/stocks/quote/aapl", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var quote domain.Quote
	if err := json.Unmarshal(w.Body.Bytes(), &quote); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if quote.Symbol != "AAPL" {
		t.Errorf("symbol = %q, want AAPL (path symbol should be upper-cased)", quote.Symbol)
	}
	if quote.Price != 191.24 {
		t.Errorf("price = %v, want 191.24", quote.Price)
	}
}

func TestGetQuoteUpstreamFailure(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "Ann", "ann@example.com")

	w := env.do(t, http.MethodGet, "/api/stocks/quote/NOPE", token, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "failed to fetch stock quote") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestGetChart(t *testing.T) {
	env := newTestEnv(t)
	env.provider.series = []domain.ChartPoint{
		{Date: "2026-08-26", Price: 100},
		{Date: "2026-08-27", Price: 101},
	}
	token := env.register(t, "Ann", "ann@example.com")

	w := env.do(t, http.MethodGet, "/api/stocks/chart/AAPL/1m", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var points []domain.ChartPoint
	if err := json.Unmarshal(w.Body.Bytes(), &points); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("len(points) = %d, want 2", len(points))
	}
}

func TestGetChartInvalidRange(t *testing.T) {
	env := newTestEnv(t)
	env.provider.seriesErr = provider.ErrInvalidRange
	token := env.register(t, "Ann", "ann@example.com")

	w := env.do(t, http.MethodGet, "/api/stocks/chart/AAPL/2X", token, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "unsupported chart range: 2X") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestPredict(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "Ann", "ann@example.com")

	w := env.do(t, http.MethodGet, "/api/predict/AAPL", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var pred domain.Prediction
	if err := json.Unmarshal(w.Body.Bytes(), &pred); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	switch pred.Prediction {
	case domain.RecommendBuy, domain.RecommendSell, domain.RecommendHold:
	default:
		t.Errorf("prediction = %q", pred.Prediction)
	}
	if pred.Confidence < 55 || pred.Confidence > 89 {
		t.Errorf("confidence = %d out of range", pred.Confidence)
	}
	if pred.Symbol != "AAPL" {
		t.Errorf("symbol = %q, want AAPL", pred.Symbol)
	}
}

func TestPredictUpstreamFailure(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "Ann", "ann@example.com")

	w := env.do(t, http.MethodGet, "/api/predict/NOPE", token, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "failed to generate prediction") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}
