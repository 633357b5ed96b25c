package service

import (
	"context"
	"errors"
	"testing"

	"stockseer/internal/domain"
)

func TestStockServiceGetQuote(t *testing.T) {
	t.Parallel()

	provider := &mockProvider{quotes: map[string]*domain.Quote{
		"AAPL": {Symbol: "AAPL", Price: 191.24, ChangePercent: 0.65},
	}}
	svc := NewStockService(testTracer, provider, &stubPredictor{})

	quote, err := svc.GetQuote(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if quote.Price != 191.24 || provider.quoteCalls != 1 {
		t.Fatalf("unexpected quote: %+v (calls=%d)", quote, provider.quoteCalls)
	}
}

func TestStockServiceGetQuoteNeverCaches(t *testing.T) {
	t.Parallel()

	provider := &mockProvider{quotes: map[string]*domain.Quote{
		"AAPL": {Symbol: "AAPL", Price: 191.24},
	}}
	svc := NewStockService(testTracer, provider, &stubPredictor{})

	for i := 0; i < 3; i++ {
		if _, err := svc.GetQuote(context.Background(), "AAPL"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if provider.quoteCalls != 3 {
		t.Fatalf("expected one provider call per request, got %d", provider.quoteCalls)
	}
}

func TestStockServiceGetChartSeries(t *testing.T) {
	t.Parallel()

	provider := &mockProvider{series: []domain.ChartPoint{{Date: "2025-01-02", Price: 100}}}
	svc := NewStockService(testTracer, provider, &stubPredictor{})

	points, err := svc.GetChartSeries(context.Background(), "AAPL", "1M")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(points) != 1 || provider.lastSeriesRng != "1M" || provider.lastSeriesSym != "AAPL" {
		t.Fatalf("unexpected series call: %+v", provider)
	}
}

func TestStockServicePredict(t *testing.T) {
	t.Parallel()

	provider := &mockProvider{quotes: map[string]*domain.Quote{
		"AAPL": {Symbol: "AAPL", Price: 191.24},
	}}
	pred := &stubPredictor{result: &domain.Prediction{Symbol: "AAPL", Prediction: domain.RecommendBuy, Confidence: 80, TargetPrice: 210}}
	svc := NewStockService(testTracer, provider, pred)

	got, err := svc.Predict(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Prediction != domain.RecommendBuy || pred.calls != 1 {
		t.Fatalf("unexpected prediction: %+v (calls=%d)", got, pred.calls)
	}
}

func TestStockServicePredictUpstreamFailure(t *testing.T) {
	t.Parallel()

	upstreamErr := errors.New("upstream down")
	provider := &mockProvider{quoteErr: upstreamErr}
	pred := &stubPredictor{}
	svc := NewStockService(testTracer, provider, pred)

	if _, err := svc.Predict(context.Background(), "AAPL"); !errors.Is(err, upstreamErr) {
		t.Fatalf("expected upstream error, got %v", err)
	}
	if pred.calls != 0 {
		t.Fatal("predictor must not run without a quote")
	}
}
