package service

import (
	"context"
	"sync"

	"stockseer/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

var testTracer = trace.NewNoopTracerProvider().Tracer("test")

type mockProvider struct {
	mu     sync.Mutex
	quotes map[string]*domain.Quote
	series []domain.ChartPoint

	quoteErr  error
	seriesErr error

	quoteCalls    int
	lastQuoteSym  string
	seriesCalls   int
	lastSeriesSym string
	lastSeriesRng string
}

func (m *mockProvider) FetchQuote(ctx context.Context, symbol string) (*domain.Quote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quoteCalls++
	m.lastQuoteSym = symbol
	if m.quoteErr != nil {
		return nil, m.quoteErr
	}
	quote, ok := m.quotes[symbol]
	if !ok {
		return nil, errNoQuote
	}
	out := *quote
	return &out, nil
}

func (m *mockProvider) FetchChartSeries(ctx context.Context, symbol, rng string) ([]domain.ChartPoint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seriesCalls++
	m.lastSeriesSym = symbol
	m.lastSeriesRng = rng
	if m.seriesErr != nil {
		return nil, m.seriesErr
	}
	return m.series, nil
}

type stubPredictor struct {
	result *domain.Prediction
	calls  int
}

func (s *stubPredictor) Predict(quote *domain.Quote) *domain.Prediction {
	s.calls++
	if s.result != nil {
		return s.result
	}
	return &domain.Prediction{Symbol: quote.Symbol, Prediction: domain.RecommendHold, Confidence: 60, TargetPrice: quote.Price}
}
