package service

import (
	"context"

	"stockseer/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

// QuoteProvider is the upstream market-data dependency.
type QuoteProvider interface {
	FetchQuote(ctx context.Context, symbol string) (*domain.Quote, error)
	FetchChartSeries(ctx context.Context, symbol, rng string) ([]domain.ChartPoint, error)
}

// Predictor turns a quote snapshot into a recommendation.
type Predictor interface {
	Predict(quote *domain.Quote) *domain.Prediction
}

// StockService serves quotes, chart series, and predictions. Quotes go
// straight to the provider on every call; nothing here is cached.
type StockService struct {
	tracer    trace.Tracer
	provider  QuoteProvider
	predictor Predictor
}

func NewStockService(tracer trace.Tracer, provider QuoteProvider, predictor Predictor) *StockService {
	return &StockService{tracer: tracer, provider: provider, predictor: predictor}
}

func (s *StockService) GetQuote(ctx context.Context, symbol string) (*domain.Quote, error) {
	ctx, span := s.tracer.Start(ctx, "stock-service.get-quote")
	defer span.End()

	return s.provider.FetchQuote(ctx, symbol)
}

func (s *StockService) GetChartSeries(ctx context.Context, symbol, rng string) ([]domain.ChartPoint, error) {
	ctx, span := s.tracer.Start(ctx, "stock-service.get-chart-series")
	defer span.End()

	return s.provider.FetchChartSeries(ctx, symbol, rng)
}

// Predict fetches a fresh quote and runs the heuristic over it.
func (s *StockService) Predict(ctx context.Context, symbol string) (*domain.Prediction, error) {
	ctx, span := s.tracer.Start(ctx, "stock-service.predict")
	defer span.End()

	quote, err := s.provider.FetchQuote(ctx, symbol)
	if err != nil {
		return nil, err
	}
	return s.predictor.Predict(quote), nil
}
