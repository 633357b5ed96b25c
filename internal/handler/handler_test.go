package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stockseer/internal/domain"
	"stockseer/internal/predictor"
	"stockseer/internal/service"
	"stockseer/internal/store"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

var testTracer = trace.NewNoopTracerProvider().Tracer("test")

var errQuoteUnavailable = errors.New("quote unavailable")

type fakeProvider struct {
	quotes    map[string]*domain.Quote
	series    []domain.ChartPoint
	seriesErr error
}

func (f *fakeProvider) FetchQuote(ctx context.Context, symbol string) (*domain.Quote, error) {
	quote, ok := f.quotes[symbol]
	if !ok {
		return nil, errQuoteUnavailable
	}
	out := *quote
	return &out, nil
}

func (f *fakeProvider) FetchChartSeries(ctx context.Context, symbol, rng string) ([]domain.ChartPoint, error) {
	if f.seriesErr != nil {
		return nil, f.seriesErr
	}
	return f.series, nil
}

type testEnv struct {
	router   *gin.Engine
	store    *store.MemStore
	provider *fakeProvider
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.NewMemStore()
	fp := &fakeProvider{quotes: map[string]*domain.Quote{
		"AAPL": {Symbol: "AAPL", Name: "AAPL", Price: 191.24, Change: 1.24, ChangePercent: 0.65},
	}}

	authSvc := service.NewAuthService(testTracer, st, "test-secret", time.Hour)
	stockSvc := service.NewStockService(testTracer, fp, predictor.New(rand.NewSource(1)))
	watchSvc := service.NewWatchlistService(testTracer, st, fp)
	reviewSvc := service.NewReviewService(testTracer, st)

	h := New(testTracer, authSvc, stockSvc, watchSvc, reviewSvc)
	router := gin.New()
	h.RegisterRoutes(router, nil, 0)

	return &testEnv{router: router, store: st, provider: fp}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// register creates an account and returns its token.
func (e *testEnv) register(t *testing.T, name, email string) string {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     name,
		"email":    email,
		"password": "secret1",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("register failed: %d %s", w.Code, w.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil || resp.Token == "" {
		t.Fatalf("unexpected register response: %s", w.Body.String())
	}
	return resp.Token
}
