package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"stockseer/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

const alphaVantageBaseURL = "https://www.alphavantage.co/query"

var (
	// ErrSymbolNotFound means the provider reported an error or returned
	// no price for the requested symbol. Rate-limit markers surface the
	// same way; the upstream does not distinguish them reliably.
	ErrSymbolNotFound = errors.New("stock symbol not found or API limit reached")
	// ErrChartUnavailable means the provider could not serve series data.
	ErrChartUnavailable = errors.New("failed to fetch chart data")
	// ErrInvalidRange means the requested chart range is not supported.
	ErrInvalidRange = errors.New("unsupported chart range")
)

// AlphaVantageProvider fetches quotes and time-series data from the
// Alpha Vantage HTTP API. All numeric fields arrive string-encoded.
type AlphaVantageProvider struct {
	client  *http.Client
	baseURL string
	apiKey  string
	tracer  trace.Tracer
	limiter *RateLimiter
}

// NewAlphaVantageProvider creates a provider with built-in rate limiting.
// The free tier allows 5 requests per minute (one token every 12 seconds).
func NewAlphaVantageProvider(apiKey string, tracer trace.Tracer) *AlphaVantageProvider {
	return &AlphaVantageProvider{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: alphaVantageBaseURL,
		apiKey:  apiKey,
		tracer:  tracer,
		limiter: NewRateLimiter(5, 12*time.Second),
	}
}

// FetchQuote fetches the current GLOBAL_QUOTE snapshot for a symbol.
func (p *AlphaVantageProvider) FetchQuote(ctx context.Context, symbol string) (*domain.Quote, error) {
	ctx, span := p.tracer.Start(ctx, "alphavantage.fetch-quote")
	defer span.End()

	body, err := p.doRequest(ctx, p.queryURL(url.Values{
		"function": {"GLOBAL_QUOTE"},
		"symbol":   {symbol},
		"apikey":   {p.apiKey},
	}))
	if err != nil {
		return nil, fmt.Errorf("fetch quote for %s: %w", symbol, err)
	}

	var raw struct {
		ErrorMessage string            `json:"Error Message"`
		Note         string            `json:"Note"`
		GlobalQuote  map[string]string `json:"Global Quote"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("parse quote for %s: %w", symbol, err)
	}

	if raw.ErrorMessage != "" || raw.Note != "" {
		return nil, ErrSymbolNotFound
	}
	q := raw.GlobalQuote
	if q == nil || q["05. price"] == "" {
		return nil, ErrSymbolNotFound
	}

	volume, _ := strconv.ParseInt(q["06. volume"], 10, 64)
	quote := &domain.Quote{
		Symbol:        q["01. symbol"],
		Name:          symbol,
		Price:         parseFloat(q["05. price"]),
		Change:        parseFloat(q["09. change"]),
		ChangePercent: parseFloat(strings.TrimSuffix(q["10. change percent"], "%")),
		Open:          parseFloat(q["02. open"]),
		High:          parseFloat(q["03. high"]),
		Low:           parseFloat(q["04. low"]),
		Volume:        volume,
		PreviousClose: parseFloat(q["08. previous close"]),
	}
	return quote, nil
}

// FetchChartSeries fetches a price series for a symbol. Range "1D" uses the
// 5-minute intraday series, everything else the daily series. The result
// keeps at most the range's window of most-recent points, oldest first.
func (p *AlphaVantageProvider) FetchChartSeries(ctx context.Context, symbol, rng string) ([]domain.ChartPoint, error) {
	ctx, span := p.tracer.Start(ctx, "alphavantage.fetch-chart-series")
	defer span.End()

	if !domain.ValidChartRange(rng) {
		return nil, ErrInvalidRange
	}

	params := url.Values{
		"function": {"TIME_SERIES_DAILY"},
		"symbol":   {symbol},
		"apikey":   {p.apiKey},
	}
	if rng == "1D" {
		params.Set("function", "TIME_SERIES_INTRADAY")
		params.Set("interval", "5min")
	}

	body, err := p.doRequest(ctx, p.queryURL(params))
	if err != nil {
		return nil, fmt.Errorf("fetch chart for %s: %w", symbol, err)
	}

	var raw struct {
		ErrorMessage string                       `json:"Error Message"`
		Note         string                       `json:"Note"`
		Intraday     map[string]map[string]string `json:"Time Series (5min)"`
		Daily        map[string]map[string]string `json:"Time Series (Daily)"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("parse chart for %s: %w", symbol, err)
	}

	if raw.ErrorMessage != "" || raw.Note != "" {
		return nil, ErrChartUnavailable
	}

	series := raw.Daily
	if rng == "1D" {
		series = raw.Intraday
	}
	if len(series) == 0 {
		return []domain.ChartPoint{}, nil
	}

	// Timestamps sort lexicographically; newest last.
	dates := make([]string, 0, len(series))
	for date := range series {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	if limit := domain.ChartRangeLimit[rng]; limit > 0 && len(dates) > limit {
		dates = dates[len(dates)-limit:]
	}

	points := make([]domain.ChartPoint, 0, len(dates))
	for _, date := range dates {
		label := date
		if rng == "1D" {
			// Intraday timestamps are "2006-01-02 15:04:05"; keep the time.
			if idx := strings.IndexByte(date, ' '); idx >= 0 {
				label = date[idx+1:]
			}
		}
		points = append(points, domain.ChartPoint{
			Date:  label,
			Price: parseFloat(series[date]["4. close"]),
		})
	}
	return points, nil
}

// queryURL escapes all parameters so symbols cannot smuggle extra query
// parameters into the upstream request.
func (p *AlphaVantageProvider) queryURL(params url.Values) string {
	return p.baseURL + "?" + params.Encode()
}

func (p *AlphaVantageProvider) doRequest(ctx context.Context, reqURL string) ([]byte, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("alphavantage API error %d: %s", resp.StatusCode, string(body))
	}

	return io.ReadAll(resp.Body)
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}
