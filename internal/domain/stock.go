package domain

// Quote is a point-in-time price/volume snapshot for a ticker symbol.
// Quotes are fetched fresh from the upstream provider on every request
// and never persisted.
type Quote struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
	Open          float64 `json:"open"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Volume        int64   `json:"volume"`
	PreviousClose float64 `json:"previousClose"`
}

// ChartPoint is a single point of a price series, oldest first.
type ChartPoint struct {
	Date  string  `json:"date"`
	Price float64 `json:"price"`
}

// WatchlistItem is a watched symbol hydrated with its live quote.
type WatchlistItem struct {
	Quote
	AddedAt string `json:"addedAt"`
}

// Recommendation labels produced by the prediction heuristic.
const (
	RecommendBuy  = "BUY"
	RecommendSell = "SELL"
	RecommendHold = "HOLD"
)

// PredictionMetrics carries the cosmetic indicator labels attached to a
// prediction. None of them are computed from real historical series.
type PredictionMetrics struct {
	RSI   int    `json:"rsi"`
	MACD  string `json:"macd"`
	Trend string `json:"trend"`
}

// Prediction is a generated BUY/SELL/HOLD recommendation for a symbol.
type Prediction struct {
	Symbol      string            `json:"symbol"`
	Prediction  string            `json:"prediction"`
	Confidence  int               `json:"confidence"`
	TargetPrice float64           `json:"targetPrice"`
	Reasoning   string            `json:"reasoning"`
	Metrics     PredictionMetrics `json:"metrics"`
}

// ChartRanges lists the supported chart range identifiers.
var ChartRanges = []string{"1D", "1W", "1M", "3M", "1Y", "ALL"}

// ChartRangeLimit maps a range to the number of most-recent points kept.
// Zero means no limit (full available history).
var ChartRangeLimit = map[string]int{
	"1D":  50,
	"1W":  7,
	"1M":  30,
	"3M":  90,
	"1Y":  252,
	"ALL": 0,
}

// ValidChartRange reports whether the given range identifier is supported.
func ValidChartRange(rng string) bool {
	_, ok := ChartRangeLimit[rng]
	return ok
}
