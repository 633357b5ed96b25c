package predictor

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"stockseer/internal/domain"
)

// Predictor generates BUY/SELL/HOLD recommendations from quote snapshots.
// The RSI value is drawn at random, not computed from price history, and
// repeated calls for the same quote may disagree. That randomness is the
// contract; tests inject a seeded source.
type Predictor struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New creates a Predictor drawing from the given source.
func New(src rand.Source) *Predictor {
	return &Predictor{rng: rand.New(src)}
}

// NewDefault creates a Predictor seeded from the wall clock.
func NewDefault() *Predictor {
	return New(rand.NewSource(time.Now().UnixNano()))
}

// Predict maps a quote to a recommendation. First matching rule wins:
// oversold+decline buys, overbought+surge sells, flat holds, anything
// else coin-flips between a cautious buy and a hold.
func (p *Predictor) Predict(quote *domain.Quote) *domain.Prediction {
	p.mu.Lock()
	defer p.mu.Unlock()

	rsi := p.rng.Intn(100)
	changePct := quote.ChangePercent

	var (
		recommendation string
		confidence     int
		reasoning      string
		targetPrice    float64
	)

	switch {
	case rsi < 30 && changePct < -2:
		recommendation = domain.RecommendBuy
		confidence = 75 + p.rng.Intn(15)
		reasoning = fmt.Sprintf(
			"Strong buy signal detected. RSI indicates oversold conditions (%d), presenting a potential entry point. Recent price decline of %.2f%% suggests the stock may be undervalued relative to its fundamentals.",
			rsi, changePct)
		targetPrice = quote.Price * (1 + p.rng.Float64()*0.15 + 0.05)

	case rsi > 70 && changePct > 2:
		recommendation = domain.RecommendSell
		confidence = 70 + p.rng.Intn(15)
		reasoning = fmt.Sprintf(
			"Sell signal identified. RSI shows overbought territory (%d), indicating potential downward correction. The recent surge of %.2f%% may have pushed the stock above sustainable levels.",
			rsi, changePct)
		targetPrice = quote.Price * (1 - p.rng.Float64()*0.10 - 0.03)

	case changePct < 1 && changePct > -1:
		recommendation = domain.RecommendHold
		confidence = 60 + p.rng.Intn(20)
		reasoning = fmt.Sprintf(
			"Neutral market conditions with RSI at %d. The stock shows stable movement with %.2f%% change. Consider maintaining current position while monitoring for clearer trend signals.",
			rsi, changePct)
		targetPrice = quote.Price * (1 + (p.rng.Float64()-0.5)*0.05)

	default:
		confidence = 55 + p.rng.Intn(20)
		if p.rng.Float64() > 0.5 {
			recommendation = domain.RecommendBuy
			reasoning = fmt.Sprintf(
				"Moderate buy opportunity. Technical indicators show potential for growth with RSI at %d. Market sentiment and price action suggest cautious optimism for upward movement.",
				rsi)
			targetPrice = quote.Price * 1.08
		} else {
			recommendation = domain.RecommendHold
			reasoning = fmt.Sprintf(
				"Hold recommended. Mixed signals with RSI at %d and %.2f%% change. Wait for stronger confirmation before increasing position.",
				rsi, changePct)
			targetPrice = quote.Price * 1.02
		}
	}

	return &domain.Prediction{
		Symbol:      quote.Symbol,
		Prediction:  recommendation,
		Confidence:  confidence,
		TargetPrice: targetPrice,
		Reasoning:   reasoning,
		Metrics: domain.PredictionMetrics{
			RSI:   rsi,
			MACD:  macdLabel(recommendation),
			Trend: trendLabel(changePct),
		},
	}
}

// macdLabel derives the qualitative MACD label from the decision itself.
func macdLabel(recommendation string) string {
	switch recommendation {
	case domain.RecommendBuy:
		return "Bullish"
	case domain.RecommendSell:
		return "Bearish"
	default:
		return "Neutral"
	}
}

// trendLabel buckets the day's percent change at the 1% thresholds.
func trendLabel(changePct float64) string {
	switch {
	case changePct > 1:
		return "Upward"
	case changePct < -1:
		return "Downward"
	default:
		return "Sideways"
	}
}
