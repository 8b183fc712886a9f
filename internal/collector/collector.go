package collector

import (
	"context"
	"fmt"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"CoinPilot/internal/calculator"
	"CoinPilot/internal/model"
	"CoinPilot/internal/strategy"
)

// Collector orchestrates per-cycle data gathering: it lists candidate assets
// and enriches each one with sentiment, candle signals, and a composite
// score. Enrichments run concurrently up to a limit, but CollectScored
// returns only once every asset has joined, so callers always observe a
// fully-materialized snapshot.
type Collector struct {
	Market  MarketFetcher
	Candles CandleFetcher
	Oracle  SentimentOracle

	CandidateLimit  int
	CandleInterval  string
	CandleLimit     int
	MinCandles      int
	SpikeMultiplier float64
	Weights         strategy.Weights
	Concurrency     int
}

// CollectScored fetches and scores the cycle's candidate set, preserving the
// listing order. A single asset's enrichment failure degrades that asset to
// neutral signals; only a failed candidate listing is an error.
func (c *Collector) CollectScored(ctx context.Context) ([]model.ScoredAsset, error) {
	candidates, err := c.Market.TopAssets(ctx, c.CandidateLimit)
	if err != nil {
		return nil, fmt.Errorf("fetch candidates: %w", err)
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	scored := make([]model.ScoredAsset, len(candidates))
	g := new(errgroup.Group)
	g.SetLimit(c.Concurrency)
	for i, cand := range candidates {
		i, cand := i, cand
		g.Go(func() error {
			scored[i] = c.enrich(ctx, cand)
			return nil
		})
	}
	_ = g.Wait() // enrich never errors; the join is the synchronization barrier

	return scored, nil
}

func (c *Collector) enrich(ctx context.Context, cand model.AssetCandidate) model.ScoredAsset {
	sa := model.ScoredAsset{AssetCandidate: cand}
	sa.Sentiment, sa.Samples = c.Oracle.Score(ctx, cand.Name)

	bars, err := c.Candles.Candles(ctx, Pair(cand.Symbol), c.CandleInterval, c.CandleLimit)
	if err != nil {
		log.Printf("[WARN] candle fetch for %s failed: %v, skipping technical signals", cand.Symbol, err)
	} else {
		sa.Breakout, sa.VolumeSpike = calculator.DetectSignals(bars, c.MinCandles, c.SpikeMultiplier)
	}

	sa.Score = strategy.Score(sa.Sentiment, sa.Breakout, sa.VolumeSpike, c.Weights)
	return sa
}

// MockMarketFetcher returns fixed candidates for development and testing.
type MockMarketFetcher struct {
	Assets []model.AssetCandidate
	Err    error
}

func (m *MockMarketFetcher) Name() string { return "mock-market" }

func (m *MockMarketFetcher) TopAssets(_ context.Context, limit int) ([]model.AssetCandidate, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if len(m.Assets) > limit {
		return m.Assets[:limit], nil
	}
	return m.Assets, nil
}

// MockCandleFetcher returns fixed candle series keyed by pair.
type MockCandleFetcher struct {
	Series map[string][]model.OHLCV
	Err    error
}

func (m *MockCandleFetcher) Name() string { return "mock-candles" }

func (m *MockCandleFetcher) Candles(_ context.Context, pair, _ string, _ int) ([]model.OHLCV, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Series[pair], nil
}

// GenerateBars builds a flat candle series for tests and dry runs.
func GenerateBars(basePrice, volume float64, count int) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   time.Now().Add(-time.Duration(count-i) * time.Hour),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: volume,
		}
	}
	return bars
}
