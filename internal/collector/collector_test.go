package collector

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CoinPilot/internal/model"
	"CoinPilot/internal/strategy"
)

type stubOracle struct {
	scores  map[string]float64
	samples map[string]int
}

func (o *stubOracle) Score(_ context.Context, name string) (float64, int) {
	return o.scores[name], o.samples[name]
}

func testCollector(market MarketFetcher, candles CandleFetcher, oracle SentimentOracle) *Collector {
	return &Collector{
		Market:          market,
		Candles:         candles,
		Oracle:          oracle,
		CandidateLimit:  10,
		CandleInterval:  "1h",
		CandleLimit:     24,
		MinCandles:      5,
		SpikeMultiplier: 2.0,
		Weights:         strategy.DefaultWeights,
		Concurrency:     4,
	}
}

func TestCollectScored_PreservesListingOrder(t *testing.T) {
	market := &MockMarketFetcher{Assets: []model.AssetCandidate{
		{ID: "bitcoin", Name: "Bitcoin", Symbol: "btc", Price: 50000},
		{ID: "ethereum", Name: "Ethereum", Symbol: "eth", Price: 3000},
		{ID: "solana", Name: "Solana", Symbol: "sol", Price: 150},
	}}
	candles := &MockCandleFetcher{Series: map[string][]model.OHLCV{
		"BTCUSDT": GenerateBars(50000, 1000, 24),
		"ETHUSDT": GenerateBars(3000, 1000, 24),
		"SOLUSDT": GenerateBars(150, 1000, 24),
	}}
	oracle := &stubOracle{
		scores:  map[string]float64{"Bitcoin": 0.5, "Ethereum": -0.2, "Solana": 0.1},
		samples: map[string]int{"Bitcoin": 4, "Ethereum": 2, "Solana": 1},
	}

	scored, err := testCollector(market, candles, oracle).CollectScored(context.Background())
	require.NoError(t, err)
	require.Len(t, scored, 3)

	assert.Equal(t, "bitcoin", scored[0].ID)
	assert.Equal(t, "ethereum", scored[1].ID)
	assert.Equal(t, "solana", scored[2].ID)
	assert.InDelta(t, 0.5, scored[0].Sentiment, 1e-9)
	assert.Equal(t, 4, scored[0].Samples)
}

func TestCollectScored_ScoresIncludeTechnicalBonuses(t *testing.T) {
	bars := GenerateBars(100, 1000, 24)
	// Force both signals on the last candle.
	bars[len(bars)-1].Close = 10000
	bars[len(bars)-1].Volume = 1000000

	market := &MockMarketFetcher{Assets: []model.AssetCandidate{
		{ID: "bitcoin", Name: "Bitcoin", Symbol: "btc", Price: 10000},
	}}
	candles := &MockCandleFetcher{Series: map[string][]model.OHLCV{"BTCUSDT": bars}}
	oracle := &stubOracle{scores: map[string]float64{"Bitcoin": 0.3}}

	scored, err := testCollector(market, candles, oracle).CollectScored(context.Background())
	require.NoError(t, err)
	require.Len(t, scored, 1)

	assert.True(t, scored[0].Breakout)
	assert.True(t, scored[0].VolumeSpike)
	assert.InDelta(t, 0.3+0.2+0.15, scored[0].Score, 1e-9)
}

func TestCollectScored_CandleFailureDegradesOneAsset(t *testing.T) {
	market := &MockMarketFetcher{Assets: []model.AssetCandidate{
		{ID: "bitcoin", Name: "Bitcoin", Symbol: "btc", Price: 50000},
	}}
	candles := &MockCandleFetcher{Err: errors.New("exchange down")}
	oracle := &stubOracle{scores: map[string]float64{"Bitcoin": 0.4}}

	scored, err := testCollector(market, candles, oracle).CollectScored(context.Background())
	require.NoError(t, err, "a candle failure must not abort the cycle")
	require.Len(t, scored, 1)

	assert.False(t, scored[0].Breakout)
	assert.False(t, scored[0].VolumeSpike)
	assert.InDelta(t, 0.4, scored[0].Score, 1e-9, "sentiment still contributes without candles")
}

func TestCollectScored_ListingFailureIsAnError(t *testing.T) {
	market := &MockMarketFetcher{Err: errors.New("rate limited")}
	_, err := testCollector(market, &MockCandleFetcher{}, &stubOracle{}).CollectScored(context.Background())
	require.Error(t, err)
}

func TestCollectScored_EmptyListingIsValid(t *testing.T) {
	scored, err := testCollector(&MockMarketFetcher{}, &MockCandleFetcher{}, &stubOracle{}).CollectScored(context.Background())
	require.NoError(t, err)
	assert.Empty(t, scored)
}

func TestPair(t *testing.T) {
	assert.Equal(t, "BTCUSDT", Pair("btc"))
	assert.Equal(t, "ETHUSDT", Pair("ETH"))
}
