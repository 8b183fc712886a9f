package collector

import (
	"context"

	"CoinPilot/internal/model"
)

// MarketFetcher lists venue-supported assets ranked by trading volume.
// An empty list is a valid response.
type MarketFetcher interface {
	TopAssets(ctx context.Context, limit int) ([]model.AssetCandidate, error)
	Name() string
}

// CandleFetcher returns an ascending OHLCV series for an exchange pair.
// Empty or short series are valid responses.
type CandleFetcher interface {
	Candles(ctx context.Context, pair, interval string, limit int) ([]model.OHLCV, error)
	Name() string
}

// SentimentOracle reduces an asset's news coverage to a polarity and sample
// count. Implementations degrade failures to (0, 0) instead of erroring.
type SentimentOracle interface {
	Score(ctx context.Context, assetName string) (polarity float64, samples int)
}
