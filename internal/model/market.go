package model

import "time"

// OHLCV represents a single candlestick bar.
type OHLCV struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// AssetCandidate is one tradable asset as reported by the market listing
// source. Candidates are rebuilt from scratch every cycle.
type AssetCandidate struct {
	ID     string  // listing-source identifier, e.g. "bitcoin"
	Name   string  // display name used for news lookup, e.g. "Bitcoin"
	Symbol string  // ticker, e.g. "BTC"
	Price  float64 // current price in quote currency; must be > 0 to be eligible
	Rank   int     // volume rank from the listing source
}

// ScoredAsset is a candidate enriched with sentiment and technical signals.
// Derived data only, recomputed every cycle and never persisted.
type ScoredAsset struct {
	AssetCandidate
	Sentiment   float64 // mean headline polarity, roughly [-1, 1]
	Samples     int     // headline count behind Sentiment; informational, not weighted
	Breakout    bool
	VolumeSpike bool
	Score       float64 // composite ranking score
}
