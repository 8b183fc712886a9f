package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CoinPilot/internal/model"
)

func scoredAsset(id, symbol string, price, score float64) model.ScoredAsset {
	return model.ScoredAsset{
		AssetCandidate: model.AssetCandidate{ID: id, Symbol: symbol, Price: price},
		Score:          score,
	}
}

func assertInvariant(t *testing.T, p model.Portfolio) {
	t.Helper()
	if p.Cash > 0 {
		assert.Nil(t, p.Holding, "cash and holding must be mutually exclusive")
	}
	if p.Holding != nil {
		assert.Zero(t, p.Cash, "a deployed portfolio must carry no cash")
	}
}

func TestAdvance_FirstBuy(t *testing.T) {
	m := NewManager(100)
	trades := m.Advance(scoredAsset("asset-a", "AAA", 10, 0.5))

	require.Len(t, trades, 1)
	assert.Equal(t, model.ActionBuy, trades[0].Action)
	assert.InDelta(t, 10.0, trades[0].Amount, 1e-9)

	snap := m.Snapshot()
	require.NotNil(t, snap.Holding)
	assert.Equal(t, "asset-a", snap.Holding.AssetID)
	assert.InDelta(t, 10.0, snap.Holding.Amount, 1e-9)
	assert.InDelta(t, 10.0, snap.Holding.BuyPrice, 1e-9)
	assert.Zero(t, snap.Cash)
	assertInvariant(t, snap)
}

func TestAdvance_HoldRefreshesPrice(t *testing.T) {
	m := NewManager(100)
	m.Advance(scoredAsset("asset-a", "AAA", 10, 0.5))

	trades := m.Advance(scoredAsset("asset-a", "AAA", 12, 0.6))
	require.Len(t, trades, 1)
	assert.Equal(t, model.ActionRefresh, trades[0].Action)

	snap := m.Snapshot()
	require.NotNil(t, snap.Holding)
	assert.InDelta(t, 12.0, snap.Holding.CurrentPrice, 1e-9)
	assert.InDelta(t, 10.0, snap.Holding.Amount, 1e-9, "amount must not change on a hold")
	assert.InDelta(t, 10.0, snap.Holding.BuyPrice, 1e-9)
	assert.InDelta(t, 120.0, m.Value(), 1e-9)
	assertInvariant(t, snap)
}

func TestAdvance_RotationSellsThenBuys(t *testing.T) {
	m := NewManager(100)
	m.Advance(scoredAsset("asset-a", "AAA", 10, 0.5))
	m.Advance(scoredAsset("asset-a", "AAA", 12, 0.6))

	trades := m.Advance(scoredAsset("asset-b", "BBB", 4, 0.8))
	require.Len(t, trades, 2)
	assert.Equal(t, model.ActionSell, trades[0].Action)
	assert.Equal(t, "asset-a", trades[0].AssetID)
	assert.InDelta(t, 120.0, trades[0].Proceeds, 1e-9, "sell must realize amount x marked price")
	assert.Equal(t, model.ActionBuy, trades[1].Action)
	assert.Equal(t, "asset-b", trades[1].AssetID)

	snap := m.Snapshot()
	require.NotNil(t, snap.Holding)
	assert.Equal(t, "asset-b", snap.Holding.AssetID)
	assert.InDelta(t, 30.0, snap.Holding.Amount, 1e-9)
	assert.InDelta(t, 4.0, snap.Holding.BuyPrice, 1e-9)
	assert.Zero(t, snap.Cash)
	assertInvariant(t, snap)
}

func TestAdvance_RotationIntoStablecoin(t *testing.T) {
	m := NewManager(100)
	m.Advance(scoredAsset("asset-a", "AAA", 10, 0.5))

	trades := m.Advance(scoredAsset("tether", "USDT", 1.0, 0.0))
	require.Len(t, trades, 2)

	snap := m.Snapshot()
	require.NotNil(t, snap.Holding)
	assert.Equal(t, "tether", snap.Holding.AssetID)
	assert.InDelta(t, 100.0, snap.Holding.Amount, 1e-9, "all proceeds go into the stablecoin at price 1.0")
	assertInvariant(t, snap)
}

func TestAdvance_NoPhantomValue(t *testing.T) {
	m := NewManager(250)
	before := m.Value()

	m.Advance(scoredAsset("asset-a", "AAA", 25, 0.9))
	assert.InDelta(t, before, m.Value(), 1e-9, "a buy must not change total value")

	m.Advance(scoredAsset("asset-b", "BBB", 5, 1.1))
	assert.InDelta(t, before, m.Value(), 1e-9, "a same-price rotation must not change total value")

	m.Advance(scoredAsset("asset-b", "BBB", 10, 1.1))
	assert.InDelta(t, 2*before, m.Value(), 1e-9, "value moves only with the held asset's price")
}

func TestSnapshot_IsACopy(t *testing.T) {
	m := NewManager(100)
	m.Advance(scoredAsset("asset-a", "AAA", 10, 0.5))

	snap := m.Snapshot()
	snap.Holding.CurrentPrice = 999

	assert.InDelta(t, 10.0, m.Snapshot().Holding.CurrentPrice, 1e-9, "mutating a snapshot must not affect the manager")
}

func TestAdvance_InvariantAcrossManyCycles(t *testing.T) {
	m := NewManager(100)
	winners := []model.ScoredAsset{
		scoredAsset("a", "AAA", 10, 0.5),
		scoredAsset("a", "AAA", 11, 0.5),
		scoredAsset("b", "BBB", 2, 0.7),
		scoredAsset("tether", "USDT", 1, 0.0),
		scoredAsset("c", "CCC", 40, 0.9),
		scoredAsset("c", "CCC", 35, 0.9),
	}
	for _, w := range winners {
		m.Advance(w)
		assertInvariant(t, m.Snapshot())
	}
}
