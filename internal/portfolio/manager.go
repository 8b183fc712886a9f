package portfolio

import (
	"sync"

	"CoinPilot/internal/model"
)

// Manager owns the single-position portfolio and executes the per-cycle
// refresh / sell / buy transition with concurrency safety. The portfolio
// lives only in memory; cycle outcomes are persisted externally.
type Manager struct {
	mu sync.Mutex
	p  model.Portfolio
}

// NewManager creates a Manager starting with the given cash and no holding.
func NewManager(startingCash float64) *Manager {
	return &Manager{p: model.Portfolio{Cash: startingCash}}
}

// Snapshot returns a copy of the current portfolio, safe to read without
// racing the state machine.
func (m *Manager) Snapshot() model.Portfolio {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap := m.p
	if m.p.Holding != nil {
		h := *m.p.Holding
		snap.Holding = &h
	}
	return snap
}

// Value returns the current total notional value.
func (m *Manager) Value() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.p.Value()
}

// Advance runs one state-machine transition against the cycle's chosen
// winner and returns the executed trades, in order.
//
//   - Already holding the winner: mark the position to the latest price,
//     no trade.
//   - Holding a different asset: liquidate at the marked price, then deploy
//     all cash into the winner. Rotation and first purchase share the same
//     buy path.
//
// No fees, slippage, or partial fills: prices are treated as instantaneously
// achievable. That is a deliberate simplification of the simulation, not a
// gap to close.
func (m *Manager) Advance(winner model.ScoredAsset) []model.Trade {
	m.mu.Lock()
	defer m.mu.Unlock()

	var trades []model.Trade

	if h := m.p.Holding; h != nil {
		if h.AssetID == winner.ID {
			h.CurrentPrice = winner.Price
			return []model.Trade{{
				Action:  model.ActionRefresh,
				AssetID: h.AssetID,
				Symbol:  h.Symbol,
				Amount:  h.Amount,
				Price:   winner.Price,
			}}
		}
		proceeds := h.Amount * h.CurrentPrice
		trades = append(trades, model.Trade{
			Action:   model.ActionSell,
			AssetID:  h.AssetID,
			Symbol:   h.Symbol,
			Amount:   h.Amount,
			Price:    h.CurrentPrice,
			Proceeds: proceeds,
		})
		m.p.Cash = proceeds
		m.p.Holding = nil
	}

	if m.p.Cash > 0 && winner.Price > 0 {
		amount := m.p.Cash / winner.Price
		m.p.Holding = &model.Holding{
			AssetID:      winner.ID,
			Symbol:       winner.Symbol,
			Amount:       amount,
			BuyPrice:     winner.Price,
			CurrentPrice: winner.Price,
		}
		m.p.Cash = 0
		trades = append(trades, model.Trade{
			Action:  model.ActionBuy,
			AssetID: winner.ID,
			Symbol:  winner.Symbol,
			Amount:  amount,
			Price:   winner.Price,
		})
	}

	return trades
}
