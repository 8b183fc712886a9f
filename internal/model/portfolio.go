package model

// Holding is the single open position a portfolio may carry.
type Holding struct {
	AssetID      string
	Symbol       string
	Amount       float64
	BuyPrice     float64
	CurrentPrice float64 // refreshed in place each cycle while held
}

// Portfolio holds one cash balance and at most one open position.
// Invariant: Cash > 0 implies Holding == nil and vice versa, except
// transiently inside a same-cycle sell-then-buy rotation.
type Portfolio struct {
	Cash    float64
	Holding *Holding
}

// Value returns the total notional value: cash plus the marked position.
func (p *Portfolio) Value() float64 {
	v := p.Cash
	if p.Holding != nil {
		v += p.Holding.Amount * p.Holding.CurrentPrice
	}
	return v
}

// TradeAction labels a portfolio transition.
type TradeAction string

const (
	ActionBuy     TradeAction = "BUY"
	ActionSell    TradeAction = "SELL"
	ActionRefresh TradeAction = "REFRESH"
)

// Trade records one executed portfolio transition within a cycle.
type Trade struct {
	Action   TradeAction
	AssetID  string
	Symbol   string
	Amount   float64
	Price    float64
	Proceeds float64 // cash released by a sell, zero otherwise
}
