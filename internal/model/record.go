package model

import "time"

// CycleOutcome classifies what a cycle did to the portfolio.
type CycleOutcome string

const (
	OutcomeBuy     CycleOutcome = "BUY"
	OutcomeRotate  CycleOutcome = "ROTATE"
	OutcomeHold    CycleOutcome = "HOLD"
	OutcomeNoCoins CycleOutcome = "NO_VALID_COINS"
)

// CycleRecord is the append-only audit record of one evaluation cycle.
type CycleRecord struct {
	Cycle          int64
	Time           time.Time
	Outcome        CycleOutcome
	WinnerID       string
	WinnerSymbol   string
	WinnerScore    float64
	Sentiment      float64
	Samples        int
	Breakout       bool
	VolumeSpike    bool
	PortfolioValue float64
	Cash           float64
	ProfitLoss     float64
	Trades         []Trade
}
