package notifier

import (
	"fmt"
	"strings"
	"time"

	"CoinPilot/internal/model"
)

// FormatCycleReport formats one cycle's outcome into a Telegram message.
// Only cycles that traded get reported; hold cycles would be noise.
func FormatCycleReport(rec *model.CycleRecord) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("🔄 <b>CoinPilot cycle #%d</b> | %s\n\n", rec.Cycle, rec.Time.Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("Winner: %s (score %+.3f)\n", strings.ToUpper(rec.WinnerSymbol), rec.WinnerScore))
	b.WriteString(fmt.Sprintf("Sentiment: %+.2f across %d headlines\n", rec.Sentiment, rec.Samples))
	if rec.Breakout {
		b.WriteString("📈 Breakout above the recent highs\n")
	}
	if rec.VolumeSpike {
		b.WriteString("📊 Volume spike over the recent average\n")
	}
	b.WriteString("\n")

	for _, t := range rec.Trades {
		switch t.Action {
		case model.ActionSell:
			b.WriteString(fmt.Sprintf("💸 Sold %.6f %s @ %.4f → %.2f cash\n",
				t.Amount, strings.ToUpper(t.Symbol), t.Price, t.Proceeds))
		case model.ActionBuy:
			b.WriteString(fmt.Sprintf("🛒 Bought %.6f %s @ %.4f\n",
				t.Amount, strings.ToUpper(t.Symbol), t.Price))
		}
	}

	b.WriteString(fmt.Sprintf("\nPortfolio value: %.2f (P/L %+.2f)\n", rec.PortfolioValue, rec.ProfitLoss))
	return b.String()
}

// FormatPortfolio formats the current portfolio state for display.
func FormatPortfolio(p model.Portfolio, startingCash float64) string {
	var b strings.Builder
	b.WriteString("💼 <b>Portfolio</b>\n\n")
	if p.Holding != nil {
		h := p.Holding
		b.WriteString(fmt.Sprintf("Position: %.6f %s\n", h.Amount, strings.ToUpper(h.Symbol)))
		b.WriteString(fmt.Sprintf("Buy price: %.4f | Current: %.4f\n", h.BuyPrice, h.CurrentPrice))
		if h.BuyPrice > 0 {
			b.WriteString(fmt.Sprintf("Position P/L: %+.1f%%\n", (h.CurrentPrice-h.BuyPrice)/h.BuyPrice*100))
		}
	} else {
		b.WriteString(fmt.Sprintf("No position, cash: %.2f\n", p.Cash))
	}
	value := p.Value()
	b.WriteString(fmt.Sprintf("\nTotal value: %.2f\n", value))
	b.WriteString(fmt.Sprintf("Since start: %+.2f (%+.1f%%)\n", value-startingCash, (value-startingCash)/startingCash*100))
	return b.String()
}

// FormatDailySummary formats the scheduled daily status report.
func FormatDailySummary(p model.Portfolio, startingCash float64, cycles int64) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📅 <b>Daily summary</b> | %s\n\n", time.Now().Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Cycles completed: %d\n\n", cycles))
	b.WriteString(FormatPortfolio(p, startingCash))
	return b.String()
}
