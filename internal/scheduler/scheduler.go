package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"CoinPilot/internal/collector"
	"CoinPilot/internal/model"
	"CoinPilot/internal/notifier"
	"CoinPilot/internal/portfolio"
	"CoinPilot/internal/recorder"
	"CoinPilot/internal/strategy"
)

// Options are the loop's tunables.
type Options struct {
	BuyThreshold     float64
	StablecoinID     string
	StablecoinSymbol string
	StartingCash     float64
	CycleSleep       time.Duration
}

// Scheduler drives the evaluation loop: fetch candidates, score them,
// advance the portfolio state machine, report, sleep. Cycles never overlap;
// the sleep interval is a hard gate measured from the end of one cycle to
// the start of the next.
type Scheduler struct {
	Collector *collector.Collector
	Portfolio *portfolio.Manager
	Notifier  *notifier.TelegramNotifier
	Recorder  recorder.Recorder
	Cron      *cron.Cron
	Opts      Options

	cycles atomic.Int64

	mu   sync.Mutex
	last *model.CycleRecord
}

// NewScheduler creates a Scheduler.
func NewScheduler(col *collector.Collector, pm *portfolio.Manager, tn *notifier.TelegramNotifier, rec recorder.Recorder, opts Options) *Scheduler {
	return &Scheduler{
		Collector: col,
		Portfolio: pm,
		Notifier:  tn,
		Recorder:  rec,
		Cron:      cron.New(cron.WithSeconds()),
		Opts:      opts,
	}
}

// RegisterSummary registers the daily summary cron task and starts the cron
// runner.
func (s *Scheduler) RegisterSummary(cronSpec string) error {
	if _, err := s.Cron.AddFunc(cronSpec, s.dailySummary); err != nil {
		return fmt.Errorf("register summary task: %w", err)
	}
	s.Cron.Start()
	return nil
}

// Run executes evaluation cycles until ctx is cancelled. The first cycle
// runs immediately; each later cycle starts one full sleep interval after
// the previous one finished.
func (s *Scheduler) Run(ctx context.Context) {
	log.Printf("[INFO] evaluation loop started, interval %v", s.Opts.CycleSleep)
	for {
		s.runCycle(ctx)
		select {
		case <-ctx.Done():
			log.Println("[INFO] evaluation loop stopped")
			s.Cron.Stop()
			return
		case <-time.After(s.Opts.CycleSleep):
		}
	}
}

func (s *Scheduler) runCycle(ctx context.Context) {
	n := s.cycles.Add(1)

	scored, err := s.Collector.CollectScored(ctx)
	if err != nil {
		log.Printf("[ERROR] cycle %d: collect candidates: %v", n, err)
		s.recordNeutral(n)
		return
	}

	valid := scored[:0:0]
	for _, a := range scored {
		if a.Price > 0 {
			valid = append(valid, a)
		}
	}
	if len(valid) == 0 {
		log.Printf("[INFO] cycle %d: no valid coins, portfolio unchanged", n)
		s.recordNeutral(n)
		return
	}

	winner, _ := strategy.SelectWinner(valid)
	winner = strategy.ApplyThresholdFallback(winner, valid, s.Opts.BuyThreshold, s.Opts.StablecoinID, s.Opts.StablecoinSymbol)

	trades := s.Portfolio.Advance(winner)
	outcome := classifyOutcome(trades)

	snap := s.Portfolio.Snapshot()
	value := snap.Value()
	rec := &model.CycleRecord{
		Cycle:          n,
		Time:           time.Now(),
		Outcome:        outcome,
		WinnerID:       winner.ID,
		WinnerSymbol:   winner.Symbol,
		WinnerScore:    winner.Score,
		Sentiment:      winner.Sentiment,
		Samples:        winner.Samples,
		Breakout:       winner.Breakout,
		VolumeSpike:    winner.VolumeSpike,
		PortfolioValue: value,
		Cash:           snap.Cash,
		ProfitLoss:     value - s.Opts.StartingCash,
		Trades:         trades,
	}
	s.finishCycle(rec)

	log.Printf("[INFO] cycle %d: %s %s (score %+.3f) | value %.2f | P/L %+.2f",
		n, outcome, strings.ToUpper(winner.Symbol), winner.Score, value, rec.ProfitLoss)

	if outcome == model.OutcomeBuy || outcome == model.OutcomeRotate {
		if err := s.Notifier.SendWithRetry(ctx, notifier.FormatCycleReport(rec), 3); err != nil {
			log.Printf("[ERROR] send cycle report: %v", err)
		}
	}
}

// recordNeutral emits the audit line for a cycle that left the portfolio
// completely untouched.
func (s *Scheduler) recordNeutral(n int64) {
	snap := s.Portfolio.Snapshot()
	value := snap.Value()
	s.finishCycle(&model.CycleRecord{
		Cycle:          n,
		Time:           time.Now(),
		Outcome:        model.OutcomeNoCoins,
		PortfolioValue: value,
		Cash:           snap.Cash,
		ProfitLoss:     value - s.Opts.StartingCash,
	})
}

func (s *Scheduler) finishCycle(rec *model.CycleRecord) {
	s.mu.Lock()
	s.last = rec
	s.mu.Unlock()

	if err := s.Recorder.RecordCycle(rec); err != nil {
		log.Printf("[ERROR] record cycle %d: %v", rec.Cycle, err)
	}
}

func classifyOutcome(trades []model.Trade) model.CycleOutcome {
	var sold, bought bool
	for _, t := range trades {
		switch t.Action {
		case model.ActionSell:
			sold = true
		case model.ActionBuy:
			bought = true
		}
	}
	switch {
	case sold && bought:
		return model.OutcomeRotate
	case bought:
		return model.OutcomeBuy
	default:
		return model.OutcomeHold
	}
}

func (s *Scheduler) dailySummary() {
	log.Println("[INFO] sending daily summary")
	msg := notifier.FormatDailySummary(s.Portfolio.Snapshot(), s.Opts.StartingCash, s.cycles.Load())
	if err := s.Notifier.Send(msg); err != nil {
		log.Printf("[ERROR] send daily summary: %v", err)
	}
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/portfolio":
		return notifier.FormatPortfolio(s.Portfolio.Snapshot(), s.Opts.StartingCash)
	case "/status":
		s.mu.Lock()
		last := s.last
		s.mu.Unlock()
		if last == nil {
			return "No cycle has completed yet."
		}
		return notifier.FormatCycleReport(last)
	case "/cycle":
		return fmt.Sprintf("Cycles completed: %d", s.cycles.Load())
	default:
		return "Available commands:\n• /portfolio\n• /status\n• /cycle"
	}
}
