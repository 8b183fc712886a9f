package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"CoinPilot/internal/collector"
	"CoinPilot/internal/config"
	"CoinPilot/internal/notifier"
	"CoinPilot/internal/portfolio"
	"CoinPilot/internal/recorder"
	"CoinPilot/internal/scheduler"
	"CoinPilot/internal/sentiment"
	"CoinPilot/internal/strategy"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] CoinPilot starting...")

	if err := godotenv.Load(); err == nil {
		log.Println("[INFO] loaded .env")
	}

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init sentiment oracle
	var scorer sentiment.Scorer
	if cfg.OpenAI.APIKey != "" {
		scorer = sentiment.NewOpenAIScorer(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	} else {
		log.Println("[WARN] no OpenAI API key configured, sentiment will stay neutral")
		scorer = sentiment.NoopScorer{}
	}
	source := sentiment.NewNewsSource(cfg.News.Sources, cfg.News.MaxHeadlines, cfg.Proxy)
	oracle := sentiment.NewOracle(source, scorer)
	log.Printf("[INFO] sentiment: %s via %s", source.Name(), scorer.Name())

	// Init collector
	market := collector.NewCoinGeckoFetcher(cfg.Market.QuoteCurrency, cfg.Proxy)
	candles := collector.NewBinanceFetcher(cfg.Proxy)
	log.Printf("[INFO] market data: %s + %s", market.Name(), candles.Name())
	col := &collector.Collector{
		Market:          market,
		Candles:         candles,
		Oracle:          oracle,
		CandidateLimit:  cfg.Market.CandidateLimit,
		CandleInterval:  cfg.Market.CandleInterval,
		CandleLimit:     cfg.Market.CandleLimit,
		MinCandles:      cfg.Trading.MinCandles,
		SpikeMultiplier: cfg.Trading.SpikeMultiplier,
		Weights: strategy.Weights{
			BreakoutBonus:    cfg.Trading.BreakoutBonus,
			VolumeSpikeBonus: cfg.Trading.VolumeSpikeBonus,
		},
		Concurrency: cfg.Market.Concurrency,
	}

	// Init portfolio
	pm := portfolio.NewManager(cfg.Trading.StartingCash)

	// Init recorders: append-only trade log plus optional SQLite history
	sinks := []recorder.Recorder{}
	if lr, err := recorder.NewLogFileRecorder(cfg.TradeLogPath); err != nil {
		log.Printf("[WARN] init trade log failed: %v", err)
	} else {
		sinks = append(sinks, lr)
	}
	if cfg.Database.SQLitePath != "" {
		if sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath); err != nil {
			log.Printf("[WARN] init sqlite recorder failed: %v", err)
		} else {
			sinks = append(sinks, sr)
		}
	}
	var rec recorder.Recorder
	if len(sinks) == 0 {
		rec = recorder.NewNoopRecorder()
	} else {
		rec = recorder.NewMulti(sinks...)
	}
	defer rec.Close()

	// Init Telegram notifier
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
	if !tn.Enabled() {
		log.Println("[INFO] Telegram not configured, notifications disabled")
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := scheduler.NewScheduler(col, pm, tn, rec, scheduler.Options{
		BuyThreshold:     cfg.Trading.BuyThreshold,
		StablecoinID:     cfg.Trading.StablecoinID,
		StablecoinSymbol: cfg.Trading.StablecoinSymbol,
		StartingCash:     cfg.Trading.StartingCash,
		CycleSleep:       time.Duration(cfg.Schedule.CycleSleep),
	})
	if err := sched.RegisterSummary(cfg.Schedule.SummaryCron); err != nil {
		log.Fatalf("[FATAL] register summary task: %v", err)
	}

	go tn.StartPolling(ctx, sched.HandleCommand)

	// Cancel on shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("[INFO] shutdown signal received, stopping...")
		cancel()
	}()

	log.Println("[INFO] CoinPilot is running. Press Ctrl+C to stop.")
	sched.Run(ctx)
	log.Println("[INFO] CoinPilot stopped")
}
