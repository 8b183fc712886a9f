package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration wraps time.Duration so YAML values like "15m" parse directly.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Config holds all application configuration.
type Config struct {
	Trading struct {
		StartingCash     float64 `yaml:"starting_cash"`
		BuyThreshold     float64 `yaml:"buy_threshold"`
		StablecoinID     string  `yaml:"stablecoin_id"`
		StablecoinSymbol string  `yaml:"stablecoin_symbol"`
		BreakoutBonus    float64 `yaml:"breakout_bonus"`
		VolumeSpikeBonus float64 `yaml:"volume_spike_bonus"`
		MinCandles       int     `yaml:"min_candles"`
		SpikeMultiplier  float64 `yaml:"spike_multiplier"`
	} `yaml:"trading"`
	Market struct {
		QuoteCurrency  string `yaml:"quote_currency"`
		CandidateLimit int    `yaml:"candidate_limit"`
		CandleInterval string `yaml:"candle_interval"`
		CandleLimit    int    `yaml:"candle_limit"`
		Concurrency    int    `yaml:"concurrency"`
	} `yaml:"market"`
	News struct {
		Sources      []string `yaml:"sources"`
		MaxHeadlines int      `yaml:"max_headlines"`
	} `yaml:"news"`
	OpenAI struct {
		APIKey string `yaml:"api_key"`
		Model  string `yaml:"model"`
	} `yaml:"openai"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Schedule struct {
		CycleSleep  Duration `yaml:"cycle_sleep"`
		SummaryCron string   `yaml:"summary_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	TradeLogPath string `yaml:"trade_log_path"`
	Proxy        string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.OpenAI.APIKey = v
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		cfg.OpenAI.Model = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("STARTING_CASH"); v != "" {
		if cash, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Trading.StartingCash = cash
		}
	}
	if v := os.Getenv("CYCLE_SLEEP"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Schedule.CycleSleep = Duration(d)
		}
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("TRADE_LOG_PATH"); v != "" {
		cfg.TradeLogPath = v
	}

	applyDefaults(cfg)
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Trading.StartingCash == 0 {
		cfg.Trading.StartingCash = 1000
	}
	if cfg.Trading.BuyThreshold == 0 {
		cfg.Trading.BuyThreshold = 0.1
	}
	if cfg.Trading.StablecoinID == "" {
		cfg.Trading.StablecoinID = "tether"
	}
	if cfg.Trading.StablecoinSymbol == "" {
		cfg.Trading.StablecoinSymbol = "USDT"
	}
	if cfg.Trading.BreakoutBonus == 0 {
		cfg.Trading.BreakoutBonus = 0.2
	}
	if cfg.Trading.VolumeSpikeBonus == 0 {
		cfg.Trading.VolumeSpikeBonus = 0.15
	}
	if cfg.Trading.MinCandles == 0 {
		cfg.Trading.MinCandles = 5
	}
	if cfg.Trading.SpikeMultiplier == 0 {
		cfg.Trading.SpikeMultiplier = 2.0
	}
	if cfg.Market.QuoteCurrency == "" {
		cfg.Market.QuoteCurrency = "usd"
	}
	if cfg.Market.CandidateLimit == 0 {
		cfg.Market.CandidateLimit = 10
	}
	if cfg.Market.CandleInterval == "" {
		cfg.Market.CandleInterval = "1h"
	}
	if cfg.Market.CandleLimit == 0 {
		cfg.Market.CandleLimit = 24
	}
	if cfg.Market.Concurrency == 0 {
		cfg.Market.Concurrency = 4
	}
	if len(cfg.News.Sources) == 0 {
		cfg.News.Sources = []string{
			"https://www.coindesk.com",
			"https://cryptoslate.com",
		}
	}
	if cfg.News.MaxHeadlines == 0 {
		cfg.News.MaxHeadlines = 10
	}
	if cfg.OpenAI.Model == "" {
		cfg.OpenAI.Model = "gpt-4o-mini"
	}
	if cfg.Schedule.CycleSleep == 0 {
		cfg.Schedule.CycleSleep = Duration(15 * time.Minute)
	}
	if cfg.Schedule.SummaryCron == "" {
		cfg.Schedule.SummaryCron = "0 0 8 * * *"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/coinpilot.db"
	}
	if cfg.TradeLogPath == "" {
		cfg.TradeLogPath = "data/trade_log.txt"
	}
}

// Validate checks that all required fields are sane.
func (c *Config) Validate() error {
	if c.Trading.StartingCash <= 0 {
		return fmt.Errorf("trading.starting_cash must be positive")
	}
	if c.Trading.SpikeMultiplier <= 0 {
		return fmt.Errorf("trading.spike_multiplier must be positive")
	}
	if c.Trading.MinCandles < 2 {
		return fmt.Errorf("trading.min_candles must be at least 2")
	}
	if c.Market.CandidateLimit <= 0 {
		return fmt.Errorf("market.candidate_limit must be positive")
	}
	if c.Market.Concurrency <= 0 {
		return fmt.Errorf("market.concurrency must be positive")
	}
	if c.Schedule.CycleSleep <= 0 {
		return fmt.Errorf("schedule.cycle_sleep must be positive")
	}
	return nil
}
