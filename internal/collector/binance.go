package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"CoinPilot/internal/model"
)

// BinanceFetcher implements CandleFetcher using the Binance klines API.
type BinanceFetcher struct {
	BaseURL string
	Client  *http.Client
}

// NewBinanceFetcher creates a fetcher with optional proxy support.
func NewBinanceFetcher(proxyURL string) *BinanceFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &BinanceFetcher{
		BaseURL: "https://api.binance.com",
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *BinanceFetcher) Name() string { return "binance" }

// Pair maps a ticker symbol to its Binance USDT spot pair.
func Pair(symbol string) string {
	return strings.ToUpper(symbol) + "USDT"
}

// Candles fetches up to limit klines for the pair at the given interval,
// oldest first. Binance encodes each kline as a mixed-type JSON array with
// prices and volume as strings.
func (f *BinanceFetcher) Candles(ctx context.Context, pair, interval string, limit int) ([]model.OHLCV, error) {
	endpoint := fmt.Sprintf("%s/api/v3/klines?symbol=%s&interval=%s&limit=%d",
		f.BaseURL, url.QueryEscape(pair), url.QueryEscape(interval), limit)

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch klines: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fetch klines: status %d, body: %s", resp.StatusCode, string(body))
	}

	var raw [][]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode klines: %w", err)
	}

	bars := make([]model.OHLCV, 0, len(raw))
	for _, k := range raw {
		if len(k) < 6 {
			return nil, fmt.Errorf("decode klines: short kline of %d fields", len(k))
		}
		openTime, ok := k[0].(float64)
		if !ok {
			return nil, fmt.Errorf("decode klines: unexpected open time %v", k[0])
		}
		o, err := klineField(k[1])
		if err != nil {
			return nil, err
		}
		h, err := klineField(k[2])
		if err != nil {
			return nil, err
		}
		l, err := klineField(k[3])
		if err != nil {
			return nil, err
		}
		c, err := klineField(k[4])
		if err != nil {
			return nil, err
		}
		v, err := klineField(k[5])
		if err != nil {
			return nil, err
		}
		bars = append(bars, model.OHLCV{
			Time:   time.UnixMilli(int64(openTime)),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: v,
		})
	}
	return bars, nil
}

func klineField(v any) (float64, error) {
	s, ok := v.(string)
	if !ok {
		return 0, fmt.Errorf("decode klines: unexpected field %v", v)
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("decode klines: parse %q: %w", s, err)
	}
	return n, nil
}
