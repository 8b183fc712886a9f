package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"CoinPilot/internal/model"
)

// CoinGeckoFetcher implements MarketFetcher using the CoinGecko markets API.
type CoinGeckoFetcher struct {
	BaseURL string
	Quote   string
	Client  *http.Client
}

// NewCoinGeckoFetcher creates a fetcher quoting in the given fiat currency,
// with optional proxy support.
func NewCoinGeckoFetcher(quote, proxyURL string) *CoinGeckoFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &CoinGeckoFetcher{
		BaseURL: "https://api.coingecko.com/api/v3",
		Quote:   quote,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *CoinGeckoFetcher) Name() string { return "coingecko" }

// geckoMarket is the expected JSON shape of one /coins/markets entry.
type geckoMarket struct {
	ID           string  `json:"id"`
	Symbol       string  `json:"symbol"`
	CoinName     string  `json:"name"`
	CurrentPrice float64 `json:"current_price"`
}

// TopAssets returns up to limit assets ordered by descending trading volume.
func (f *CoinGeckoFetcher) TopAssets(ctx context.Context, limit int) ([]model.AssetCandidate, error) {
	endpoint := fmt.Sprintf("%s/coins/markets?vs_currency=%s&order=volume_desc&per_page=%d&page=1",
		f.BaseURL, url.QueryEscape(f.Quote), limit)

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch markets: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("fetch markets: status %d, body: %s", resp.StatusCode, string(body))
	}

	var markets []geckoMarket
	if err := json.NewDecoder(resp.Body).Decode(&markets); err != nil {
		return nil, fmt.Errorf("decode markets: %w", err)
	}

	candidates := make([]model.AssetCandidate, 0, len(markets))
	for i, m := range markets {
		candidates = append(candidates, model.AssetCandidate{
			ID:     m.ID,
			Name:   m.CoinName,
			Symbol: m.Symbol,
			Price:  m.CurrentPrice,
			Rank:   i + 1,
		})
	}
	return candidates, nil
}
