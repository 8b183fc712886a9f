package sentiment

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// NewsSource scrapes headline elements from configured news pages. A page
// that fails to load or parse is logged and skipped; the remaining sources
// still contribute.
type NewsSource struct {
	Sources      []string
	MaxHeadlines int
	Client       *http.Client
}

// NewNewsSource creates a scraper with optional proxy support.
func NewNewsSource(sources []string, maxHeadlines int, proxyURL string) *NewsSource {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &NewsSource{
		Sources:      sources,
		MaxHeadlines: maxHeadlines,
		Client: &http.Client{
			Timeout:   10 * time.Second,
			Transport: transport,
		},
	}
}

func (n *NewsSource) Name() string { return "news-scrape" }

// Headlines returns up to MaxHeadlines h2/h3 texts mentioning the asset name,
// scanned across all configured sources.
func (n *NewsSource) Headlines(ctx context.Context, assetName string) ([]string, error) {
	needle := strings.ToLower(assetName)
	var headlines []string
	for _, src := range n.Sources {
		found, err := n.scrapeSource(ctx, src, needle)
		if err != nil {
			log.Printf("[WARN] scrape %s: %v", src, err)
			continue
		}
		headlines = append(headlines, found...)
		if len(headlines) >= n.MaxHeadlines {
			return headlines[:n.MaxHeadlines], nil
		}
	}
	return headlines, nil
}

func (n *NewsSource) scrapeSource(ctx context.Context, src, needle string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", src, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := n.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch page: status %d", resp.StatusCode)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var headlines []string
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.ElementNode && (node.Data == "h2" || node.Data == "h3") {
			text := strings.TrimSpace(nodeText(node))
			if text != "" && strings.Contains(strings.ToLower(text), needle) {
				headlines = append(headlines, text)
			}
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return headlines, nil
}

func nodeText(node *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(node)
	return b.String()
}
