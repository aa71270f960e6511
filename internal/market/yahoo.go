package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"market-pulse/internal/trace"
	"market-pulse/internal/types"
)

// YahooClient fetches quotes and news from the Yahoo Finance public API.
type YahooClient struct {
	baseURL    string
	httpClient *http.Client
	limiter    *RateLimiter
	headers    map[string]string
}

// NewYahooClient creates a new Yahoo Finance client
func NewYahooClient() *YahooClient {
	return &YahooClient{
		baseURL: "https://query1.finance.yahoo.com",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		// ~2 requests/second keeps us well under Yahoo's throttling
		limiter: NewRateLimiter(4, 500*time.Millisecond),
		headers: map[string]string{
			"User-Agent": "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
			"Accept":     "application/json",
		},
	}
}

// NewYahooClientWithBase creates a client against a custom base URL (tests)
func NewYahooClientWithBase(baseURL string) *YahooClient {
	c := NewYahooClient()
	c.baseURL = baseURL
	return c
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string  `json:"symbol"`
				ShortName          string  `json:"shortName"`
				Currency           string  `json:"currency"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				ChartPreviousClose float64 `json:"chartPreviousClose"`
				PreviousClose      float64 `json:"previousClose"`
			} `json:"meta"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// GetQuote fetches the current price and day change for a symbol
func (y *YahooClient) GetQuote(ctx context.Context, symbol string) (types.Quote, error) {
	ctx, span := trace.StartSpan(ctx, "yahoo-get-quote")
	defer span.End()

	u := fmt.Sprintf("%s/v8/finance/chart/%s?range=1d&interval=30m&includePrePost=true",
		y.baseURL, url.PathEscape(symbol))

	data, err := y.makeRequest(ctx, u)
	if err != nil {
		return types.Quote{}, fmt.Errorf("failed to fetch quote for %s: %w", symbol, err)
	}

	var cr chartResponse
	if err := json.Unmarshal(data, &cr); err != nil {
		return types.Quote{}, fmt.Errorf("failed to parse chart response for %s: %w", symbol, err)
	}
	if cr.Chart.Error != nil {
		return types.Quote{}, fmt.Errorf("yahoo chart error for %s: %s", symbol, cr.Chart.Error.Description)
	}
	if len(cr.Chart.Result) == 0 {
		return types.Quote{}, fmt.Errorf("no chart data for %s", symbol)
	}

	meta := cr.Chart.Result[0].Meta
	prevClose := meta.ChartPreviousClose
	if prevClose == 0 {
		prevClose = meta.PreviousClose
	}

	q := types.Quote{
		Symbol:    symbol,
		Name:      meta.ShortName,
		Price:     meta.RegularMarketPrice,
		Currency:  meta.Currency,
		FetchedAt: time.Now().Unix(),
	}
	if prevClose > 0 {
		q.ChangePercent = (meta.RegularMarketPrice - prevClose) / prevClose * 100
	}

	return q, nil
}

type searchResponse struct {
	News []struct {
		Title               string `json:"title"`
		Publisher           string `json:"publisher"`
		Link                string `json:"link"`
		ProviderPublishTime int64  `json:"providerPublishTime"`
	} `json:"news"`
}

// GetNews fetches the latest news items for a symbol
func (y *YahooClient) GetNews(ctx context.Context, symbol string, limit int) ([]types.NewsItem, error) {
	ctx, span := trace.StartSpan(ctx, "yahoo-get-news")
	defer span.End()

	u := fmt.Sprintf("%s/v1/finance/search?q=%s&newsCount=%d&quotesCount=0",
		y.baseURL, url.QueryEscape(symbol), limit)

	data, err := y.makeRequest(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch news for %s: %w", symbol, err)
	}

	var sr searchResponse
	if err := json.Unmarshal(data, &sr); err != nil {
		return nil, fmt.Errorf("failed to parse news response for %s: %w", symbol, err)
	}

	items := make([]types.NewsItem, 0, len(sr.News))
	for _, n := range sr.News {
		if len(items) >= limit {
			break
		}
		if n.Title == "" || n.Link == "" {
			continue
		}
		items = append(items, types.NewsItem{
			Symbol:      symbol,
			Headline:    n.Title,
			Publisher:   n.Publisher,
			URL:         n.Link,
			PublishedAt: time.Unix(n.ProviderPublishTime, 0),
		})
	}

	return items, nil
}

func (y *YahooClient) makeRequest(ctx context.Context, url string) ([]byte, error) {
	if err := y.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range y.headers {
		req.Header.Set(k, v)
	}

	resp, err := y.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo http %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}
