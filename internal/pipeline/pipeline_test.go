package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"market-pulse/internal/news"
	"market-pulse/internal/report"
	"market-pulse/internal/store"
	"market-pulse/internal/types"
)

type fakeQuotes struct {
	quotes map[string]types.Quote
}

func (f *fakeQuotes) GetQuote(ctx context.Context, symbol string) (types.Quote, error) {
	q, ok := f.quotes[symbol]
	if !ok {
		return types.Quote{}, fmt.Errorf("no quote for %s", symbol)
	}
	return q, nil
}

type fakeNews struct {
	items map[string][]types.NewsItem
}

func (f *fakeNews) GetNews(ctx context.Context, symbol string, limit int) ([]types.NewsItem, error) {
	return f.items[symbol], nil
}

type fakeSummarizer struct {
	calls int
}

func (f *fakeSummarizer) Summarize(ctx context.Context, item types.NewsItem, body, focus string) (types.ArticleSummary, error) {
	f.calls++
	return types.ArticleSummary{
		Symbol:           item.Symbol,
		Headline:         item.Headline,
		SourceURL:        item.URL,
		ExecutiveSummary: "Summary of " + item.Headline,
		HardData:         []string{"Revenue figures cited in the article"},
		KeyQuotes: []types.KeyQuote{
			{Text: "We are confident in our outlook", Attribution: "Management"},
		},
	}, nil
}

func pipelineConfig(outputDir string) *store.Config {
	cfg := &store.Config{}
	cfg.Indices = []string{"^GSPC"}
	cfg.Watchlist.Tech = []string{"AAPL", "NVDA"}
	cfg.Watchlist.Industrial = []string{"XOM"}
	cfg.Selection.Keywords = []string{"Earnings", "Guidance", "Acquisition", "Layoffs", "CEO", "FDA", "Lawsuit", "Breakthrough"}
	cfg.Selection.VolatilityPct = 3.0
	cfg.Selection.IndustrialMinChangePct = 1.5
	cfg.Selection.MaxPerCompany = 2
	cfg.Selection.MinSummaries = 1
	cfg.Selection.MenuPerSymbol = 8
	cfg.Scraper.TimeoutSeconds = 10
	cfg.Scraper.MaxArticleChars = 12000
	cfg.Output.Dir = outputDir
	return cfg
}

func articleServer() *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>
<p>The company reported quarterly revenue well ahead of analyst consensus.</p>
<p>Management raised full year guidance on strong demand.</p>
</body></html>`)
	}))
}

func TestRunWeekday(t *testing.T) {
	srv := articleServer()
	defer srv.Close()

	dir := t.TempDir()
	cfg := pipelineConfig(dir)

	quotes := &fakeQuotes{quotes: map[string]types.Quote{
		"^GSPC": {Symbol: "^GSPC", Price: 5480.12, ChangePercent: 0.4, Currency: "USD"},
		"AAPL":  {Symbol: "AAPL", Price: 228.40, ChangePercent: 1.1, Currency: "USD"},
		"NVDA":  {Symbol: "NVDA", Price: 131.20, ChangePercent: 4.7, Currency: "USD"},
		"XOM":   {Symbol: "XOM", Price: 112.50, ChangePercent: 0.2, Currency: "USD"},
	}}
	menu := &fakeNews{items: map[string][]types.NewsItem{
		"AAPL": {{Symbol: "AAPL", Headline: "Apple earnings top estimates", URL: srv.URL + "/aapl"}},
		"NVDA": {{Symbol: "NVDA", Headline: "Nvidia shares surge on data center demand", URL: srv.URL + "/nvda"}},
		"XOM":  {{Symbol: "XOM", Headline: "Exxon opens new office", URL: srv.URL + "/xom"}},
	}}
	summarizer := &fakeSummarizer{}

	p := New(cfg, quotes, menu, news.NewScraper(10*time.Second, 12000), summarizer,
		report.NewWriter(dir), nil)
	p.SetClock(func() time.Time {
		return time.Date(2025, 6, 6, 17, 0, 0, 0, time.UTC) // a Friday
	})

	res, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, res.Issues, "rendered report should pass validation")

	// AAPL selects on keyword, NVDA on volatility; quiet XOM is gated out.
	assert.Equal(t, 2, res.Summaries)
	assert.Equal(t, 2, summarizer.calls)

	content, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	text := string(content)

	assert.Contains(t, text, "# Daily Market Pulse — 2025-06-06")
	assert.Contains(t, text, "## MARKET SNAPSHOT")
	assert.Contains(t, text, "### [AAPL] Apple earnings top estimates")
	assert.Contains(t, text, "### [NVDA] Nvidia shares surge on data center demand")
	assert.NotContains(t, text, "[XOM]")
	assert.True(t, strings.HasSuffix(strings.TrimRight(text, "\n"), report.Footer))

	// The alias copy matches the dated file.
	alias, err := os.ReadFile(dir + "/daily_briefing.md")
	require.NoError(t, err)
	assert.Equal(t, content, alias)
}

func TestRunWeekendSkipsQuotes(t *testing.T) {
	srv := articleServer()
	defer srv.Close()

	dir := t.TempDir()
	cfg := pipelineConfig(dir)

	quotes := &fakeQuotes{quotes: map[string]types.Quote{}}
	menu := &fakeNews{items: map[string][]types.NewsItem{
		"AAPL": {{Symbol: "AAPL", Headline: "Apple CEO discusses roadmap", URL: srv.URL + "/aapl"}},
	}}

	p := New(cfg, quotes, menu, news.NewScraper(10*time.Second, 12000), &fakeSummarizer{},
		report.NewWriter(dir), nil)
	p.SetClock(func() time.Time {
		return time.Date(2025, 6, 7, 9, 0, 0, 0, time.UTC) // a Saturday
	})

	res, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, res.Issues)
	assert.Equal(t, 1, res.Summaries)

	content, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "## MARKET SNAPSHOT")
}

func TestRunSurvivesFailedArticleFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/dead") {
			http.Error(w, "gone", http.StatusGone)
			return
		}
		fmt.Fprint(w, `<html><body><p>A long enough paragraph describing the quarterly results in detail.</p></body></html>`)
	}))
	defer srv.Close()

	dir := t.TempDir()
	cfg := pipelineConfig(dir)

	menu := &fakeNews{items: map[string][]types.NewsItem{
		"AAPL": {
			{Symbol: "AAPL", Headline: "Apple earnings beat", URL: srv.URL + "/dead/aapl"},
			{Symbol: "AAPL", Headline: "Apple guidance raised", URL: srv.URL + "/ok/aapl"},
		},
	}}

	p := New(cfg, &fakeQuotes{quotes: map[string]types.Quote{}}, menu,
		news.NewScraper(10*time.Second, 12000), &fakeSummarizer{}, report.NewWriter(dir), nil)
	p.SetClock(func() time.Time {
		return time.Date(2025, 6, 6, 17, 0, 0, 0, time.UTC)
	})

	res, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, res.Summaries, "dead article is skipped, the other survives")
}
