package news

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gocolly/colly/v2"

	"market-pulse/internal/logger"
	"market-pulse/internal/trace"
)

// Scraper fetches article bodies for URLs picked from the news menu.
type Scraper struct {
	timeout  time.Duration
	maxChars int
}

// NewScraper creates a new article scraper
func NewScraper(timeout time.Duration, maxChars int) *Scraper {
	return &Scraper{
		timeout:  timeout,
		maxChars: maxChars,
	}
}

// FetchArticle downloads the article at the given URL and extracts its text.
func (s *Scraper) FetchArticle(ctx context.Context, articleURL string) (string, error) {
	ctx, span := trace.StartSpan(ctx, "fetch-article")
	defer span.End()

	c := colly.NewCollector(colly.MaxDepth(1))
	c.SetRequestTimeout(s.timeout)

	// Set user agent to avoid being blocked
	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	})

	var (
		content    string
		extractErr error
	)

	c.OnResponse(func(r *colly.Response) {
		content, extractErr = ExtractText(r.Body, s.maxChars)
	})

	c.OnError(func(r *colly.Response, err error) {
		logger.ErrorWithErr(ctx, "Article fetch error", err, "url", articleURL)
	})

	if err := c.Visit(articleURL); err != nil {
		return "", fmt.Errorf("failed to visit %s: %w", articleURL, err)
	}
	c.Wait()

	if extractErr != nil {
		return "", fmt.Errorf("failed to extract text from %s: %w", articleURL, extractErr)
	}
	if content == "" {
		return "", errors.New("unable to extract text content from " + articleURL)
	}

	logger.Debug(ctx, "Article fetched", "url", articleURL, "chars", len(content))
	return content, nil
}
