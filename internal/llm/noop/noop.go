package noop

import (
	"context"

	"market-pulse/internal/logger"
	"market-pulse/internal/types"
)

// NoopSummarizer is a fallback used when no LLM provider is configured.
// It echoes the headline so the pipeline still produces a well-formed report.
type NoopSummarizer struct{}

// NewNoopSummarizer returns a new instance
func NewNoopSummarizer() *NoopSummarizer {
	return &NoopSummarizer{}
}

// Summarize implements the Summarizer interface without calling any model
func (s *NoopSummarizer) Summarize(ctx context.Context, item types.NewsItem, body, focus string) (types.ArticleSummary, error) {
	logger.Debug(ctx, "Noop summarizer called", "symbol", item.Symbol, "headline", item.Headline)
	return types.ArticleSummary{
		Symbol:           item.Symbol,
		Headline:         item.Headline,
		SourceURL:        item.URL,
		ExecutiveSummary: item.Headline + " (summarization disabled)",
	}, nil
}
