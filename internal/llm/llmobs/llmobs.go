package llmobs

import (
	"context"

	"market-pulse/internal/interfaces"
	"market-pulse/internal/logger"
	"market-pulse/internal/trace"
	"market-pulse/internal/types"
)

// observableSummarizer wraps a Summarizer with observability (logging & tracing)
type observableSummarizer struct {
	summarizer interfaces.Summarizer
}

// Compile-time interface check
var _ interfaces.Summarizer = (*observableSummarizer)(nil)

// Wrap wraps a summarizer with observability middleware
func Wrap(summarizer interfaces.Summarizer) interfaces.Summarizer {
	return &observableSummarizer{
		summarizer: summarizer,
	}
}

// Summarize compresses an article with observability
func (os *observableSummarizer) Summarize(
	ctx context.Context,
	item types.NewsItem,
	body, focus string,
) (types.ArticleSummary, error) {
	ctx, span := trace.StartSpan(ctx, "llm.Summarize")
	defer span.End()

	// Use DebugSkip(1) to report the actual caller, not this middleware wrapper
	logger.DebugSkip(ctx, 1, "Requesting article summary",
		"symbol", item.Symbol,
		"headline", item.Headline,
		"body_chars", len(body),
	)

	summary, err := os.summarizer.Summarize(ctx, item, body, focus)
	if err != nil {
		logger.ErrorWithErrSkip(ctx, 1, "Failed to summarize article", err,
			"symbol", item.Symbol,
			"url", item.URL,
		)
		return types.ArticleSummary{}, err
	}

	logger.InfoSkip(ctx, 1, "Article summary received",
		"symbol", item.Symbol,
		"hard_data", len(summary.HardData),
		"key_quotes", len(summary.KeyQuotes),
	)

	return summary, nil
}
