package main

import (
	"context"
	"os"
	"time"

	"market-pulse/internal/archive"
	"market-pulse/internal/interfaces"
	"market-pulse/internal/llm/claude"
	"market-pulse/internal/llm/llmobs"
	"market-pulse/internal/llm/noop"
	"market-pulse/internal/llm/openai"
	"market-pulse/internal/logger"
	"market-pulse/internal/market"
	"market-pulse/internal/news"
	"market-pulse/internal/pipeline"
	"market-pulse/internal/report"
	"market-pulse/internal/store"
)

// buildQuoteProvider selects the configured quote source
func buildQuoteProvider(ctx context.Context, cfg *store.Config, yahoo *market.YahooClient) interfaces.QuoteProvider {
	switch cfg.Quotes.Provider {
	case "KITE":
		logger.Info(ctx, "Using Kite Connect quote provider", "exchange", cfg.Quotes.Exchange)
		return market.NewKiteClient(
			os.Getenv("KITE_API_KEY"),
			os.Getenv("KITE_ACCESS_TOKEN"),
			cfg.Quotes.Exchange,
		)
	default:
		return yahoo
	}
}

// buildSummarizer selects the configured LLM provider with observability
func buildSummarizer(ctx context.Context, cfg *store.Config) interfaces.Summarizer {
	var summarizer interfaces.Summarizer

	switch cfg.LLM.Provider {
	case "OPENAI":
		summarizer = openai.NewOpenAISummarizer(cfg)
	case "CLAUDE":
		summarizer = claude.NewClaudeSummarizer(cfg)
	default:
		summarizer = noop.NewNoopSummarizer()
		logger.Warn(ctx, "No LLM provider configured - using Noop summarizer (headlines only)")
	}

	// Wrap with observability middleware
	return llmobs.Wrap(summarizer)
}

// buildPipeline assembles the full briefing pipeline from config
func buildPipeline(ctx context.Context, cfg *store.Config) (*pipeline.Pipeline, *archive.Store, error) {
	yahoo := market.NewYahooClient()

	scraper := news.NewScraper(
		time.Duration(cfg.Scraper.TimeoutSeconds)*time.Second,
		cfg.Scraper.MaxArticleChars,
	)

	var arch *archive.Store
	if cfg.Output.Archive != "" {
		var err error
		arch, err = archive.Open(cfg.Output.Archive)
		if err != nil {
			return nil, nil, err
		}
	}

	p := pipeline.New(
		cfg,
		buildQuoteProvider(ctx, cfg, yahoo),
		yahoo,
		scraper,
		buildSummarizer(ctx, cfg),
		report.NewWriter(cfg.Output.Dir),
		arch,
	)

	return p, arch, nil
}
