package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"market-pulse/internal/logger"
	"market-pulse/internal/market"
	"market-pulse/internal/store"
)

var quotesCmd = &cobra.Command{
	Use:   "quotes",
	Short: "Print current quotes for the configured watchlist",
	RunE:  runQuotes,
}

func runQuotes(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := store.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	provider := buildQuoteProvider(ctx, cfg, market.NewYahooClient())

	symbols := append([]string{}, cfg.Indices...)
	symbols = append(symbols, cfg.Watchlist.Tech...)
	symbols = append(symbols, cfg.Watchlist.Industrial...)

	for _, sym := range symbols {
		q, err := provider.GetQuote(ctx, sym)
		if err != nil {
			logger.ErrorWithErr(ctx, "Failed to fetch quote", err, "symbol", sym)
			continue
		}
		fmt.Printf("%-8s %10.2f  %+.2f%%\n", q.Symbol, q.Price, q.ChangePercent)
	}

	return nil
}
