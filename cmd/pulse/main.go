package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"market-pulse/internal/logger"
	"market-pulse/internal/trace"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "pulse",
	Short: "Daily Market Pulse briefing generator",
	Long: `pulse fetches quotes and news for a configured watchlist, summarizes
selected articles with an LLM, and renders the Daily Market Pulse briefing.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()
		if err := logger.Init(); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		if err := trace.Init(); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = trace.Shutdown(context.Background())
	},
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to config file")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(quotesCmd)
	rootCmd.AddCommand(historyCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
