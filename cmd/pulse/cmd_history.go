package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"market-pulse/internal/archive"
	"market-pulse/internal/store"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List archived briefing runs",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum entries to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := store.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Output.Archive == "" {
		return fmt.Errorf("archiving disabled: output.archive is not set")
	}

	arch, err := archive.Open(cfg.Output.Archive)
	if err != nil {
		return err
	}
	defer arch.Close()

	entries, err := arch.List(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list archive: %w", err)
	}
	if len(entries) == 0 {
		fmt.Println("No archived reports.")
		return nil
	}

	for _, e := range entries {
		status := "valid"
		if !e.Valid {
			status = "INVALID"
		}
		fmt.Printf("%4d  %s  %2d summaries  %-7s  run %s\n", e.ID, e.Date, e.Summaries, status, e.RunID)
	}

	return nil
}
