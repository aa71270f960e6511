package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"market-pulse/internal/logger"
	"market-pulse/internal/store"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Generate today's Daily Market Pulse briefing",
	RunE:  runBriefing,
}

func runBriefing(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := store.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	p, arch, err := buildPipeline(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to build pipeline: %w", err)
	}
	if arch != nil {
		defer arch.Close()
	}

	res, err := p.Run(ctx)
	if err != nil {
		return err
	}

	logger.Info(ctx, "Briefing run finished",
		"run_id", res.RunID, "path", res.Path, "summaries", res.Summaries)

	fmt.Printf("Briefing written to %s (%d summaries)\n", res.Path, res.Summaries)
	if len(res.Issues) > 0 {
		fmt.Printf("WARNING: report failed %d grammar check(s):\n", len(res.Issues))
		for _, issue := range res.Issues {
			fmt.Println("  " + issue.String())
		}
	}

	return nil
}
