package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"market-pulse/internal/report"
)

var validateCmd = &cobra.Command{
	Use:   "validate <report.md>",
	Short: "Check a rendered briefing against the report grammar",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	b, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read report: %w", err)
	}

	issues := report.Validate(string(b))
	if len(issues) == 0 {
		fmt.Println("OK: report is well-formed")
		return nil
	}

	for _, issue := range issues {
		fmt.Println(issue.String())
	}
	return fmt.Errorf("%d grammar violation(s)", len(issues))
}
