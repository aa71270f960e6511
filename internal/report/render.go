package report

import (
	"fmt"
	"strings"

	"market-pulse/internal/types"
)

const (
	// Title is the report marker downstream consumers search for.
	Title = "# Daily Market Pulse"

	// NoHardData is the literal fallback when an article carried no numbers.
	NoHardData = "No specific numbers or dates mentioned."

	// Footer is the literal line every well-formed report ends with.
	Footer = "Report generated successfully."

	snapshotHeading = "## MARKET SNAPSHOT"
)

// Render produces the final markdown briefing in the fixed section grammar.
func Render(r types.Report) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s — %s\n", Title, r.Date.Format("2006-01-02")))

	// Weekend runs carry no price data, so the snapshot is omitted entirely.
	if !r.Weekend && len(r.Snapshot) > 0 {
		sb.WriteString("\n" + snapshotHeading + "\n")
		for _, q := range r.Snapshot {
			sb.WriteString(fmt.Sprintf("- %s: %.2f (%+.2f%%)\n", q.Symbol, q.Price, q.ChangePercent))
		}
	}

	for _, sum := range r.Summaries {
		sb.WriteString("\n")
		writeSummary(&sb, sum)
	}

	sb.WriteString("\n" + Footer + "\n")
	return sb.String()
}

func writeSummary(sb *strings.Builder, sum types.ArticleSummary) {
	sb.WriteString(fmt.Sprintf("### [%s] %s\n", sum.Symbol, sum.Headline))

	sb.WriteString("### 1. EXECUTIVE SUMMARY\n")
	sb.WriteString(strings.TrimSpace(sum.ExecutiveSummary) + "\n")

	sb.WriteString("### 2. HARD DATA (Numbers/Dates)\n")
	if len(sum.HardData) == 0 {
		sb.WriteString(NoHardData + "\n")
	} else {
		for _, h := range sum.HardData {
			sb.WriteString("- " + h + "\n")
		}
	}

	sb.WriteString("### 3. KEY QUOTES\n")
	if len(sum.KeyQuotes) == 0 {
		sb.WriteString("- None\n")
	} else {
		for _, q := range sum.KeyQuotes {
			if q.Attribution != "" {
				sb.WriteString(fmt.Sprintf("- %q - %s\n", q.Text, q.Attribution))
			} else {
				sb.WriteString(fmt.Sprintf("- %q\n", q.Text))
			}
		}
	}
	sb.WriteString(fmt.Sprintf("*(Ref ID: %d)*\n", sum.RefID))
}
