package report

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"market-pulse/internal/types"
)

func sampleReport() types.Report {
	return types.Report{
		RunID: "run-1",
		Date:  time.Date(2026, 8, 28, 18, 0, 0, 0, time.UTC),
		Snapshot: []types.Quote{
			{Symbol: "^GSPC", Price: 5123.45, ChangePercent: 0.32},
			{Symbol: "NVDA", Price: 130.12, ChangePercent: -3.41},
		},
		Summaries: []types.ArticleSummary{
			{
				RefID:            1,
				Symbol:           "NVDA",
				Headline:         "Nvidia guidance beats estimates",
				ExecutiveSummary: "Data center demand drives another beat-and-raise quarter.",
				HardData:         []string{"Revenue: $35.1B", "EPS: $2.12"},
				KeyQuotes: []types.KeyQuote{
					{Text: "Demand is incredible", Attribution: "CEO Jensen Huang"},
				},
			},
			{
				RefID:            2,
				Symbol:           "TSLA",
				Headline:         "Tesla announces layoffs",
				ExecutiveSummary: "Cost cuts across manufacturing.",
			},
		},
	}
}

func TestRenderWellFormed(t *testing.T) {
	content := Render(sampleReport())

	assert.True(t, strings.HasPrefix(content, "# Daily Market Pulse — 2026-08-28"))
	assert.Contains(t, content, "## MARKET SNAPSHOT")
	assert.Contains(t, content, "- ^GSPC: 5123.45 (+0.32%)")
	assert.Contains(t, content, "- NVDA: 130.12 (-3.41%)")
	assert.Contains(t, content, "### [NVDA] Nvidia guidance beats estimates")
	assert.Contains(t, content, "### 1. EXECUTIVE SUMMARY")
	assert.Contains(t, content, "### 2. HARD DATA (Numbers/Dates)")
	assert.Contains(t, content, "- Revenue: $35.1B")
	assert.Contains(t, content, "### 3. KEY QUOTES")
	assert.Contains(t, content, `- "Demand is incredible" - CEO Jensen Huang`)
	assert.Contains(t, content, "*(Ref ID: 1)*")

	// Second summary carried no hard data or quotes
	assert.Contains(t, content, NoHardData)
	assert.Contains(t, content, "- None")
	assert.Contains(t, content, "*(Ref ID: 2)*")

	lines := strings.Split(strings.TrimRight(content, "\n"), "\n")
	assert.Equal(t, Footer, lines[len(lines)-1])
}

func TestRenderPassesValidation(t *testing.T) {
	content := Render(sampleReport())
	issues := Validate(content)
	require.Empty(t, issues, "rendered report must satisfy its own grammar")
}

func TestRenderWeekendOmitsSnapshot(t *testing.T) {
	r := sampleReport()
	r.Weekend = true
	content := Render(r)

	assert.NotContains(t, content, "## MARKET SNAPSHOT")
	assert.Empty(t, Validate(content))
}

func TestRenderEmptyReportStillWellFormed(t *testing.T) {
	r := types.Report{RunID: "run-2", Date: time.Date(2026, 8, 29, 9, 0, 0, 0, time.UTC), Weekend: true}
	content := Render(r)

	assert.True(t, strings.HasPrefix(content, Title))
	assert.Empty(t, Validate(content))
}
