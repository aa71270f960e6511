package llm

import (
	"strings"
	"testing"

	"market-pulse/internal/types"
)

func testItem() types.NewsItem {
	return types.NewsItem{
		Symbol:   "NVDA",
		Headline: "Nvidia guidance beats estimates",
		URL:      "https://example.com/a",
	}
}

func TestParseSummaryCleanJSON(t *testing.T) {
	raw := `{
		"executive_summary": "Beat and raise quarter.",
		"hard_data": ["Revenue: $35.1B", "EPS: $2.12"],
		"key_quotes": [{"text": "Demand is incredible", "attribution": "CEO Jensen Huang"}]
	}`

	sum, err := ParseSummary(testItem(), raw)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if sum.Symbol != "NVDA" {
		t.Errorf("Expected symbol NVDA, got %s", sum.Symbol)
	}
	if sum.ExecutiveSummary != "Beat and raise quarter." {
		t.Errorf("Unexpected executive summary: %q", sum.ExecutiveSummary)
	}
	if len(sum.HardData) != 2 {
		t.Fatalf("Expected 2 hard data items, got %d", len(sum.HardData))
	}
	if len(sum.KeyQuotes) != 1 {
		t.Fatalf("Expected 1 key quote, got %d", len(sum.KeyQuotes))
	}
	if sum.KeyQuotes[0].Attribution != "CEO Jensen Huang" {
		t.Errorf("Unexpected attribution: %q", sum.KeyQuotes[0].Attribution)
	}
}

func TestParseSummaryJSONInChatter(t *testing.T) {
	raw := "Here is the summary you asked for:\n```json\n" +
		`{"executive_summary": "Cost cuts.", "hard_data": [], "key_quotes": []}` +
		"\n```\nLet me know if you need anything else."

	sum, err := ParseSummary(testItem(), raw)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if sum.ExecutiveSummary != "Cost cuts." {
		t.Errorf("Unexpected executive summary: %q", sum.ExecutiveSummary)
	}
	if len(sum.HardData) != 0 {
		t.Errorf("Expected no hard data, got %v", sum.HardData)
	}
}

func TestParseSummaryFiltersNoneEntries(t *testing.T) {
	raw := `{"executive_summary": "x", "hard_data": ["None", " "], "key_quotes": [{"text": "None"}]}`

	sum, err := ParseSummary(testItem(), raw)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(sum.HardData) != 0 {
		t.Errorf("Expected 'None' hard data filtered out, got %v", sum.HardData)
	}
	if len(sum.KeyQuotes) != 0 {
		t.Errorf("Expected 'None' quotes filtered out, got %v", sum.KeyQuotes)
	}
}

func TestParseSummaryInvalid(t *testing.T) {
	if _, err := ParseSummary(testItem(), "I could not access the article."); err == nil {
		t.Fatal("Expected error for output with no JSON")
	}
	if _, err := ParseSummary(testItem(), "{not json}"); err == nil {
		t.Fatal("Expected error for malformed JSON")
	}
}

func TestBuildUserPromptDefaultsFocus(t *testing.T) {
	prompt := BuildUserPrompt(testItem(), "body text", "")
	if !strings.Contains(prompt, "General summary") {
		t.Error("Expected default focus instruction")
	}
	if !strings.Contains(prompt, "NVDA") || !strings.Contains(prompt, "body text") {
		t.Error("Expected prompt to carry ticker and body")
	}
}
