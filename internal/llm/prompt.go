package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"market-pulse/internal/types"
)

// SystemPrompt instructs the model to act as a telegraphic financial news
// extractor. The output contract is strict JSON so rendering stays in Go.
const SystemPrompt = "You are a high-efficiency financial news extractor. Your output acts as a data feed " +
	"for a senior analyst with limited bandwidth. Compress the article into STRICT JSON with keys: " +
	"executive_summary (string, dense high-level overview, no fluff), " +
	"hard_data (array of strings, ONLY specific numbers, percentages, currency values, dates or ticker " +
	"changes, format '[Metric]: [Value]', empty array if none), " +
	"key_quotes (array of {text, attribution}, 1-2 most critical direct quotes from decision-makers, " +
	"empty array if none). Respond ONLY with valid JSON."

// summaryPayload is the JSON shape the model must produce.
type summaryPayload struct {
	ExecutiveSummary string   `json:"executive_summary"`
	HardData         []string `json:"hard_data"`
	KeyQuotes        []struct {
		Text        string `json:"text"`
		Attribution string `json:"attribution"`
	} `json:"key_quotes"`
}

// BuildUserPrompt assembles the per-article prompt sent to the model.
func BuildUserPrompt(item types.NewsItem, body, focus string) string {
	if focus == "" {
		focus = "General summary"
	}
	return fmt.Sprintf(`Ticker: %s
Headline: %s
Source URL: %s

--- ARTICLE CONTENT ---
%s
-----------------------

User INSTRUCTION: %s

Summarize the article above, strictly following the instruction.`,
		item.Symbol, item.Headline, item.URL, body, focus)
}

// ParseSummary extracts the JSON payload from model output and maps it onto
// an ArticleSummary. Model chatter around the JSON object is tolerated; a
// payload that cannot be parsed at all returns an error.
func ParseSummary(item types.NewsItem, raw string) (types.ArticleSummary, error) {
	t := strings.TrimSpace(raw)

	var p summaryPayload
	if err := json.Unmarshal([]byte(t), &p); err != nil {
		// Search for the outermost JSON object in surrounding text
		start := strings.Index(t, "{")
		end := strings.LastIndex(t, "}")
		if start < 0 || end <= start {
			return types.ArticleSummary{}, fmt.Errorf("no JSON object in model output")
		}
		if err := json.Unmarshal([]byte(t[start:end+1]), &p); err != nil {
			return types.ArticleSummary{}, fmt.Errorf("invalid JSON in model output: %w", err)
		}
	}

	out := types.ArticleSummary{
		Symbol:           item.Symbol,
		Headline:         item.Headline,
		SourceURL:        item.URL,
		ExecutiveSummary: strings.TrimSpace(p.ExecutiveSummary),
	}
	for _, h := range p.HardData {
		if h = strings.TrimSpace(h); h != "" && !strings.EqualFold(h, "none") {
			out.HardData = append(out.HardData, h)
		}
	}
	for _, q := range p.KeyQuotes {
		text := strings.TrimSpace(q.Text)
		if text == "" || strings.EqualFold(text, "none") {
			continue
		}
		out.KeyQuotes = append(out.KeyQuotes, types.KeyQuote{
			Text:        strings.Trim(text, `"`),
			Attribution: strings.TrimSpace(q.Attribution),
		})
	}

	return out, nil
}
