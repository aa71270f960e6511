package types

import "time"

// Quote is a point-in-time snapshot of a symbol's price.
type Quote struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name,omitempty"`
	Price         float64 `json:"price"`
	ChangePercent float64 `json:"change_percent"`
	Currency      string  `json:"currency,omitempty"`
	FetchedAt     int64   `json:"fetched_at"`
}

// IsIndex reports whether the symbol is a market index (^GSPC, ^DJI, ...).
func (q Quote) IsIndex() bool {
	return len(q.Symbol) > 0 && q.Symbol[0] == '^'
}

// NewsItem is one entry in the news menu fetched for a symbol.
type NewsItem struct {
	Symbol      string    `json:"symbol"`
	Headline    string    `json:"headline"`
	Publisher   string    `json:"publisher,omitempty"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"published_at"`
}

// KeyQuote is a direct quote pulled from an article, with optional attribution.
type KeyQuote struct {
	Text        string `json:"text"`
	Attribution string `json:"attribution,omitempty"`
}

// ArticleSummary is the LLM-compressed form of one article. RefID is the
// session-scoped citation number that ends up in the rendered report.
type ArticleSummary struct {
	RefID            int        `json:"ref_id"`
	Symbol           string     `json:"symbol"`
	Headline         string     `json:"headline"`
	SourceURL        string     `json:"source_url"`
	ExecutiveSummary string     `json:"executive_summary"`
	HardData         []string   `json:"hard_data"`
	KeyQuotes        []KeyQuote `json:"key_quotes"`
}

// Report is the assembled briefing before rendering.
type Report struct {
	RunID     string           `json:"run_id"`
	Date      time.Time        `json:"date"`
	Weekend   bool             `json:"weekend"`
	Snapshot  []Quote          `json:"snapshot,omitempty"`
	Summaries []ArticleSummary `json:"summaries"`
}
