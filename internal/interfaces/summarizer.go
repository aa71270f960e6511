package interfaces

import (
	"context"

	"market-pulse/internal/types"
)

// Summarizer compresses one article body into the three-part briefing form.
// The focus instruction steers the model (e.g. "focus on GPU shipment numbers").
type Summarizer interface {
	Summarize(ctx context.Context, item types.NewsItem, body, focus string) (types.ArticleSummary, error)
}
