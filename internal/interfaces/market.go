package interfaces

import (
	"context"

	"market-pulse/internal/types"
)

// QuoteProvider fetches a current price snapshot for a symbol.
type QuoteProvider interface {
	GetQuote(ctx context.Context, symbol string) (types.Quote, error)
}

// NewsProvider fetches the latest news menu for a symbol.
type NewsProvider interface {
	GetNews(ctx context.Context, symbol string, limit int) ([]types.NewsItem, error)
}
