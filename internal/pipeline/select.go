package pipeline

import (
	"context"
	"math"
	"strings"

	"market-pulse/internal/logger"
	"market-pulse/internal/store"
	"market-pulse/internal/types"
)

// Selector applies the article selection rules: high-impact keywords, the
// volatility check, the per-company cap, and the industrial significance gate.
type Selector struct {
	keywords      []string
	volatilityPct float64
	industrialMin float64
	maxPerCompany int
}

// NewSelector builds a selector from config thresholds
func NewSelector(cfg *store.Config) *Selector {
	return &Selector{
		keywords:      cfg.Selection.Keywords,
		volatilityPct: cfg.Selection.VolatilityPct,
		industrialMin: cfg.Selection.IndustrialMinChangePct,
		maxPerCompany: cfg.Selection.MaxPerCompany,
	}
}

// MatchKeyword returns the first high-impact keyword found in the headline.
func (s *Selector) MatchKeyword(headline string) (string, bool) {
	lower := strings.ToLower(headline)
	for _, kw := range s.keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return kw, true
		}
	}
	return "", false
}

// Select picks the menu items worth summarizing. quotes may be empty on
// weekends, which disables the volatility rule. industrial marks symbols on
// the industrial watchlist, which are skipped entirely unless they moved more
// than the significance threshold or carry a high-impact headline.
func (s *Selector) Select(ctx context.Context, menu []types.NewsItem, quotes map[string]types.Quote, industrial map[string]bool) []types.NewsItem {
	perCompany := make(map[string]int)
	var selected []types.NewsItem

	for _, item := range menu {
		if perCompany[item.Symbol] >= s.maxPerCompany {
			continue
		}

		change := 0.0
		if q, ok := quotes[item.Symbol]; ok {
			change = math.Abs(q.ChangePercent)
		}

		kw, hasKw := s.MatchKeyword(item.Headline)

		if industrial[item.Symbol] && change < s.industrialMin && !hasKw {
			logger.Selection(ctx, item.Symbol, item.Headline, "industrial_below_threshold", false,
				"change_pct", change)
			continue
		}

		switch {
		case hasKw:
			logger.Selection(ctx, item.Symbol, item.Headline, "keyword:"+kw, true)
		case change > s.volatilityPct:
			logger.Selection(ctx, item.Symbol, item.Headline, "volatility", true, "change_pct", change)
		default:
			logger.Selection(ctx, item.Symbol, item.Headline, "no_trigger", false, "change_pct", change)
			continue
		}

		perCompany[item.Symbol]++
		selected = append(selected, item)
	}

	return selected
}
