package pipeline

import (
	"context"
	"strings"

	"market-pulse/internal/logger"
	"market-pulse/internal/session"
	"market-pulse/internal/types"
)

// spamMarkers flag low-value legal-notice churn that clogs nightly briefings.
var spamMarkers = []string{
	"class action",
	"law firm",
	"shareholder alert",
	"deadline reminder",
	"investor alert",
}

// Curate reviews the summaries in the session and removes spam and duplicate
// coverage of the same event. Removals respect the session's minimum floor:
// if pruning would drop below it, the removal is skipped.
func Curate(ctx context.Context, sess *session.Session) {
	summaries := sess.Summaries()

	var drop []int
	seen := make(map[string]types.ArticleSummary)

	for _, sum := range summaries {
		if isSpam(sum.Headline) {
			logger.Info(ctx, "Pruning spam summary", "ref_id", sum.RefID, "headline", sum.Headline)
			drop = append(drop, sum.RefID)
			continue
		}

		key := sum.Symbol + "|" + normalizeHeadline(sum.Headline)
		if prev, ok := seen[key]; ok {
			// Same event covered twice: keep the more detailed one
			victim := sum
			if len(sum.HardData) > len(prev.HardData) {
				victim = prev
				seen[key] = sum
			}
			logger.Info(ctx, "Pruning duplicate summary", "ref_id", victim.RefID, "headline", victim.Headline)
			drop = append(drop, victim.RefID)
			continue
		}
		seen[key] = sum
	}

	if len(drop) == 0 {
		return
	}

	if _, err := sess.Remove(drop); err != nil {
		logger.Warn(ctx, "Curation pruning skipped", "error", err, "candidates", len(drop))
	}
}

func isSpam(headline string) bool {
	lower := strings.ToLower(headline)
	for _, m := range spamMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// normalizeHeadline reduces a headline to a comparison key so near-identical
// wire copies of the same story collide.
func normalizeHeadline(h string) string {
	h = strings.ToLower(h)
	var b strings.Builder
	for _, r := range h {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
