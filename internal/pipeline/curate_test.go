package pipeline

import (
	"context"
	"testing"

	"market-pulse/internal/session"
	"market-pulse/internal/types"
)

func TestCurateDropsSpam(t *testing.T) {
	sess := session.New(1)
	sess.AddSummary(types.ArticleSummary{Symbol: "AAPL", Headline: "Apple earnings beat expectations"})
	sess.AddSummary(types.ArticleSummary{Symbol: "AAPL", Headline: "Law Firm Reminds AAPL Investors of Class Action Deadline"})
	sess.AddSummary(types.ArticleSummary{Symbol: "MSFT", Headline: "Microsoft CEO outlines cloud strategy"})

	Curate(context.Background(), sess)

	got := sess.Summaries()
	if len(got) != 2 {
		t.Fatalf("Expected 2 summaries after curation, got %d", len(got))
	}
	for _, sum := range got {
		if sum.RefID == 2 {
			t.Errorf("Spam summary survived curation: %s", sum.Headline)
		}
	}
}

func TestCurateDropsDuplicatesKeepingDetailed(t *testing.T) {
	sess := session.New(1)
	sess.AddSummary(types.ArticleSummary{
		Symbol:   "NVDA",
		Headline: "Nvidia Earnings Beat!",
		HardData: []string{"Revenue $35B"},
	})
	sess.AddSummary(types.ArticleSummary{
		Symbol:   "NVDA",
		Headline: "NVIDIA earnings beat",
		HardData: []string{"Revenue $35B", "EPS $0.89", "Guidance $37B"},
	})

	Curate(context.Background(), sess)

	got := sess.Summaries()
	if len(got) != 1 {
		t.Fatalf("Expected 1 summary after duplicate pruning, got %d", len(got))
	}
	if got[0].RefID != 2 {
		t.Errorf("Expected the more detailed duplicate to survive, kept ref %d", got[0].RefID)
	}
}

func TestCurateDifferentSymbolsNotDuplicates(t *testing.T) {
	sess := session.New(1)
	sess.AddSummary(types.ArticleSummary{Symbol: "AAPL", Headline: "Earnings beat"})
	sess.AddSummary(types.ArticleSummary{Symbol: "MSFT", Headline: "Earnings beat"})

	Curate(context.Background(), sess)

	if sess.Count() != 2 {
		t.Fatalf("Expected same headline under different symbols to survive, got %d", sess.Count())
	}
}

func TestCurateRespectsFloor(t *testing.T) {
	sess := session.New(4)
	sess.AddSummary(types.ArticleSummary{Symbol: "AAPL", Headline: "Apple earnings beat"})
	sess.AddSummary(types.ArticleSummary{Symbol: "MSFT", Headline: "Shareholder Alert from a law firm"})

	Curate(context.Background(), sess)

	// Pruning would leave 1 which is below the floor of 4, so nothing goes.
	if sess.Count() != 2 {
		t.Fatalf("Expected floor to block pruning, got %d summaries", sess.Count())
	}
}
