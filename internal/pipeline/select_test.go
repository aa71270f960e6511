package pipeline

import (
	"context"
	"testing"

	"market-pulse/internal/store"
	"market-pulse/internal/types"
)

func selectorConfig() *store.Config {
	cfg := &store.Config{}
	cfg.Selection.Keywords = []string{"Earnings", "Guidance", "Acquisition", "Layoffs", "CEO", "FDA", "Lawsuit", "Breakthrough"}
	cfg.Selection.VolatilityPct = 3.0
	cfg.Selection.IndustrialMinChangePct = 1.5
	cfg.Selection.MaxPerCompany = 2
	return cfg
}

func TestSelectKeywordMatch(t *testing.T) {
	s := NewSelector(selectorConfig())
	ctx := context.Background()

	menu := []types.NewsItem{
		{Symbol: "NVDA", Headline: "Nvidia earnings crush estimates"},
		{Symbol: "NVDA", Headline: "Five fun facts about GPUs"},
	}

	selected := s.Select(ctx, menu, nil, nil)
	if len(selected) != 1 {
		t.Fatalf("Expected 1 selected, got %d", len(selected))
	}
	if selected[0].Headline != "Nvidia earnings crush estimates" {
		t.Errorf("Unexpected selection: %s", selected[0].Headline)
	}
}

func TestSelectVolatilityTrigger(t *testing.T) {
	s := NewSelector(selectorConfig())
	ctx := context.Background()

	menu := []types.NewsItem{
		{Symbol: "TSLA", Headline: "Tesla shares slide on delivery worries"},
	}
	quotes := map[string]types.Quote{
		"TSLA": {Symbol: "TSLA", ChangePercent: -4.2},
	}

	selected := s.Select(ctx, menu, quotes, nil)
	if len(selected) != 1 {
		t.Fatalf("Expected volatility trigger to select, got %d", len(selected))
	}

	// Same headline without the move is skipped
	quotes["TSLA"] = types.Quote{Symbol: "TSLA", ChangePercent: -0.5}
	selected = s.Select(ctx, menu, quotes, nil)
	if len(selected) != 0 {
		t.Fatalf("Expected no selection below volatility threshold, got %d", len(selected))
	}
}

func TestSelectMaxPerCompany(t *testing.T) {
	s := NewSelector(selectorConfig())
	ctx := context.Background()

	menu := []types.NewsItem{
		{Symbol: "NVDA", Headline: "Nvidia earnings preview"},
		{Symbol: "NVDA", Headline: "Nvidia guidance analysis"},
		{Symbol: "NVDA", Headline: "Nvidia CEO interview"},
	}

	selected := s.Select(ctx, menu, nil, nil)
	if len(selected) != 2 {
		t.Fatalf("Expected per-company cap of 2, got %d", len(selected))
	}
}

func TestSelectIndustrialGate(t *testing.T) {
	s := NewSelector(selectorConfig())
	ctx := context.Background()
	industrial := map[string]bool{"XOM": true}

	menu := []types.NewsItem{
		{Symbol: "XOM", Headline: "Exxon announces major acquisition"},
		{Symbol: "XOM", Headline: "Exxon opens new office"},
	}

	// Keyword headline passes the gate even without a move
	selected := s.Select(ctx, menu, nil, industrial)
	if len(selected) != 1 {
		t.Fatalf("Expected keyword to pass industrial gate, got %d", len(selected))
	}

	// A big enough move lets volatility selection apply
	quotes := map[string]types.Quote{"XOM": {Symbol: "XOM", ChangePercent: 4.0}}
	selected = s.Select(ctx, menu, quotes, industrial)
	if len(selected) != 2 {
		t.Fatalf("Expected both selected on a 4%% move, got %d", len(selected))
	}

	// Small move and no keyword: skipped entirely
	quotes["XOM"] = types.Quote{Symbol: "XOM", ChangePercent: 1.0}
	selected = s.Select(ctx, []types.NewsItem{{Symbol: "XOM", Headline: "Exxon opens new office"}}, quotes, industrial)
	if len(selected) != 0 {
		t.Fatalf("Expected quiet industrial symbol skipped, got %d", len(selected))
	}
}

func TestMatchKeywordCaseInsensitive(t *testing.T) {
	s := NewSelector(selectorConfig())

	kw, ok := s.MatchKeyword("FDA approves new treatment")
	if !ok || kw != "FDA" {
		t.Errorf("Expected FDA match, got %q %v", kw, ok)
	}
	if _, ok := s.MatchKeyword("quiet day on the markets"); ok {
		t.Error("Expected no keyword match")
	}
}
