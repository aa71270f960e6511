package pipeline

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"market-pulse/internal/archive"
	"market-pulse/internal/interfaces"
	"market-pulse/internal/logger"
	"market-pulse/internal/news"
	"market-pulse/internal/report"
	"market-pulse/internal/session"
	"market-pulse/internal/store"
	"market-pulse/internal/trace"
	"market-pulse/internal/types"
)

// Pipeline runs one complete briefing: fetch, select, summarize, curate,
// render, export.
type Pipeline struct {
	cfg        *store.Config
	quotes     interfaces.QuoteProvider
	newsSource interfaces.NewsProvider
	scraper    *news.Scraper
	summarizer interfaces.Summarizer
	writer     *report.Writer
	arch       *archive.Store // nil disables archiving
	now        func() time.Time
}

// New assembles a pipeline from its components. arch may be nil.
func New(cfg *store.Config, quotes interfaces.QuoteProvider, newsSource interfaces.NewsProvider,
	scraper *news.Scraper, summarizer interfaces.Summarizer, writer *report.Writer, arch *archive.Store) *Pipeline {
	return &Pipeline{
		cfg:        cfg,
		quotes:     quotes,
		newsSource: newsSource,
		scraper:    scraper,
		summarizer: summarizer,
		writer:     writer,
		arch:       arch,
		now:        time.Now,
	}
}

// SetClock overrides the pipeline clock (tests).
func (p *Pipeline) SetClock(now func() time.Time) {
	p.now = now
}

// Result describes one completed briefing run.
type Result struct {
	Path      string
	RunID     string
	Summaries int
	Issues    []report.Issue
}

// Run executes the full briefing flow and returns the written report's path.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	ctx, span := trace.StartSpan(ctx, "pipeline-run")
	defer span.End()

	sess := session.New(p.cfg.Selection.MinSummaries)
	runDate := p.now()
	weekend := isWeekend(runDate)

	logger.Info(ctx, "Briefing run started", "run_id", sess.RunID(), "weekend", weekend)

	// Phase 1a: quotes (weekdays only)
	if !weekend {
		p.fetchQuotes(ctx, sess)
	}

	// Phase 1b: news menu
	p.fetchMenu(ctx, sess)

	// Phase 2: selection
	selector := NewSelector(p.cfg)
	quoteMap := make(map[string]types.Quote)
	for _, q := range sess.Quotes() {
		quoteMap[q.Symbol] = q
	}
	selected := selector.Select(ctx, sess.Menu(), quoteMap, p.industrialSet())
	logger.Info(ctx, "Articles selected", "selected", len(selected), "menu", len(sess.Menu()))

	// Phase 2b: fetch + summarize
	p.summarizeSelected(ctx, sess, selected, quoteMap)

	// Phase 3: curation
	Curate(ctx, sess)

	// Phase 4: render + export
	rep := sess.Snapshot(weekend)
	rep.Date = runDate
	content := report.Render(rep)
	issues := report.Validate(content)
	for _, issue := range issues {
		logger.Warn(ctx, "Report grammar violation", "issue", issue.String())
	}

	path, err := p.writer.Save(content, runDate)
	if err != nil {
		return Result{}, fmt.Errorf("failed to save report: %w", err)
	}

	if p.arch != nil {
		if _, err := p.arch.Save(ctx, sess.RunID(), runDate, sess.Count(), len(issues) == 0, content); err != nil {
			logger.ErrorWithErr(ctx, "Failed to archive report", err)
		}
	}

	logger.Export(ctx, path, sess.Count(), len(issues) == 0)

	return Result{
		Path:      path,
		RunID:     sess.RunID(),
		Summaries: sess.Count(),
		Issues:    issues,
	}, nil
}

// fetchQuotes pulls quotes for the full target list concurrently. A failed
// symbol is logged and skipped; it never aborts the run.
func (p *Pipeline) fetchQuotes(ctx context.Context, sess *session.Session) {
	ctx, span := trace.StartSpan(ctx, "fetch-quotes")
	defer span.End()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for _, sym := range p.allSymbols() {
		sym := sym
		g.Go(func() error {
			q, err := p.quotes.GetQuote(gctx, sym)
			if err != nil {
				logger.ErrorWithErr(gctx, "Failed to fetch quote", err, "symbol", sym)
				return nil
			}
			sess.StoreQuote(q)
			return nil
		})
	}
	_ = g.Wait()

	logger.Info(ctx, "Quotes fetched", "count", len(sess.Quotes()))
}

// fetchMenu pulls the news menu for every watchlist symbol.
func (p *Pipeline) fetchMenu(ctx context.Context, sess *session.Session) {
	ctx, span := trace.StartSpan(ctx, "fetch-news-menu")
	defer span.End()

	symbols := append([]string{}, p.cfg.Watchlist.Tech...)
	symbols = append(symbols, p.cfg.Watchlist.Industrial...)

	for _, sym := range symbols {
		items, err := p.newsSource.GetNews(ctx, sym, p.cfg.Selection.MenuPerSymbol)
		if err != nil {
			logger.ErrorWithErr(ctx, "Failed to fetch news menu", err, "symbol", sym)
			continue
		}
		sess.AppendMenu(items)
	}

	logger.Info(ctx, "News menu assembled", "items", len(sess.Menu()))
}

// summarizeSelected fetches each selected article's body and summarizes it.
func (p *Pipeline) summarizeSelected(ctx context.Context, sess *session.Session, selected []types.NewsItem, quotes map[string]types.Quote) {
	ctx, span := trace.StartSpan(ctx, "summarize-selected")
	defer span.End()

	for _, item := range selected {
		body, err := p.scraper.FetchArticle(ctx, item.URL)
		if err != nil {
			logger.ErrorWithErr(ctx, "Skipping article, body fetch failed", err,
				"symbol", item.Symbol, "url", item.URL)
			continue
		}

		focus := "General summary"
		if q, ok := quotes[item.Symbol]; ok && abs(q.ChangePercent) > p.cfg.Selection.VolatilityPct {
			focus = fmt.Sprintf("Explain the drivers behind %s's %+.2f%% move", item.Symbol, q.ChangePercent)
		}

		sum, err := p.summarizer.Summarize(ctx, item, body, focus)
		if err != nil {
			logger.ErrorWithErr(ctx, "Skipping article, summarization failed", err,
				"symbol", item.Symbol, "url", item.URL)
			continue
		}

		refID := sess.AddSummary(sum)
		logger.Debug(ctx, "Summary stored", "ref_id", refID, "symbol", item.Symbol)
	}
}

func (p *Pipeline) allSymbols() []string {
	out := append([]string{}, p.cfg.Indices...)
	out = append(out, p.cfg.Watchlist.Tech...)
	out = append(out, p.cfg.Watchlist.Industrial...)
	return out
}

func (p *Pipeline) industrialSet() map[string]bool {
	set := make(map[string]bool, len(p.cfg.Watchlist.Industrial))
	for _, s := range p.cfg.Watchlist.Industrial {
		set[s] = true
	}
	return set
}

func isWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
