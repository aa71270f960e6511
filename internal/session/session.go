package session

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"market-pulse/internal/types"
)

// ErrBelowMinimum is returned when a removal would leave fewer summaries than
// the configured floor. The briefing must keep enough material to explain the
// day's moves, so such removals are refused wholesale.
type ErrBelowMinimum struct {
	Remaining int
	Min       int
}

func (e ErrBelowMinimum) Error() string {
	return fmt.Sprintf("removal refused: %d summaries would remain, minimum is %d", e.Remaining, e.Min)
}

// Session holds the curation state for one briefing run: fetched quotes, the
// news menu, and the summaries under review. Ref IDs are assigned in insertion
// order and never reused, so removals leave holes.
type Session struct {
	mu        sync.RWMutex
	runID     string
	startedAt time.Time
	minKeep   int

	quotes    map[string]types.Quote
	menu      []types.NewsItem
	summaries []types.ArticleSummary
	nextRef   int
}

// New creates a session with the given minimum-summaries floor.
func New(minKeep int) *Session {
	return &Session{
		runID:     uuid.NewString(),
		startedAt: time.Now(),
		minKeep:   minKeep,
		quotes:    make(map[string]types.Quote),
		nextRef:   1,
	}
}

// RunID returns the unique id for this briefing run.
func (s *Session) RunID() string {
	return s.runID
}

// StartedAt returns when the session was created.
func (s *Session) StartedAt() time.Time {
	return s.startedAt
}

// StoreQuote records a fetched quote, replacing any earlier one for the symbol.
func (s *Session) StoreQuote(q types.Quote) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quotes[q.Symbol] = q
}

// Quote returns the stored quote for a symbol.
func (s *Session) Quote(symbol string) (types.Quote, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q, ok := s.quotes[symbol]
	return q, ok
}

// Quotes returns all stored quotes, indices first, then alphabetical.
func (s *Session) Quotes() []types.Quote {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.Quote, 0, len(s.quotes))
	for _, q := range s.quotes {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsIndex() != out[j].IsIndex() {
			return out[i].IsIndex()
		}
		return out[i].Symbol < out[j].Symbol
	})
	return out
}

// AppendMenu adds news items to the menu.
func (s *Session) AppendMenu(items []types.NewsItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.menu = append(s.menu, items...)
}

// Menu returns a copy of the current news menu.
func (s *Session) Menu() []types.NewsItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.NewsItem, len(s.menu))
	copy(out, s.menu)
	return out
}

// AddSummary stores a summary and assigns it the next Ref ID.
func (s *Session) AddSummary(sum types.ArticleSummary) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	sum.RefID = s.nextRef
	s.nextRef++
	s.summaries = append(s.summaries, sum)
	return sum.RefID
}

// Summaries returns the current summaries in Ref ID order.
func (s *Session) Summaries() []types.ArticleSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.ArticleSummary, len(s.summaries))
	copy(out, s.summaries)
	return out
}

// Remove deletes summaries by Ref ID. Unknown ids are ignored. If the
// removal would leave fewer than the floor, nothing is removed and
// ErrBelowMinimum is returned. The remaining Ref IDs are returned.
func (s *Session) Remove(refIDs []int) ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	drop := make(map[int]bool, len(refIDs))
	for _, id := range refIDs {
		drop[id] = true
	}

	kept := make([]types.ArticleSummary, 0, len(s.summaries))
	for _, sum := range s.summaries {
		if !drop[sum.RefID] {
			kept = append(kept, sum)
		}
	}

	if len(kept) < len(s.summaries) && len(kept) < s.minKeep {
		return s.refIDsLocked(), ErrBelowMinimum{Remaining: len(kept), Min: s.minKeep}
	}

	s.summaries = kept
	return s.refIDsLocked(), nil
}

// Count returns the number of summaries currently held.
func (s *Session) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.summaries)
}

func (s *Session) refIDsLocked() []int {
	ids := make([]int, 0, len(s.summaries))
	for _, sum := range s.summaries {
		ids = append(ids, sum.RefID)
	}
	return ids
}

// Snapshot assembles the report model from the current session state.
func (s *Session) Snapshot(weekend bool) types.Report {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r := types.Report{
		RunID:     s.runID,
		Date:      s.startedAt,
		Weekend:   weekend,
		Summaries: make([]types.ArticleSummary, len(s.summaries)),
	}
	copy(r.Summaries, s.summaries)
	if !weekend {
		r.Snapshot = s.quotesSortedLocked()
	}
	return r
}

func (s *Session) quotesSortedLocked() []types.Quote {
	out := make([]types.Quote, 0, len(s.quotes))
	for _, q := range s.quotes {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].IsIndex() != out[j].IsIndex() {
			return out[i].IsIndex()
		}
		return out[i].Symbol < out[j].Symbol
	})
	return out
}
