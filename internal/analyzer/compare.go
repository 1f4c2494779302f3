package analyzer

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"EquityScope/internal/collector"
	"EquityScope/internal/model"
)

// Comparison size limits.
const (
	MinCompare = 2
	MaxCompare = 5
)

// ErrCompareSize is returned when the symbol count is outside [MinCompare, MaxCompare].
var ErrCompareSize = errors.New("compare needs between 2 and 5 symbols")

// Compare analyses every symbol concurrently. Each entry carries its own
// error, and entries follow the input order.
func (s *Service) Compare(ctx context.Context, symbols []string) ([]model.ComparisonEntry, error) {
	symbols = dedupe(symbols)
	if len(symbols) < MinCompare || len(symbols) > MaxCompare {
		return nil, fmt.Errorf("%w: got %d", ErrCompareSize, len(symbols))
	}

	entries := make([]model.ComparisonEntry, len(symbols))
	var wg sync.WaitGroup
	for i, sym := range symbols {
		wg.Add(1)
		go func(i int, sym string) {
			defer wg.Done()
			a, err := s.AnalyzeSymbol(ctx, sym)
			entries[i] = model.ComparisonEntry{Symbol: sym, Analysis: a, Err: err}
		}(i, sym)
	}
	wg.Wait()
	return entries, nil
}

// RankByScore returns successful entries ordered by total score, highest
// first. Equal scores keep input order; failed entries are appended last.
func RankByScore(entries []model.ComparisonEntry) []model.ComparisonEntry {
	ranked := make([]model.ComparisonEntry, len(entries))
	copy(ranked, entries)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i].Analysis, ranked[j].Analysis
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Score.Total > b.Score.Total
		}
	})
	return ranked
}

// dedupe normalizes tickers and drops repeats, keeping first occurrence.
func dedupe(symbols []string) []string {
	seen := make(map[string]bool, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		s = collector.NormalizeTicker(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
