package model

import "time"

// Analysis is the full result of analysing one stock.
type Analysis struct {
	Symbol       string
	Observations []Observation
	Fundamentals FundamentalSnapshot
	Indicators   *IndicatorResult
	Score        ScoreResult
	Flags        FlagSet
	Source       string
	AnalyzedAt   time.Time
}

// ComparisonEntry is one symbol's slot in a multi-stock comparison.
// Exactly one of Analysis and Err is set.
type ComparisonEntry struct {
	Symbol   string
	Analysis *Analysis
	Err      error
}
