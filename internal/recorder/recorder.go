package recorder

import (
	"time"

	"EquityScope/internal/model"
)

// HistoryEntry is one stored analysis, newest first when listed.
type HistoryEntry struct {
	ID            int64
	Symbol        string
	AnalyzedAt    time.Time
	Source        string
	TotalScore    int
	Band          model.ScoreBand
	CurrentPrice  *float64
	PeriodChange  *float64
	Volatility    *float64
	PERatio       *float64
	ROE           *float64
	DebtToEquity  *float64
	ProfitMargin  *float64
	RevenueGrowth *float64
	RedFlags      []model.FlagTag
	GreenFlags    []model.FlagTag
}

// Recorder persists analysis history.
type Recorder interface {
	RecordAnalysis(a *model.Analysis) error
	History(symbol string, limit int) ([]HistoryEntry, error)
	Close() error
}
