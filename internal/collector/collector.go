package collector

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"EquityScope/internal/model"
)

// DefaultHistoryDays covers one calendar month of trading sessions.
const DefaultHistoryDays = 22

// Collector orchestrates fetching price history and fundamentals for a symbol.
type Collector struct {
	Fetcher     Fetcher
	HistoryDays int
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, historyDays int) *Collector {
	if historyDays <= 0 {
		historyDays = DefaultHistoryDays
	}
	return &Collector{Fetcher: fetcher, HistoryDays: historyDays}
}

// Collect validates the ticker and fetches bars and fundamentals.
func (c *Collector) Collect(ctx context.Context, symbol string) (*model.StockData, error) {
	symbol = NormalizeTicker(symbol)
	if err := ValidateTicker(symbol); err != nil {
		return nil, err
	}

	bars, err := c.Fetcher.FetchDailyBars(ctx, symbol, c.HistoryDays)
	if err != nil {
		return nil, fmt.Errorf("fetch daily bars: %w", err)
	}
	fundamentals, err := c.Fetcher.FetchFundamentals(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("fetch fundamentals: %w", err)
	}

	log.Debug().
		Str("symbol", symbol).
		Str("source", c.Fetcher.Name()).
		Int("bars", len(bars)).
		Msg("collected market data")

	return &model.StockData{
		Symbol:       symbol,
		Observations: bars,
		Fundamentals: *fundamentals,
		Source:       c.Fetcher.Name(),
		FetchedAt:    time.Now().UTC(),
	}, nil
}
