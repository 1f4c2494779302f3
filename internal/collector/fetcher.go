package collector

import (
	"context"

	"EquityScope/internal/model"
)

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	FetchDailyBars(ctx context.Context, symbol string, days int) ([]model.Observation, error)
	FetchFundamentals(ctx context.Context, symbol string) (*model.FundamentalSnapshot, error)
	Name() string
}
