package collector

import (
	"context"
	"time"

	"EquityScope/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price        float64
	Start        time.Time
	DailyData    []model.Observation
	Fundamentals *model.FundamentalSnapshot
	// Failures makes the named symbols fail both calls.
	Failures map[string]error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(_ context.Context, symbol string, days int) ([]model.Observation, error) {
	if err := m.Failures[symbol]; err != nil {
		return nil, err
	}
	if m.DailyData != nil {
		return m.DailyData, nil
	}
	return generateMockBars(m.Price, m.Start, days), nil
}

func (m *MockFetcher) FetchFundamentals(_ context.Context, symbol string) (*model.FundamentalSnapshot, error) {
	if err := m.Failures[symbol]; err != nil {
		return nil, err
	}
	if m.Fundamentals != nil {
		snap := *m.Fundamentals
		return &snap, nil
	}
	return &model.FundamentalSnapshot{
		CompanyName:          model.String(symbol),
		PERatio:              model.Float(20),
		ROE:                  model.Float(18),
		DebtToEquity:         model.Float(0.4),
		ProfitMargin:         model.Float(12),
		RevenueGrowth:        model.Float(8),
		FreeCashFlowPositive: model.Bool(true),
		CurrentPrice:         model.Float(m.Price),
	}, nil
}

// generateMockBars builds a gently rising daily series ending the day before
// start (or today when start is zero).
func generateMockBars(basePrice float64, start time.Time, count int) []model.Observation {
	if basePrice <= 0 {
		basePrice = 100
	}
	if start.IsZero() {
		start = time.Now().UTC().Truncate(24 * time.Hour)
	}
	bars := make([]model.Observation, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.Observation{
			Date:   start.AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}
