package analyzer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"EquityScope/internal/calculator"
	"EquityScope/internal/collector"
	"EquityScope/internal/model"
	"EquityScope/internal/recorder"
)

var testStart = time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)

// memRecorder keeps recorded analyses in memory.
type memRecorder struct {
	mu       sync.Mutex
	recorded []*model.Analysis
	err      error
}

func (m *memRecorder) RecordAnalysis(a *model.Analysis) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recorded = append(m.recorded, a)
	return m.err
}

func (m *memRecorder) History(symbol string, limit int) ([]recorder.HistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []recorder.HistoryEntry
	for _, a := range m.recorded {
		if a.Symbol == symbol {
			out = append(out, recorder.HistoryEntry{Symbol: a.Symbol, TotalScore: a.Score.Total})
		}
	}
	return out, nil
}

func (m *memRecorder) Close() error { return nil }

func newTestService(fetcher *collector.MockFetcher, rec recorder.Recorder) *Service {
	return NewService(collector.NewCollector(fetcher, collector.DefaultHistoryDays), rec)
}

func TestAnalyze(t *testing.T) {
	data := &model.StockData{Symbol: "RELIANCE.NS", Source: "mock"}
	bars, err := (&collector.MockFetcher{Price: 2400, Start: testStart}).FetchDailyBars(context.Background(), "RELIANCE.NS", 22)
	require.NoError(t, err)
	data.Observations = bars
	data.Fundamentals = model.FundamentalSnapshot{
		PERatio:       model.Float(20),
		ROE:           model.Float(18),
		DebtToEquity:  model.Float(0.4),
		ProfitMargin:  model.Float(16),
		RevenueGrowth: model.Float(12),
	}

	a, err := Analyze(data)
	require.NoError(t, err)
	assert.Equal(t, "RELIANCE.NS", a.Symbol)
	assert.Len(t, a.Observations, 22)
	assert.Equal(t, 100, a.Score.Total)
	assert.Equal(t, model.BandExcellent, a.Score.Band)
	assert.Empty(t, a.Flags.Red)
	require.NotNil(t, a.Indicators)
	assert.Equal(t, 22, a.Indicators.TradingDays)
	assert.NotNil(t, a.Indicators.SMA14)
}

func TestAnalyze_InvalidInput(t *testing.T) {
	_, err := Analyze(nil)
	assert.ErrorIs(t, err, calculator.ErrInvalidInput)

	_, err = Analyze(&model.StockData{Symbol: "X.NS"})
	assert.ErrorIs(t, err, calculator.ErrInvalidInput)
}

func TestService_AnalyzeSymbolRecords(t *testing.T) {
	rec := &memRecorder{}
	svc := newTestService(&collector.MockFetcher{Price: 3500, Start: testStart}, rec)

	a, err := svc.AnalyzeSymbol(context.Background(), "tcs.ns")
	require.NoError(t, err)
	assert.Equal(t, "TCS.NS", a.Symbol)
	assert.Equal(t, 88, a.Score.Total)
	require.Len(t, rec.recorded, 1)

	hist, err := svc.History("TCS.NS", 5)
	require.NoError(t, err)
	assert.Len(t, hist, 1)
}

func TestService_RecordFailureDoesNotFailAnalysis(t *testing.T) {
	rec := &memRecorder{err: errors.New("disk full")}
	svc := newTestService(&collector.MockFetcher{Price: 100, Start: testStart}, rec)

	_, err := svc.AnalyzeSymbol(context.Background(), "INFY.NS")
	assert.NoError(t, err)
}

func TestService_FetchFailure(t *testing.T) {
	boom := &collector.FetchError{Source: "mock", Symbol: "INFY.NS", Op: "bars", Err: collector.ErrNoData}
	svc := newTestService(&collector.MockFetcher{Price: 100, Failures: map[string]error{"INFY.NS": boom}}, nil)

	_, err := svc.AnalyzeSymbol(context.Background(), "INFY.NS")
	require.Error(t, err)
	assert.True(t, collector.IsFetchError(err))
	assert.ErrorIs(t, err, collector.ErrNoData)
}
