package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"EquityScope/internal/analyzer"
	"EquityScope/internal/collector"
	"EquityScope/internal/model"
	"EquityScope/internal/recorder"
)

type fakeAnalyzer struct {
	failures  map[string]error
	histLimit int
	delay     time.Duration
}

func (f *fakeAnalyzer) AnalyzeSymbol(_ context.Context, symbol string) (*model.Analysis, error) {
	time.Sleep(f.delay)
	symbol = collector.NormalizeTicker(symbol)
	if err := f.failures[symbol]; err != nil {
		return nil, err
	}
	return &model.Analysis{
		Symbol:     symbol,
		AnalyzedAt: time.Date(2025, 10, 1, 16, 0, 0, 0, time.UTC),
		Indicators: &model.IndicatorResult{CurrentPrice: 1000},
		Score:      model.ScoreResult{Total: 70, Band: model.BandGood},
	}, nil
}

func (f *fakeAnalyzer) Compare(ctx context.Context, symbols []string) ([]model.ComparisonEntry, error) {
	if len(symbols) < analyzer.MinCompare || len(symbols) > analyzer.MaxCompare {
		return nil, analyzer.ErrCompareSize
	}
	out := make([]model.ComparisonEntry, len(symbols))
	for i, s := range symbols {
		a, err := f.AnalyzeSymbol(ctx, s)
		out[i] = model.ComparisonEntry{Symbol: s, Analysis: a, Err: err}
	}
	return out, nil
}

func (f *fakeAnalyzer) History(symbol string, limit int) ([]recorder.HistoryEntry, error) {
	f.histLimit = limit
	return []recorder.HistoryEntry{{Symbol: symbol, TotalScore: 55, Band: model.BandAverage}}, nil
}

type fakeSender struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeSender) SendWithRetry(_ context.Context, text string, _ int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, text)
	return nil
}

type fakeSaver struct{ saved []string }

func (f *fakeSaver) Save(symbol, _ string) (string, error) {
	f.saved = append(f.saved, symbol)
	return symbol + ".txt", nil
}

func newTestScheduler(an *fakeAnalyzer, watchlist ...string) (*Scheduler, *fakeSender, *fakeSaver) {
	sender, saver := &fakeSender{}, &fakeSaver{}
	return NewScheduler(context.Background(), an, sender, saver, watchlist), sender, saver
}

func TestRegister_InvalidCron(t *testing.T) {
	s, _, _ := newTestScheduler(&fakeAnalyzer{})
	assert.Error(t, s.Register("not a cron"))
	assert.NoError(t, s.Register("0 0 16 * * 1-5"))
}

func TestRunWatchlistNow(t *testing.T) {
	boom := &collector.FetchError{Source: "mock", Symbol: "TCS.NS", Op: "bars", Retriable: true, Err: errors.New("timeout")}
	s, sender, saver := newTestScheduler(&fakeAnalyzer{failures: map[string]error{"TCS.NS": boom}},
		"RELIANCE.NS", "TCS.NS", "INFY.NS")

	s.RunWatchlistNow()

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Contains(t, msg, "<b>RELIANCE.NS</b>: 70/100 Good")
	assert.Contains(t, msg, "TCS.NS")
	assert.Contains(t, msg, "timeout")
	assert.Equal(t, []string{"RELIANCE.NS", "INFY.NS"}, saver.saved)
}

func TestNewScheduler_MarketTimezone(t *testing.T) {
	s, _, _ := newTestScheduler(&fakeAnalyzer{})
	_, offset := time.Date(2025, 10, 1, 16, 0, 0, 0, s.Cron.Location()).Zone()
	assert.Equal(t, 5*60*60+30*60, offset)

	require.NoError(t, s.Register("0 0 16 * * 1-5"))
	next := s.Cron.Entries()[0].Schedule.Next(time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC).In(s.Cron.Location()))
	assert.Equal(t, time.Date(2025, 10, 1, 10, 30, 0, 0, time.UTC), next.UTC())
}

func TestStop_WaitsForWatchlistCommand(t *testing.T) {
	s, sender, saver := newTestScheduler(&fakeAnalyzer{delay: 50 * time.Millisecond}, "RELIANCE.NS", "INFY.NS")

	reply := s.HandleCommand(context.Background(), "/watchlist")
	assert.Contains(t, reply, "Analysing 2 watchlist symbols")

	s.Stop()

	sender.mu.Lock()
	defer sender.mu.Unlock()
	require.Len(t, sender.sent, 1)
	assert.Equal(t, []string{"RELIANCE.NS", "INFY.NS"}, saver.saved)
}

func TestAnalyzeWatchlist_StopsOnCancel(t *testing.T) {
	s, _, _ := newTestScheduler(&fakeAnalyzer{}, "A.NS", "B.NS")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Empty(t, s.AnalyzeWatchlist(ctx))
}

func TestHandleCommand(t *testing.T) {
	an := &fakeAnalyzer{failures: map[string]error{
		"BAD.NS":  errors.New("no data <here>"),
		"SLOW.NS": &collector.FetchError{Source: "mock", Op: "bars", Retriable: true, Err: errors.New("503")},
	}}
	s, _, _ := newTestScheduler(an)
	ctx := context.Background()

	tests := []struct {
		name string
		cmd  string
		want string
	}{
		{"analyze", "/analyze tcs.ns", "<pre>"},
		{"analyze bot suffix", "/analyze@EquityScopeBot TCS.NS", "EQUITY ANALYSIS REPORT: TCS.NS"},
		{"analyze usage", "/analyze", "Usage: /analyze"},
		{"analyze failure escaped", "/analyze BAD.NS", "no data &lt;here&gt;"},
		{"analyze retriable", "/analyze SLOW.NS", "temporary failure"},
		{"compare", "/compare TCS.NS INFY.NS", "STOCK COMPARISON"},
		{"compare size", "/compare TCS.NS", "Usage: /compare"},
		{"history", "/history tcs.ns", "History TCS.NS"},
		{"history bad count", "/history TCS.NS x", "positive number"},
		{"watchlist empty", "/watchlist", "Watchlist is empty"},
		{"help", "/help", "/analyze SYMBOL.NS"},
		{"blank", "   ", "EquityScope commands"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, s.HandleCommand(ctx, tt.cmd), tt.want)
		})
	}
}

func TestHandleCommand_HistoryLimit(t *testing.T) {
	an := &fakeAnalyzer{}
	s, _, _ := newTestScheduler(an)

	s.HandleCommand(context.Background(), "/history TCS.NS")
	assert.Equal(t, defaultHistoryLimit, an.histLimit)

	s.HandleCommand(context.Background(), fmt.Sprintf("/history TCS.NS %d", 3))
	assert.Equal(t, 3, an.histLimit)
}
