package notifier

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"EquityScope/internal/model"
	"EquityScope/internal/recorder"
	"EquityScope/internal/scoring"
)

var reportTime = time.Date(2025, 10, 1, 9, 30, 0, 0, time.UTC)

func sampleAnalysis() *model.Analysis {
	f := model.FundamentalSnapshot{
		CompanyName:          model.String("Reliance Industries Limited"),
		Sector:               model.String("Energy"),
		PERatio:              model.Float(24.1),
		ROE:                  model.Float(9.12),
		DebtToEquity:         model.Float(0.366),
		ProfitMargin:         model.Float(8.1),
		RevenueGrowth:        model.Float(-2.1),
		FreeCashFlowPositive: model.Bool(false),
		MarketCap:            model.Float(16340000000000),
		CurrentPrice:         model.Float(2456.3),
		TargetPrice:          model.Float(2750),
		Recommendation:       model.String("strong_buy"),
	}
	return &model.Analysis{
		Symbol:       "RELIANCE.NS",
		Source:       "yahoo",
		AnalyzedAt:   reportTime,
		Fundamentals: f,
		Indicators: &model.IndicatorResult{
			CurrentPrice: 2456.3,
			PeriodHigh:   2466.1,
			PeriodLow:    2389.2,
			PeriodChange: 2.2946,
			AvgVolume:    1010000,
			TradingDays:  21,
			FirstDate:    time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC),
			LastDate:     time.Date(2025, 9, 21, 0, 0, 0, 0, time.UTC),
			SMA7:         model.Float(2448.03),
			SMA14:        nil,
			BestDay:      &model.DailyReturn{Date: time.Date(2025, 9, 6, 0, 0, 0, 0, time.UTC), Percent: 0.13},
		},
		Score: scoring.ComputeScore(f),
		Flags: scoring.DetectFlags(f),
	}
}

func TestFormatAnalysisReport(t *testing.T) {
	out := FormatAnalysisReport(sampleAnalysis())

	assert.Contains(t, out, "EQUITY ANALYSIS REPORT: RELIANCE.NS")
	assert.Contains(t, out, "Reliance Industries Limited")
	assert.Contains(t, out, "Sector: Energy | Industry: N/A")
	assert.Contains(t, out, "₹2,456.30")
	assert.Contains(t, out, "+2.29%")
	assert.Contains(t, out, "10,10,000")
	assert.Contains(t, out, "₹1634000.00 Cr (Large Cap)")
	assert.Contains(t, out, "2025-09-06 (+0.13%)")
	assert.Contains(t, out, "STRONG BUY")
	assert.Contains(t, out, "INVESTMENT SCORE: 64/100 (Good)")
	assert.Contains(t, out, "RED FLAGS (2)")
	assert.Contains(t, out, "Declining Revenue")
	assert.Contains(t, out, "Negative Cash Flow")
	assert.Contains(t, out, "GREEN FLAGS (2)")

	for _, l := range strings.Split(out, "\n") {
		if strings.Contains(l, "SMA (14-day)") || strings.Contains(l, "Worst Day") {
			assert.True(t, strings.HasSuffix(l, NotAvailable), l)
		}
	}
}

func TestFormatAnalysisReport_DailyData(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2025, 9, d, 0, 0, 0, 0, time.UTC) }
	a := sampleAnalysis()
	a.Observations = []model.Observation{
		{Date: day(1), Open: 2400, High: 2410, Low: 2390, Close: 2400, Volume: 1250000},
		{Date: day(2), Open: 2400, High: 2430, Low: 2395, Close: 2424, Volume: 980000},
		{Date: day(3), Open: 2424, High: 2426, Low: 2380, Close: 2399.76, Volume: 1100000},
	}
	a.Indicators.DailyReturns = []model.DailyReturn{
		{Date: day(2), Percent: 1},
		{Date: day(3), Percent: -1},
	}
	out := FormatAnalysisReport(a)

	assert.Contains(t, out, "DAILY DATA")
	rows := map[string]string{}
	for _, l := range strings.Split(out, "\n") {
		f := strings.Fields(l)
		if len(f) > 0 && strings.HasPrefix(f[0], "2025-09-0") && len(f) == 7 {
			rows[f[0]] = l
		}
	}
	require.Len(t, rows, 3)
	assert.True(t, strings.HasSuffix(rows["2025-09-01"], NotAvailable), rows["2025-09-01"])
	assert.Contains(t, rows["2025-09-01"], "12,50,000")
	assert.True(t, strings.HasSuffix(rows["2025-09-02"], "+1.00%"), rows["2025-09-02"])
	assert.Contains(t, rows["2025-09-02"], "₹2,424.00")
	assert.True(t, strings.HasSuffix(rows["2025-09-03"], "-1.00%"), rows["2025-09-03"])
	assert.Less(t, strings.Index(out, "DAILY DATA"), strings.Index(out, "FUNDAMENTALS"))
}

func TestFormatAnalysisReport_NoIndicators(t *testing.T) {
	a := &model.Analysis{Symbol: "X.NS", AnalyzedAt: reportTime, Score: scoring.ComputeScore(model.FundamentalSnapshot{})}
	out := FormatAnalysisReport(a)
	assert.Contains(t, out, "Current Price:")
	assert.Contains(t, out, "INVESTMENT SCORE: 0/100 (Poor)")
	assert.Contains(t, out, "Missing data: P/E Ratio, ROE, Debt-to-Equity, Profit Margin, Revenue Growth")
	assert.Contains(t, out, "RED FLAGS (0)\n  None")
	assert.NotContains(t, out, "DAILY DATA")
}

func TestFormatComparison(t *testing.T) {
	good := sampleAnalysis()
	entries := []model.ComparisonEntry{
		{Symbol: good.Symbol, Analysis: good},
		{Symbol: "TCS.NS", Err: errors.New("fetch daily bars: yahoo chart TCS.NS: status 503")},
	}
	out := FormatComparison(entries)

	assert.Contains(t, out, "RELIANCE.NS")
	assert.Contains(t, out, "ERROR")
	assert.Contains(t, out, "64/100")
	assert.Contains(t, out, "Highest score: RELIANCE.NS (64/100, Good)")
	assert.Contains(t, out, "Large Cap")
	assert.Contains(t, out, "TCS.NS: fetch daily bars")
	assert.Less(t, strings.Index(out, "RELIANCE.NS"), strings.Index(out, "TCS.NS"))
}

func TestFormatTelegramReport(t *testing.T) {
	out := FormatTelegramReport("M&M <ok>")
	assert.Equal(t, "<pre>M&amp;M &lt;ok&gt;</pre>", out)

	long := FormatTelegramReport(strings.Repeat("x", 5000))
	assert.Less(t, len([]rune(long)), 4096)
	assert.Contains(t, long, "(truncated)")
}

func TestFormatWatchlistSummary(t *testing.T) {
	entries := []model.ComparisonEntry{
		{Symbol: "RELIANCE.NS", Analysis: sampleAnalysis()},
		{Symbol: "M&M.NS", Err: errors.New("status <429>")},
	}
	out := FormatWatchlistSummary(entries, reportTime)
	assert.Contains(t, out, "2025-10-01")
	assert.Contains(t, out, "<b>RELIANCE.NS</b>: 64/100 Good")
	assert.Contains(t, out, "M&amp;M.NS")
	assert.Contains(t, out, "status &lt;429&gt;")

	assert.Contains(t, FormatWatchlistSummary(nil, reportTime), "Watchlist is empty")
}

func TestFormatHistory(t *testing.T) {
	entries := []recorder.HistoryEntry{
		{Symbol: "TCS.NS", AnalyzedAt: reportTime, TotalScore: 72, Band: model.BandGood, CurrentPrice: model.Float(3500)},
		{Symbol: "TCS.NS", AnalyzedAt: reportTime.AddDate(0, 0, -1), TotalScore: 70, Band: model.BandGood},
	}
	out := FormatHistory("TCS.NS", entries)
	assert.Contains(t, out, "2025-10-01 09:30")
	assert.Contains(t, out, "₹3,500.00")
	assert.Contains(t, out, NotAvailable)
	assert.Contains(t, FormatHistory("TCS.NS", nil), "No recorded analyses")
}
