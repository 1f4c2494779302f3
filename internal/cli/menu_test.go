package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"EquityScope/internal/analyzer"
	"EquityScope/internal/collector"
	"EquityScope/internal/reports"
)

func runMenu(t *testing.T, input string, fetcher *collector.MockFetcher) (string, *reports.Store) {
	t.Helper()
	if fetcher.Start.IsZero() {
		fetcher.Start = time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	}
	svc := analyzer.NewService(collector.NewCollector(fetcher, collector.DefaultHistoryDays), nil)
	store := reports.NewStore(t.TempDir())
	var out bytes.Buffer

	err := NewMenu(strings.NewReader(input), &out, svc, store).Run(context.Background())
	require.NoError(t, err)
	return out.String(), store
}

func TestMenu_ExitAndInvalidChoice(t *testing.T) {
	out, _ := runMenu(t, "9\nabc\n5\n", &collector.MockFetcher{Price: 100})
	assert.Equal(t, 2, strings.Count(out, "Invalid choice"))
	assert.Contains(t, out, "Thank you for using EquityScope!")
}

func TestMenu_EndOfInput(t *testing.T) {
	out, _ := runMenu(t, "", &collector.MockFetcher{Price: 100})
	assert.Contains(t, out, "Enter your choice (1-5)")
}

func TestMenu_AnalyzeAndSave(t *testing.T) {
	out, store := runMenu(t, "1\nreliance.ns\ny\n3\n1\n\n5\n", &collector.MockFetcher{Price: 2400})

	assert.Contains(t, out, "Fetching data for RELIANCE.NS...")
	assert.Contains(t, out, "EQUITY ANALYSIS REPORT: RELIANCE.NS")
	assert.Contains(t, out, "Report saved:")
	assert.Contains(t, out, "Found 1 report(s)")
	assert.Equal(t, 2, strings.Count(out, "EQUITY ANALYSIS REPORT: RELIANCE.NS"), "report shown again from disk")

	list, err := store.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "RELIANCE.NS", list[0].Symbol)
}

func TestMenu_AnalyzeInvalidTicker(t *testing.T) {
	out, _ := runMenu(t, "1\nRELIANCE\n5\n", &collector.MockFetcher{Price: 100})
	assert.Contains(t, out, "invalid ticker")
	assert.NotContains(t, out, "Fetching data")
}

func TestMenu_AnalyzeFetchFailure(t *testing.T) {
	boom := &collector.FetchError{Source: "mock", Symbol: "TCS.NS", Op: "bars", Retriable: true, Err: errors.New("503")}
	out, _ := runMenu(t, "1\nTCS.NS\n5\n", &collector.MockFetcher{Price: 100, Failures: map[string]error{"TCS.NS": boom}})
	assert.Contains(t, out, "Unable to analyze TCS.NS")
	assert.Contains(t, out, "Try again in a few moments")
}

func TestMenu_Compare(t *testing.T) {
	out, _ := runMenu(t, "2\ntcs.ns, infy.ns, BAD\n5\n", &collector.MockFetcher{Price: 1500})
	assert.Contains(t, out, "Skipping invalid ticker")
	assert.Contains(t, out, "STOCK COMPARISON")
	assert.Contains(t, out, "TCS.NS")
	assert.Contains(t, out, "INFY.NS")
}

func TestMenu_CompareTooFew(t *testing.T) {
	out, _ := runMenu(t, "2\ntcs.ns\n5\n", &collector.MockFetcher{Price: 1500})
	assert.Contains(t, out, "Please enter at least 2 stock symbols")
}

func TestMenu_CompareTooMany(t *testing.T) {
	out, _ := runMenu(t, "2\nA.NS,B.NS,C.NS,D.NS,E.NS,F.NS\n5\n", &collector.MockFetcher{Price: 10})
	assert.Contains(t, out, "Using first 5")
	assert.NotContains(t, out, "F.NS ")
}

func TestMenu_ReportsEmptyAndHelp(t *testing.T) {
	out, _ := runMenu(t, "3\n4\n\n5\n", &collector.MockFetcher{Price: 100})
	assert.Contains(t, out, "No saved reports found.")
	assert.Contains(t, out, "UNDERSTANDING FUNDAMENTAL DATA")
}
