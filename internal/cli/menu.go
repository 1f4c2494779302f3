// Package cli implements the interactive terminal menu.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"EquityScope/internal/analyzer"
	"EquityScope/internal/collector"
	"EquityScope/internal/model"
	"EquityScope/internal/notifier"
	"EquityScope/internal/reports"
)

// Analyzer is the analysis surface the menu drives.
type Analyzer interface {
	AnalyzeSymbol(ctx context.Context, symbol string) (*model.Analysis, error)
	Compare(ctx context.Context, symbols []string) ([]model.ComparisonEntry, error)
}

// ReportStore saves and reads report files.
type ReportStore interface {
	Save(symbol, text string) (string, error)
	List() ([]reports.Report, error)
	Load(name string) (string, error)
}

// Menu is the numbered main menu loop.
type Menu struct {
	in       *bufio.Scanner
	out      io.Writer
	analyzer Analyzer
	reports  ReportStore
}

// NewMenu creates a menu reading from in and writing to out.
func NewMenu(in io.Reader, out io.Writer, an Analyzer, store ReportStore) *Menu {
	return &Menu{in: bufio.NewScanner(in), out: out, analyzer: an, reports: store}
}

func (m *Menu) printf(format string, args ...interface{}) {
	fmt.Fprintf(m.out, format, args...)
}

// prompt writes label and reads one trimmed line. ok is false at end of input.
func (m *Menu) prompt(label string) (string, bool) {
	m.printf("%s", label)
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

// Run shows the menu until the user exits, input ends or ctx is cancelled.
func (m *Menu) Run(ctx context.Context) error {
	m.printf("\n%s\n  Welcome to EquityScope\n  Analyze Indian Stocks (NSE/BSE)\n%s\n", banner, banner)

	for ctx.Err() == nil {
		m.printf("\n1. Analyze Single Stock\n")
		m.printf("2. Compare Multiple Stocks (2-5 stocks)\n")
		m.printf("3. View Saved Reports\n")
		m.printf("4. Help (How to read fundamental data)\n")
		m.printf("5. Exit\n\n")

		choice, ok := m.prompt("Enter your choice (1-5): ")
		if !ok {
			m.printf("\n")
			return m.in.Err()
		}

		var cont bool
		switch choice {
		case "1":
			cont = m.analyzeFlow(ctx)
		case "2":
			cont = m.compareFlow(ctx)
		case "3":
			cont = m.reportsFlow()
		case "4":
			m.printf("%s", helpContent)
			_, cont = m.prompt("\nPress Enter to continue...")
		case "5":
			m.printf("\nThank you for using EquityScope!\n")
			return nil
		default:
			m.printf("\nInvalid choice. Please enter a number between 1 and 5.\n")
			cont = true
		}
		if !cont {
			return m.in.Err()
		}
	}
	return ctx.Err()
}

func (m *Menu) analyzeFlow(ctx context.Context) bool {
	m.printf("\n=== Single Stock Analysis ===\n\n")
	input, ok := m.prompt("Enter stock symbol (e.g., RELIANCE.NS, TCS.NS): ")
	if !ok {
		return false
	}
	symbol := collector.NormalizeTicker(input)
	if err := collector.ValidateTicker(symbol); err != nil {
		m.printf("\n%v\n", err)
		return true
	}

	m.printf("\nFetching data for %s...\n", symbol)
	a, err := m.analyzer.AnalyzeSymbol(ctx, symbol)
	if err != nil {
		log.Debug().Err(err).Str("symbol", symbol).Msg("menu analysis failed")
		m.printf("\nUnable to analyze %s: %v\n", symbol, err)
		if collector.IsRetriable(err) {
			m.printf("The data service looks busy. Try again in a few moments.\n")
		} else {
			m.printf("Check that the symbol is listed on NSE (.NS) or BSE (.BO).\n")
		}
		return true
	}

	report := notifier.FormatAnalysisReport(a)
	m.printf("\n%s", report)

	answer, ok := m.prompt("\nSave analysis report? (y/n): ")
	if !ok {
		return false
	}
	if strings.EqualFold(answer, "y") || strings.EqualFold(answer, "yes") {
		path, err := m.reports.Save(a.Symbol, report)
		if err != nil {
			m.printf("Failed to save report: %v\n", err)
		} else {
			m.printf("Report saved: %s\n", path)
		}
	}
	return true
}

func (m *Menu) compareFlow(ctx context.Context) bool {
	m.printf("\n=== Multi-Stock Comparison ===\n\n")
	input, ok := m.prompt("Enter 2-5 stock symbols separated by commas (e.g., RELIANCE.NS, TCS.NS, INFY.NS): ")
	if !ok {
		return false
	}

	symbols := collector.ParseTickers(input)
	if len(symbols) < analyzer.MinCompare {
		m.printf("\nPlease enter at least %d stock symbols\n", analyzer.MinCompare)
		return true
	}
	if len(symbols) > analyzer.MaxCompare {
		m.printf("\nMaximum %d stocks allowed. Using first %d...\n", analyzer.MaxCompare, analyzer.MaxCompare)
		symbols = symbols[:analyzer.MaxCompare]
	}

	valid := symbols[:0]
	for _, s := range symbols {
		if err := collector.ValidateTicker(s); err != nil {
			m.printf("Skipping invalid ticker: %v\n", err)
			continue
		}
		valid = append(valid, s)
	}

	m.printf("\nFetching data for %s...\n", strings.Join(valid, ", "))
	entries, err := m.analyzer.Compare(ctx, valid)
	if err != nil {
		m.printf("\nNeed at least %d valid stock symbols for comparison\n", analyzer.MinCompare)
		return true
	}
	m.printf("\n%s", notifier.FormatComparison(entries))
	return true
}

func (m *Menu) reportsFlow() bool {
	m.printf("\n=== Saved Reports ===\n\n")
	list, err := m.reports.List()
	if err != nil {
		m.printf("Error listing reports: %v\n", err)
		return true
	}
	if len(list) == 0 {
		m.printf("No saved reports found.\n")
		return true
	}

	m.printf("Found %d report(s):\n\n", len(list))
	for i, r := range list {
		m.printf("%d. %s (Created: %s)\n", i+1, r.Name, r.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	choice, ok := m.prompt("\nEnter report number to view (or 0 to go back): ")
	if !ok {
		return false
	}
	n, err := strconv.Atoi(choice)
	if err != nil {
		m.printf("Please enter a valid number\n")
		return true
	}
	if n == 0 {
		return true
	}
	if n < 1 || n > len(list) {
		m.printf("Invalid selection\n")
		return true
	}

	content, err := m.reports.Load(list[n-1].Name)
	if err != nil {
		m.printf("Error loading report: %v\n", err)
		return true
	}
	m.printf("\n%s\nReport: %s\n%s\n\n%s", banner, list[n-1].Name, banner, content)
	_, ok = m.prompt("\nPress Enter to continue...")
	return ok
}

const banner = "============================================================"
