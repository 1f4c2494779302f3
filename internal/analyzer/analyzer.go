// Package analyzer runs the indicator calculator, the scoring engine and the
// flag detector over collected stock data.
package analyzer

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"EquityScope/internal/calculator"
	"EquityScope/internal/model"
	"EquityScope/internal/recorder"
	"EquityScope/internal/scoring"
)

// Collector is the data retrieval dependency of Service.
type Collector interface {
	Collect(ctx context.Context, symbol string) (*model.StockData, error)
}

// Analyze produces a full analysis from already fetched data. It performs no I/O.
func Analyze(data *model.StockData) (*model.Analysis, error) {
	if data == nil {
		return nil, fmt.Errorf("analyze: %w", calculator.ErrInvalidInput)
	}
	ind, err := calculator.ComputeIndicators(data.Observations)
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", data.Symbol, err)
	}
	return &model.Analysis{
		Symbol:       data.Symbol,
		Observations: data.Observations,
		Fundamentals: data.Fundamentals,
		Indicators:   ind,
		Score:        scoring.ComputeScore(data.Fundamentals),
		Flags:        scoring.DetectFlags(data.Fundamentals),
		Source:       data.Source,
		AnalyzedAt:   time.Now().UTC(),
	}, nil
}

// Service wires data collection, analysis and history recording.
type Service struct {
	collector Collector
	recorder  recorder.Recorder
}

// NewService creates a Service. A nil recorder disables history.
func NewService(c Collector, rec recorder.Recorder) *Service {
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	return &Service{collector: c, recorder: rec}
}

// AnalyzeSymbol fetches, analyses and records one symbol. A recording failure
// is logged and does not fail the analysis.
func (s *Service) AnalyzeSymbol(ctx context.Context, symbol string) (*model.Analysis, error) {
	data, err := s.collector.Collect(ctx, symbol)
	if err != nil {
		return nil, err
	}
	a, err := Analyze(data)
	if err != nil {
		return nil, err
	}

	if err := s.recorder.RecordAnalysis(a); err != nil {
		log.Warn().Err(err).Str("symbol", a.Symbol).Msg("record analysis failed")
	}

	log.Info().
		Str("symbol", a.Symbol).
		Int("score", a.Score.Total).
		Str("band", string(a.Score.Band)).
		Int("red_flags", len(a.Flags.Red)).
		Int("green_flags", len(a.Flags.Green)).
		Msg("analysis complete")
	return a, nil
}

// History returns recorded analyses of symbol, newest first.
func (s *Service) History(symbol string, limit int) ([]recorder.HistoryEntry, error) {
	return s.recorder.History(symbol, limit)
}
