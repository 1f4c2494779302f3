package main

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"EquityScope/internal/analyzer"
	"EquityScope/internal/collector"
	"EquityScope/internal/config"
	"EquityScope/internal/recorder"
	"EquityScope/internal/reports"
)

// app holds the wired collaborators shared by every command.
type app struct {
	service  *analyzer.Service
	store    *reports.Store
	recorder recorder.Recorder
}

func newApp(cfg *config.Config) (*app, error) {
	fetcher, err := newFetcher(cfg)
	if err != nil {
		return nil, err
	}
	log.Info().Str("source", fetcher.Name()).Msg("data source ready")

	rec := newRecorder(cfg.Database.SQLitePath)
	col := collector.NewCollector(fetcher, cfg.DataSource.HistoryDays)
	return &app{
		service:  analyzer.NewService(col, rec),
		store:    reports.NewStore(cfg.Reports.Dir),
		recorder: rec,
	}, nil
}

func (a *app) Close() {
	if err := a.recorder.Close(); err != nil {
		log.Warn().Err(err).Msg("close recorder")
	}
}

func newFetcher(cfg *config.Config) (collector.Fetcher, error) {
	ds := cfg.DataSource
	switch ds.Provider {
	case config.ProviderYahoo:
		return collector.NewYahooFetcher(cfg.Proxy, ds.RequestsPerSecond), nil
	case config.ProviderREST:
		return collector.NewRESTFetcher(ds.BaseURL, ds.APIKey, cfg.Proxy), nil
	case config.ProviderMock:
		return &collector.MockFetcher{Price: 1000}, nil
	default:
		return nil, fmt.Errorf("unknown data source provider %q", ds.Provider)
	}
}

// newRecorder falls back to the no-op recorder when SQLite is not configured
// or cannot be opened.
func newRecorder(path string) recorder.Recorder {
	if path == "" {
		return recorder.NewNoopRecorder()
	}
	sr, err := recorder.NewSQLiteRecorder(path)
	if err != nil {
		log.Warn().Err(err).Msg("init sqlite recorder failed, using noop")
		return recorder.NewNoopRecorder()
	}
	return sr
}
