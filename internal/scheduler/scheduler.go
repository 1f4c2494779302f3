package scheduler

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"EquityScope/internal/analyzer"
	"EquityScope/internal/collector"
	"EquityScope/internal/model"
	"EquityScope/internal/notifier"
	"EquityScope/internal/recorder"
)

const (
	sendRetries         = 3
	defaultHistoryLimit = 10
)

// MarketTimezone is the zone cron expressions are evaluated in.
const MarketTimezone = "Asia/Kolkata"

// Analyzer is the analysis surface the scheduler drives.
type Analyzer interface {
	AnalyzeSymbol(ctx context.Context, symbol string) (*model.Analysis, error)
	Compare(ctx context.Context, symbols []string) ([]model.ComparisonEntry, error)
	History(symbol string, limit int) ([]recorder.HistoryEntry, error)
}

// Sender delivers chat messages.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// ReportSaver persists report text.
type ReportSaver interface {
	Save(symbol, text string) (string, error)
}

// Scheduler manages the watchlist cron task and chat commands.
type Scheduler struct {
	Cron      *cron.Cron
	Analyzer  Analyzer
	Notifier  Sender
	Reports   ReportSaver
	Watchlist []string
	Ctx       context.Context

	jobs sync.WaitGroup
}

// NewScheduler creates a new Scheduler. reports may be nil.
func NewScheduler(ctx context.Context, an Analyzer, sender Sender, reports ReportSaver, watchlist []string) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds(), cron.WithLocation(marketLocation())),
		Analyzer:  an,
		Notifier:  sender,
		Reports:   reports,
		Watchlist: watchlist,
		Ctx:       ctx,
	}
}

func marketLocation() *time.Location {
	loc, err := time.LoadLocation(MarketTimezone)
	if err != nil {
		log.Warn().Err(err).Msg("timezone data unavailable, using fixed IST offset")
		return time.FixedZone("IST", 5*60*60+30*60)
	}
	return loc
}

// Register adds the watchlist job.
func (s *Scheduler) Register(watchlistCron string) error {
	if _, err := s.Cron.AddFunc(watchlistCron, s.watchlistTask); err != nil {
		return fmt.Errorf("register watchlist task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Info().Int("watchlist", len(s.Watchlist)).Msg("scheduler started")
}

// Stop stops the cron scheduler and waits for running jobs, including
// watchlist runs started with RunWatchlistAsync, to finish.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.jobs.Wait()
	log.Info().Msg("scheduler stopped")
}

// RunWatchlistNow executes the watchlist task immediately.
func (s *Scheduler) RunWatchlistNow() {
	s.watchlistTask()
}

// RunWatchlistAsync starts the watchlist task in the background. Stop waits
// for it.
func (s *Scheduler) RunWatchlistAsync() {
	s.jobs.Add(1)
	go func() {
		defer s.jobs.Done()
		s.watchlistTask()
	}()
}

// AnalyzeWatchlist analyses every watchlist symbol in order. Failures are kept
// per entry.
func (s *Scheduler) AnalyzeWatchlist(ctx context.Context) []model.ComparisonEntry {
	entries := make([]model.ComparisonEntry, 0, len(s.Watchlist))
	for _, sym := range s.Watchlist {
		if ctx.Err() != nil {
			break
		}
		a, err := s.Analyzer.AnalyzeSymbol(ctx, sym)
		if err != nil {
			log.Error().Err(err).Str("symbol", sym).Bool("retriable", collector.IsRetriable(err)).Msg("watchlist analysis failed")
		} else if s.Reports != nil {
			if _, serr := s.Reports.Save(a.Symbol, notifier.FormatAnalysisReport(a)); serr != nil {
				log.Warn().Err(serr).Str("symbol", a.Symbol).Msg("save report failed")
			}
		}
		entries = append(entries, model.ComparisonEntry{Symbol: sym, Analysis: a, Err: err})
	}
	return entries
}

func (s *Scheduler) watchlistTask() {
	log.Info().Msg("running watchlist task")
	entries := s.AnalyzeWatchlist(s.Ctx)
	s.trySend(notifier.FormatWatchlistSummary(entries, time.Now()))
}

// HandleCommand processes a chat command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, text string) string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return helpText()
	}
	cmd, _, _ := strings.Cut(strings.ToLower(fields[0]), "@")
	args := fields[1:]

	switch cmd {
	case "/analyze":
		if len(args) != 1 {
			return "Usage: /analyze SYMBOL.NS"
		}
		a, err := s.Analyzer.AnalyzeSymbol(ctx, args[0])
		if err != nil {
			return failure(args[0], err)
		}
		// The daily table does not fit in one chat message.
		brief := *a
		brief.Observations = nil
		return notifier.FormatTelegramReport(notifier.FormatAnalysisReport(&brief))

	case "/compare":
		entries, err := s.Analyzer.Compare(ctx, args)
		if err != nil {
			if errors.Is(err, analyzer.ErrCompareSize) {
				return "Usage: /compare SYM1.NS SYM2.NS [up to 5 symbols]"
			}
			return failure(strings.Join(args, " "), err)
		}
		return notifier.FormatTelegramReport(notifier.FormatComparison(entries))

	case "/history":
		if len(args) < 1 || len(args) > 2 {
			return "Usage: /history SYMBOL.NS [count]"
		}
		limit := defaultHistoryLimit
		if len(args) == 2 {
			n, err := strconv.Atoi(args[1])
			if err != nil || n <= 0 {
				return "count must be a positive number"
			}
			limit = n
		}
		sym := collector.NormalizeTicker(args[0])
		hist, err := s.Analyzer.History(sym, limit)
		if err != nil {
			return failure(sym, err)
		}
		return notifier.FormatHistory(sym, hist)

	case "/watchlist":
		if len(s.Watchlist) == 0 {
			return "Watchlist is empty."
		}
		s.RunWatchlistAsync()
		return fmt.Sprintf("Analysing %d watchlist symbols...", len(s.Watchlist))

	default:
		return helpText()
	}
}

func helpText() string {
	return "<b>EquityScope commands</b>\n" +
		"/analyze SYMBOL.NS - full analysis report\n" +
		"/compare A.NS B.NS ... - compare 2 to 5 stocks\n" +
		"/history SYMBOL.NS [count] - recorded scores\n" +
		"/watchlist - analyse the watchlist now\n" +
		"Use .NS for NSE and .BO for BSE listings."
}

func failure(subject string, err error) string {
	prefix := "❌"
	if collector.IsRetriable(err) {
		prefix = "⏳ temporary failure, try again later:"
	}
	return fmt.Sprintf("%s %s: %s", prefix, html.EscapeString(subject), html.EscapeString(err.Error()))
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, sendRetries); err != nil {
		log.Error().Err(err).Msg("send notification")
	}
}
