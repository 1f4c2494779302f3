package recorder

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"EquityScope/internal/model"
)

const (
	flagKindRed   = "red"
	flagKindGreen = "green"
)

// SQLiteRecorder persists analysis history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so the menu can read history while the scheduler writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analyses (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp      INTEGER NOT NULL,
			symbol         TEXT NOT NULL,
			source         TEXT,
			total_score    INTEGER NOT NULL,
			band           TEXT NOT NULL,
			pe_points      INTEGER,
			roe_points     INTEGER,
			de_points      INTEGER,
			margin_points  INTEGER,
			growth_points  INTEGER,
			current_price  REAL,
			period_change  REAL,
			volatility     REAL,
			sma7           REAL,
			sma14          REAL,
			pe_ratio       REAL,
			roe            REAL,
			debt_to_equity REAL,
			profit_margin  REAL,
			revenue_growth REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_symbol_ts ON analyses(symbol, timestamp)`,

		`CREATE TABLE IF NOT EXISTS analysis_flags (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			analysis_id INTEGER NOT NULL REFERENCES analyses(id),
			kind        TEXT NOT NULL,
			tag         TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_flags_analysis ON analysis_flags(analysis_id)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordAnalysis stores the analysis row and its flags in one transaction.
func (r *SQLiteRecorder) RecordAnalysis(a *model.Analysis) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var price, change, vol, sma7, sma14 *float64
	if ind := a.Indicators; ind != nil {
		price = model.Float(ind.CurrentPrice)
		change = model.Float(ind.PeriodChange)
		vol, sma7, sma14 = ind.Volatility, ind.SMA7, ind.SMA14
	}
	f := a.Fundamentals
	s := a.Score

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`INSERT INTO analyses
		(timestamp, symbol, source, total_score, band,
		 pe_points, roe_points, de_points, margin_points, growth_points,
		 current_price, period_change, volatility, sma7, sma14,
		 pe_ratio, roe, debt_to_equity, profit_margin, revenue_growth)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		a.AnalyzedAt.Unix(), a.Symbol, a.Source, s.Total, string(s.Band),
		s.PE.Points, s.ROE.Points, s.DebtToEquity.Points, s.Margin.Points, s.Growth.Points,
		nullable(price), nullable(change), nullable(vol), nullable(sma7), nullable(sma14),
		nullable(f.PERatio), nullable(f.ROE), nullable(f.DebtToEquity),
		nullable(f.ProfitMargin), nullable(f.RevenueGrowth),
	)
	if err != nil {
		return fmt.Errorf("insert analysis: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("last insert id: %w", err)
	}

	insertFlags := func(kind string, flags []model.Flag) error {
		for _, fl := range flags {
			if _, err := tx.Exec(`INSERT INTO analysis_flags (analysis_id, kind, tag) VALUES (?,?,?)`,
				id, kind, string(fl.Tag)); err != nil {
				return fmt.Errorf("insert flag %s: %w", fl.Tag, err)
			}
		}
		return nil
	}
	if err := insertFlags(flagKindRed, a.Flags.Red); err != nil {
		return err
	}
	if err := insertFlags(flagKindGreen, a.Flags.Green); err != nil {
		return err
	}
	return tx.Commit()
}

// History returns up to limit past analyses of symbol, newest first.
func (r *SQLiteRecorder) History(symbol string, limit int) ([]HistoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if limit <= 0 {
		limit = 10
	}
	rows, err := r.db.Query(`SELECT id, timestamp, symbol, source, total_score, band,
		current_price, period_change, volatility,
		pe_ratio, roe, debt_to_equity, profit_margin, revenue_growth
		FROM analyses WHERE symbol = ? ORDER BY timestamp DESC, id DESC LIMIT ?`, symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []HistoryEntry
	for rows.Next() {
		var (
			e        HistoryEntry
			ts       int64
			source   sql.NullString
			band     string
			nullable [8]sql.NullFloat64
		)
		if err := rows.Scan(&e.ID, &ts, &e.Symbol, &source, &e.TotalScore, &band,
			&nullable[0], &nullable[1], &nullable[2],
			&nullable[3], &nullable[4], &nullable[5], &nullable[6], &nullable[7]); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		e.AnalyzedAt = time.Unix(ts, 0).UTC()
		e.Source = source.String
		e.Band = model.ScoreBand(band)
		e.CurrentPrice = nullFloat(nullable[0])
		e.PeriodChange = nullFloat(nullable[1])
		e.Volatility = nullFloat(nullable[2])
		e.PERatio = nullFloat(nullable[3])
		e.ROE = nullFloat(nullable[4])
		e.DebtToEquity = nullFloat(nullable[5])
		e.ProfitMargin = nullFloat(nullable[6])
		e.RevenueGrowth = nullFloat(nullable[7])
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		if err := r.loadFlags(&out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *SQLiteRecorder) loadFlags(e *HistoryEntry) error {
	rows, err := r.db.Query(`SELECT kind, tag FROM analysis_flags WHERE analysis_id = ? ORDER BY id`, e.ID)
	if err != nil {
		return fmt.Errorf("query flags: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var kind, tag string
		if err := rows.Scan(&kind, &tag); err != nil {
			return fmt.Errorf("scan flag: %w", err)
		}
		if kind == flagKindRed {
			e.RedFlags = append(e.RedFlags, model.FlagTag(tag))
		} else {
			e.GreenFlags = append(e.GreenFlags, model.FlagTag(tag))
		}
	}
	return rows.Err()
}

// nullable maps a missing value to SQL NULL.
func nullable(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func nullFloat(n sql.NullFloat64) *float64 {
	if !n.Valid {
		return nil
	}
	return model.Float(n.Float64)
}

func (r *SQLiteRecorder) Close() error {
	log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}
