package recorder

import (
	"database/sql"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"CryptoTracker/internal/model"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists historical data to a SQLite database.
type SQLiteRecorder struct {
	db     *sql.DB
	mu     sync.Mutex
	logger zerolog.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite")
	}

	// WAL lets readers query history while the tracker writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "set WAL mode")
	}

	r := &SQLiteRecorder{db: db, logger: log.With().Str("component", "recorder").Logger()}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "migrate")
	}

	r.logger.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS market_snapshots (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp    INTEGER NOT NULL,
			coin_id      TEXT NOT NULL,
			symbol       TEXT,
			price        REAL,
			change_24h   REAL,
			market_cap   REAL,
			volume_24h   REAL,
			last_updated INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_coin_ts ON market_snapshots(coin_id, timestamp)`,

		`CREATE TABLE IF NOT EXISTS suggestion_runs (
			run_id      TEXT PRIMARY KEY,
			timestamp   INTEGER NOT NULL,
			suggestions INTEGER
		)`,

		`CREATE TABLE IF NOT EXISTS suggestions (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id        TEXT NOT NULL REFERENCES suggestion_runs(run_id),
			rank          INTEGER,
			symbol        TEXT,
			action        TEXT,
			confidence    INTEGER,
			current_price REAL,
			target_price  REAL,
			reasoning     TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_suggestions_run ON suggestions(run_id)`,

		`CREATE TABLE IF NOT EXISTS exchange_quotes (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp        INTEGER NOT NULL,
			from_currency    TEXT,
			to_currency      TEXT,
			min_amount       TEXT,
			amount           TEXT,
			estimated_amount TEXT,
			rate             TEXT,
			custom_amount    INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_quotes_ts ON exchange_quotes(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return errors.Wrapf(err, "exec %q", strings.Join(strings.Fields(s), " ")[:40])
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordSnapshots(snaps []model.AssetSnapshot) error {
	if len(snaps) == 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return errors.Wrap(err, "begin snapshots")
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO market_snapshots
		(timestamp, coin_id, symbol, price, change_24h, market_cap, volume_24h, last_updated)
		VALUES (?,?,?,?,?,?,?,?)`)
	if err != nil {
		return errors.Wrap(err, "prepare snapshots")
	}
	defer stmt.Close()

	now := time.Now().Unix()
	for _, s := range snaps {
		var updated int64
		if !s.LastUpdated.IsZero() {
			updated = s.LastUpdated.Unix()
		}
		if _, err := stmt.Exec(now, s.ID, s.Symbol, s.Price, s.Change24hPct, s.MarketCap, s.Volume24h, updated); err != nil {
			return errors.Wrapf(err, "insert snapshot %s", s.ID)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) RecordSuggestions(run *SuggestionRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return errors.Wrap(err, "begin suggestions")
	}
	defer tx.Rollback()

	runID := run.ID.String()
	if _, err := tx.Exec(`INSERT INTO suggestion_runs (run_id, timestamp, suggestions) VALUES (?,?,?)`,
		runID, run.AnalyzedAt.Unix(), len(run.Recommendations)); err != nil {
		return errors.Wrap(err, "insert run")
	}
	for i, rec := range run.Recommendations {
		if _, err := tx.Exec(`INSERT INTO suggestions
			(run_id, rank, symbol, action, confidence, current_price, target_price, reasoning)
			VALUES (?,?,?,?,?,?,?,?)`,
			runID, i+1, rec.Symbol, string(rec.Action), rec.Confidence,
			rec.CurrentPrice, rec.TargetPrice, rec.ReasoningText(),
		); err != nil {
			return errors.Wrapf(err, "insert suggestion %s", rec.Symbol)
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) RecordQuote(q *model.ExchangeQuote) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO exchange_quotes
		(timestamp, from_currency, to_currency, min_amount, amount, estimated_amount, rate, custom_amount)
		VALUES (?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), q.From, q.To,
		q.MinAmount.String(), q.Amount.String(), q.EstimatedAmount.String(), q.Rate.String(),
		q.CustomAmount,
	)
	return errors.Wrap(err, "insert quote")
}

func (r *SQLiteRecorder) Close() error {
	r.logger.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}
