package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"

	_ "modernc.org/sqlite"

	"CoinPilot/internal/model"
)

// SQLiteRecorder persists cycle history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboards can read while the bot writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS cycles (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			cycle           INTEGER NOT NULL,
			timestamp       INTEGER NOT NULL,
			outcome         TEXT,
			winner_id       TEXT,
			winner_symbol   TEXT,
			winner_score    REAL,
			sentiment       REAL,
			samples         INTEGER,
			breakout        INTEGER,
			volume_spike    INTEGER,
			portfolio_value REAL,
			cash            REAL,
			profit_loss     REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_cycles_ts ON cycles(timestamp)`,

		`CREATE TABLE IF NOT EXISTS trades (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			cycle     INTEGER NOT NULL,
			timestamp INTEGER NOT NULL,
			action    TEXT,
			asset_id  TEXT,
			symbol    TEXT,
			amount    REAL,
			price     REAL,
			proceeds  REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_trades_ts ON trades(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordCycle(rec *model.CycleRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	ts := rec.Time.Unix()
	_, err := r.db.Exec(`INSERT INTO cycles
		(cycle, timestamp, outcome, winner_id, winner_symbol, winner_score,
		 sentiment, samples, breakout, volume_spike,
		 portfolio_value, cash, profit_loss)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		rec.Cycle, ts, string(rec.Outcome), rec.WinnerID, rec.WinnerSymbol, rec.WinnerScore,
		rec.Sentiment, rec.Samples, boolToInt(rec.Breakout), boolToInt(rec.VolumeSpike),
		rec.PortfolioValue, rec.Cash, rec.ProfitLoss,
	)
	if err != nil {
		return err
	}

	for _, t := range rec.Trades {
		if t.Action == model.ActionRefresh {
			continue // price marks are not trades
		}
		if _, err := r.db.Exec(`INSERT INTO trades
			(cycle, timestamp, action, asset_id, symbol, amount, price, proceeds)
			VALUES (?,?,?,?,?,?,?,?)`,
			rec.Cycle, ts, string(t.Action), t.AssetID, t.Symbol, t.Amount, t.Price, t.Proceeds,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
