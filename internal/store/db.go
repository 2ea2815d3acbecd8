// Package store provides SQLite-backed persistence: dataset JSON,
// market snapshots, the event log, and engine metadata. It plays the
// settings-store role the host platform supplied in the original
// add-on.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/tradewinds/internal/pricing"
	"github.com/talgya/tradewinds/internal/trade"
)

// DB wraps a SQLite connection.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS datasets (
		name TEXT PRIMARY KEY,
		raw TEXT NOT NULL,
		loaded_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS snapshots (
		settlement TEXT NOT NULL,
		season TEXT NOT NULL,
		dataset TEXT NOT NULL,
		raw TEXT NOT NULL,
		created_at TEXT NOT NULL,
		PRIMARY KEY (settlement, season, dataset)
	);

	CREATE TABLE IF NOT EXISTS events (
		id TEXT PRIMARY KEY,
		ts TEXT NOT NULL,
		kind TEXT NOT NULL,
		description TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_ts ON events(ts);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// SaveDataset stores (or replaces) a dataset's raw JSON.
func (db *DB) SaveDataset(name string, raw []byte) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO datasets (name, raw, loaded_at) VALUES (?, ?, ?)",
		name, string(raw), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save dataset %s: %w", name, err)
	}
	return nil
}

// LoadDatasets returns the raw JSON of every stored dataset by name.
func (db *DB) LoadDatasets() (map[string][]byte, error) {
	rows := []struct {
		Name string `db:"name"`
		Raw  string `db:"raw"`
	}{}
	if err := db.conn.Select(&rows, "SELECT name, raw FROM datasets"); err != nil {
		return nil, fmt.Errorf("load datasets: %w", err)
	}

	out := make(map[string][]byte, len(rows))
	for _, r := range rows {
		out[r.Name] = []byte(r.Raw)
	}
	return out, nil
}

// SaveSnapshot stores a market view for later inspection.
func (db *DB) SaveSnapshot(datasetName string, view pricing.MarketView) error {
	raw, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	_, err = db.conn.Exec(
		`INSERT OR REPLACE INTO snapshots (settlement, season, dataset, raw, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		view.Settlement, string(view.Season), datasetName, string(raw),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot returns a stored market view, reporting whether one
// exists for the settlement/season/dataset triple.
func (db *DB) LoadSnapshot(datasetName, settlement string, season trade.Season) (pricing.MarketView, bool, error) {
	var raw string
	err := db.conn.Get(&raw,
		"SELECT raw FROM snapshots WHERE settlement = ? AND season = ? AND dataset = ?",
		settlement, string(season), datasetName,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return pricing.MarketView{}, false, nil
	}
	if err != nil {
		return pricing.MarketView{}, false, fmt.Errorf("load snapshot: %w", err)
	}

	var view pricing.MarketView
	if err := json.Unmarshal([]byte(raw), &view); err != nil {
		return pricing.MarketView{}, false, fmt.Errorf("decode snapshot: %w", err)
	}
	return view, true, nil
}

// Event is one logged engine event.
type Event struct {
	ID          string `db:"id" json:"id"`
	TS          string `db:"ts" json:"ts"`
	Kind        string `db:"kind" json:"kind"`
	Description string `db:"description" json:"description"`
}

// LogEvent appends an event to the log.
func (db *DB) LogEvent(kind, description string) error {
	_, err := db.conn.Exec(
		"INSERT INTO events (id, ts, kind, description) VALUES (?, ?, ?, ?)",
		uuid.NewString(), time.Now().UTC().Format(time.RFC3339Nano), kind, description,
	)
	if err != nil {
		return fmt.Errorf("log event: %w", err)
	}
	return nil
}

// RecentEvents returns the most recent events, newest first.
func (db *DB) RecentEvents(limit int) ([]Event, error) {
	var events []Event
	err := db.conn.Select(&events,
		"SELECT id, ts, kind, description FROM events ORDER BY ts DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("recent events: %w", err)
	}
	return events, nil
}

// SetMeta stores a key-value pair.
func (db *DB) SetMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)", key, value)
	return err
}

// GetMeta retrieves a metadata value; missing keys return "".
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM meta WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	return value, err
}
