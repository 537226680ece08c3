package persist

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS events (
	id                TEXT PRIMARY KEY,
	date              TEXT NOT NULL,
	start_time        TEXT NOT NULL,
	end_time          TEXT NOT NULL,
	title             TEXT NOT NULL DEFAULT '',
	color             TEXT NOT NULL DEFAULT '',
	tags              TEXT NOT NULL DEFAULT '[]',
	description       TEXT NOT NULL DEFAULT '',
	address           TEXT NOT NULL DEFAULT '',
	attachments       TEXT NOT NULL DEFAULT '[]',
	complexity        TEXT NOT NULL DEFAULT '',
	confirmed         INTEGER NOT NULL DEFAULT 0,
	from_note_id      TEXT NOT NULL DEFAULT '',
	contact           TEXT NOT NULL DEFAULT '',
	contact_name      TEXT NOT NULL DEFAULT '',
	contact_last_name TEXT NOT NULL DEFAULT '',
	contact_role      TEXT NOT NULL DEFAULT '',
	contact_phone     TEXT NOT NULL DEFAULT '',
	contact_email     TEXT NOT NULL DEFAULT '',
	contact_notes     TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_events_date ON events(date);

CREATE TABLE IF NOT EXISTS notes (
	id                TEXT PRIMARY KEY,
	title             TEXT NOT NULL DEFAULT '',
	color             TEXT NOT NULL DEFAULT '',
	tags              TEXT NOT NULL DEFAULT '[]',
	description       TEXT NOT NULL DEFAULT '',
	archived          INTEGER NOT NULL DEFAULT 0,
	status            TEXT NOT NULL DEFAULT 'idea',
	collab_profiles   TEXT NOT NULL DEFAULT '[]',
	linked_collab_ids TEXT NOT NULL DEFAULT '[]',
	address           TEXT NOT NULL DEFAULT '',
	attachments       TEXT NOT NULL DEFAULT '[]',
	complexity        TEXT NOT NULL DEFAULT '',
	keep_in_scratch   INTEGER NOT NULL DEFAULT 0,
	sort_order        INTEGER NOT NULL DEFAULT 0,
	created_at        DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	contact           TEXT NOT NULL DEFAULT '',
	contact_name      TEXT NOT NULL DEFAULT '',
	contact_last_name TEXT NOT NULL DEFAULT '',
	contact_role      TEXT NOT NULL DEFAULT '',
	contact_phone     TEXT NOT NULL DEFAULT '',
	contact_email     TEXT NOT NULL DEFAULT '',
	contact_notes     TEXT NOT NULL DEFAULT ''
);
`

// DB is the SQLite-backed Persister.
type DB struct {
	conn *sql.DB
}

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("persist: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("persist: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("persist: apply schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// NewDB wraps an already-open connection whose schema is managed elsewhere.
func NewDB(conn *sql.DB) *DB {
	return &DB{conn: conn}
}

// Ping checks the connection.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
