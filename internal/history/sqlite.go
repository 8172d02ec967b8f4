package history

import (
	"context"
	"database/sql"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// SQLitePort persists the slot in a key-value table using modernc.org/sqlite.
type SQLitePort struct {
	db *sql.DB
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS kv_slots (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);
`

// NewSQLitePort opens (or creates) a SQLite database at dsn, configures WAL
// mode, and ensures the slot table exists.
func NewSQLitePort(ctx context.Context, dsn string) (*SQLitePort, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "history: open sqlite")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "history: exec %s", pragma)
		}
	}
	if _, err := db.ExecContext(ctx, sqliteMigration); err != nil {
		db.Close()
		return nil, eris.Wrap(err, "history: migrate")
	}
	return &SQLitePort{db: db}, nil
}

func (p *SQLitePort) Load(ctx context.Context) ([]byte, error) {
	var value string
	err := p.db.QueryRowContext(ctx,
		`SELECT value FROM kv_slots WHERE key = ?`, SlotKey,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "history: select slot")
	}
	return []byte(value), nil
}

func (p *SQLitePort) Save(ctx context.Context, data []byte) error {
	_, err := p.db.ExecContext(ctx,
		`INSERT INTO kv_slots (key, value, updated_at) VALUES (?, ?, datetime('now'))
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		SlotKey, string(data),
	)
	return eris.Wrap(err, "history: upsert slot")
}

// Close releases the underlying database handle.
func (p *SQLitePort) Close() error {
	return p.db.Close()
}
