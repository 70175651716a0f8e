package eventlog

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Mavwarf/standby/internal/audio"
	"github.com/Mavwarf/standby/internal/paths"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens (or creates) a SQLite database at path and creates
// the schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), paths.DirPerm); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite pragma: %w", err)
	}

	ddl := `
CREATE TABLE IF NOT EXISTS events (
    id        INTEGER PRIMARY KEY AUTOINCREMENT,
    timestamp TEXT    NOT NULL,
    kind      INTEGER NOT NULL,
    detail    TEXT    NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_events_timestamp ON events(timestamp DESC);
`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite schema: %w", err)
	}

	return &SQLiteStore{db: db, path: path}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// dbTime formats t for the timestamp column. Always UTC so that string
// order matches time order across offset changes.
func dbTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func (s *SQLiteStore) insert(kind EntryKind, detail string) error {
	return s.insertAt(time.Now(), kind, detail)
}

func (s *SQLiteStore) insertAt(ts time.Time, kind EntryKind, detail string) error {
	_, err := s.db.Exec(
		`INSERT INTO events (timestamp, kind, detail) VALUES (?, ?, ?)`,
		dbTime(ts), int(kind), detail,
	)
	return err
}

func (s *SQLiteStore) LogPulse(t audio.Tone) error {
	return s.insert(KindPulse, pulseDetail(t))
}

func (s *SQLiteStore) LogSkip(reason string) error {
	return s.insert(KindSkip, skipDetail(reason))
}

func (s *SQLiteStore) LogBuild(b Build) error {
	return s.insert(KindBuild, buildDetail(b))
}

func (s *SQLiteStore) Entries(days int) ([]Entry, error) {
	query := `SELECT timestamp, kind, detail FROM events`
	var args []any
	if days > 0 {
		query += ` WHERE timestamp >= ?`
		args = append(args, dbTime(DayCutoff(days)))
	}
	query += ` ORDER BY id`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var tsStr, detail string
		var kind int
		if err := rows.Scan(&tsStr, &kind, &detail); err != nil {
			return nil, err
		}
		ts, err := time.Parse(time.RFC3339, tsStr)
		if err != nil {
			continue
		}
		entries = append(entries, Entry{Time: ts.Local(), Kind: EntryKind(kind), Detail: detail})
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) Path() string {
	return s.path
}
