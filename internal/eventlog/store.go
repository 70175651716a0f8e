package eventlog

import (
	"fmt"

	"github.com/Mavwarf/standby/internal/audio"
	"github.com/Mavwarf/standby/internal/paths"
)

// Store abstracts event log storage: a flat log file or a SQLite database.
type Store interface {
	// Write
	LogPulse(t audio.Tone) error
	LogSkip(reason string) error
	LogBuild(b Build) error

	// Read
	Entries(days int) ([]Entry, error) // oldest first, 0 = all

	Path() string
	Close() error
}

// Open returns the store for the given backend name inside the data
// directory: "file" (or "") → standby.log, "sqlite" → standby.db.
func Open(storage string) (Store, error) {
	switch storage {
	case "", "file":
		return NewFileStore(paths.InDataDir(paths.LogFileName)), nil
	case "sqlite":
		s, err := NewSQLiteStore(paths.InDataDir(paths.DBFileName))
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("eventlog: unknown storage %q", storage)
	}
}
