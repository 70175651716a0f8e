package eventlog

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Mavwarf/standby/internal/audio"
)

// Compile-time interface checks.
var (
	_ Store = (*FileStore)(nil)
	_ Store = (*SQLiteStore)(nil)
)

// storeFactories runs each behavioural test against both backends.
var storeFactories = map[string]func(t *testing.T) Store{
	"file": func(t *testing.T) Store {
		return NewFileStore(filepath.Join(t.TempDir(), "standby.log"))
	},
	"sqlite": func(t *testing.T) Store {
		t.Helper()
		s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "standby.db"))
		if err != nil {
			t.Fatal(err)
		}
		t.Cleanup(func() { s.Close() })
		return s
	},
}

func forEachStore(t *testing.T, fn func(t *testing.T, s Store)) {
	for name, factory := range storeFactories {
		t.Run(name, func(t *testing.T) {
			fn(t, factory(t))
		})
	}
}

func TestStoreEmpty(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		entries, err := s.Entries(0)
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 0 {
			t.Errorf("expected no entries, got %d", len(entries))
		}
	})
}

func TestStoreLogPulse(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		if err := s.LogPulse(audio.DefaultTone()); err != nil {
			t.Fatal(err)
		}
		entries, err := s.Entries(0)
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 1 {
			t.Fatalf("expected 1 entry, got %d", len(entries))
		}
		if entries[0].Kind != KindPulse {
			t.Errorf("kind = %v, want pulse", entries[0].Kind)
		}
		if !strings.Contains(entries[0].Detail, "frequency=60") {
			t.Errorf("detail = %q", entries[0].Detail)
		}
		if time.Since(entries[0].Time) > time.Minute {
			t.Errorf("timestamp %v is not recent", entries[0].Time)
		}
	})
}

func TestStoreOrderAndKinds(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		if err := s.LogSkip("paused"); err != nil {
			t.Fatal(err)
		}
		if err := s.LogPulse(audio.DefaultTone()); err != nil {
			t.Fatal(err)
		}
		if err := s.LogBuild(Build{Source: "a.png", Output: "out", Files: 6}); err != nil {
			t.Fatal(err)
		}

		entries, err := s.Entries(1)
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 3 {
			t.Fatalf("expected 3 entries, got %d", len(entries))
		}
		want := []EntryKind{KindSkip, KindPulse, KindBuild}
		for i, e := range entries {
			if e.Kind != want[i] {
				t.Errorf("entry %d kind = %v, want %v", i, e.Kind, want[i])
			}
		}
		if entries[0].Detail != `reason="paused"` {
			t.Errorf("skip detail = %q", entries[0].Detail)
		}
	})
}

func TestStorePath(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		if s.Path() == "" {
			t.Error("Path() is empty")
		}
	})
}

func TestFileStoreCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "standby.log")
	s := NewFileStore(path)
	if err := s.LogSkip("x"); err != nil {
		t.Fatalf("LogSkip: %v", err)
	}
	entries, _ := s.Entries(0)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
}

func TestSQLiteStoreReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "standby.db")
	s, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.LogPulse(audio.DefaultTone()); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s2, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	entries, err := s2.Entries(0)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry after reopen, got %d", len(entries))
	}
}

func TestSQLiteStoreCutoffIgnoresOffset(t *testing.T) {
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "standby.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	cutoff := DayCutoff(1)
	east := time.FixedZone("east", 2*3600)
	west := time.FixedZone("west", -5*3600)

	// Written with a different offset than the cutoff, as happens across a
	// DST change.
	if err := s.insertAt(cutoff.Add(-30*time.Minute).In(east), KindPulse, "before"); err != nil {
		t.Fatal(err)
	}
	if err := s.insertAt(cutoff.Add(30*time.Minute).In(west), KindPulse, "after"); err != nil {
		t.Fatal(err)
	}

	entries, err := s.Entries(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Detail != "after" {
		t.Fatalf("entries = %+v, want only the one after the cutoff", entries)
	}
	if want := cutoff.Add(30 * time.Minute); !entries[0].Time.Equal(want) {
		t.Errorf("time = %v, want %v", entries[0].Time, want)
	}

	var raw string
	if err := s.db.QueryRow(`SELECT timestamp FROM events ORDER BY id LIMIT 1`).Scan(&raw); err != nil {
		t.Fatal(err)
	}
	if !strings.HasSuffix(raw, "Z") {
		t.Errorf("stored timestamp %q is not UTC", raw)
	}
}
