package dashboard

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Mavwarf/standby/internal/audio"
	"github.com/Mavwarf/standby/internal/eventlog"
)

func seededStore(t *testing.T) eventlog.Store {
	t.Helper()
	s := eventlog.NewFileStore(filepath.Join(t.TempDir(), "standby.log"))
	if err := s.LogPulse(audio.DefaultTone()); err != nil {
		t.Fatal(err)
	}
	if err := s.LogSkip("paused"); err != nil {
		t.Fatal(err)
	}
	if err := s.LogBuild(eventlog.Build{Source: "logo.webp", Output: "mac_iconset", Files: 6}); err != nil {
		t.Fatal(err)
	}
	return s
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestIndexRendersHistory(t *testing.T) {
	rec := get(t, Handler(seededStore(t)), "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "1 pulses, 1 skipped, 1 icon builds") {
		t.Errorf("summary missing from body:\n%s", body)
	}
	// Newest first: the build row precedes the pulse row.
	if strings.Index(body, `class="build"`) > strings.Index(body, `class="pulse"`) {
		t.Error("entries are not newest first")
	}
	// html/template escapes the quoted detail values.
	if !strings.Contains(body, "source=&#34;logo.webp&#34;") {
		t.Errorf("escaped build detail missing:\n%s", body)
	}
}

func TestIndexEmptyStore(t *testing.T) {
	s := eventlog.NewFileStore(filepath.Join(t.TempDir(), "standby.log"))
	rec := get(t, Handler(s), "/")
	if !strings.Contains(rec.Body.String(), "No events yet.") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestIndexUnknownPath(t *testing.T) {
	rec := get(t, Handler(seededStore(t)), "/nope")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestHistoryJSON(t *testing.T) {
	rec := get(t, Handler(seededStore(t)), "/api/history?days=1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var out []jsonEntry
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 3 {
		t.Fatalf("entries = %d, want 3", len(out))
	}
	if out[0].Kind != "pulse" || out[1].Kind != "skip" || out[2].Kind != "build" {
		t.Errorf("kinds = %s, %s, %s", out[0].Kind, out[1].Kind, out[2].Kind)
	}
}

// failingStore returns an error from every read.
type failingStore struct{ eventlog.Store }

func (failingStore) Entries(int) ([]eventlog.Entry, error) { return nil, errors.New("disk gone") }
func (failingStore) Path() string                         { return "" }

func TestHistoryStoreError(t *testing.T) {
	rec := get(t, Handler(failingStore{}), "/api/history")
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	rec = get(t, Handler(failingStore{}), "/")
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("index status = %d, want 500", rec.Code)
	}
}

func TestDaysParam(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"", DefaultDays},
		{"?days=0", 0},
		{"?days=30", 30},
		{"?days=-1", DefaultDays},
		{"?days=abc", DefaultDays},
	}
	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodGet, "/"+tt.query, nil)
		if got := daysParam(r); got != tt.want {
			t.Errorf("daysParam(%q) = %d, want %d", tt.query, got, tt.want)
		}
	}
}

// brokenWriter accepts headers but fails every body write.
type brokenWriter struct {
	header http.Header
}

func (w *brokenWriter) Header() http.Header {
	if w.header == nil {
		w.header = http.Header{}
	}
	return w.header
}

func (w *brokenWriter) Write([]byte) (int, error) { return 0, errors.New("connection reset") }
func (w *brokenWriter) WriteHeader(int)           {}

func TestWriteFailuresAreReported(t *testing.T) {
	var buf bytes.Buffer
	old := errOut
	errOut = &buf
	t.Cleanup(func() { errOut = old })

	h := Handler(seededStore(t))
	for _, target := range []string{"/", "/api/history"} {
		buf.Reset()
		h.ServeHTTP(&brokenWriter{}, httptest.NewRequest(http.MethodGet, target, nil))
		if !strings.Contains(buf.String(), "dashboard: ") || !strings.Contains(buf.String(), "connection reset") {
			t.Errorf("%s: diagnostics = %q, want dashboard: ... connection reset", target, buf.String())
		}
	}
}
