package eventlog

import (
	"fmt"
	"strings"
	"time"

	"github.com/Mavwarf/standby/internal/audio"
)

// EntryKind classifies a log entry.
type EntryKind int

const (
	KindPulse EntryKind = iota
	KindSkip
	KindBuild
	KindOther
)

var kindNames = [...]string{"pulse", "skip", "build", "other"}

func (k EntryKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "other"
	}
	return kindNames[k]
}

func parseKind(s string) EntryKind {
	for i, name := range kindNames {
		if name == s {
			return EntryKind(i)
		}
	}
	return KindOther
}

// Entry is a single logged event.
type Entry struct {
	Time   time.Time
	Kind   EntryKind
	Detail string
}

// Build summarises one icon set build.
type Build struct {
	Source  string
	Output  string
	Files   int // resized images written
	Aliases int // @2x copies written
	Skipped int // aliases whose source was missing
}

func pulseDetail(t audio.Tone) string {
	return fmt.Sprintf("frequency=%g duration=%s amplitude=%g sample_rate=%d",
		t.Frequency, t.Duration, t.Amplitude, t.SampleRate)
}

func buildDetail(b Build) string {
	return fmt.Sprintf("source=%q output=%q files=%d aliases=%d skipped=%d",
		b.Source, b.Output, b.Files, b.Aliases, b.Skipped)
}

func skipDetail(reason string) string {
	return fmt.Sprintf("reason=%q", reason)
}

// formatLine renders one log line: timestamp, kind, detail separated by two
// spaces.
func formatLine(ts time.Time, kind EntryKind, detail string) string {
	return fmt.Sprintf("%s  kind=%s  %s\n", ts.Format(time.RFC3339), kind, detail)
}

// ParseEntries parses log content written by FileStore. Malformed lines are
// silently skipped.
func ParseEntries(content string) []Entry {
	var entries []Entry
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, "  ", 3)
		if len(parts) < 2 {
			continue
		}
		ts, err := time.Parse(time.RFC3339, parts[0])
		if err != nil {
			continue
		}
		kind, ok := strings.CutPrefix(parts[1], "kind=")
		if !ok {
			continue
		}
		e := Entry{Time: ts, Kind: parseKind(kind)}
		if len(parts) == 3 {
			e.Detail = parts[2]
		}
		entries = append(entries, e)
	}
	return entries
}

// DayCutoff returns local midnight at the start of the window covering the
// last n calendar days, today included.
func DayCutoff(days int) time.Time {
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return midnight.AddDate(0, 0, -(days - 1))
}

func filterSince(entries []Entry, cutoff time.Time) []Entry {
	var out []Entry
	for _, e := range entries {
		if !e.Time.Before(cutoff) {
			out = append(out, e)
		}
	}
	return out
}
