// Package dashboard serves the pulse history page shown in the desktop app.
package dashboard

import (
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/Mavwarf/standby/internal/eventlog"
)

// DefaultDays is the history window used when the request does not name one.
const DefaultDays = 7

// errOut receives response-writing failures, which cannot be reported to the
// client once the body has started.
var errOut io.Writer = os.Stderr

type jsonEntry struct {
	Time   string `json:"time"`
	Kind   string `json:"kind"`
	Detail string `json:"detail,omitempty"`
}

func entryToJSON(e eventlog.Entry) jsonEntry {
	return jsonEntry{
		Time:   e.Time.Format(time.RFC3339),
		Kind:   e.Kind.String(),
		Detail: e.Detail,
	}
}

type pageData struct {
	Days    int
	Pulses  int
	Skips   int
	Builds  int
	Entries []eventlog.Entry // newest first
	Storage string
}

var page = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>standby</title>
<style>
body{background:#1a1b26;color:#c0caf5;font-family:system-ui,sans-serif;margin:2em}
table{border-collapse:collapse;width:100%}
td,th{padding:.3em .6em;text-align:left;border-bottom:1px solid #292e42}
.pulse{color:#9ece6a}.skip{color:#e0af68}.build{color:#7aa2f7}
</style></head><body>
<h1>standby</h1>
<p>Last {{.Days}} days: {{.Pulses}} pulses, {{.Skips}} skipped, {{.Builds}} icon builds. Log: {{.Storage}}</p>
<table><tr><th>Time</th><th>Kind</th><th>Detail</th></tr>
{{range .Entries}}<tr><td>{{.Time.Format "2006-01-02 15:04:05"}}</td><td class="{{.Kind}}">{{.Kind}}</td><td>{{.Detail}}</td></tr>
{{else}}<tr><td colspan="3">No events yet.</td></tr>
{{end}}</table>
</body></html>
`))

// Handler serves "/" (HTML history) and "/api/history" (JSON) from store.
// Both accept ?days=N; 0 means everything.
func Handler(store eventlog.Store) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", handleIndex(store))
	mux.HandleFunc("/api/history", handleHistory(store))
	return mux
}

func daysParam(r *http.Request) int {
	if d := r.URL.Query().Get("days"); d != "" {
		if v, err := strconv.Atoi(d); err == nil && v >= 0 {
			return v
		}
	}
	return DefaultDays
}

func handleIndex(store eventlog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		days := daysParam(r)
		entries, err := store.Entries(days)
		if err != nil {
			http.Error(w, "reading event log: "+err.Error(), http.StatusInternalServerError)
			return
		}

		data := pageData{Days: days, Storage: store.Path()}
		for _, e := range entries {
			switch e.Kind {
			case eventlog.KindPulse:
				data.Pulses++
			case eventlog.KindSkip:
				data.Skips++
			case eventlog.KindBuild:
				data.Builds++
			}
		}
		data.Entries = slices.Clone(entries)
		slices.Reverse(data.Entries)

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := page.Execute(w, data); err != nil {
			fmt.Fprintf(errOut, "dashboard: %v\n", err)
		}
	}
}

func handleHistory(store eventlog.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		entries, err := store.Entries(daysParam(r))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		out := make([]jsonEntry, len(entries))
		for i, e := range entries {
			out[i] = entryToJSON(e)
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(out); err != nil {
			fmt.Fprintf(errOut, "dashboard: %v\n", err)
		}
	}
}
