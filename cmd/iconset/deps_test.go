package main

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

const modulePath = "github.com/Mavwarf/standby"

// cgoOnly lists imports that need cgo or system audio headers on some
// platforms. The icon tool must build without them.
var cgoOnly = []string{
	"github.com/ebitengine/oto",
	modulePath + "/internal/audio/playback",
}

// importsOf returns the imports of the non-test Go files in dir.
func importsOf(t *testing.T, dir string) []string {
	t.Helper()
	files, err := filepath.Glob(filepath.Join(dir, "*.go"))
	if err != nil {
		t.Fatal(err)
	}
	var out []string
	fset := token.NewFileSet()
	for _, f := range files {
		if strings.HasSuffix(f, "_test.go") {
			continue
		}
		parsed, err := parser.ParseFile(fset, f, nil, parser.ImportsOnly)
		if err != nil {
			t.Fatal(err)
		}
		for _, imp := range parsed.Imports {
			p, _ := strconv.Unquote(imp.Path.Value)
			out = append(out, p)
		}
	}
	return out
}

func TestNoAudioBackendDependency(t *testing.T) {
	root := filepath.Join("..", "..")
	if _, err := os.Stat(filepath.Join(root, "go.mod")); err != nil {
		t.Fatalf("module root not found: %v", err)
	}

	seen := map[string]bool{}
	queue := []string{"."}
	chain := map[string]string{".": "cmd/iconset"}
	for len(queue) > 0 {
		dir := queue[0]
		queue = queue[1:]
		for _, imp := range importsOf(t, dir) {
			for _, bad := range cgoOnly {
				if strings.HasPrefix(imp, bad) {
					t.Errorf("%s imports %s", chain[dir], imp)
				}
			}
			rel, ok := strings.CutPrefix(imp, modulePath+"/")
			if !ok || seen[rel] {
				continue
			}
			seen[rel] = true
			next := filepath.Join(root, filepath.FromSlash(rel))
			chain[next] = rel
			queue = append(queue, next)
		}
	}
	if !seen["internal/config"] {
		t.Error("expected cmd/iconset to reach internal/config")
	}
}
