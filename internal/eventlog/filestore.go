package eventlog

import (
	"os"
	"path/filepath"
	"time"

	"github.com/Mavwarf/standby/internal/audio"
	"github.com/Mavwarf/standby/internal/paths"
)

// FileStore implements Store using a flat log file, one event per line.
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore that reads and writes the given log file.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// append opens (or creates) the log file, creating the parent directory if
// needed, and writes one line.
func (f *FileStore) append(kind EntryKind, detail string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), paths.DirPerm); err != nil {
		return err
	}
	file, err := os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, paths.FilePerm)
	if err != nil {
		return err
	}
	if _, err := file.WriteString(formatLine(time.Now(), kind, detail)); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

func (f *FileStore) LogPulse(t audio.Tone) error {
	return f.append(KindPulse, pulseDetail(t))
}

func (f *FileStore) LogSkip(reason string) error {
	return f.append(KindSkip, skipDetail(reason))
}

func (f *FileStore) LogBuild(b Build) error {
	return f.append(KindBuild, buildDetail(b))
}

func (f *FileStore) Entries(days int) ([]Entry, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	entries := ParseEntries(string(data))
	if days <= 0 {
		return entries, nil
	}
	return filterSince(entries, DayCutoff(days)), nil
}

func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) Close() error {
	return nil
}
