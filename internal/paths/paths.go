package paths

import (
	"os"
	"path/filepath"
)

const (
	AppDirName     = "standby"
	ConfigFileName = "standby-config.json"
	LogFileName    = "standby.log"
	DBFileName     = "standby.db"
	DirPerm        = 0755
	FilePerm       = 0644
)

// AtomicWrite writes data to path via a temporary file + rename so readers
// never observe a half-written file. The parent directory is created if needed.
func AtomicWrite(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), DirPerm); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, FilePerm); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// DataDir returns the platform-specific data directory for standby:
//   - Windows: %APPDATA%\standby
//   - Unix:    ~/.config/standby
//
// Falls back to os.TempDir()/standby if neither is available.
func DataDir() string {
	if appdata := os.Getenv("APPDATA"); appdata != "" {
		return filepath.Join(appdata, AppDirName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), AppDirName)
	}
	return filepath.Join(home, ".config", AppDirName)
}

// InDataDir joins name onto DataDir.
func InDataDir(name string) string {
	return filepath.Join(DataDir(), name)
}
