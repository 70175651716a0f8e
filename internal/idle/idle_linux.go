package idle

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// Duration returns the time since the last keyboard or mouse input using
// xprintidle, which prints milliseconds.
func Duration() (time.Duration, error) {
	out, err := exec.Command("xprintidle").Output()
	if err != nil {
		return 0, fmt.Errorf("xprintidle: %w (is xprintidle installed?)", err)
	}
	return parseXprintidle(out)
}

func parseXprintidle(out []byte) (time.Duration, error) {
	ms, err := strconv.ParseInt(strings.TrimSpace(string(out)), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing xprintidle output: %w", err)
	}
	return time.Duration(ms) * time.Millisecond, nil
}
