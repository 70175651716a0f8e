package idle

import (
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"time"
)

var hidIdleTimeRe = regexp.MustCompile(`"HIDIdleTime"\s*=\s*(\d+)`)

// Duration returns the time since the last keyboard or mouse input, read
// from HIDIdleTime (nanoseconds) in the ioreg output.
func Duration() (time.Duration, error) {
	out, err := exec.Command("ioreg", "-c", "IOHIDSystem", "-d", "4").Output()
	if err != nil {
		return 0, fmt.Errorf("ioreg: %w", err)
	}
	return parseIoreg(out)
}

func parseIoreg(out []byte) (time.Duration, error) {
	m := hidIdleTimeRe.FindSubmatch(out)
	if m == nil {
		return 0, fmt.Errorf("HIDIdleTime not found in ioreg output")
	}
	ns, err := strconv.ParseInt(string(m[1]), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing HIDIdleTime: %w", err)
	}
	return time.Duration(ns), nil
}
