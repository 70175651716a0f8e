//go:build !darwin && !linux && !windows

package idle

import (
	"errors"
	"time"
)

// Duration is not implemented on this platform.
func Duration() (time.Duration, error) {
	return 0, errors.New("idle detection not supported on this platform")
}
