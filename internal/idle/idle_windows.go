package idle

import (
	"fmt"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32            = windows.NewLazySystemDLL("user32.dll")
	kernel32          = windows.NewLazySystemDLL("kernel32.dll")
	pGetLastInputInfo = user32.NewProc("GetLastInputInfo")
	pGetTickCount64   = kernel32.NewProc("GetTickCount64")
)

type lastInputInfo struct {
	cbSize uint32
	dwTime uint32
}

// Duration returns the time since the last keyboard or mouse input using
// GetLastInputInfo and GetTickCount64.
func Duration() (time.Duration, error) {
	var lii lastInputInfo
	lii.cbSize = uint32(unsafe.Sizeof(lii))

	r, _, err := pGetLastInputInfo.Call(uintptr(unsafe.Pointer(&lii)))
	if r == 0 {
		return 0, fmt.Errorf("GetLastInputInfo: %w", err)
	}

	tick, _, _ := pGetTickCount64.Call()
	// dwTime is a 32-bit tick count; compare in the same width so the
	// 49.7-day wraparound cancels out.
	idleMs := uint32(tick) - lii.dwTime
	return time.Duration(idleMs) * time.Millisecond, nil
}
