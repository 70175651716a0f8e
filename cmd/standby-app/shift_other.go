//go:build !windows

package main

// isShiftHeld has no cheap portable equivalent; close always hides to tray
// and Quit lives in the tray menu.
func isShiftHeld() bool {
	return false
}
