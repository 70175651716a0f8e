package main

import "golang.org/x/sys/windows"

const vkShift = 0x10

var pGetAsyncKeyState = windows.NewLazySystemDLL("user32.dll").NewProc("GetAsyncKeyState")

// isShiftHeld reports whether Shift is down right now. The high bit of
// GetAsyncKeyState is the current key state.
func isShiftHeld() bool {
	if pGetAsyncKeyState.Find() != nil {
		return false
	}
	ret, _, _ := pGetAsyncKeyState.Call(vkShift)
	return ret&0x8000 != 0
}
