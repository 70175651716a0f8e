package main

import (
	"context"
	"fmt"
	"os"
	"sync/atomic"

	"github.com/energye/systray"
	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/Mavwarf/standby/internal/keepalive"
)

// App ties the keep-alive loop to the window and tray.
type App struct {
	ctx    context.Context
	ready  chan struct{} // closed when Wails startup completes
	loop   *keepalive.Loop
	paused atomic.Bool
}

// newApp wraps loop and installs the pause gate in front of any gate the
// loop already has.
func newApp(loop *keepalive.Loop) *App {
	a := &App{ready: make(chan struct{}), loop: loop}
	loop.Gate = keepalive.Chain(a.gate, loop.Gate)
	return a
}

func (a *App) gate() (bool, string) {
	if a.paused.Load() {
		return true, "paused from tray"
	}
	return false, ""
}

// TogglePause flips the paused state and returns the new value.
func (a *App) TogglePause() bool {
	for {
		old := a.paused.Load()
		if a.paused.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// Paused reports whether scheduled pulses are being skipped.
func (a *App) Paused() bool {
	return a.paused.Load()
}

// PulseNow plays the tone immediately, even while paused.
func (a *App) PulseNow() error {
	return a.loop.PulseNow()
}

func (a *App) startup(ctx context.Context) {
	a.ctx = ctx
	close(a.ready)
}

// beforeClose intercepts the window close event. Shift+close exits fully;
// normal close hides to tray.
func (a *App) beforeClose(ctx context.Context) bool {
	if isShiftHeld() {
		systray.Quit()
		os.Exit(0)
		return false
	}
	wailsRuntime.WindowHide(a.ctx)
	return true // prevent close → hide to tray
}

// ShowWindow shows the history window, reloading it so it is current.
func (a *App) ShowWindow() {
	<-a.ready // wait for Wails to be initialized
	wailsRuntime.WindowReload(a.ctx)
	wailsRuntime.WindowShow(a.ctx)
}

func (a *App) pulseFromTray() {
	go func() {
		if err := a.PulseNow(); err != nil {
			fmt.Fprintf(os.Stderr, "standby-app: %v\n", err)
		}
	}()
}
