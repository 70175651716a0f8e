package main

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image/png"
	"os"
	"runtime"

	"github.com/energye/systray"

	"github.com/Mavwarf/standby/internal/icon"
)

const trayIconSize = 64

// runTray starts the system tray icon. Must be called in a goroutine;
// systray.Run blocks until Quit is called.
func runTray(app *App) {
	// Lock this goroutine to an OS thread so that the hidden window created
	// by systray and the GetMessage loop share the same thread.
	runtime.LockOSThread()
	systray.Run(func() { onTrayReady(app) }, func() {})
}

// trayIcon renders the app icon at size in the format the platform tray
// expects.
func trayIcon(goos string, size int) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, icon.Draw(size)); err != nil {
		return nil, fmt.Errorf("tray icon: %w", err)
	}
	if goos == "windows" {
		return pngToICO(buf.Bytes(), size), nil
	}
	return buf.Bytes(), nil
}

// pngToICO wraps raw PNG bytes in a minimal ICO container.
// Windows LoadImage(IMAGE_ICON) requires ICO format; since Vista,
// ICO supports embedded PNG data directly.
func pngToICO(png []byte, size int) []byte {
	dim := byte(size)
	if size >= 256 {
		dim = 0 // 0 means 256
	}

	buf := new(bytes.Buffer)
	// ICONDIR header
	binary.Write(buf, binary.LittleEndian, uint16(0)) // reserved
	binary.Write(buf, binary.LittleEndian, uint16(1)) // type: 1 = ICO
	binary.Write(buf, binary.LittleEndian, uint16(1)) // count: 1 image

	// ICONDIRENTRY
	buf.WriteByte(dim) // width
	buf.WriteByte(dim) // height
	buf.WriteByte(0)   // color count
	buf.WriteByte(0)   // reserved
	binary.Write(buf, binary.LittleEndian, uint16(1))        // color planes
	binary.Write(buf, binary.LittleEndian, uint16(32))       // bits per pixel
	binary.Write(buf, binary.LittleEndian, uint32(len(png))) // image data size
	binary.Write(buf, binary.LittleEndian, uint32(6+1*16))   // offset to image data (header + 1 entry)

	buf.Write(png)
	return buf.Bytes()
}

func pauseLabel(paused bool) string {
	if paused {
		return "Resume"
	}
	return "Pause"
}

func onTrayReady(app *App) {
	if data, err := trayIcon(runtime.GOOS, trayIconSize); err != nil {
		fmt.Fprintf(os.Stderr, "standby-app: %v\n", err)
	} else {
		systray.SetIcon(data)
	}
	systray.SetTooltip("standby")
	systray.SetOnDClick(func(menu systray.IMenu) { app.ShowWindow() })

	mPulse := systray.AddMenuItem("Pulse Now", "Play the keep-alive tone immediately")
	mPulse.Click(app.pulseFromTray)

	mPause := systray.AddMenuItem(pauseLabel(app.Paused()), "Pause or resume scheduled tones")
	mPause.Click(func() {
		mPause.SetTitle(pauseLabel(app.TogglePause()))
	})

	mHistory := systray.AddMenuItem("Show History", "Show recent pulses")
	mHistory.Click(func() { app.ShowWindow() })

	systray.AddSeparator()

	mQuit := systray.AddMenuItem("Quit", "Exit standby-app")
	mQuit.Click(func() {
		systray.Quit()
		os.Exit(0)
	})
}
