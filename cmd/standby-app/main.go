// standby-app runs the keep-alive loop behind a tray icon, with a window
// listing recent pulses. It is the packaged-app counterpart of the standby
// command.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"

	"github.com/Mavwarf/standby/internal/audio/playback"
	"github.com/Mavwarf/standby/internal/config"
	"github.com/Mavwarf/standby/internal/dashboard"
	"github.com/Mavwarf/standby/internal/eventlog"
	"github.com/Mavwarf/standby/internal/keepalive"
)

func main() {
	configPath := ""
	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--config", "-c":
			if i+1 < len(args) {
				configPath = args[i+1]
				i++
			}
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "standby-app: %v\n", err)
		os.Exit(1)
	}
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "standby-app: %v\n", err)
		os.Exit(1)
	}

	// The history window needs a log, so the app always records events.
	store, err := eventlog.Open(cfg.Storage)
	if err != nil {
		fmt.Fprintf(os.Stderr, "standby-app: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	app := newApp(keepalive.FromConfig(cfg, playback.NewPlayer(), store))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := app.loop.Run(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "standby-app: %v\n", err)
			store.Close()
			os.Exit(1)
		}
	}()

	go runTray(app)

	err = wails.Run(&options.App{
		Title:     "standby",
		Width:     900,
		Height:    600,
		MinWidth:  600,
		MinHeight: 400,
		AssetServer: &assetserver.Options{
			Handler: dashboard.Handler(store),
		},
		BackgroundColour: &options.RGBA{R: 26, G: 27, B: 38, A: 255}, // #1a1b26
		StartHidden:      true,
		OnStartup:        app.startup,
		OnShutdown:       func(context.Context) { cancel() },
		OnBeforeClose:    app.beforeClose,
		Bind:             []interface{}{app},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "standby-app: %v\n", err)
		os.Exit(1)
	}
}
