// standby keeps powered studio monitors awake by playing a quiet low tone
// every few minutes. With no arguments it runs until interrupted using the
// compiled-in defaults or standby-config.json.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"golang.org/x/term"

	"github.com/Mavwarf/standby/internal/audio"
	"github.com/Mavwarf/standby/internal/audio/playback"
	"github.com/Mavwarf/standby/internal/config"
	"github.com/Mavwarf/standby/internal/eventlog"
	"github.com/Mavwarf/standby/internal/keepalive"
	"github.com/Mavwarf/standby/internal/paths"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

type options struct {
	configPath string
	interval   float64 // minutes; 0 = from config
	once       bool
	wavPath    string // write the tone to this file instead of playing it
	log        bool
	help       bool
	version    bool
}

func parseArgs(args []string) (options, error) {
	var o options
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--config", "-c":
			if i+1 >= len(args) {
				return o, fmt.Errorf("--config requires a file path")
			}
			o.configPath = args[i+1]
			i++
		case "--interval", "-i":
			if i+1 >= len(args) {
				return o, fmt.Errorf("--interval requires a value in minutes")
			}
			v, err := strconv.ParseFloat(args[i+1], 64)
			if err != nil || v <= 0 {
				return o, fmt.Errorf("interval must be a positive number of minutes")
			}
			o.interval = v
			i++
		case "--once", "-1":
			o.once = true
		case "--wav", "-w":
			if i+1 >= len(args) {
				return o, fmt.Errorf("--wav requires a file path")
			}
			o.wavPath = args[i+1]
			i++
		case "--log", "-L":
			o.log = true
		case "help", "--help", "-h":
			o.help = true
		case "version", "--version", "-V":
			o.version = true
		default:
			return o, fmt.Errorf("unknown argument %q", args[i])
		}
	}
	return o, nil
}

// applyOptions layers command-line overrides on top of the loaded config.
func applyOptions(cfg config.Config, o options) config.Config {
	if o.interval > 0 {
		cfg.IntervalMinutes = o.interval
	}
	if o.log {
		cfg.Log = true
	}
	return cfg
}

func main() {
	o, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintf(os.Stderr, "Run 'standby help' for usage.\n")
		os.Exit(1)
	}
	if o.help {
		printUsage()
		return
	}
	if o.version {
		fmt.Printf("standby %s (built %s)\n", version, buildDate)
		return
	}

	cfg, err := config.Load(o.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg = applyOptions(cfg, o)
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if o.wavPath != "" {
		if err := writeWAV(o.wavPath, cfg.AudioTone()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote: %s\n", o.wavPath)
		return
	}

	var store eventlog.Store
	if cfg.Log {
		store, err = eventlog.Open(cfg.Storage)
		if err != nil {
			// Logging is best-effort; keep the speakers awake regardless.
			fmt.Fprintf(os.Stderr, "eventlog: %v\n", err)
		} else {
			defer store.Close()
		}
	}

	loop := keepalive.FromConfig(cfg, playback.NewPlayer(), store)

	if o.once {
		err = loop.Pulse()
	} else {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Println("Press Ctrl+C to stop.")
		}
		err = loop.Run(ctx)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if store != nil {
			store.Close()
		}
		os.Exit(1)
	}
}

func writeWAV(path string, t audio.Tone) error {
	data, err := audio.EncodeWAV(t)
	if err != nil {
		return err
	}
	return paths.AtomicWrite(path, data)
}

func printUsage() {
	fmt.Print(`standby - keep studio monitors out of standby

Usage:
  standby [options]

Options:
  -c, --config <path>     Config file (default: standby-config.json next to
                          the binary or in ~/.config/standby)
  -i, --interval <min>    Minutes between tones (default: 10)
  -1, --once              Play a single tone and exit
  -w, --wav <path>        Write the tone to a WAV file and exit
  -L, --log               Record pulses in the event log
  -V, --version           Show version
  -h, --help              Show this help
`)
}
