// iconset renders a source logo into the PNG sizes a macOS .iconset needs
// and adds the @2x copies. With no arguments it reads
// ./logo/logo_modern.webp and writes ./mac_iconset.
package main

import (
	"fmt"
	"os"

	"github.com/Mavwarf/standby/internal/config"
	"github.com/Mavwarf/standby/internal/eventlog"
	"github.com/Mavwarf/standby/internal/iconset"
)

type options struct {
	configPath string
	source     string
	output     string
	bundle     bool
	log        bool
	help       bool
}

func parseArgs(args []string) (options, error) {
	var o options
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--config", "-c", "--source", "-s", "--out", "-o":
			if i+1 >= len(args) {
				return o, fmt.Errorf("%s requires a path", args[i])
			}
			switch args[i] {
			case "--config", "-c":
				o.configPath = args[i+1]
			case "--source", "-s":
				o.source = args[i+1]
			default:
				o.output = args[i+1]
			}
			i++
		case "--bundle", "-b":
			o.bundle = true
		case "--log", "-L":
			o.log = true
		case "help", "--help", "-h":
			o.help = true
		default:
			return o, fmt.Errorf("unknown argument %q", args[i])
		}
	}
	return o, nil
}

// resolveTarget returns the source image and output directory after
// applying command-line overrides to the config.
func resolveTarget(cfg config.IconSet, o options) (source, outDir string) {
	source, outDir = cfg.Source, cfg.Output
	if o.source != "" {
		source = o.source
	}
	if o.output != "" {
		outDir = o.output
	}
	if cfg.Bundle || o.bundle {
		outDir = iconset.BundleDir(outDir)
	}
	return source, outDir
}

func main() {
	o, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintf(os.Stderr, "Run 'iconset help' for usage.\n")
		os.Exit(1)
	}
	if o.help {
		printUsage()
		return
	}

	cfg, err := config.Load(o.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	source, outDir := resolveTarget(cfg.IconSet, o)

	report, err := iconset.New().Build(source, outDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Done: %d images, %d aliases, %d skipped in %s\n",
		len(report.Written), report.Copied(), report.Skipped(), outDir)

	if cfg.Log || o.log {
		logBuild(cfg.Storage, eventlog.Build{
			Source:  source,
			Output:  outDir,
			Files:   len(report.Written),
			Aliases: report.Copied(),
			Skipped: report.Skipped(),
		})
	}
}

// logBuild records the build. Best-effort: errors go to stderr.
func logBuild(storage string, b eventlog.Build) {
	store, err := eventlog.Open(storage)
	if err != nil {
		fmt.Fprintf(os.Stderr, "eventlog: %v\n", err)
		return
	}
	defer store.Close()
	if err := store.LogBuild(b); err != nil {
		fmt.Fprintf(os.Stderr, "eventlog: %v\n", err)
	}
}

func printUsage() {
	fmt.Print(`iconset - build a macOS icon set from one image

Usage:
  iconset [options]

Options:
  -s, --source <path>   Source image (default: ./logo/logo_modern.webp)
  -o, --out <dir>       Output directory (default: mac_iconset)
  -b, --bundle          Write into <dir>/AppIcon.iconset
  -c, --config <path>   Config file
  -L, --log             Record the build in the event log
  -h, --help            Show this help

Writes icon_16x16.png through icon_1024x1024.png plus the @2x copies.
`)
}
