// mkicon writes the standby speaker icon as a PNG, by default at 1024×1024
// so it can feed the iconset command.
// Usage: go run ./cmd/mkicon <output.png> [size]
package main

import (
	"bytes"
	"fmt"
	"image/png"
	"os"
	"strconv"

	"github.com/Mavwarf/standby/internal/icon"
	"github.com/Mavwarf/standby/internal/paths"
)

const defaultSize = 1024

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: mkicon <output.png> [size]\n")
		os.Exit(1)
	}
	size := defaultSize
	if len(os.Args) > 2 {
		n, err := strconv.Atoi(os.Args[2])
		if err != nil || n <= 0 {
			fmt.Fprintf(os.Stderr, "Error: size must be a positive integer\n")
			os.Exit(1)
		}
		size = n
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, icon.Draw(size)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := paths.AtomicWrite(os.Args[1], buf.Bytes()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Saved: %s (%dx%d)\n", os.Args[1], size, size)
}
