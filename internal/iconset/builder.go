// Package iconset renders a source image into the fixed set of PNG sizes a
// macOS .iconset directory needs.
package iconset

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/Mavwarf/standby/internal/paths"
)

var (
	// ErrImageRead means the source image is missing, corrupt, or in an
	// unsupported format. Nothing has been written when it is returned.
	ErrImageRead = errors.New("cannot read source image")

	// ErrWrite means an output image could not be encoded, or the output
	// directory or a file in it could not be created or written.
	ErrWrite = errors.New("cannot write output")
)

// Builder writes resized copies and @2x aliases. Sizes and Aliases are
// copied from the defaults by New; tests may substitute their own.
type Builder struct {
	Sizes   []Size
	Aliases []Alias
	Out     io.Writer // progress lines; nil = os.Stdout
}

// New returns a Builder using DefaultSizes and DefaultAliases.
func New() *Builder {
	return &Builder{
		Sizes:   append([]Size(nil), DefaultSizes...),
		Aliases: append([]Alias(nil), DefaultAliases...),
	}
}

// AliasResult reports what happened to one alias.
type AliasResult struct {
	Alias
	Skipped bool // source file did not exist
}

// Report summarises a Build.
type Report struct {
	Written []string // resized files, in size-table order
	Aliases []AliasResult
}

// Copied returns the number of aliases that were written.
func (r Report) Copied() int {
	n := 0
	for _, a := range r.Aliases {
		if !a.Skipped {
			n++
		}
	}
	return n
}

// Skipped returns the number of aliases whose source was missing.
func (r Report) Skipped() int {
	return len(r.Aliases) - r.Copied()
}

// BundleDir returns outputDir/AppIcon.iconset.
func BundleDir(outputDir string) string {
	return filepath.Join(outputDir, BundleDirName)
}

// Build resizes the source and then materializes the aliases, which depend
// on the resized files already being on disk.
func (b *Builder) Build(sourcePath, outputDir string) (Report, error) {
	var r Report
	written, err := b.ResizeAll(sourcePath, outputDir)
	r.Written = written
	if err != nil {
		return r, err
	}
	r.Aliases, err = b.MaterializeAliases(outputDir)
	return r, err
}

// ResizeAll decodes sourcePath and writes one PNG per entry in Sizes to
// outputDir, creating it if needed. Each image is resampled to the exact
// target dimensions with Catmull-Rom; aspect ratio is not preserved.
// It returns the paths written so far.
func (b *Builder) ResizeAll(sourcePath, outputDir string) ([]string, error) {
	src, err := decode(sourcePath)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(outputDir, paths.DirPerm); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWrite, err)
	}

	var written []string
	for _, size := range b.Sizes {
		data, err := encodePNG(resize(src, size.Width, size.Height))
		if err != nil {
			return written, fmt.Errorf("%w: encoding %s: %w", ErrWrite, size.Name, err)
		}
		out := filepath.Join(outputDir, size.Name)
		if err := paths.AtomicWrite(out, data); err != nil {
			return written, fmt.Errorf("%w: %w", ErrWrite, err)
		}
		written = append(written, out)
		fmt.Fprintf(b.out(), "Saved: %s\n", out)
	}
	return written, nil
}

// MaterializeAliases copies each alias source under its target name. A
// missing source is reported as skipped and does not stop the run.
func (b *Builder) MaterializeAliases(outputDir string) ([]AliasResult, error) {
	results := make([]AliasResult, 0, len(b.Aliases))
	for _, a := range b.Aliases {
		src := filepath.Join(outputDir, a.Source)
		dst := filepath.Join(outputDir, a.Target)

		data, err := os.ReadFile(src)
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(b.out(), "Skipped: %s -> %s (source missing)\n", a.Source, a.Target)
			results = append(results, AliasResult{Alias: a, Skipped: true})
			continue
		}
		if err != nil {
			return results, fmt.Errorf("%w: %w", ErrWrite, err)
		}
		if err := paths.AtomicWrite(dst, data); err != nil {
			return results, fmt.Errorf("%w: %w", ErrWrite, err)
		}
		fmt.Fprintf(b.out(), "Copied: %s -> %s\n", a.Source, a.Target)
		results = append(results, AliasResult{Alias: a})
	}
	return results, nil
}

func (b *Builder) out() io.Writer {
	if b.Out == nil {
		return os.Stdout
	}
	return b.Out
}

func decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrImageRead, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrImageRead, path, err)
	}
	return img, nil
}

func resize(src image.Image, w, h int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Rect, src, src.Bounds(), draw.Src, nil)
	return dst
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
