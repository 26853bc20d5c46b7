// Package swatch writes and lists RIFF PAL files of LCh colors.
package swatch

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"lchmap/palette"
	"lchmap/selector"
)

type CLICmd struct {
	Write WriteCmd `cmd:"" help:"Write a ring of hues at fixed lightness and chroma as a PAL file"`
	Read  ReadCmd  `cmd:"" help:"List the colors of a PAL file"`
}

type WriteCmd struct {
	File      string  `arg:"" help:"Destination PAL file" type:"path"`
	Lightness float64 `help:"Lightness slider, 0 to 100" default:"70"`
	Chroma    float64 `help:"Chroma slider, 0 to 100" default:"10"`
	Steps     int     `help:"Number of hues" default:"12"`
	Force     bool    `help:"Overwrite an existing file"`
}

func (c *WriteCmd) Validate(kctx *kong.Context) error {
	if c.Steps < 1 {
		return fmt.Errorf("invalid number of hues: %d", c.Steps)
	}

	file, err := filepath.Abs(c.File)
	if err != nil {
		return fmt.Errorf("invalid destination %q: %w", c.File, err)
	}
	c.File = file

	return selector.Sliders{L: c.Lightness, C: c.Chroma}.Validate()
}

func (c *WriteCmd) Run(out io.Writer) error {
	base := selector.Sliders{L: c.Lightness, C: c.Chroma}.LCh()
	ring, outside := palette.HueRing(base.L, base.C, c.Steps)

	if !c.Force {
		if _, err := os.Stat(c.File); err == nil {
			return fmt.Errorf("could not create %q: %w", c.File, fs.ErrExist)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("cannot stat destination %q: %w", c.File, err)
		}
	}

	n, err := writeFile(c.File, &ring)
	if err != nil {
		return err
	}

	slog.Info("stats", "file", c.File, "colors", len(ring), "out_of_gamut", outside, "bytes", n)
	fmt.Fprintf(out, "%s\t%d colors\t%d out of gamut\n", c.File, len(ring), outside)
	return nil
}

// writeFile stores pal next to file and renames it into place, so a failed
// write leaves an existing file untouched.
func writeFile(file string, pal palette.RIFFReaderWriter) (n int64, err error) {
	tmp, err := os.CreateTemp(filepath.Dir(file), filepath.Base(file)+".*")
	if err != nil {
		return 0, fmt.Errorf("could not create temporary destination for %q: %w", file, err)
	}
	canRename := false
	defer func() {
		if closeErr := tmp.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("could not close temporary destination %q: %w", tmp.Name(), closeErr)
		}
		if canRename && err == nil {
			if renameErr := os.Rename(tmp.Name(), file); renameErr != nil {
				err = fmt.Errorf("could not rename destination file %q: %w", file, renameErr)
			}
		}
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = tmp.Chmod(0o644); err != nil {
		return 0, fmt.Errorf("could not set mode of %q: %w", tmp.Name(), err)
	}
	if n, err = pal.WriteRIFF(tmp); err != nil {
		return n, fmt.Errorf("could not write %q: %w", file, err)
	}
	if err = tmp.Sync(); err != nil {
		return n, fmt.Errorf("could not flush temporary destination %q: %w", tmp.Name(), err)
	}

	canRename = true
	return n, nil
}

type ReadCmd struct {
	File string `arg:"" help:"PAL file to list" type:"existingfile"`
}

func (c *ReadCmd) Run(out io.Writer) error {
	f, err := os.Open(c.File)
	if err != nil {
		return fmt.Errorf("could not open %q: %w", c.File, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Error("could not close palette", "file", c.File, "error", closeErr)
		}
	}()

	var pal palette.LCh
	if _, err := pal.ReadRIFF(f); err != nil {
		return fmt.Errorf("could not read %q: %w", c.File, err)
	}

	for i, lc := range pal {
		rgb, _ := lc.RGB()
		fmt.Fprintf(out, "%d\t%s\t%s\n", i, rgb.Hex(), selector.SlidersFromLCh(lc))
	}
	return nil
}
