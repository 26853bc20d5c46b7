// Package convert holds the one-shot conversion commands: a color to its
// Lab, LCh and slider values, and slider values back to a color.
package convert

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/vp8l"
	_ "golang.org/x/image/webp"

	"lchmap/lchcolor"
	"lchmap/selector"
)

type LChCmd struct {
	Color string       `arg:"" optional:"" help:"Color as #rgb or #rrggbb"`
	Image string       `help:"Sample the color from this image instead" type:"existingfile" group:"sample"`
	X     int          `help:"Column of the sampled pixel" default:"0" group:"sample"`
	Y     int          `help:"Row of the sampled pixel" default:"0" group:"sample"`
	RGB   lchcolor.RGB `kong:"-"`
}

func (c *LChCmd) Validate(kctx *kong.Context) error {
	switch {
	case c.Color != "" && c.Image != "":
		return errors.New("give either a color or an image, not both")
	case c.Color == "" && c.Image == "":
		return errors.New("no color or image given")
	case c.Image != "":
		if c.X < 0 || c.Y < 0 {
			return fmt.Errorf("invalid pixel position %d,%d", c.X, c.Y)
		}
		return nil
	}

	var err error
	c.RGB, err = lchcolor.ParseHex(c.Color)
	return err
}

func (c *LChCmd) Run(out io.Writer) error {
	if c.Image != "" {
		rgb, err := sample(c.Image, c.X, c.Y)
		if err != nil {
			return err
		}
		c.RGB = rgb
	}

	lab := c.RGB.Lab()
	lch := lab.LCh()
	fmt.Fprintf(out, "rgb\t%s\t%s\n", c.RGB.Hex(), c.RGB)
	fmt.Fprintf(out, "lab\tL=%.4f a=%.4f b=%.4f\n", lab.L, lab.A, lab.B)
	fmt.Fprintf(out, "lch\tL=%.4f C=%.4f h=%.4f\n", lch.L, lch.C, lch.H)
	fmt.Fprintf(out, "sliders\t%s\n", selector.SlidersFromLCh(lch))
	return nil
}

// sample reads the pixel at (x, y) of the image in file.
func sample(file string, x, y int) (rgb lchcolor.RGB, err error) {
	logger := slog.Default().With("file", file)

	imgFile, err := os.Open(file)
	if err != nil {
		return rgb, fmt.Errorf("could not open image %q: %w", file, err)
	}
	defer func() {
		if closeErr := imgFile.Close(); closeErr != nil {
			logger.Error("could not close image", "error", closeErr)
		}
	}()

	img, imgType, err := image.Decode(imgFile)
	if err != nil {
		return rgb, fmt.Errorf("could not decode image %q: %w", file, err)
	}

	b := img.Bounds()
	p := image.Pt(b.Min.X+x, b.Min.Y+y)
	if !p.In(b) {
		return rgb, fmt.Errorf("pixel %d,%d outside %dx%d image %q", x, y, b.Dx(), b.Dy(), file)
	}
	logger.Debug("sampling pixel", "format", imgType, "x", x, "y", y)

	return lchcolor.RGBModel.Convert(img.At(p.X, p.Y)).(lchcolor.RGB), nil
}

type RGBCmd struct {
	Lightness float64 `help:"Lightness slider, 0 to 100" default:"50"`
	Chroma    float64 `help:"Chroma slider, 0 to 100" default:"0"`
	Hue       float64 `help:"Hue slider in degrees, 0 to 360" default:"0"`
}

func (c *RGBCmd) sliders() selector.Sliders {
	return selector.Sliders{L: c.Lightness, C: c.Chroma, H: c.Hue}
}

func (c *RGBCmd) Validate(kctx *kong.Context) error {
	return c.sliders().Validate()
}

func (c *RGBCmd) Run(out io.Writer) error {
	rgb, ok := c.sliders().LCh().RGB()
	if !ok {
		slog.Warn("color outside the RGB gamut, channels clamped", "sliders", c.sliders())
	}
	fmt.Fprintf(out, "%s\t%s\tin_gamut=%t\n", rgb.Hex(), rgb, ok)
	return nil
}
