// Package render draws the color map for one selector state, with its
// chroma circle and hue needle, into an image file.
package render

import (
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"lchmap/colormap"
	"lchmap/lchcolor"
	"lchmap/palette"
	"lchmap/preview"
	"lchmap/selector"
)

type CLICmd struct {
	Out       string  `help:"Destination image" default:"lchmap.png" type:"path"`
	Format    string  `help:"Output format, auto picks it from the destination extension" enum:"auto,png,jpeg,gif,bmp,tiff" default:"auto"`
	Size      int     `help:"Edge length of the color map in pixels" default:"256"`
	Workers   int     `help:"Goroutines rendering rows, 0 for one per CPU" default:"0"`
	Color     string  `help:"Start from this color (#rgb or #rrggbb) instead of the slider values" group:"color"`
	Lightness float64 `help:"Lightness slider, 0 to 100" default:"50" group:"color"`
	Chroma    float64 `help:"Chroma slider, 0 to 100" default:"0" group:"color"`
	Hue       float64 `help:"Hue slider in degrees, 0 to 360" default:"0" group:"color"`
	Stroke    string  `help:"Overlay color" default:"#fff" group:"overlay"`
	LineWidth float64 `help:"Overlay line width" default:"1" group:"overlay"`
	NoOverlay bool    `help:"Leave out the chroma circle and hue needle" group:"overlay"`
	Palette   string  `help:"Reduce the map to the colors of this RIFF PAL file" type:"existingfile" group:"palette"`
	Dither    bool    `help:"Apply dithering when reducing to a palette" group:"palette"`

	Start       *lchcolor.RGB `kong:"-"`
	StrokeColor lchcolor.RGB  `kong:"-"`
	Swatch      color.Palette `kong:"-"`
}

func (c *CLICmd) Validate(kctx *kong.Context) error {
	if c.Size < 2 {
		return fmt.Errorf("invalid size %d: %w", c.Size, colormap.ErrInvalidSize)
	}
	if c.LineWidth <= 0 {
		return fmt.Errorf("invalid line width: %v", c.LineWidth)
	}

	out, err := filepath.Abs(c.Out)
	if err != nil {
		return fmt.Errorf("invalid destination %q: %w", c.Out, err)
	}
	c.Out = out
	if c.Format == "auto" {
		c.Format = preview.FormatFromPath(c.Out)
	}

	if c.StrokeColor, err = lchcolor.ParseHex(c.Stroke); err != nil {
		return fmt.Errorf("invalid stroke: %w", err)
	}

	if c.Palette != "" {
		if c.Swatch, err = loadPalette(c.Palette); err != nil {
			return err
		}
	}

	if c.Color != "" {
		rgb, err := lchcolor.ParseHex(c.Color)
		if err != nil {
			return err
		}
		c.Start = &rgb
		return nil
	}
	return c.sliders().Validate()
}

func loadPalette(file string) (color.Palette, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("could not open palette %q: %w", file, err)
	}
	defer f.Close()

	pals, err := palette.Read(f)
	if err != nil {
		return nil, fmt.Errorf("could not read palette %q: %w", file, err)
	}
	var pal color.Palette
	for _, p := range pals {
		pal = append(pal, p...)
	}
	if len(pal) == 0 {
		return nil, fmt.Errorf("palette %q holds no colors", file)
	}
	return pal, nil
}

func (c *CLICmd) sliders() selector.Sliders {
	return selector.Sliders{L: c.Lightness, C: c.Chroma, H: c.Hue}
}

// logHost stands in for a widget: it only reports what it is asked to do.
type logHost struct {
	logger *slog.Logger
	draws  int
}

func (h *logHost) ColorChanged(rgb lchcolor.RGB) {
	h.logger.Info("color changed", "rgb", rgb.Hex())
}

func (h *logHost) QueueDraw() {
	h.draws++
	h.logger.Debug("redraw queued", "draws", h.draws)
}

func (c *CLICmd) Run(out io.Writer) error {
	logger := slog.Default().With("file", c.Out)
	host := &logHost{logger: logger}

	cache := colormap.NewCache(colormap.WithWorkers(c.Workers), colormap.WithLogger(logger))
	sel := selector.New(host, selector.WithLogger(logger), selector.WithCache(cache))
	defer sel.Close()

	if c.Start != nil {
		sel.SetColor(*c.Start)
	} else {
		sel.SetSliders(c.sliders())
	}
	rgb, inGamut := sel.Color()

	bm, geometry, err := sel.Render(c.Size)
	if err != nil {
		return err
	}

	img, err := preview.Compose(bm, geometry, preview.Style{
		Stroke:    c.StrokeColor,
		LineWidth: c.LineWidth,
		Overlay:   !c.NoOverlay,
	})
	if err != nil {
		return fmt.Errorf("could not draw overlay: %w", err)
	}
	if c.Swatch != nil {
		img = preview.Quantize(logger.With("palette", c.Palette), img, c.Swatch, c.Dither)
	}

	if err := preview.SaveFile(c.Out, img, c.Format); err != nil {
		return err
	}

	slog.Info("stats", "size", c.Size, "lightness", bm.Lightness, "out_of_gamut", bm.Clipped,
		"total", c.Size*c.Size, "color", rgb.Hex(), "in_gamut", inGamut)
	fmt.Fprintf(out, "%s\t%s\t%s\n", c.Out, rgb.Hex(), sel.Sliders())
	return nil
}
