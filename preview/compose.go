// Package preview turns a color map and its overlay into a finished image
// and writes it out.
package preview

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/gg"

	"lchmap/colormap"
	"lchmap/overlay"
)

type Style struct {
	Stroke    color.Color
	LineWidth float64
	// Overlay disables the circle and needle when false.
	Overlay bool
}

var DefaultStyle = Style{
	Stroke:    color.White,
	LineWidth: 1,
	Overlay:   true,
}

// Compose draws g over a copy of bm. Grid index i is the center of pixel i,
// so geometry is shifted by half a pixel before stroking.
func Compose(bm *colormap.Bitmap, g overlay.Geometry, style Style) (image.Image, error) {
	if !style.Overlay {
		return bm.RGBA(), nil
	}

	dc := gg.NewContextForImage(bm)
	defer dc.Close()

	dc.SetColor(style.Stroke)
	dc.SetLineWidth(style.LineWidth)

	c := g.Chroma
	if c.Radius > 0 {
		dc.DrawCircle(c.Center.X+0.5, c.Center.Y+0.5, c.Radius)
		if err := dc.Stroke(); err != nil {
			return nil, fmt.Errorf("could not stroke chroma circle: %w", err)
		}
	}

	h := g.Hue
	dc.DrawLine(h.From.X+0.5, h.From.Y+0.5, h.To.X+0.5, h.To.Y+0.5)
	if err := dc.Stroke(); err != nil {
		return nil, fmt.Errorf("could not stroke hue needle: %w", err)
	}

	return dc.Image(), nil
}
