package preview

import (
	"image"
	"image/color"
	"log/slog"

	"golang.org/x/image/draw"

	"lchmap/colormap"
)

var outOfGamut = color.RGBA{R: colormap.OutOfGamut, G: colormap.OutOfGamut, B: colormap.OutOfGamut, A: 0xff}

// Quantize maps img onto the colors of pal, with Floyd-Steinberg error
// diffusion when dither is set. It shows which swatch each region of a
// color map falls to. The logged gray_index is the entry the out of gamut
// gray lands on. pal must not be empty.
func Quantize(logger *slog.Logger, img image.Image, pal color.Palette, dither bool) *image.Paletted {
	grayIndex := pal.Index(outOfGamut)
	logger.Info("reducing to palette", "colors", len(pal), "dither", dither,
		"gray_index", grayIndex, "gray_exact", pal[grayIndex] == color.Color(outOfGamut))

	bounds := img.Bounds()
	dst := image.NewPaletted(image.Rect(0, 0, bounds.Dx(), bounds.Dy()), pal)

	var drawer draw.Drawer = draw.Src
	if dither {
		drawer = draw.FloydSteinberg
	}
	drawer.Draw(dst, dst.Rect, img, bounds.Min)
	return dst
}
