package colormap

import (
	"image"
	"image/color"
)

// bytes per pixel: r, g, b
const bpp = 3

// Bitmap is a rendered lightness slice. It is never modified after
// Generate returns it.
type Bitmap struct {
	// Pix holds the pixels as packed 8 bit RGB. The pixel at (x, y) starts
	// at Pix[(y-Rect.Min.Y)*Stride + (x-Rect.Min.X)*3].
	Pix []uint8
	// Stride is the Pix stride (in bytes) between vertically adjacent pixels.
	Stride int
	// Rect is the image's bounds.
	Rect image.Rectangle
	// Lightness is the L the slice was generated for.
	Lightness float64
	// Clipped counts the pixels painted with the out of gamut gray.
	Clipped int
}

var _ image.Image = (*Bitmap)(nil)

func newBitmap(size int, lightness float64) *Bitmap {
	return &Bitmap{
		Pix:       make([]uint8, size*size*bpp),
		Stride:    bpp * size,
		Rect:      image.Rect(0, 0, size, size),
		Lightness: lightness,
	}
}

// Size returns the edge length in pixels.
func (b *Bitmap) Size() int {
	return b.Rect.Dx()
}

func (b *Bitmap) ColorModel() color.Model {
	return color.RGBAModel
}

func (b *Bitmap) Bounds() image.Rectangle {
	return b.Rect
}

func (b *Bitmap) At(x, y int) color.Color {
	return b.RGBAAt(x, y)
}

// RGBAAt returns the opaque color at (x, y), or transparent black outside
// the bounds.
func (b *Bitmap) RGBAAt(x, y int) color.RGBA {
	if !(image.Point{X: x, Y: y}.In(b.Rect)) {
		return color.RGBA{}
	}
	i := b.PixOffset(x, y)
	s := b.Pix[i : i+bpp : i+bpp]
	return color.RGBA{R: s[0], G: s[1], B: s[2], A: 0xff}
}

// PixOffset returns the index of the first element of Pix that corresponds
// to the pixel at (x, y).
func (b *Bitmap) PixOffset(x, y int) int {
	return (y-b.Rect.Min.Y)*b.Stride + (x-b.Rect.Min.X)*bpp
}

// RGBA copies the bitmap into a new opaque *image.RGBA, suitable for
// drawing on.
func (b *Bitmap) RGBA() *image.RGBA {
	dst := image.NewRGBA(b.Rect)
	for y := b.Rect.Min.Y; y < b.Rect.Max.Y; y++ {
		src := b.Pix[b.PixOffset(b.Rect.Min.X, y):]
		row := dst.Pix[dst.PixOffset(b.Rect.Min.X, y):]
		for x := range b.Rect.Dx() {
			row[x*4+0] = src[x*bpp+0]
			row[x*4+1] = src[x*bpp+1]
			row[x*4+2] = src[x*bpp+2]
			row[x*4+3] = 0xff
		}
	}
	return dst
}
