// Package colormap renders the (a, b) plane of the Lab space at a fixed
// lightness into a square bitmap, painting colors outside the RGB gamut a
// flat gray.
package colormap

import (
	"errors"
	"fmt"
	"sync/atomic"

	"lchmap/lchcolor"
	"lchmap/parallel"
)

// OutOfGamut is the channel value of the gray used for colors that cannot be
// displayed.
const OutOfGamut uint8 = 186

// ErrInvalidSize is returned for bitmaps smaller than 2x2, where the grid
// to (a, b) mapping is undefined.
var ErrInvalidSize = errors.New("color map size must be at least 2")

// Generate renders a size x size slice at the given lightness on the
// calling goroutine.
func Generate(size int, lightness float64) (*Bitmap, error) {
	return GenerateWith(nil, size, lightness)
}

// GenerateWith renders like Generate, spreading rows over pool. A nil pool
// renders serially. The result does not depend on the pool.
func GenerateWith(pool *parallel.Pool, size int, lightness float64) (*Bitmap, error) {
	if size < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, size)
	}

	bm := newBitmap(size, lightness)
	if pool == nil {
		for y := range size {
			bm.Clipped += bm.fillRow(y, lightness)
		}
	} else {
		var clipped atomic.Int64
		pool.Range(size, func(y int) {
			clipped.Add(int64(bm.fillRow(y, lightness)))
		})
		bm.Clipped = int(clipped.Load())
	}

	return bm, nil
}

// fillRow writes row y and returns how many of its pixels are out of gamut.
// Rows are disjoint in Pix, so rows can be filled concurrently.
func (b *Bitmap) fillRow(y int, lightness float64) int {
	size := b.Size()
	step := 2.0 / float64(size-1)
	row := b.Pix[b.PixOffset(0, y) : b.PixOffset(0, y)+b.Stride]

	lab := lchcolor.Lab{
		L: lightness,
		B: float64(y)*-step + 1,
	}
	var clipped int
	for x := range size {
		lab.A = float64(x)*step - 1

		px := row[x*bpp : x*bpp+bpp : x*bpp+bpp]
		if rgb, ok := lab.RGB(); ok {
			px[0], px[1], px[2] = rgb.Bytes()
		} else {
			px[0], px[1], px[2] = OutOfGamut, OutOfGamut, OutOfGamut
			clipped++
		}
	}
	return clipped
}
