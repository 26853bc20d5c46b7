// Package palette stores sets of LCh colors and moves them in and out of
// RIFF PAL files.
package palette

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"lchmap/lchcolor"
)

// LCh is a palette kept in polar form.
type LCh []lchcolor.LCh

var _ RIFFReaderWriter = &LCh{}

// HueRing samples steps hues evenly over a full turn at fixed lightness and
// chroma. It also returns how many of the samples are outside the gamut;
// those are kept and will be clamped when written out.
func HueRing(l, c float64, steps int) (LCh, int) {
	if steps < 1 {
		return nil, 0
	}

	ring := make(LCh, steps)
	var outside int
	for i := range steps {
		ring[i] = lchcolor.LCh{
			L: l,
			C: c,
			H: 2 * math.Pi * float64(i) / float64(steps),
		}
		if _, ok := ring[i].RGB(); !ok {
			outside++
		}
	}
	return ring, outside
}

// Index returns the position of the entry closest to lc in Lab, or -1 for
// an empty palette.
func (p LCh) Index(lc lchcolor.LCh) int {
	target := lc.Lab()
	ret, bestSum := -1, math.MaxFloat64
	for i, v := range p {
		lab := v.Lab()
		dL := target.L - lab.L
		da := target.A - lab.A
		db := target.B - lab.B
		sum := dL*dL + da*da + db*db
		if sum < bestSum {
			if sum == 0 {
				return i
			}
			ret, bestSum = i, sum
		}
	}
	return ret
}

// From appends the colors of pal and returns how many were added.
func (p *LCh) From(pal color.Palette) int64 {
	for _, col := range pal {
		*p = append(*p, lchcolor.LChModel.Convert(col).(lchcolor.LCh))
	}

	return int64(len(pal))
}

// Palette converts p to the nearest 8 bit RGB entries, so colors loaded
// with From come back unchanged.
func (p LCh) Palette() color.Palette {
	pal := make(color.Palette, len(p))
	for i, lc := range p {
		rgb, _ := lc.RGB()
		pal[i] = rgb.RGBA8()
	}
	return pal
}

func (p *LCh) ReadRIFF(r io.Reader) (int64, error) {
	pals, err := Read(r)
	if err != nil {
		return 0, fmt.Errorf("could not load palettes: %w", err)
	}

	var n int64
	for _, pal := range pals {
		n += p.From(pal)
	}

	return n, nil
}

func (p *LCh) WriteRIFF(w io.Writer) (int64, error) {
	if n, err := Write(w, []color.Palette{p.Palette()}); err != nil {
		return n, fmt.Errorf("could not save palette: %w", err)
	} else {
		return n, nil
	}
}
