// Package lchcolor converts between gamma encoded RGB, a simplified
// cube-root Lab and its polar LCh form.
//
// The Lab used here is not CIE L*a*b*: L is the cube root of relative
// luminance in [0,1] and the opponent axes are scaled by 5 and 2 instead of
// 500 and 200. Saved slider values depend on these constants.
package lchcolor

import (
	"fmt"
	"image/color"
	"math"

	"fortio.org/safecast"
	"gonum.org/v1/gonum/spatial/r3"
)

// Opponent axis scales.
const (
	aScale = 5
	bScale = 2
)

// RGB is a gamma encoded display color. Channels are nominally in [0,1];
// values outside are clamped on use.
type RGB struct {
	R float64
	G float64
	B float64
}

var RGBModel = color.ModelFunc(rgbConvert)

// rgbConvert drops alpha.
func rgbConvert(c color.Color) color.Color {
	switch lc := c.(type) {
	case RGB:
		return c
	case Lab:
		rgb, _ := lc.RGB()
		return rgb
	case LCh:
		rgb, _ := lc.RGB()
		return rgb
	}

	r, g, b, _ := c.RGBA()
	return RGB{
		R: float64(r) / 0xffff,
		G: float64(g) / 0xffff,
		B: float64(b) / 0xffff,
	}
}

func (c RGB) RGBA() (uint32, uint32, uint32, uint32) {
	c = c.Clamped()
	return uint32(c.R*0xffff + 0.5), uint32(c.G*0xffff + 0.5), uint32(c.B*0xffff + 0.5), 0xffff
}

// Clamped returns c with every channel clamped into [0,1].
func (c RGB) Clamped() RGB {
	c.R, _ = clamp01(c.R)
	c.G, _ = clamp01(c.G)
	c.B, _ = clamp01(c.B)
	return c
}

// Linear clamps c and removes the gamma encoding.
func (c RGB) Linear() LinearRGB {
	c = c.Clamped()
	return LinearRGB{
		R: toLinear(c.R),
		G: toLinear(c.G),
		B: toLinear(c.B),
	}
}

// Bytes quantises c to 8 bits per channel by truncation, floor(v*255), as
// the color map does.
func (c RGB) Bytes() (r, g, b uint8) {
	c = c.Clamped()
	return quantize(c.R), quantize(c.G), quantize(c.B)
}

func quantize(v float64) uint8 {
	return safecast.MustConvert[uint8](math.Floor(v * 255))
}

// RGBA8 rounds c to the nearest 8 bit color. Unlike Bytes it is exact for
// colors that came from 8 bit values, even after a trip through Lab.
func (c RGB) RGBA8() color.RGBA {
	return color.RGBAModel.Convert(c).(color.RGBA)
}

// Hex formats c as #rrggbb using RGBA8.
func (c RGB) Hex() string {
	c8 := c.RGBA8()
	return fmt.Sprintf("#%02x%02x%02x", c8.R, c8.G, c8.B)
}

func (c RGB) String() string {
	return fmt.Sprintf("rgb(%.4f, %.4f, %.4f)", c.R, c.G, c.B)
}

// Lab converts c to Lab. Input channels are clamped first, so the result
// never contains NaN.
func (c RGB) Lab() Lab {
	v := rgbToXYZ.MulVec(c.Linear().vec())
	fx := math.Cbrt(v.X)
	fy := math.Cbrt(v.Y)
	fz := math.Cbrt(v.Z)

	return Lab{
		L: fy,
		A: aScale * (fx - fy),
		B: bScale * (fy - fz),
	}
}

func (c RGB) LCh() LCh {
	return c.Lab().LCh()
}

// Lab is the rectangular perceptual form.
type Lab struct {
	L float64 // cube root of relative luminance, 0..1
	A float64 // green(-) / red(+)
	B float64 // blue(-) / yellow(+)
}

var LabModel = color.ModelFunc(labConvert)

func labConvert(c color.Color) color.Color {
	switch lc := c.(type) {
	case Lab:
		return c
	case LCh:
		return lc.Lab()
	}

	return rgbConvert(c).(RGB).Lab()
}

func (lc Lab) RGBA() (uint32, uint32, uint32, uint32) {
	rgb, _ := lc.RGB()
	return rgb.RGBA()
}

// Linear returns the unclipped linear RGB for lc.
func (lc Lab) Linear() LinearRGB {
	fy := lc.L
	fx := fy + lc.A/aScale
	fz := fy - lc.B/bScale

	return linearFromVec(xyzToRGB.MulVec(r3.Vec{
		X: fx * fx * fx,
		Y: fy * fy * fy,
		Z: fz * fz * fz,
	}))
}

// RGB converts lc to display RGB. The boolean is false when any linear
// channel had to be clamped; the clamped values are gamma encoded, so an
// out of gamut color still yields a valid RGB.
func (lc Lab) RGB() (RGB, bool) {
	lin, ok := lc.Linear().Clip()
	return lin.RGB(), ok
}

// LCh converts to polar form. The hue is atan2(-b, -a) + pi, which lands in
// [0, 2pi] and is arbitrary when the chroma is zero.
func (lc Lab) LCh() LCh {
	return LCh{
		L: lc.L,
		C: math.Sqrt(lc.A*lc.A + lc.B*lc.B),
		H: math.Atan2(-lc.B, -lc.A) + math.Pi,
	}
}

// LCh is the polar form of Lab.
type LCh struct {
	L float64 // lightness, same as Lab.L
	C float64 // chroma, >= 0
	H float64 // hue in radians
}

var LChModel = color.ModelFunc(lchConvert)

func lchConvert(c color.Color) color.Color {
	switch lc := c.(type) {
	case LCh:
		return c
	case Lab:
		return lc.LCh()
	}

	return labConvert(c).(Lab).LCh()
}

func (lc LCh) RGBA() (uint32, uint32, uint32, uint32) {
	return lc.Lab().RGBA()
}

func (lc LCh) Lab() Lab {
	return Lab{
		L: lc.L,
		A: lc.C * math.Cos(lc.H),
		B: lc.C * math.Sin(lc.H),
	}
}

func (lc LCh) RGB() (RGB, bool) {
	return lc.Lab().RGB()
}

// ParseHex reads #rgb or #rrggbb.
func ParseHex(s string) (RGB, error) {
	var r, g, b uint8
	switch len(s) {
	case 4:
		n, err := fmt.Sscanf(s, "#%1x%1x%1x", &r, &g, &b)
		if err != nil {
			return RGB{}, fmt.Errorf("could not read color %q: %w", s, err)
		} else if n < 3 {
			return RGB{}, fmt.Errorf("insufficient color fields in %q: %d", s, n)
		}

		r |= r << 4
		g |= g << 4
		b |= b << 4
	case 7:
		n, err := fmt.Sscanf(s, "#%2x%2x%2x", &r, &g, &b)
		if err != nil {
			return RGB{}, fmt.Errorf("could not read color %q: %w", s, err)
		} else if n < 3 {
			return RGB{}, fmt.Errorf("insufficient color fields in %q: %d", s, n)
		}
	default:
		return RGB{}, fmt.Errorf("invalid color %q, should be #RGB or #RRGGBB", s)
	}

	return RGB{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
	}, nil
}
