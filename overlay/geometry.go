// Package overlay maps chroma and hue onto the pixel grid of a color map so
// the chroma circle and hue needle line up with the bitmap.
package overlay

import (
	"image"
	"math"

	"lchmap/lchcolor"
)

// NeedleLength is the hue needle length in normalised (a, b) units. It
// reaches past the unit circle on purpose.
const NeedleLength = 2.0

type Point struct {
	X, Y float64
}

// Pixel truncates p toward zero.
func (p Point) Pixel() image.Point {
	return image.Point{X: int(p.X), Y: int(p.Y)}
}

type Circle struct {
	Center Point
	Radius float64
}

// Bounds returns the bounding box of c in the (x, y, width, height) form
// taken by arc primitives.
func (c Circle) Bounds() (x, y, w, h float64) {
	return c.Center.X - c.Radius, c.Center.Y - c.Radius, 2 * c.Radius, 2 * c.Radius
}

type Line struct {
	From, To Point
}

// Geometry is what gets stroked on top of a color map.
type Geometry struct {
	Chroma Circle
	Hue    Line
}

// ToScreen maps normalised (a, b) to pixel coordinates of a size x size
// map: a grows to the right, b grows upward.
func ToScreen(a, b float64, size int) Point {
	half := float64(size-1) / 2
	return Point{
		X: (a + 1) * half,
		Y: (-b + 1) * half,
	}
}

// FromScreen is the inverse of ToScreen. size must be at least 2.
func FromScreen(p Point, size int) (a, b float64) {
	half := float64(size-1) / 2
	return p.X/half - 1, 1 - p.Y/half
}

// Compute places the chroma circle and hue needle for lch on a map of the
// given size.
func Compute(lch lchcolor.LCh, size int) Geometry {
	center := ToScreen(0, 0, size)
	return Geometry{
		Chroma: Circle{
			Center: center,
			Radius: lch.C * float64(size-1) / 2,
		},
		Hue: Line{
			From: center,
			To:   ToScreen(NeedleLength*math.Cos(lch.H), NeedleLength*math.Sin(lch.H), size),
		},
	}
}
