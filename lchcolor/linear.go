package lchcolor

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Single exponent power curve, not the piecewise sRGB transfer function.
const (
	gamma    = 2.2
	invGamma = 1 / gamma
)

// D65 reference white, folded into the matrix rows. Y_n is 1.
const (
	whiteX = 0.9505
	whiteZ = 1.0890
)

var (
	// rgbToXYZ maps linear RGB to white-normalised tristimulus values.
	rgbToXYZ = r3.NewMat([]float64{
		0.4124 / whiteX, 0.3576 / whiteX, 0.1805 / whiteX,
		0.2126, 0.7152, 0.0722,
		0.0193 / whiteZ, 0.1192 / whiteZ, 0.9505 / whiteZ,
	})

	// xyzToRGB is the exact inverse of rgbToXYZ. The four digit table usually
	// printed next to the forward matrix is only good to about 1e-4, which
	// pushes white itself out of the unit cube.
	xyzToRGB = mustInvert(rgbToXYZ)
)

func mustInvert(m *r3.Mat) *r3.Mat {
	d := mat.NewDense(3, 3, nil)
	for i := range 3 {
		for j := range 3 {
			d.Set(i, j, m.At(i, j))
		}
	}

	var inv mat.Dense
	if err := inv.Inverse(d); err != nil {
		panic(fmt.Sprintf("lchcolor: singular primary matrix: %v", err))
	}

	vals := make([]float64, 0, 9)
	for i := range 3 {
		for j := range 3 {
			vals = append(vals, inv.At(i, j))
		}
	}
	return r3.NewMat(vals)
}

// LinearRGB holds light intensities before gamma encoding. Channels are not
// bounded; use Clip to bring them into the unit cube.
type LinearRGB struct {
	R float64
	G float64
	B float64
}

// RGB gamma encodes lc. Channels are expected to be in [0,1].
func (lc LinearRGB) RGB() RGB {
	return RGB{
		R: fromLinear(lc.R),
		G: fromLinear(lc.G),
		B: fromLinear(lc.B),
	}
}

func (lc LinearRGB) vec() r3.Vec {
	return r3.Vec{X: lc.R, Y: lc.G, Z: lc.B}
}

func linearFromVec(v r3.Vec) LinearRGB {
	return LinearRGB{R: v.X, G: v.Y, B: v.Z}
}

func toLinear(x float64) float64 {
	return math.Pow(x, gamma)
}

func fromLinear(x float64) float64 {
	return math.Pow(x, invGamma)
}
