package overlay

import (
	"image"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"lchmap/lchcolor"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestToScreenCorners(t *testing.T) {
	tests := []struct {
		a, b float64
		want Point
	}{
		{-1, 1, Point{0, 0}},
		{1, 1, Point{100, 0}},
		{-1, -1, Point{0, 100}},
		{1, -1, Point{100, 100}},
		{0, 0, Point{50, 50}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, ToScreen(tt.a, tt.b, 101), approx); diff != "" {
			t.Errorf("ToScreen(%v, %v) (-want +got):\n%s", tt.a, tt.b, diff)
		}
	}
}

func TestToScreenMatchesRasterGrid(t *testing.T) {
	// Pixel (x, y) of the rasterizer samples a = x*2/(n-1)-1, b = 1-y*2/(n-1).
	const size = 9
	for y := range size {
		for x := range size {
			a := float64(x)*(2.0/(size-1)) - 1
			b := float64(y)*(-2.0/(size-1)) + 1
			p := ToScreen(a, b, size)
			if math.Abs(p.X-float64(x)) > 1e-9 || math.Abs(p.Y-float64(y)) > 1e-9 {
				t.Errorf("(%d,%d) maps to %v", x, y, p)
			}
		}
	}
}

func TestFromScreenInverse(t *testing.T) {
	for _, ab := range [][2]float64{{0.3, -0.7}, {-1, 1}, {0, 0}, {1.8, 0.2}} {
		a, b := FromScreen(ToScreen(ab[0], ab[1], 64), 64)
		if diff := cmp.Diff(ab, [2]float64{a, b}, approx); diff != "" {
			t.Errorf("round trip (-want +got):\n%s", diff)
		}
	}
}

func TestCompute(t *testing.T) {
	g := Compute(lchcolor.LCh{L: 0.5, C: 0.5, H: math.Pi / 2}, 101)

	want := Geometry{
		Chroma: Circle{Center: Point{50, 50}, Radius: 25},
		Hue:    Line{From: Point{50, 50}, To: Point{50, -50}},
	}
	if diff := cmp.Diff(want, g, approx); diff != "" {
		t.Errorf("geometry (-want +got):\n%s", diff)
	}

	x, y, w, h := g.Chroma.Bounds()
	if diff := cmp.Diff([]float64{25, 25, 50, 50}, []float64{x, y, w, h}, approx); diff != "" {
		t.Errorf("bounds (-want +got):\n%s", diff)
	}
}

func TestComputeNeedleFollowsHue(t *testing.T) {
	// Hue 0 points along +a, to the right of the center.
	g := Compute(lchcolor.LCh{L: 0.5, C: 0.1, H: 0}, 11)
	if diff := cmp.Diff(Line{From: Point{5, 5}, To: Point{15, 5}}, g.Hue, approx); diff != "" {
		t.Errorf("needle (-want +got):\n%s", diff)
	}

	// The needle direction agrees with the Lab vector of the color.
	lab := lchcolor.LCh{L: 0.5, C: 0.3, H: 2.2}.Lab()
	g = Compute(lab.LCh(), 11)
	dx := g.Hue.To.X - g.Hue.From.X
	dy := g.Hue.From.Y - g.Hue.To.Y
	if math.Abs(math.Atan2(dy, dx)-math.Atan2(lab.B, lab.A)) > 1e-9 {
		t.Errorf("needle direction (%v,%v) does not follow (%v,%v)", dx, dy, lab.A, lab.B)
	}
}

func TestPixelTruncates(t *testing.T) {
	if got := (Point{X: 3.9, Y: 0.2}).Pixel(); got != (image.Point{X: 3, Y: 0}) {
		t.Errorf("Pixel = %v", got)
	}
}
