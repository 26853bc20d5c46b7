package selector

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"lchmap/colormap"
	"lchmap/lchcolor"
	"lchmap/overlay"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

type recordingHost struct {
	colors []lchcolor.RGB
	draws  int
}

func (h *recordingHost) ColorChanged(c lchcolor.RGB) { h.colors = append(h.colors, c) }
func (h *recordingHost) QueueDraw()                  { h.draws++ }

func TestSliderScaling(t *testing.T) {
	lch := lchcolor.LCh{L: 0.42, C: 0.3, H: math.Pi}
	sl := SlidersFromLCh(lch)
	if diff := cmp.Diff(Sliders{L: 42, C: 30, H: 180}, sl, approx); diff != "" {
		t.Errorf("sliders (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(lch, sl.LCh(), approx); diff != "" {
		t.Errorf("back to LCh (-want +got):\n%s", diff)
	}
}

func TestSlidersClampToRange(t *testing.T) {
	sl := SlidersFromLCh(lchcolor.LCh{L: 1.2, C: 1.7, H: 7})
	want := Sliders{L: MaxLightness, C: MaxChroma, H: MaxHue}
	if diff := cmp.Diff(want, sl); diff != "" {
		t.Errorf("clamped sliders (-want +got):\n%s", diff)
	}
}

func TestSetColorDoesNotEcho(t *testing.T) {
	host := &recordingHost{}
	s := New(host)
	defer s.Close()

	sl := s.SetColor(lchcolor.RGB{R: 0.5, G: 0.5, B: 0.5})
	if len(host.colors) != 0 {
		t.Errorf("SetColor reported %d color changes", len(host.colors))
	}
	if host.draws != 1 {
		t.Errorf("draws = %d, want 1", host.draws)
	}
	if sl.C > 1e-7 {
		t.Errorf("gray has chroma %v", sl.C)
	}
	if diff := cmp.Diff(sl, s.Sliders()); diff != "" {
		t.Errorf("stored sliders (-returned +stored):\n%s", diff)
	}
}

func TestSetSlidersEmitsColor(t *testing.T) {
	host := &recordingHost{}
	s := New(host)
	defer s.Close()

	in := lchcolor.RGB{R: 0.8, G: 0.3, B: 0.2}
	sl := s.SetColor(in)

	rgb, ok := s.SetSliders(sl)
	if !ok {
		t.Fatal("color from an in-gamut RGB left the gamut")
	}
	if diff := cmp.Diff(in, rgb, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("round trip through sliders (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]lchcolor.RGB{rgb}, host.colors); diff != "" {
		t.Errorf("host colors (-want +got):\n%s", diff)
	}
	if host.draws != 2 {
		t.Errorf("draws = %d, want 2", host.draws)
	}

	got, gotOK := s.Color()
	if got != rgb || gotOK != ok {
		t.Errorf("Color() = %v,%v want %v,%v", got, gotOK, rgb, ok)
	}
}

func TestSetSlidersOutOfGamut(t *testing.T) {
	s := New(nil)
	defer s.Close()

	rgb, ok := s.SetSliders(Sliders{L: 50, C: 100, H: 45})
	if ok {
		t.Fatalf("expected out of gamut, got %v", rgb)
	}
	for _, v := range []float64{rgb.R, rgb.G, rgb.B} {
		if v < 0 || v > 1 || math.IsNaN(v) {
			t.Errorf("clamped color has channel %v", v)
		}
	}
}

func TestRenderUsesCache(t *testing.T) {
	cache := colormap.NewCache()
	s := New(nil, WithCache(cache))
	defer s.Close()

	s.SetSliders(Sliders{L: 30, C: 10, H: 90})
	bm, g, err := s.Render(10)
	if err != nil {
		t.Fatal(err)
	}
	if bm.Lightness != 0.3 {
		t.Errorf("bitmap lightness = %v", bm.Lightness)
	}
	if diff := cmp.Diff(overlay.Compute(s.Sliders().LCh(), 10), g); diff != "" {
		t.Errorf("geometry (-want +got):\n%s", diff)
	}

	// Chroma and hue edits keep the slice.
	s.SetSliders(Sliders{L: 30, C: 20, H: 180})
	if _, _, err := s.Render(10); err != nil {
		t.Fatal(err)
	}
	if n := cache.Generations(); n != 1 {
		t.Errorf("generations after chroma edit = %d, want 1", n)
	}

	s.SetSliders(Sliders{L: 31, C: 20, H: 180})
	if _, _, err := s.Render(10); err != nil {
		t.Fatal(err)
	}
	if n := cache.Generations(); n != 2 {
		t.Errorf("generations after lightness edit = %d, want 2", n)
	}

	if _, _, err := s.Render(1); !errors.Is(err, colormap.ErrInvalidSize) {
		t.Errorf("Render(1) err = %v", err)
	}
}

func TestPick(t *testing.T) {
	host := &recordingHost{}
	s := New(host)
	defer s.Close()
	s.SetSliders(Sliders{L: 60})

	// Right of center on a 101 pixel map: a=0.2, b=0, hue 0.
	if _, _, err := s.Pick(overlay.Point{X: 60, Y: 50}, 101); err != nil {
		t.Fatal(err)
	}
	want := Sliders{L: 60, C: 20, H: 0}
	if diff := cmp.Diff(want, s.Sliders(), approx); diff != "" {
		t.Errorf("sliders after pick (-want +got):\n%s", diff)
	}
	if len(host.colors) != 2 {
		t.Errorf("color changes = %d, want 2", len(host.colors))
	}

	if _, _, err := s.Pick(overlay.Point{}, 1); !errors.Is(err, colormap.ErrInvalidSize) {
		t.Errorf("pick on tiny map err = %v", err)
	}
}

func TestSlidersValidate(t *testing.T) {
	if err := (Sliders{L: 100, C: 0, H: 360}).Validate(); err != nil {
		t.Errorf("range limits rejected: %v", err)
	}
	for _, sl := range []Sliders{
		{L: -1},
		{L: 50, C: 101},
		{L: 50, H: 361},
		{L: math.NaN()},
	} {
		if err := sl.Validate(); !errors.Is(err, ErrSliderRange) {
			t.Errorf("%v: err = %v, want ErrSliderRange", sl, err)
		}
	}
}
