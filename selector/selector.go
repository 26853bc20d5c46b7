// Package selector holds the state behind an L*C*h* color picker: three
// sliders, the color they describe, and the color map drawn for them. The
// widget toolkit stays outside; it talks to a Selector through plain values
// and the Host interface.
package selector

import (
	"errors"
	"fmt"
	"log/slog"
	"math"

	"lchmap/colormap"
	"lchmap/lchcolor"
	"lchmap/overlay"
)

// Slider ranges in UI units.
const (
	MaxLightness = 100.0
	MaxChroma    = 100.0
	MaxHue       = 360.0
)

// Host receives notifications from a Selector.
type Host interface {
	// ColorChanged is called after the user edited the color.
	ColorChanged(lchcolor.RGB)
	// QueueDraw asks for the color map area to be repainted.
	QueueDraw()
}

// Sliders are the user facing values: lightness and chroma in percent, hue
// in degrees.
type Sliders struct {
	L float64
	C float64
	H float64
}

// SlidersFromLCh scales lch to UI units and clamps each value into its
// slider range. Chroma of very saturated colors ends up pinned at
// MaxChroma.
func SlidersFromLCh(lch lchcolor.LCh) Sliders {
	return Sliders{
		L: clamp(lch.L*100, 0, MaxLightness),
		C: clamp(lch.C*100, 0, MaxChroma),
		H: clamp(lch.H*(180/math.Pi), 0, MaxHue),
	}
}

// LCh converts slider values back to the internal scale.
func (s Sliders) LCh() lchcolor.LCh {
	return lchcolor.LCh{
		L: s.L / 100,
		C: s.C / 100,
		H: s.H * (math.Pi / 180),
	}
}

// ErrSliderRange reports a slider value outside its UI range.
var ErrSliderRange = errors.New("slider value out of range")

// Validate checks every value against its slider range.
func (s Sliders) Validate() error {
	switch {
	case !(s.L >= 0 && s.L <= MaxLightness):
		return fmt.Errorf("%w: lightness %v not in [0, %v]", ErrSliderRange, s.L, MaxLightness)
	case !(s.C >= 0 && s.C <= MaxChroma):
		return fmt.Errorf("%w: chroma %v not in [0, %v]", ErrSliderRange, s.C, MaxChroma)
	case !(s.H >= 0 && s.H <= MaxHue):
		return fmt.Errorf("%w: hue %v not in [0, %v]", ErrSliderRange, s.H, MaxHue)
	}
	return nil
}

func (s Sliders) String() string {
	return fmt.Sprintf("L*=%.2f C*=%.2f h*=%.2f", s.L, s.C, s.H)
}

func clamp(x, lo, hi float64) float64 {
	return min(max(x, lo), hi)
}

// Selector is owned by one UI context and is not safe for concurrent use.
type Selector struct {
	host    Host
	logger  *slog.Logger
	cache   *colormap.Cache
	sliders Sliders
	rgb     lchcolor.RGB
	inGamut bool
}

type Option func(*Selector)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Selector) {
		s.logger = logger
	}
}

// WithCache replaces the default serial cache, e.g. with one rendering on
// several workers. The Selector takes ownership.
func WithCache(cache *colormap.Cache) Option {
	return func(s *Selector) {
		s.cache = cache
	}
}

// New returns a Selector at black. host may be nil.
func New(host Host, opts ...Option) *Selector {
	s := &Selector{
		host:    host,
		logger:  slog.Default(),
		inGamut: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.cache == nil {
		s.cache = colormap.NewCache(colormap.WithLogger(s.logger))
	}
	return s
}

// SetColor takes a color chosen elsewhere and moves the sliders to it. The
// host is asked to redraw but is not told about a color change, since the
// color came from the host in the first place.
func (s *Selector) SetColor(rgb lchcolor.RGB) Sliders {
	s.sliders = SlidersFromLCh(rgb.LCh())
	s.rgb = rgb.Clamped()
	s.inGamut = true
	s.logger.Debug("color set", "rgb", s.rgb.Hex(), "sliders", s.sliders)

	s.queueDraw()
	return s.sliders
}

// SetSliders applies a user edit, reports the resulting color to the host
// and returns it together with the gamut flag.
func (s *Selector) SetSliders(sl Sliders) (lchcolor.RGB, bool) {
	s.sliders = sl
	s.rgb, s.inGamut = sl.LCh().RGB()
	s.logger.Debug("sliders changed", "sliders", sl, "rgb", s.rgb.Hex(), "in_gamut", s.inGamut)

	if s.host != nil {
		s.host.ColorChanged(s.rgb)
	}
	s.queueDraw()
	return s.rgb, s.inGamut
}

// Pick handles a click at p on a map of the given size: lightness stays,
// chroma and hue move to the clicked point.
func (s *Selector) Pick(p overlay.Point, size int) (lchcolor.RGB, bool, error) {
	if size < 2 {
		return lchcolor.RGB{}, false, fmt.Errorf("pick on map of size %d: %w", size, colormap.ErrInvalidSize)
	}
	a, b := overlay.FromScreen(p, size)
	lch := lchcolor.Lab{L: s.sliders.L / 100, A: a, B: b}.LCh()

	sl := SlidersFromLCh(lch)
	sl.L = s.sliders.L
	rgb, ok := s.SetSliders(sl)
	return rgb, ok, nil
}

func (s *Selector) Sliders() Sliders {
	return s.sliders
}

// Color returns the current color and whether it is inside the gamut.
func (s *Selector) Color() (lchcolor.RGB, bool) {
	return s.rgb, s.inGamut
}

// Render returns the color map for the current lightness at the given
// size together with the overlay to draw on it. The bitmap is shared with
// later calls and must not be modified.
func (s *Selector) Render(size int) (*colormap.Bitmap, overlay.Geometry, error) {
	lch := s.sliders.LCh()
	bm, err := s.cache.Get(size, lch.L)
	if err != nil {
		return nil, overlay.Geometry{}, fmt.Errorf("could not render color map: %w", err)
	}
	return bm, overlay.Compute(lch, size), nil
}

// Close releases the cached color map.
func (s *Selector) Close() {
	s.cache.Close()
}

func (s *Selector) queueDraw() {
	if s.host != nil {
		s.host.QueueDraw()
	}
}
