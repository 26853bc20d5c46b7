package lchcolor

// Clip clamps every channel of lc into [0,1] on its own and reports whether
// lc was inside the unit cube to begin with. One channel out of range is
// enough to mark the whole color out of gamut. There is no hue-preserving
// mapping, so colors close to the boundary can shift in apparent hue.
func (lc LinearRGB) Clip() (LinearRGB, bool) {
	var okR, okG, okB bool
	lc.R, okR = clamp01(lc.R)
	lc.G, okG = clamp01(lc.G)
	lc.B, okB = clamp01(lc.B)

	return lc, okR && okG && okB
}

// InGamut reports whether lc needs no clipping.
func (lc LinearRGB) InGamut() bool {
	_, ok := lc.Clip()
	return ok
}

// clamp01 treats NaN as below range.
func clamp01(x float64) (float64, bool) {
	switch {
	case !(x >= 0):
		return 0, false
	case x > 1:
		return 1, false
	default:
		return x, true
	}
}
