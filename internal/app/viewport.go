package app

// DefaultMaxPixelRatio caps the render-target density on high-DPI displays.
const DefaultMaxPixelRatio = 2

// Viewport is the drawable area in logical pixels plus the display density.
// Only the resize handler mutates it.
type Viewport struct {
	Width            int
	Height           int
	DevicePixelRatio float64
	MaxPixelRatio    float64
}

// PixelRatio returns the device pixel ratio clamped to MaxPixelRatio.
func (v Viewport) PixelRatio() float64 {
	limit := v.MaxPixelRatio
	if limit <= 0 {
		limit = DefaultMaxPixelRatio
	}
	dpr := v.DevicePixelRatio
	if dpr <= 0 {
		dpr = 1
	}
	return min(dpr, limit)
}

// Aspect returns Width/Height, or 1 for an empty viewport.
func (v Viewport) Aspect() float32 {
	if v.Width <= 0 || v.Height <= 0 {
		return 1
	}
	return float32(v.Width) / float32(v.Height)
}
