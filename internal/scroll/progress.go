// Package scroll derives presentation state from the document scroll offset.
package scroll

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/zaidlab/folio/internal/reactive"
)

// DefaultJumpThreshold is the progress after which the jump-to-top affordance shows.
const DefaultJumpThreshold = 0.1

// Progress computes offset / (documentHeight - viewportHeight) clamped to [0,1]. A page
// that cannot scroll, or any non-finite input, yields 0.
func Progress(offset, documentHeight, viewportHeight float64) float64 {
	scrollable := documentHeight - viewportHeight
	if !finite(offset) || !finite(scrollable) || scrollable <= 0 {
		return 0
	}
	return clamp01(offset / scrollable)
}

// Meter publishes scroll progress and the values derived from it.
type Meter struct {
	progress      *reactive.Value[float64]
	jumpThreshold float64
	stops         [3]colorful.Color
}

// NewMeter creates a Meter. stops are hex colours keyed at progress 0, 0.5 and 1; invalid
// stops fall back to black so a bad palette cannot break rendering.
func NewMeter(jumpThreshold float64, stops [3]string) *Meter {
	if jumpThreshold <= 0 {
		jumpThreshold = DefaultJumpThreshold
	}
	m := &Meter{progress: reactive.NewValue(0.0), jumpThreshold: jumpThreshold}
	m.SetStops(stops)
	return m
}

// SetJumpThreshold changes the progress after which ShowJumpToTop reports true.
func (m *Meter) SetJumpThreshold(threshold float64) {
	if threshold <= 0 {
		threshold = DefaultJumpThreshold
	}
	m.jumpThreshold = threshold
}

// SetStops replaces the gradient stops, e.g. after a theme change.
func (m *Meter) SetStops(stops [3]string) {
	for i, hex := range stops {
		c, err := colorful.Hex(hex)
		if err != nil {
			c = colorful.Color{}
		}
		m.stops[i] = c
	}
}

// Update recomputes progress from the current geometry and returns it.
func (m *Meter) Update(offset, documentHeight, viewportHeight float64) float64 {
	p := Progress(offset, documentHeight, viewportHeight)
	m.progress.Set(p)
	return p
}

// Progress returns the last computed progress.
func (m *Meter) Progress() float64 {
	return m.progress.Get()
}

// Subscribe registers fn for progress changes.
func (m *Meter) Subscribe(fn func(float64)) func() {
	return m.progress.Subscribe(fn)
}

// Percent returns round(progress*100).
func (m *Meter) Percent() int {
	return int(math.Round(m.Progress() * 100))
}

// ShowJumpToTop reports whether the jump-to-top affordance is visible.
func (m *Meter) ShowJumpToTop() bool {
	return m.Progress() > m.jumpThreshold
}

// Colors returns the gradient pair for the current progress: the interpolated colour at
// progress and at the far end of the bar.
func (m *Meter) Colors() (from, to string) {
	return m.ColorAt(0).Hex(), m.ColorAt(m.Progress()).Hex()
}

// ColorAt interpolates the three stops piecewise-linearly at p.
func (m *Meter) ColorAt(p float64) colorful.Color {
	p = clamp01(p)
	if p <= 0.5 {
		return m.stops[0].BlendRgb(m.stops[1], p/0.5).Clamped()
	}
	return m.stops[1].BlendRgb(m.stops[2], (p-0.5)/0.5).Clamped()
}

// Transform maps v from the in range onto the out range linearly, clamping to the out
// range. A zero-width in range returns out[0].
func Transform(v float64, in, out [2]float64) float64 {
	span := in[1] - in[0]
	if span == 0 || !finite(v) {
		return out[0]
	}
	t := clamp01((v - in[0]) / span)
	return out[0] + t*(out[1]-out[0])
}

// Scrolled reports whether the header should switch to its compact form.
func Scrolled(offset, threshold int) bool {
	return offset > threshold
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v) || v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
