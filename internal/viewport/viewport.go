// Package viewport classifies the terminal width into layout modes.
package viewport

import "github.com/zaidlab/folio/internal/reactive"

// DefaultThreshold is the mobile/desktop cutoff in columns: 768 logical pixels at eight
// pixels per cell.
const DefaultThreshold = 96

// Mode is the layout classification of the current width.
type Mode int

const (
	Desktop Mode = iota
	Mobile
)

func (m Mode) String() string {
	if m == Mobile {
		return "mobile"
	}
	return "desktop"
}

// Classify returns Mobile for widths below threshold.
func Classify(width, threshold int) Mode {
	if width < threshold {
		return Mobile
	}
	return Desktop
}

// Classifier tracks the mode of the most recent width.
type Classifier struct {
	threshold int
	width     int
	mode      *reactive.Value[Mode]
}

// NewClassifier creates a Classifier for the initial width. Non-positive thresholds use
// DefaultThreshold.
func NewClassifier(width, threshold int) *Classifier {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Classifier{
		threshold: threshold,
		width:     width,
		mode:      reactive.NewValue(Classify(width, threshold)),
	}
}

// Resize reclassifies synchronously and publishes only when the mode changes.
func (c *Classifier) Resize(width int) Mode {
	c.width = width
	mode := Classify(width, c.threshold)
	c.mode.Set(mode)
	return mode
}

// SetThreshold changes the cutoff and reclassifies the last width, publishing on change.
func (c *Classifier) SetThreshold(threshold int) Mode {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	c.threshold = threshold
	return c.Resize(c.width)
}

// Mode returns the current classification.
func (c *Classifier) Mode() Mode {
	return c.mode.Get()
}

// Width returns the last observed width.
func (c *Classifier) Width() int {
	return c.width
}

// Threshold returns the cutoff in columns.
func (c *Classifier) Threshold() int {
	return c.threshold
}

// Subscribe registers fn for mode changes.
func (c *Classifier) Subscribe(fn func(Mode)) func() {
	return c.mode.Subscribe(fn)
}

// Scale holds the multipliers applied to motion in a mode.
type Scale struct {
	Count       float64
	Velocity    float64
	Amplitude   float64
	Frequency   float64
	Attraction  float64
	ParallaxTop float64
}

// DesktopScale leaves every parameter unchanged.
var DesktopScale = Scale{Count: 1, Velocity: 1, Amplitude: 1, Frequency: 1, Attraction: 1, ParallaxTop: 1}

// MobileScale reduces particle density and motion on narrow terminals.
var MobileScale = Scale{Count: 0.5, Velocity: 0.6, Amplitude: 0.5, Frequency: 0.7, Attraction: 0.6, ParallaxTop: 0.5}

// ScaleFor returns the motion multipliers of mode.
func ScaleFor(mode Mode) Scale {
	if mode == Mobile {
		return MobileScale
	}
	return DesktopScale
}
