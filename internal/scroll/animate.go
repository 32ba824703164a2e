package scroll

import (
	"math"

	"github.com/charmbracelet/harmonica"
)

// Animator eases the scroll offset toward a target row with a critically damped spring.
type Animator struct {
	spring   harmonica.Spring
	position float64
	velocity float64
	target   float64
	active   bool
}

// NewAnimator creates an Animator stepped fps times per second.
func NewAnimator(fps int) *Animator {
	if fps <= 0 {
		fps = 30
	}
	return &Animator{spring: harmonica.NewSpring(harmonica.FPS(fps), 8.0, 1.0)}
}

// Start begins animating from the current offset toward target.
func (a *Animator) Start(from, target int) {
	a.position = float64(from)
	a.velocity = 0
	a.target = float64(target)
	a.active = from != target
}

// Active reports whether an animation is running.
func (a *Animator) Active() bool {
	return a.active
}

// Stop abandons the animation, e.g. when the user scrolls manually.
func (a *Animator) Stop() {
	a.active = false
	a.velocity = 0
}

// Step advances one frame and returns the row to display. The animation finishes on the
// frame that first displays the target row.
func (a *Animator) Step() (offset int, done bool) {
	if !a.active {
		return int(math.Round(a.target)), true
	}
	a.position, a.velocity = a.spring.Update(a.position, a.velocity, a.target)
	offset = int(math.Round(a.position))
	if offset == int(math.Round(a.target)) {
		a.position = a.target
		a.velocity = 0
		a.active = false
		return offset, true
	}
	return offset, false
}
