// Package pointer normalizes mouse and touch positions into container percentages.
package pointer

import "github.com/zaidlab/folio/internal/reactive"

// Kind identifies the source of a pointer event.
type Kind int

const (
	Mouse Kind = iota
	Touch
)

// Point is a raw position in screen cells.
type Point struct {
	X, Y float64
}

// Event is a pointer-move or touch-move event. Mouse events use X and Y; touch events use
// the first entry of Touches.
type Event struct {
	Kind    Kind
	X, Y    float64
	Touches []Point
}

// Rect is a container bounding box in screen cells.
type Rect struct {
	X, Y, W, H float64
}

// Valid reports whether the rect has a usable area.
func (r Rect) Valid() bool {
	return r.W > 0 && r.H > 0
}

// Contains reports whether p lies inside the rect.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Position is a normalized location in [0,100] on both axes.
type Position struct {
	X, Y float64
}

// Center is the initial position before any event arrives.
var Center = Position{X: 50, Y: 50}

// Normalize maps p into rect percentages clamped to [0,100]. ok is false for a degenerate
// rect.
func Normalize(p Point, rect Rect) (Position, bool) {
	if !rect.Valid() {
		return Position{}, false
	}
	return Position{
		X: clamp((p.X-rect.X)/rect.W*100, 0, 100),
		Y: clamp((p.Y-rect.Y)/rect.H*100, 0, 100),
	}, true
}

// Tracker merges mouse and touch events into one position stream. The last position is
// kept until another event arrives; leaving the container does not reset it.
type Tracker struct {
	rect     Rect
	position *reactive.Value[Position]
}

// NewTracker creates a Tracker for the given container.
func NewTracker(rect Rect) *Tracker {
	return &Tracker{rect: rect, position: reactive.NewValue(Center)}
}

// SetContainer updates the reference container, e.g. after a resize or scroll.
func (t *Tracker) SetContainer(rect Rect) {
	t.rect = rect
}

// Handle consumes an event and returns the resulting position. updated is false when
// the event carried no usable point or the container has no area yet.
func (t *Tracker) Handle(ev Event) (pos Position, updated bool) {
	var raw Point
	switch ev.Kind {
	case Touch:
		if len(ev.Touches) == 0 {
			return t.position.Get(), false
		}
		raw = ev.Touches[0]
	default:
		raw = Point{X: ev.X, Y: ev.Y}
	}

	pos, ok := Normalize(raw, t.rect)
	if !ok {
		return t.position.Get(), false
	}
	t.position.Set(pos)
	return pos, true
}

// Position returns the last known position.
func (t *Tracker) Position() Position {
	return t.position.Get()
}

// Subscribe registers fn for position changes.
func (t *Tracker) Subscribe(fn func(Position)) func() {
	return t.position.Subscribe(fn)
}

func clamp(v, lo, hi float64) float64 {
	if v != v || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
