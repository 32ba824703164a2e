// Package frame multiplexes per-frame animation callbacks onto a single tick source.
package frame

import "time"

// DefaultFPS is the frame rate used when none is configured.
const DefaultFPS = 30

// Callback receives the frame timestamp.
type Callback func(now time.Time)

// Loop runs subscribed callbacks once per frame. Frame timestamps handed to callbacks never
// go backwards: an earlier timestamp is replaced by the last one seen.
type Loop struct {
	fps    int
	nextID int
	subs   map[int]Callback
	order  []int
	last   time.Time
	frames uint64
}

// NewLoop creates a Loop running at fps frames per second; non-positive values use DefaultFPS.
func NewLoop(fps int) *Loop {
	if fps <= 0 {
		fps = DefaultFPS
	}
	return &Loop{fps: fps, subs: make(map[int]Callback)}
}

// Interval returns the time between frames.
func (l *Loop) Interval() time.Duration {
	return time.Second / time.Duration(l.fps)
}

// FPS returns the configured frame rate.
func (l *Loop) FPS() int {
	return l.fps
}

// SetFPS changes the frame rate used by Interval. Non-positive values use DefaultFPS.
func (l *Loop) SetFPS(fps int) {
	if fps <= 0 {
		fps = DefaultFPS
	}
	l.fps = fps
}

// Subscribe registers cb and returns its cancel func. Owners must call cancel on every exit
// path, typically with defer or from their unmount hook.
func (l *Loop) Subscribe(cb Callback) (cancel func()) {
	if cb == nil {
		return func() {}
	}
	id := l.nextID
	l.nextID++
	l.subs[id] = cb
	l.order = append(l.order, id)

	return func() {
		if _, ok := l.subs[id]; !ok {
			return
		}
		delete(l.subs, id)
		for i, existing := range l.order {
			if existing == id {
				l.order = append(l.order[:i], l.order[i+1:]...)
				break
			}
		}
	}
}

// Active reports whether any callback is subscribed.
func (l *Loop) Active() bool {
	return len(l.subs) > 0
}

// Subscriptions returns the number of live callbacks.
func (l *Loop) Subscriptions() int {
	return len(l.subs)
}

// Frames returns how many frames have been dispatched.
func (l *Loop) Frames() uint64 {
	return l.frames
}

// Tick dispatches one frame. Callbacks cancelled by an earlier callback in the same frame
// are skipped.
func (l *Loop) Tick(now time.Time) {
	if now.Before(l.last) {
		now = l.last
	}
	l.last = now
	l.frames++

	for _, id := range append([]int(nil), l.order...) {
		if cb, ok := l.subs[id]; ok {
			cb(now)
		}
	}
}
