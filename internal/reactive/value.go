// Package reactive provides a minimal observable value used to fan state changes out to
// views. All methods are expected to run on the UI goroutine.
package reactive

// Value holds a single piece of state and notifies subscribers when it changes.
type Value[T comparable] struct {
	current T
	nextID  int
	subs    map[int]func(T)
	order   []int
}

// NewValue creates a Value with the given initial state.
func NewValue[T comparable](initial T) *Value[T] {
	return &Value[T]{current: initial, subs: make(map[int]func(T))}
}

// Get returns the current state.
func (v *Value[T]) Get() T {
	return v.current
}

// Set stores next and notifies subscribers in subscription order. It reports whether the
// value changed; setting an equal value publishes nothing.
func (v *Value[T]) Set(next T) bool {
	if v.current == next {
		return false
	}
	v.current = next
	for _, id := range append([]int(nil), v.order...) {
		if fn, ok := v.subs[id]; ok {
			fn(next)
		}
	}
	return true
}

// Subscribe registers fn and returns a func that removes it. Calling the returned func
// more than once is safe.
func (v *Value[T]) Subscribe(fn func(T)) func() {
	if fn == nil {
		return func() {}
	}
	if v.subs == nil {
		v.subs = make(map[int]func(T))
	}
	id := v.nextID
	v.nextID++
	v.subs[id] = fn
	v.order = append(v.order, id)

	return func() {
		if _, ok := v.subs[id]; !ok {
			return
		}
		delete(v.subs, id)
		for i, existing := range v.order {
			if existing == id {
				v.order = append(v.order[:i], v.order[i+1:]...)
				break
			}
		}
	}
}

// Subscribers returns the number of live subscriptions.
func (v *Value[T]) Subscribers() int {
	return len(v.subs)
}
