// Package reveal implements one-shot scroll reveal latches for page sections.
package reveal

import (
	"sort"
	"time"
)

// DefaultThreshold is the visible share of a section that reveals it.
const DefaultThreshold = 0.1

// Span is a vertical range [Start, Start+Height) in document rows.
type Span struct {
	Start  int
	Height int
}

// End returns the first row after the span.
func (s Span) End() int {
	return s.Start + s.Height
}

// IntersectionRatio returns the share of section that lies inside view, in [0,1]. A
// degenerate section yields 0.
func IntersectionRatio(section, view Span) float64 {
	if section.Height <= 0 || view.Height <= 0 {
		return 0
	}
	top := max(section.Start, view.Start)
	bottom := min(section.End(), view.End())
	if bottom <= top {
		return 0
	}
	return float64(bottom-top) / float64(section.Height)
}

// Trigger is a one-shot latch for a single section.
type Trigger struct {
	id         string
	threshold  float64
	revealed   bool
	revealedAt time.Time
}

// NewTrigger creates an unrevealed trigger.
func NewTrigger(id string, threshold float64) *Trigger {
	return &Trigger{id: id, threshold: threshold}
}

// Revealed reports whether the latch has fired.
func (t *Trigger) Revealed() bool {
	return t.revealed
}

// RevealedAt returns when the latch fired, or the zero time.
func (t *Trigger) RevealedAt() time.Time {
	return t.revealedAt
}

// Observe feeds the current intersection ratio. It reports true only on the call that
// fires the latch; once revealed the trigger ignores further observations.
func (t *Trigger) Observe(ratio float64, now time.Time) bool {
	if t.revealed {
		return false
	}
	if ratio > t.threshold || (t.threshold <= 0 && ratio > 0) {
		t.revealed = true
		t.revealedAt = now
		return true
	}
	return false
}

// Settle returns how far the section has animated from hidden to settled, in [0,1].
func (t *Trigger) Settle(now time.Time, duration time.Duration) float64 {
	if !t.revealed {
		return 0
	}
	if duration <= 0 {
		return 1
	}
	elapsed := now.Sub(t.revealedAt)
	if elapsed <= 0 {
		return 0
	}
	if elapsed >= duration {
		return 1
	}
	return float64(elapsed) / float64(duration)
}

// Set holds one trigger per tracked section.
type Set struct {
	threshold float64
	triggers  map[string]*Trigger
}

// NewSet creates an empty Set using threshold for every section it mounts.
func NewSet(threshold float64) *Set {
	return &Set{threshold: threshold, triggers: make(map[string]*Trigger)}
}

// SetThreshold changes the threshold for sections mounted later and for mounted sections
// that have not revealed yet. Revealed latches are kept.
func (s *Set) SetThreshold(threshold float64) {
	s.threshold = threshold
	for _, t := range s.triggers {
		if !t.revealed {
			t.threshold = threshold
		}
	}
}

// Mount registers a section and observes its ratio immediately, so a section that is
// already in view reveals without waiting for a scroll. Mounting an existing id keeps its
// latch and reports false.
func (s *Set) Mount(id string, ratio float64, now time.Time) bool {
	if _, ok := s.triggers[id]; ok {
		return false
	}
	trigger := NewTrigger(id, s.threshold)
	s.triggers[id] = trigger
	return trigger.Observe(ratio, now)
}

// Trigger returns the trigger for id.
func (s *Set) Trigger(id string) (*Trigger, bool) {
	t, ok := s.triggers[id]
	return t, ok
}

// Revealed reports whether section id has been revealed.
func (s *Set) Revealed(id string) bool {
	t, ok := s.triggers[id]
	return ok && t.Revealed()
}

// ObserveAll feeds ratios for mounted sections and returns the ids revealed by this call,
// sorted. Unknown ids are ignored.
func (s *Set) ObserveAll(ratios map[string]float64, now time.Time) []string {
	var fired []string
	for id, ratio := range ratios {
		t, ok := s.triggers[id]
		if !ok {
			continue
		}
		if t.Observe(ratio, now) {
			fired = append(fired, id)
		}
	}
	sort.Strings(fired)
	return fired
}

// Pending returns the number of mounted sections not yet revealed.
func (s *Set) Pending() int {
	n := 0
	for _, t := range s.triggers {
		if !t.revealed {
			n++
		}
	}
	return n
}
