// Package cards manages expandable project and service cards: single-card expansion,
// the scroll lock held while a card is open, link activation and the card search filter.
package cards

import (
	"errors"
	"strings"

	"github.com/sahilm/fuzzy"
)

var (
	// ErrAlreadyOpen is returned when a card is opened while another is expanded. Cards
	// beneath the overlay are inert.
	ErrAlreadyOpen = errors.New("another card is already open")
	// ErrOutOfRange is returned for an index outside the card list.
	ErrOutOfRange = errors.New("card index out of range")
	// ErrNoLink is returned for a link index the card does not have.
	ErrNoLink = errors.New("card has no such link")
)

// Link is an external URL shown on a card.
type Link struct {
	Label string
	URL   string
}

// Card is an immutable project or service descriptor.
type Card struct {
	Title       string
	Summary     string
	Description string // markdown
	Image       string
	Tags        []string
	Links       []Link
	Meta        map[string]string
}

// ScrollLock suspends page scrolling while held.
type ScrollLock interface {
	Acquire()
	Release()
}

// Lock is a counting ScrollLock. Release without a matching Acquire is ignored.
type Lock struct {
	holders int
}

// Acquire implements ScrollLock.
func (l *Lock) Acquire() {
	l.holders++
}

// Release implements ScrollLock.
func (l *Lock) Release() {
	if l.holders > 0 {
		l.holders--
	}
}

// Locked reports whether scrolling is suspended.
func (l *Lock) Locked() bool {
	return l.holders > 0
}

// Set tracks which card, if any, is expanded.
type Set struct {
	cards  []Card
	lock   ScrollLock
	active int
	open   bool
}

// NewSet creates a closed Set over cards. lock may be nil when scrolling need not be
// suspended.
func NewSet(cards []Card, lock ScrollLock) *Set {
	return &Set{cards: cards, lock: lock, active: -1}
}

// Cards returns the card records.
func (s *Set) Cards() []Card {
	return s.cards
}

// Len returns the number of cards.
func (s *Set) Len() int {
	return len(s.cards)
}

// Active returns the expanded index.
func (s *Set) Active() (int, bool) {
	return s.active, s.open
}

// Card returns the card at i.
func (s *Set) Card(i int) (Card, bool) {
	if i < 0 || i >= len(s.cards) {
		return Card{}, false
	}
	return s.cards[i], true
}

// Open expands card i and acquires the scroll lock. It fails while any card is open.
func (s *Set) Open(i int) error {
	if i < 0 || i >= len(s.cards) {
		return ErrOutOfRange
	}
	if s.open {
		return ErrAlreadyOpen
	}
	s.active = i
	s.open = true
	if s.lock != nil {
		s.lock.Acquire()
	}
	return nil
}

// Close collapses the open card and releases the scroll lock. It reports whether a card
// was open; closing a closed set is a no-op.
func (s *Set) Close() bool {
	if !s.open {
		return false
	}
	s.open = false
	s.active = -1
	if s.lock != nil {
		s.lock.Release()
	}
	return true
}

// Backdrop handles a click outside the expanded card.
func (s *Set) Backdrop() bool {
	return s.Close()
}

// Unmount releases any held scroll lock when the set goes away.
func (s *Set) Unmount() {
	s.Close()
}

// ActivateLink returns link j of card i. It never changes the expansion state.
func (s *Set) ActivateLink(i, j int) (Link, error) {
	card, ok := s.Card(i)
	if !ok {
		return Link{}, ErrOutOfRange
	}
	if j < 0 || j >= len(card.Links) {
		return Link{}, ErrNoLink
	}
	return card.Links[j], nil
}

// Filter returns the indices of cards matching query, best match first. An empty query
// returns every index in order.
func Filter(cards []Card, query string) []int {
	query = strings.TrimSpace(query)
	if query == "" {
		all := make([]int, len(cards))
		for i := range cards {
			all[i] = i
		}
		return all
	}

	haystack := make([]string, len(cards))
	for i, c := range cards {
		haystack[i] = c.Title + " " + strings.Join(c.Tags, " ")
	}

	matches := fuzzy.Find(query, haystack)
	out := make([]int, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Index)
	}
	return out
}
