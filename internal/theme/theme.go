// Package theme resolves, applies and persists the light/dark display mode.
package theme

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zaidlab/folio/internal/logger"
	"github.com/zaidlab/folio/internal/reactive"
	"github.com/zaidlab/folio/internal/store"
)

// StorageKey is the preference key holding the persisted mode.
const StorageKey = "theme"

// SchemeEnv overrides terminal background detection with "dark" or "light".
const SchemeEnv = "FOLIO_COLOR_SCHEME"

// Mode is the display theme.
type Mode int

const (
	Light Mode = iota
	Dark
)

// String returns the persisted representation of the mode.
func (m Mode) String() string {
	if m == Dark {
		return "dark"
	}
	return "light"
}

// Opposite returns the other mode.
func (m Mode) Opposite() Mode {
	if m == Dark {
		return Light
	}
	return Dark
}

// ParseMode converts "light" or "dark" (any case) into a Mode.
func ParseMode(value string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "light":
		return Light, nil
	case "dark":
		return Dark, nil
	default:
		return Light, fmt.Errorf("unknown theme %q (want light or dark)", value)
	}
}

// SystemDetector reports whether the environment prefers a dark scheme.
type SystemDetector func() bool

// DetectSystem reads SchemeEnv and falls back to the terminal's background colour.
func DetectSystem() bool {
	if mode, err := ParseMode(os.Getenv(SchemeEnv)); err == nil {
		return mode == Dark
	}
	return lipgloss.HasDarkBackground()
}

// Preference owns the session's theme mode. It is the single writer of the mode: views
// subscribe, and only Toggle or Set change it.
type Preference struct {
	store  store.Store
	detect SystemDetector
	log    *logger.Logger
	mode   *reactive.Value[Mode]
}

// NewPreference builds a Preference and resolves its initial mode. A nil store behaves as
// unavailable storage; a nil detector uses DetectSystem.
func NewPreference(s store.Store, detect SystemDetector, log *logger.Logger) *Preference {
	if detect == nil {
		detect = DetectSystem
	}
	p := &Preference{store: s, detect: detect, log: log.Component("theme")}
	p.mode = reactive.NewValue(p.Initial())
	return p
}

// Initial returns the persisted mode when present and valid, otherwise the system
// preference. It never writes to storage.
func (p *Preference) Initial() Mode {
	if p.store != nil {
		value, ok, err := p.store.Get(StorageKey)
		switch {
		case err != nil:
			p.log.Warn(err, "theme preference unreadable, using system preference")
		case ok:
			mode, parseErr := ParseMode(value)
			if parseErr == nil {
				return mode
			}
			p.log.Warn(parseErr, "ignoring invalid stored theme")
		}
	}

	if p.detect() {
		return Dark
	}
	return Light
}

// Mode returns the active mode.
func (p *Preference) Mode() Mode {
	return p.mode.Get()
}

// Subscribe registers fn for mode changes.
func (p *Preference) Subscribe(fn func(Mode)) func() {
	return p.mode.Subscribe(fn)
}

// Toggle flips the mode, applies it, and persists it before returning.
func (p *Preference) Toggle() Mode {
	next := p.mode.Get().Opposite()
	p.Set(next)
	return next
}

// Set applies mode and persists it. Persistence failures leave the mode applied for the
// session and are only logged.
func (p *Preference) Set(mode Mode) {
	p.mode.Set(mode)

	if p.store == nil {
		p.log.Debug("no preference store, theme is session-only")
		return
	}
	if err := p.store.Set(StorageKey, mode.String()); err != nil {
		p.log.Warn(err, "theme preference not persisted")
	}
}
