package theme

import "github.com/charmbracelet/lipgloss"

// Palette is the set of colours a view needs for one mode.
type Palette struct {
	Background lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Accent     lipgloss.Color
	AccentAlt  lipgloss.Color
	Border     lipgloss.Color
	Error      lipgloss.Color

	// ProgressStops are the scroll-progress gradient stops at 0, 0.5 and 1.
	ProgressStops [3]string
	// Particles are blended across the field by particle index.
	Particles [2]string
	// Blobs tint the two slow background blobs of the hero.
	Blobs [2]string
}

var palettes = map[Mode]Palette{
	Light: {
		Background:    lipgloss.Color("#ffffff"),
		Foreground:    lipgloss.Color("#0f172a"),
		Muted:         lipgloss.Color("#64748b"),
		Accent:        lipgloss.Color("#9333ea"),
		AccentAlt:     lipgloss.Color("#2563eb"),
		Border:        lipgloss.Color("#cbd5e1"),
		Error:         lipgloss.Color("#dc2626"),
		ProgressStops: [3]string{"#9333ea", "#6366f1", "#2563eb"},
		Particles:     [2]string{"#a855f7", "#3b82f6"},
		Blobs:         [2]string{"#f3e8ff", "#dbeafe"},
	},
	Dark: {
		Background:    lipgloss.Color("#0b1120"),
		Foreground:    lipgloss.Color("#e2e8f0"),
		Muted:         lipgloss.Color("#94a3b8"),
		Accent:        lipgloss.Color("#3b82f6"),
		AccentAlt:     lipgloss.Color("#a855f7"),
		Border:        lipgloss.Color("#334155"),
		Error:         lipgloss.Color("#f87171"),
		ProgressStops: [3]string{"#3b82f6", "#6366f1", "#a855f7"},
		Particles:     [2]string{"#3b82f6", "#a855f7"},
		Blobs:         [2]string{"#172554", "#2e1065"},
	},
}

// PaletteFor returns the palette of mode.
func PaletteFor(mode Mode) Palette {
	return palettes[mode]
}
