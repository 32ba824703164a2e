package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/zaidlab/folio/internal/theme"
)

// styles are rebuilt whenever the palette changes, so every style paints the palette
// background and the page reads correctly on any terminal.
type styles struct {
	palette theme.Palette

	base        lipgloss.Style
	text        lipgloss.Style
	muted       lipgloss.Style
	accent      lipgloss.Style
	accentAlt   lipgloss.Style
	bold        lipgloss.Style
	errorText   lipgloss.Style
	card        lipgloss.Style
	cardFocused lipgloss.Style
	tag         lipgloss.Style
	button      lipgloss.Style
	buttonFocus lipgloss.Style
	nav         lipgloss.Style
	navActive   lipgloss.Style
	brand       lipgloss.Style
	divider     lipgloss.Style
	overlay     lipgloss.Style
	percent     lipgloss.Style
}

func newStyles(p theme.Palette) styles {
	base := lipgloss.NewStyle().Background(p.Background).Foreground(p.Foreground)
	card := base.
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(p.Border).
		BorderBackground(p.Background).
		Padding(0, 1)

	return styles{
		palette:     p,
		base:        base,
		text:        base,
		muted:       base.Foreground(p.Muted),
		accent:      base.Foreground(p.Accent).Bold(true),
		accentAlt:   base.Foreground(p.AccentAlt),
		bold:        base.Bold(true),
		errorText:   base.Foreground(p.Error).Bold(true),
		card:        card,
		cardFocused: card.BorderForeground(p.Accent),
		tag:         base.Foreground(p.AccentAlt).Italic(true),
		button:      base.Foreground(p.Accent).Bold(true),
		buttonFocus: lipgloss.NewStyle().Background(p.Accent).Foreground(p.Background).Bold(true),
		nav:         base.Foreground(p.Muted),
		navActive:   base.Foreground(p.Accent).Bold(true).Underline(true),
		brand:       base.Foreground(p.Accent).Bold(true),
		divider:     base.Foreground(p.Border),
		overlay: base.
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(p.Accent).
			BorderBackground(p.Background).
			Padding(1, 2),
		percent: base.Foreground(p.Muted),
	}
}

// fade blends every foreground colour toward the background; f=0 is invisible and f=1
// is the palette unchanged.
func fade(p theme.Palette, f float64) theme.Palette {
	if f >= 1 {
		return p
	}
	out := p
	out.Foreground = blend(p.Background, p.Foreground, f)
	out.Muted = blend(p.Background, p.Muted, f)
	out.Accent = blend(p.Background, p.Accent, f)
	out.AccentAlt = blend(p.Background, p.AccentAlt, f)
	out.Border = blend(p.Background, p.Border, f)
	out.Error = blend(p.Background, p.Error, f)
	return out
}

func blend(from, to lipgloss.Color, t float64) lipgloss.Color {
	a, errA := colorful.Hex(string(from))
	b, errB := colorful.Hex(string(to))
	if errA != nil || errB != nil {
		return to
	}
	return lipgloss.Color(a.BlendRgb(b, clamp01(t)).Clamped().Hex())
}

// gradientText colours each rune of s along a from→to gradient.
func gradientText(s string, from, to lipgloss.Color, base lipgloss.Style) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return ""
	}
	var b strings.Builder
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		b.WriteString(base.Foreground(blend(from, to, t)).Render(string(r)))
	}
	return b.String()
}

func clamp01(v float64) float64 {
	if v != v || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
