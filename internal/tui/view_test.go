package tui

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"

	"github.com/zaidlab/folio/internal/config"
	"github.com/zaidlab/folio/internal/store"
	"github.com/zaidlab/folio/internal/theme"
)

func TestViewFillsTerminal(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t, 120, 40)
	view := m.View()
	lines := strings.Split(view, "\n")
	require.Len(t, lines, 40)

	plain := stripANSI(view)
	require.Contains(t, plain, "0%")
	require.Contains(t, plain, "Zaid")
	require.Contains(t, plain, "Work")
	require.Contains(t, plain, "Contact")
	require.Contains(t, plain, "View My Work")
}

func TestViewShowsCardOverlay(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t, 120, 40)
	m.openCardIn(m.services, 3)

	plain := stripANSI(m.View())
	require.Contains(t, plain, "3D Printing Training")
	require.Contains(t, plain, "esc close")
	require.Contains(t, plain, "$85/hour")
	require.Contains(t, plain, "Press u to upload")
}

func TestViewShowsHelpAndSearch(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t, 120, 40)
	m = press(t, m, runes("?"))
	require.Contains(t, stripANSI(m.View()), "toggle theme")

	m = press(t, m, runes("x"), runes("/"))
	require.Contains(t, stripANSI(m.View()), "/ ")
}

func TestStatusLineJumpButton(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t, 120, 40)
	st := newStyles(m.themePalette())
	require.NotContains(t, stripANSI(m.statusLine(st)), "top")

	m = press(t, m, runes("G"))
	line := m.statusLine(st)
	require.Contains(t, stripANSI(line), "↑ top")
	require.Equal(t, 120, lipgloss.Width(line))
}

func TestRenderStaticIncludesEverySection(t *testing.T) {
	t.Parallel()

	out := stripANSI(RenderStatic(Options{
		Content:    config.Default(),
		Preference: theme.NewPreference(store.NewMemory(), func() bool { return false }, nil),
		Rand:       rand.New(rand.NewSource(3)),
		Width:      100,
		Height:     30,
		Now:        func() time.Time { return testClock },
	}))

	for _, want := range []string{
		"About Me",
		"Services",
		"Featured Projects",
		"Get In Touch",
		"PalTraffic",
		"Palestine Historical Data",
		"$40/hour",
		"© 2026 Zaid. All rights reserved.",
	} {
		require.Contains(t, out, want)
	}
}
