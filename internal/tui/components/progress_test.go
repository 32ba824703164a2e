package components

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"
)

func TestScrollBarView(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		ratio   float64
		percent int
		label   string
	}{
		{name: "top of page", ratio: 0, percent: 0, label: "  0%"},
		{name: "halfway", ratio: 0.5, percent: 50, label: " 50%"},
		{name: "bottom of page", ratio: 1, percent: 100, label: "100%"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			bar := NewScrollBar(40, lipgloss.NewStyle())
			view := bar.View(tc.ratio, tc.percent, "#9333ea", "#2563eb")
			require.Contains(t, view, tc.label)
			require.Equal(t, 40, lipgloss.Width(view))
		})
	}
}

func TestScrollBarNarrowWidth(t *testing.T) {
	t.Parallel()

	bar := NewScrollBar(2, lipgloss.NewStyle())
	view := bar.View(1, 100, "#000000", "#ffffff")
	require.Contains(t, view, "100%")
}
