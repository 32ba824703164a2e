package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ScrollBar renders reading progress as a full-width gradient bar with a percentage.
type ScrollBar struct {
	width      int
	labelStyle lipgloss.Style
}

// NewScrollBar creates a bar spanning width columns including its label.
func NewScrollBar(width int, label lipgloss.Style) ScrollBar {
	return ScrollBar{width: width, labelStyle: label}
}

// View renders the bar at progress, blending from the from colour to the to colour.
func (s ScrollBar) View(ratio float64, percent int, from, to string) string {
	label := s.labelStyle.Render(fmt.Sprintf("%3d%%", percent))

	bar := progress.New(progress.WithGradient(from, to), progress.WithoutPercentage())
	bar.Width = max(1, s.width-lipgloss.Width(label)-1)
	bar.Full = '━'
	bar.Empty = ' '

	return lipgloss.JoinHorizontal(lipgloss.Left, bar.ViewAs(ratio), " ", label)
}
