package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// NavItem is one header navigation entry.
type NavItem struct {
	ID    string
	Label string
}

const navSeparator = "  "

// NavList renders header navigation with the section in view highlighted.
type NavList struct {
	items  []NavItem
	active string
}

// NewNavList constructs a nav list. active is the id of the section in view, if any.
func NewNavList(items []NavItem, active string) NavList {
	return NavList{items: items, active: active}
}

// Items returns the ordered entries.
func (n NavList) Items() []NavItem {
	clone := make([]NavItem, len(n.items))
	copy(clone, n.items)
	return clone
}

// Offsets returns the starting column of each item in the Horizontal rendering.
func (n NavList) Offsets() []int {
	out := make([]int, len(n.items))
	col := 0
	for i, item := range n.items {
		out[i] = col
		col += lipgloss.Width(item.Label) + len(navSeparator)
	}
	return out
}

// Horizontal renders the items on one line.
func (n NavList) Horizontal(normal, active lipgloss.Style) string {
	parts := make([]string, 0, len(n.items))
	for _, item := range n.items {
		parts = append(parts, n.style(item, normal, active).Render(item.Label))
	}
	return strings.Join(parts, navSeparator)
}

// Vertical renders one item per line, as the mobile menu does.
func (n NavList) Vertical(normal, active lipgloss.Style) []string {
	lines := make([]string, 0, len(n.items))
	for _, item := range n.items {
		lines = append(lines, n.style(item, normal, active).Render(item.Label))
	}
	return lines
}

func (n NavList) style(item NavItem, normal, active lipgloss.Style) lipgloss.Style {
	if item.ID == n.active {
		return active
	}
	return normal
}
