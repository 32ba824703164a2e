package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zaidlab/folio/internal/theme"
	"github.com/zaidlab/folio/internal/tui/components"
)

var navItems = []components.NavItem{
	{ID: sectionProjects, Label: "Work"},
	{ID: sectionAbout, Label: "About"},
	{ID: sectionContact, Label: "Contact"},
}

type headerAction int

const (
	actionBrand headerAction = iota
	actionNav
	actionTheme
	actionMenu
)

// headerTarget is a clickable header element in screen coordinates.
type headerTarget struct {
	action  headerAction
	section string
	box     box
}

type headerView struct {
	lines   []string
	targets []headerTarget
}

// header lays out the fixed header starting at screen row top.
func (m Model) header(top int, active string, st styles) headerView {
	width := m.width
	brandText := "Portfolio"
	if m.content != nil && m.content.Profile.Name != "" {
		brandText = m.content.Profile.Name
	}

	themeIcon := "☾ dark"
	if m.pref.Mode() == theme.Dark {
		themeIcon = "☀ light"
	}

	nav := components.NewNavList(navItems, active)
	row := top
	if !m.compact() {
		row++
	}

	var hv headerView
	hv.targets = append(hv.targets, headerTarget{action: actionBrand, box: box{X: 2, Y: row, W: lipgloss.Width(brandText), H: 1}})

	brand := st.brand.Render(brandText)
	var right string
	if m.mobile() {
		menu := "≡ menu"
		if m.menuOpen {
			menu = "✕ close"
		}
		right = st.nav.Render(themeIcon) + st.base.Render("  ") + st.accent.Render(menu)
		rightX := width - 2 - lipgloss.Width(right)
		hv.targets = append(hv.targets,
			headerTarget{action: actionTheme, box: box{X: rightX, Y: row, W: lipgloss.Width(themeIcon), H: 1}},
			headerTarget{action: actionMenu, box: box{X: rightX + lipgloss.Width(themeIcon) + 2, Y: row, W: lipgloss.Width(menu), H: 1}},
		)
	} else {
		links := nav.Horizontal(st.nav, st.navActive)
		right = links + st.base.Render("   ") + st.nav.Render(themeIcon)
		rightX := width - 2 - lipgloss.Width(right)
		items := nav.Items()
		for i, off := range nav.Offsets() {
			item := items[i]
			hv.targets = append(hv.targets, headerTarget{
				action:  actionNav,
				section: item.ID,
				box:     box{X: rightX + off, Y: row, W: lipgloss.Width(item.Label), H: 1},
			})
		}
		hv.targets = append(hv.targets, headerTarget{
			action: actionTheme,
			box:    box{X: rightX + lipgloss.Width(links) + 3, Y: row, W: lipgloss.Width(themeIcon), H: 1},
		})
	}

	gap := max(width-4-lipgloss.Width(brand)-lipgloss.Width(right), 1)
	content := st.base.Render("  ") + brand + st.base.Render(strings.Repeat(" ", gap)) + right + st.base.Render("  ")
	blank := st.base.Render(strings.Repeat(" ", width))

	if m.compact() {
		hv.lines = append(hv.lines, content)
	} else {
		hv.lines = append(hv.lines, blank, content)
	}

	if m.mobile() && m.menuOpen {
		items := nav.Items()
		for i, l := range nav.Vertical(st.nav, st.navActive) {
			hv.lines = append(hv.lines, padRight(st.base.Render("    ")+l, width, st))
			hv.targets = append(hv.targets, headerTarget{
				action:  actionNav,
				section: items[i].ID,
				box:     box{X: 4, Y: top + len(hv.lines) - 1, W: lipgloss.Width(items[i].Label), H: 1},
			})
		}
	}

	if m.compact() {
		hv.lines = append(hv.lines, st.divider.Render(strings.Repeat("─", width)))
	} else {
		hv.lines = append(hv.lines, blank)
	}
	return hv
}

func padRight(s string, width int, st styles) string {
	return s + st.base.Render(strings.Repeat(" ", max(width-lipgloss.Width(s), 0)))
}
