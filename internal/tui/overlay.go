package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zaidlab/folio/internal/cards"
)

// overlayView is the expanded card drawn over the page, in screen coordinates.
type overlayView struct {
	lines []string // box lines
	frame box      // position of the box on screen
	links []box    // clickable link rows, indexed by link
}

const overlayChrome = 6 // border plus horizontal padding

func (m Model) overlayWidth() int {
	return max(min(m.width-4, 84), 20)
}

// cardOverlay lays out card c. estimate adds the model upload prompt.
func (m Model) cardOverlay(c cards.Card, st styles) overlayView {
	boxWidth := m.overlayWidth()
	inner := max(boxWidth-overlayChrome, 10)
	fit := lipgloss.NewStyle().MaxWidth(inner)

	var body []string
	add := func(s string) {
		for _, l := range strings.Split(s, "\n") {
			body = append(body, fit.Render(l))
		}
	}

	closeHint := st.muted.Render("esc close")
	title := st.accent.Render(c.Title)
	gap := max(inner-lipgloss.Width(title)-lipgloss.Width(closeHint), 1)
	add(title + st.base.Render(strings.Repeat(" ", gap)) + closeHint)
	if price := c.Meta["price"]; price != "" {
		add(st.accentAlt.Render(price))
	}
	if len(c.Tags) > 0 {
		add(st.tag.Render(strings.Join(c.Tags, " · ")))
	}
	body = append(body, "")

	description := c.Description
	if strings.TrimSpace(description) == "" {
		description = c.Summary
	}
	add(m.markdown.render(description, inner, m.pref.Mode()))

	if c.Image != "" {
		body = append(body, "")
		add(st.muted.Render("image: " + c.Image))
	}

	linkRows := make([]int, len(c.Links))
	if len(c.Links) > 0 {
		body = append(body, "", st.bold.Render("Links"))
		for i, l := range c.Links {
			linkRows[i] = len(body)
			add(st.button.Render(fmt.Sprintf("[%d] %s", i+1, l.Label)) + st.muted.Render("  "+linkHost(l.URL)))
		}
	}

	if c.Meta["estimate"] == "true" {
		body = append(body, "", st.bold.Render("Print estimate"))
		switch m.viewMode {
		case ViewUpload:
			add(m.upload.View())
			add(st.muted.Render("enter submit · esc cancel"))
		default:
			add(st.muted.Render("Press u to upload a 3D model (" + strings.Join(m.uploadExtensions(), ", ") + ")."))
		}
		if m.uploadMsg != "" {
			style := st.accentAlt
			if m.uploadErr {
				style = st.errorText
			}
			add(style.Render(m.uploadMsg))
		}
	}

	// Cards taller than the screen are cut; the overlay does not scroll.
	maxBody := max(m.height-4, 3)
	visibleRows := len(body)
	if len(body) > maxBody {
		body = append(body[:maxBody-1], st.muted.Render("…"))
		visibleRows = maxBody - 1
	}

	rendered := st.overlay.Width(boxWidth - 2).Render(strings.Join(body, "\n"))
	lines := strings.Split(rendered, "\n")

	frame := box{
		X: (m.width - lipgloss.Width(lines[0])) / 2,
		Y: max((m.height-len(lines))/2, 0),
		W: lipgloss.Width(lines[0]),
		H: len(lines),
	}

	ov := overlayView{lines: lines, frame: frame}
	// Border and padding put the first body row two rows down and three columns in.
	for i, row := range linkRows {
		if row >= visibleRows {
			break
		}
		ov.links = append(ov.links, box{
			X: frame.X + 3,
			Y: frame.Y + 2 + row,
			W: lipgloss.Width(fmt.Sprintf("[%d] %s", i+1, c.Links[i].Label)),
			H: 1,
		})
	}
	return ov
}

// helpOverlay lays out the full key help.
func (m Model) helpOverlay(st styles) overlayView {
	h := m.help
	h.ShowAll = true
	body := st.accent.Render("Keys") + "\n\n" + h.View(m.keys) + "\n\n" + st.muted.Render("press any key to close")
	rendered := st.overlay.Render(body)
	lines := strings.Split(rendered, "\n")
	w := lipgloss.Width(lines[0])
	return overlayView{
		lines: lines,
		frame: box{X: max((m.width-w)/2, 0), Y: max((m.height-len(lines))/2, 0), W: w, H: len(lines)},
	}
}

func (m Model) uploadExtensions() []string {
	if len(m.settings.UploadExtensions) > 0 {
		return m.settings.UploadExtensions
	}
	return cards.DefaultUploadExtensions
}
