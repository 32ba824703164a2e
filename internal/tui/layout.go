package tui

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zaidlab/folio/internal/cards"
	"github.com/zaidlab/folio/internal/config"
	"github.com/zaidlab/folio/internal/reveal"
	"github.com/zaidlab/folio/internal/theme"
	"github.com/zaidlab/folio/internal/tui/components"
)

// Section ids, in page order.
const (
	sectionHero     = "hero"
	sectionAbout    = "about"
	sectionServices = "services"
	sectionProjects = "projects"
	sectionContact  = "contact"
	sectionFooter   = "footer"
)

var sectionOrder = []string{sectionHero, sectionAbout, sectionServices, sectionProjects, sectionContact, sectionFooter}

// revealedSections are the sections that animate in once scrolled into view.
var revealedSections = []string{sectionAbout, sectionServices, sectionProjects, sectionContact}

const (
	maxContentWidth = 104
	gridGap         = 2
	settleRows      = 2
)

type box struct {
	X, Y, W, H int
}

func (b box) contains(x, y int) bool {
	return x >= b.X && x < b.X+b.W && y >= b.Y && y < b.Y+b.H
}

type targetKind int

const (
	targetCTA targetKind = iota
	targetService
	targetProject
	targetContact
)

// target is something selectable on the page, positioned in document rows.
type target struct {
	kind  targetKind
	index int
	box   box
}

type block struct {
	id    string
	start int
	lines []string
}

// document is the page below the header laid out for one width. Positions are in
// document rows; the first row is the top of the hero.
type document struct {
	width   int
	blocks  []block
	targets []target
	height  int
	blank   string
}

func (d document) span(id string) (reveal.Span, bool) {
	for _, b := range d.blocks {
		if b.id == id {
			return reveal.Span{Start: b.start, Height: len(b.lines)}, true
		}
	}
	return reveal.Span{}, false
}

// targetAt returns the index of the target under column x of document row y.
func (d document) targetAt(x, y int) (int, bool) {
	for i, t := range d.targets {
		if t.box.contains(x, y) {
			return i, true
		}
	}
	return -1, false
}

// rows returns n document rows starting at from, padding past the end.
func (d document) rows(from, n int) []string {
	out := make([]string, 0, n)
	for _, b := range d.blocks {
		for i, line := range b.lines {
			row := b.start + i
			if row >= from && row < from+n {
				out = append(out, line)
			}
		}
	}
	for len(out) < n {
		out = append(out, d.blank)
	}
	return out
}

type layoutInput struct {
	width      int
	heroHeight int
	heroShift  int
	heroLines  []string
	heroCopy   bool // hero text is visible, so its CTA is clickable
	content    *config.Content
	services   []cards.Card
	projects   []cards.Card
	visible    []int
	query      string
	mobile     bool
	focus      int
	year       int
	palette    theme.Palette
	settle     func(id string) float64
}

type builder struct {
	in      layoutInput
	doc     document
	content int // content column width
	margin  int
	st      styles
}

func buildDocument(in layoutInput) document {
	width := max(in.width, 1)
	content := min(width-4, maxContentWidth)
	if content < 20 {
		content = width
	}
	b := &builder{
		in:      in,
		content: content,
		margin:  (width - content) / 2,
		st:      newStyles(in.palette),
	}
	b.doc.width = width
	b.doc.blank = b.st.base.Render(strings.Repeat(" ", width))

	b.hero()
	b.section(sectionAbout, b.about)
	b.section(sectionServices, b.services)
	b.section(sectionProjects, b.projects)
	b.section(sectionContact, b.contact)
	b.footer()
	return b.doc
}

func (b *builder) push(id string, lines []string) {
	b.doc.blocks = append(b.doc.blocks, block{id: id, start: b.doc.height, lines: lines})
	b.doc.height += len(lines)
}

func (b *builder) addTarget(kind targetKind, index int, bx box) bool {
	b.doc.targets = append(b.doc.targets, target{kind: kind, index: index, box: bx})
	return len(b.doc.targets)-1 == b.in.focus
}

func (b *builder) hero() {
	h := max(b.in.heroHeight, 1)
	lines := make([]string, h)
	for i := range lines {
		if i < len(b.in.heroLines) {
			lines[i] = b.in.heroLines[i]
		} else {
			lines[i] = b.doc.blank
		}
	}

	if b.in.heroCopy && b.in.content != nil {
		copyLines := heroText(b.in.content.Profile, b.doc.width)
		_, cta := heroPlacement(copyLines, b.doc.width, h, b.in.heroShift)
		if cta.Y >= 0 && cta.Y < h {
			b.addTarget(targetCTA, 0, cta)
		}
	}
	b.push(sectionHero, lines)
}

// section lays out one revealed section. Targets are registered against the settled
// position; while settling, the content slides up into place and fades in.
func (b *builder) section(id string, render func(st styles, start int) []string) {
	settle := 1.0
	if b.in.settle != nil {
		settle = clamp01(b.in.settle(id))
	}
	st := b.st
	if settle < 1 {
		st = newStyles(fade(b.in.palette, settle))
	}

	start := b.doc.height
	body := []string{b.doc.blank}
	body = append(body, render(st, start+1)...)
	body = append(body, b.doc.blank)

	switch {
	case settle <= 0:
		for i := range body {
			body[i] = b.doc.blank
		}
	case settle < 1:
		shift := int((1 - settle) * settleRows)
		if shift > 0 && shift < len(body) {
			pad := make([]string, shift)
			for i := range pad {
				pad[i] = b.doc.blank
			}
			body = append(pad, body[:len(body)-shift]...)
		}
	}
	b.push(id, body)
}

// line pads a rendered fragment so it starts at column left and spans the full width.
func (b *builder) line(st styles, left int, s string) string {
	w := lipgloss.Width(s)
	right := max(b.doc.width-left-w, 0)
	return st.base.Render(strings.Repeat(" ", max(left, 0))) + s + st.base.Render(strings.Repeat(" ", right))
}

func (b *builder) centered(st styles, s string) string {
	return b.line(st, (b.doc.width-lipgloss.Width(s))/2, s)
}

func (b *builder) heading(st styles, title string) []string {
	return []string{b.centered(st, gradientText(title, st.palette.Accent, st.palette.AccentAlt, st.bold)), b.doc.blank}
}

func (b *builder) paragraph(st styles, style lipgloss.Style, text string, width int) []string {
	var out []string
	for _, l := range wrap(text, width) {
		out = append(out, b.centered(st, style.Render(l)))
	}
	return out
}

func (b *builder) about(st styles, start int) []string {
	lines := b.heading(st, "About Me")
	if b.in.content == nil {
		return lines
	}
	width := min(b.content, 80)
	for i, p := range b.in.content.Profile.About {
		if i > 0 {
			lines = append(lines, b.doc.blank)
		}
		lines = append(lines, b.paragraph(st, st.text, p, width)...)
	}
	return lines
}

func (b *builder) services(st styles, start int) []string {
	lines := b.heading(st, "Services")
	indices := make([]int, len(b.in.services))
	for i := range indices {
		indices[i] = i
	}
	return append(lines, b.grid(st, start+len(lines), targetService, b.in.services, indices, serviceBody)...)
}

func (b *builder) projects(st styles, start int) []string {
	lines := b.heading(st, "Featured Projects")
	if strings.TrimSpace(b.in.query) != "" {
		status := fmt.Sprintf("filter %q: %d of %d", b.in.query, len(b.in.visible), len(b.in.projects))
		lines = append(lines, b.centered(st, st.muted.Render(status)), b.doc.blank)
	}
	if len(b.in.visible) == 0 {
		return append(lines, b.centered(st, st.muted.Render("No projects match. Press esc to clear the filter.")))
	}
	return append(lines, b.grid(st, start+len(lines), targetProject, b.in.projects, b.in.visible, projectBody)...)
}

// grid renders cards two per row on desktop and one per row on mobile.
func (b *builder) grid(st styles, start int, kind targetKind, all []cards.Card, indices []int, body func(styles, cards.Card, int) string) []string {
	cols := 2
	if b.in.mobile {
		cols = 1
	}
	cardWidth := (b.content - gridGap*(cols-1)) / cols
	inner := max(cardWidth-4, 1)

	var lines []string
	for rowStart := 0; rowStart < len(indices); rowStart += cols {
		row := indices[rowStart:min(rowStart+cols, len(indices))]

		bodies := make([]string, len(row))
		height := 0
		for i, idx := range row {
			bodies[i] = body(st, all[idx], inner)
			height = max(height, lipgloss.Height(bodies[i]))
		}

		rendered := make([]string, len(row))
		for i, idx := range row {
			x := b.margin + i*(cardWidth+gridGap)
			focused := b.addTarget(kind, idx, box{X: x, Y: start + len(lines), W: cardWidth, H: height + 2})
			style := st.card
			if focused {
				style = st.cardFocused
			}
			rendered[i] = style.Width(cardWidth - 2).Height(height).Render(bodies[i])
		}

		parts := make([]string, 0, len(rendered)*2)
		gap := st.base.Render(strings.Repeat(" ", gridGap))
		for i, r := range rendered {
			if i > 0 {
				parts = append(parts, gap)
			}
			parts = append(parts, r)
		}
		joined := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
		for _, l := range strings.Split(joined, "\n") {
			lines = append(lines, b.line(st, b.margin, l))
		}
		lines = append(lines, b.doc.blank)
	}
	return lines
}

func serviceBody(st styles, c cards.Card, width int) string {
	title := c.Title
	if icon := c.Meta["icon"]; icon != "" {
		title = icon + "  " + title
	}
	parts := []string{st.accent.Width(width).Render(title), st.text.Width(width).Render(c.Summary)}
	if price := c.Meta["price"]; price != "" {
		parts = append(parts, st.accentAlt.Width(width).Render(price))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func projectBody(st styles, c cards.Card, width int) string {
	parts := []string{st.accent.Width(width).Render(c.Title), st.text.Width(width).Render(c.Summary)}
	if len(c.Tags) > 0 {
		tags := make([]string, len(c.Tags))
		for i, t := range c.Tags {
			tags[i] = "#" + strings.ReplaceAll(t, " ", "")
		}
		parts = append(parts, st.tag.Width(width).Render(strings.Join(tags, " ")))
	}
	if len(c.Links) > 0 {
		parts = append(parts, st.muted.Width(width).Render("↗ "+linkHost(c.Links[0].URL)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (b *builder) contact(st styles, start int) []string {
	lines := b.heading(st, "Get In Touch")
	if b.in.content == nil {
		return lines
	}
	c := b.in.content.Contact
	if c.Blurb != "" {
		lines = append(lines, b.paragraph(st, st.muted, c.Blurb, min(b.content, 72))...)
		lines = append(lines, b.doc.blank)
	}
	if len(c.Links) == 0 {
		return lines
	}

	// Buttons wrap onto further rows when they do not fit.
	type button struct {
		label string
		index int
	}
	var rows [][]button
	var row []button
	rowWidth := 0
	for i, l := range c.Links {
		label := "[ " + l.Label + " ]"
		w := lipgloss.Width(label)
		if len(row) > 0 && rowWidth+gridGap+w > b.content {
			rows = append(rows, row)
			row, rowWidth = nil, 0
		}
		if len(row) > 0 {
			rowWidth += gridGap
		}
		row = append(row, button{label: label, index: i})
		rowWidth += w
	}
	rows = append(rows, row)

	for _, r := range rows {
		total := 0
		for i, btn := range r {
			if i > 0 {
				total += gridGap
			}
			total += lipgloss.Width(btn.label)
		}
		x := (b.doc.width - total) / 2
		y := start + len(lines)
		var s strings.Builder
		for i, btn := range r {
			if i > 0 {
				s.WriteString(st.base.Render(strings.Repeat(" ", gridGap)))
				x += gridGap
			}
			w := lipgloss.Width(btn.label)
			style := st.button
			if b.addTarget(targetContact, btn.index, box{X: x, Y: y, W: w, H: 1}) {
				style = st.buttonFocus
			}
			s.WriteString(style.Render(btn.label))
			x += w
		}
		lines = append(lines, b.centered(st, s.String()))
	}
	return lines
}

func (b *builder) footer() {
	st := b.st
	lines := []string{b.line(st, 0, st.divider.Render(strings.Repeat("─", b.doc.width)))}
	if b.in.content != nil {
		labels := make([]string, len(b.in.content.Contact.Links))
		for i, l := range b.in.content.Contact.Links {
			labels[i] = l.Label
		}
		f := components.NewFooter(components.FooterData{Year: b.in.year, Name: b.in.content.Profile.Name, Links: labels})
		for _, l := range f.Lines() {
			lines = append(lines, b.centered(st, st.muted.Render(l)))
		}
	}
	lines = append(lines, b.doc.blank)
	b.push(sectionFooter, lines)
}

// wrap word-wraps s to width, returning plain lines without trailing padding.
func wrap(s string, width int) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	rendered := lipgloss.NewStyle().Width(max(width, 1)).Render(s)
	lines := strings.Split(rendered, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " ")
	}
	return lines
}

func linkHost(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	if u.Scheme == "mailto" {
		return u.Opaque
	}
	if u.Host == "" {
		return raw
	}
	return u.Host
}
