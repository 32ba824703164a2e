package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/zaidlab/folio/internal/tui/components"
)

const jumpLabel = " ↑ top "

// View renders the current state of the model.
func (m Model) View() string {
	now := m.lastFrame
	if now.IsZero() {
		now = m.now()
	}
	return strings.Join(m.screen(now), "\n")
}

// screen renders every terminal row: progress bar, header, page body and status line.
func (m Model) screen(now time.Time) []string {
	palette := m.themePalette()
	st := newStyles(palette)
	doc := m.renderPage(now, st)

	rows := make([]string, 0, m.height)

	from, to := m.meter.Colors()
	bar := components.NewScrollBar(m.width, st.percent)
	rows = append(rows, bar.View(m.meter.Progress(), m.meter.Percent(), from, to))

	hv := m.header(1, m.activeSection(doc), st)
	rows = append(rows, hv.lines...)
	rows = append(rows, doc.rows(m.page.offset, m.bodyHeight())...)
	rows = append(rows, m.statusLine(st))

	switch m.viewMode {
	case ViewCard, ViewUpload:
		if set, idx, ok := m.openCard(); ok {
			card, _ := set.Card(idx)
			rows = m.compose(rows, m.cardOverlay(card, st), st)
		}
	case ViewHelp:
		rows = m.compose(rows, m.helpOverlay(st), st)
	}

	if len(rows) > m.height {
		rows = rows[:m.height]
	}
	return rows
}

// renderPage builds the fully rendered page at now, with the hero artwork and reveal fades.
func (m Model) renderPage(now time.Time, st styles) document {
	shift, opacity := parallax(m.heroProgress(), m.classifier.Mode())

	hero := renderHero(heroInput{
		width:      m.width,
		height:     m.heroHeight(),
		profile:    m.content.Profile,
		palette:    st.palette,
		particles:  m.field.Rendered(),
		elapsed:    now.Sub(m.startedAt),
		shift:      shift,
		opacity:    opacity,
		ctaFocused: m.focusedKind() == targetCTA,
	})

	return buildDocument(layoutInput{
		width:      m.width,
		heroHeight: m.heroHeight(),
		heroShift:  shift,
		heroLines:  hero,
		heroCopy:   opacity > 0,
		content:    m.content,
		services:   m.services.Cards(),
		projects:   m.projects.Cards(),
		visible:    m.visible,
		query:      m.query,
		mobile:     m.mobile(),
		focus:      m.focus,
		year:       now.Year(),
		palette:    st.palette,
		settle:     m.settle(now),
	})
}

func (m Model) focusedKind() targetKind {
	if m.focus < 0 {
		return -1
	}
	doc := m.layout()
	if m.focus >= len(doc.targets) {
		return -1
	}
	return doc.targets[m.focus].kind
}

// jumpButton is the back-to-top button on the status line, shown once the reader has
// scrolled past the jump threshold.
func (m Model) jumpButton() (box, bool) {
	if !m.meter.ShowJumpToTop() {
		return box{}, false
	}
	w := lipgloss.Width(jumpLabel)
	return box{X: m.width - w, Y: m.height - 1, W: w, H: 1}, true
}

func (m Model) statusLine(st styles) string {
	var left string
	switch {
	case m.viewMode == ViewSearch:
		left = m.search.View()
	case m.status != "":
		style := st.accentAlt
		if m.statusErr {
			style = st.errorText
		}
		left = style.Render(m.status)
	default:
		left = m.help.ShortHelpView(m.keys.ShortHelp())
	}
	left = st.base.Render(" ") + left

	right := ""
	if _, ok := m.jumpButton(); ok {
		right = st.buttonFocus.Render(jumpLabel)
	}

	room := m.width - lipgloss.Width(right)
	left = lipgloss.NewStyle().MaxWidth(max(room, 0)).Render(left)
	gap := max(room-lipgloss.Width(left), 0)
	return left + st.base.Render(strings.Repeat(" ", gap)) + right
}

// compose draws the overlay box centred over the screen rows. Rows around the box are
// dimmed to form the backdrop.
func (m Model) compose(rows []string, ov overlayView, st styles) []string {
	dim := newStyles(fade(st.palette, 0.35))
	out := make([]string, len(rows))
	for y := range rows {
		if y < ov.frame.Y || y >= ov.frame.Y+len(ov.lines) {
			out[y] = dim.base.Render(strings.Repeat(" ", m.width))
			continue
		}
		line := ov.lines[y-ov.frame.Y]
		right := max(m.width-ov.frame.X-lipgloss.Width(line), 0)
		out[y] = dim.base.Render(strings.Repeat(" ", max(ov.frame.X, 0))) + line + dim.base.Render(strings.Repeat(" ", right))
	}
	return out
}

// RenderStatic renders the whole page once, fully revealed and without animation, for
// output that is not a terminal.
func RenderStatic(opts Options) string {
	m := NewModel(opts)
	defer m.Close()

	now := m.now()
	st := newStyles(m.themePalette())
	m.field.Step(now, m.tracker.Position())

	shift, opacity := parallax(0, m.classifier.Mode())
	hero := renderHero(heroInput{
		width:     m.width,
		height:    m.heroHeight(),
		profile:   m.content.Profile,
		palette:   st.palette,
		particles: m.field.Rendered(),
		shift:     shift,
		opacity:   opacity,
	})
	doc := buildDocument(layoutInput{
		width:      m.width,
		heroHeight: m.heroHeight(),
		heroShift:  shift,
		heroLines:  hero,
		heroCopy:   true,
		content:    m.content,
		services:   m.services.Cards(),
		projects:   m.projects.Cards(),
		visible:    m.visible,
		mobile:     m.mobile(),
		focus:      -1,
		year:       now.Year(),
		palette:    st.palette,
	})

	hv := m.header(0, "", st)
	rows := append(hv.lines, doc.rows(0, doc.height)...)
	return strings.Join(rows, "\n")
}
