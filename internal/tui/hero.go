package tui

import (
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/zaidlab/folio/internal/config"
	"github.com/zaidlab/folio/internal/particles"
	"github.com/zaidlab/folio/internal/scroll"
	"github.com/zaidlab/folio/internal/theme"
	"github.com/zaidlab/folio/internal/viewport"
)

// heroTravel is how far the hero copy drifts up, in rows, over the hero's scroll range.
const heroTravel = 6.0

type heroRole int

const (
	roleHeadline heroRole = iota
	roleIntro
	roleBlank
	roleCTA
)

type heroLine struct {
	text string
	role heroRole
}

// heroText wraps the hero copy to the available width. The CTA is always the last line.
func heroText(profile config.Profile, width int) []heroLine {
	textWidth := min(width-4, 72)
	if textWidth < 10 {
		textWidth = max(width, 1)
	}

	var lines []heroLine
	for _, l := range wrap(profile.Headline, textWidth) {
		lines = append(lines, heroLine{text: l, role: roleHeadline})
	}
	if strings.TrimSpace(profile.Intro) != "" {
		lines = append(lines, heroLine{role: roleBlank})
		for _, l := range wrap(profile.Intro, textWidth) {
			lines = append(lines, heroLine{text: l, role: roleIntro})
		}
	}
	cta := profile.CTA
	if cta == "" {
		cta = "View My Work"
	}
	lines = append(lines, heroLine{role: roleBlank}, heroLine{text: "[ " + cta + " ]", role: roleCTA})
	return lines
}

// heroPlacement returns the first row of the hero copy and the CTA box in hero rows.
func heroPlacement(lines []heroLine, width, height, shift int) (top int, cta box) {
	top = (height-len(lines))/2 + shift
	last := lines[len(lines)-1]
	n := len([]rune(last.text))
	cta = box{X: (width - n) / 2, Y: top + len(lines) - 1, W: n, H: 1}
	return top, cta
}

// parallax returns the hero copy shift in rows and its opacity for the hero's own scroll
// progress.
func parallax(progress float64, mode viewport.Mode) (shift int, opacity float64) {
	travel := heroTravel * viewport.ScaleFor(mode).ParallaxTop
	y := scroll.Transform(progress, [2]float64{0, 1}, [2]float64{0, -travel})
	opacity = scroll.Transform(progress, [2]float64{0, 0.5}, [2]float64{1, 0})
	return int(math.Round(y)), opacity
}

type blobSpec struct {
	cx, cy   float64 // centre as a fraction of the hero
	rx, ry   float64 // radius as a fraction of the hero width
	dx, dy   float64 // peak drift in cells
	grow     float64 // peak scale
	period   time.Duration
	colorIdx int
}

var blobs = []blobSpec{
	{cx: 0.85, cy: 0.1, rx: 0.22, ry: 0.11, dx: 6, dy: 2, grow: 1.1, period: 15 * time.Second, colorIdx: 0},
	{cx: 0.1, cy: 0.95, rx: 0.22, ry: 0.11, dx: -4, dy: 3, grow: 1.2, period: 18 * time.Second, colorIdx: 1},
}

// swing goes 0→1→0 once per period.
func swing(elapsed, period time.Duration) float64 {
	if period <= 0 {
		return 0
	}
	phase := float64(elapsed%period) / float64(period)
	return (1 - math.Cos(2*math.Pi*phase)) / 2
}

type cell struct {
	r    rune
	fg   lipgloss.Color
	bg   lipgloss.Color
	bold bool
}

type canvas struct {
	w, h  int
	cells []cell
}

func newCanvas(w, h int, bg lipgloss.Color) *canvas {
	c := &canvas{w: w, h: h, cells: make([]cell, w*h)}
	for i := range c.cells {
		c.cells[i] = cell{r: ' ', fg: bg, bg: bg}
	}
	return c
}

func (c *canvas) at(x, y int) *cell {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return nil
	}
	return &c.cells[y*c.w+x]
}

// text writes s from column x on row y, keeping each cell's background.
func (c *canvas) text(x, y int, s string, fg lipgloss.Color, bold bool) {
	for i, r := range []rune(s) {
		if cl := c.at(x+i, y); cl != nil {
			cl.r, cl.fg, cl.bold = r, fg, bold
		}
	}
}

// lines renders the canvas, emitting one styled run per stretch of identical cells.
func (c *canvas) lines() []string {
	out := make([]string, c.h)
	for y := 0; y < c.h; y++ {
		var b strings.Builder
		row := c.cells[y*c.w : (y+1)*c.w]
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && sameStyle(row[x], row[start]) {
				continue
			}
			run := make([]rune, 0, x-start)
			for _, cl := range row[start:x] {
				run = append(run, cl.r)
			}
			st := lipgloss.NewStyle().Foreground(row[start].fg).Background(row[start].bg).Bold(row[start].bold)
			b.WriteString(st.Render(string(run)))
			start = x
		}
		out[y] = b.String()
	}
	return out
}

func sameStyle(a, b cell) bool {
	return a.fg == b.fg && a.bg == b.bg && a.bold == b.bold
}

type heroInput struct {
	width, height int
	profile       config.Profile
	palette       theme.Palette
	particles     []particles.Rendered
	elapsed       time.Duration
	shift         int
	opacity       float64
	ctaFocused    bool
}

// renderHero draws blobs, particles, and the hero copy, in that order.
func renderHero(in heroInput) []string {
	if in.width <= 0 || in.height <= 0 {
		return nil
	}
	p := in.palette
	c := newCanvas(in.width, in.height, p.Background)

	for _, b := range blobs {
		paintBlob(c, b, p.Background, lipgloss.Color(p.Blobs[b.colorIdx]), in.elapsed)
	}

	for _, r := range in.particles {
		x := int(r.X / particles.Extent * float64(in.width))
		y := int(r.Y / particles.Extent * float64(in.height))
		cl := c.at(x, y)
		if cl == nil {
			continue
		}
		cl.r = particleGlyph(r.Size)
		cl.fg = blend(cl.bg, lipgloss.Color(r.Color(p.Particles)), 0.75)
	}

	if in.opacity > 0 {
		lines := heroText(in.profile, in.width)
		top, _ := heroPlacement(lines, in.width, in.height, in.shift)
		for i, l := range lines {
			if l.role == roleBlank {
				continue
			}
			col := (in.width - len([]rune(l.text))) / 2
			switch l.role {
			case roleHeadline:
				headlineGradient(c, col, top+i, l.text, p, in.opacity)
			case roleIntro:
				c.text(col, top+i, l.text, blend(p.Background, p.Muted, in.opacity), false)
			case roleCTA:
				fg := blend(p.Background, p.Accent, in.opacity)
				c.text(col, top+i, l.text, fg, true)
				if in.ctaFocused {
					for x := col; x < col+len([]rune(l.text)); x++ {
						if cl := c.at(x, top+i); cl != nil {
							cl.fg, cl.bg = p.Background, fg
						}
					}
				}
			}
		}

		// Scroll cue bobbing one row every 1.5s.
		bob := int(math.Round(swing(in.elapsed, 1500*time.Millisecond)))
		c.text(in.width/2, in.height-3+bob, "⌄", blend(p.Background, p.Muted, in.opacity), false)
	}

	return c.lines()
}

func headlineGradient(c *canvas, x, y int, s string, p theme.Palette, opacity float64) {
	runes := []rune(s)
	for i, r := range runes {
		t := 0.0
		if len(runes) > 1 {
			t = float64(i) / float64(len(runes)-1)
		}
		fg := blend(p.Background, blend(p.Accent, p.AccentAlt, t), opacity)
		if cl := c.at(x+i, y); cl != nil {
			cl.r, cl.fg, cl.bold = r, fg, true
		}
	}
}

// paintBlob tints cells inside a soft ellipse. Falloff is quantized so neighbouring cells
// share styles.
func paintBlob(c *canvas, b blobSpec, bg, tint lipgloss.Color, elapsed time.Duration) {
	s := swing(elapsed, b.period)
	scale := 1 + (b.grow-1)*s
	cx := b.cx*float64(c.w) + b.dx*s
	cy := b.cy*float64(c.h) + b.dy*s
	rx := b.rx * float64(c.w) * scale
	ry := b.ry * float64(c.w) * scale / 2
	if rx <= 0 || ry <= 0 {
		return
	}

	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			nx := (float64(x) - cx) / rx
			ny := (float64(y) - cy) / ry
			d := nx*nx + ny*ny
			if d >= 1 {
				continue
			}
			level := math.Ceil((1-d)*4) / 4
			cl := c.at(x, y)
			cl.bg = blend(bg, tint, level)
			if cl.r == ' ' {
				cl.fg = cl.bg
			}
		}
	}
}

func particleGlyph(size float64) rune {
	switch {
	case size >= 8:
		return '●'
	case size >= 6:
		return '•'
	default:
		return '·'
	}
}
