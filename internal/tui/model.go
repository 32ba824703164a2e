package tui

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zaidlab/folio/internal/cards"
	"github.com/zaidlab/folio/internal/config"
	"github.com/zaidlab/folio/internal/frame"
	"github.com/zaidlab/folio/internal/logger"
	"github.com/zaidlab/folio/internal/particles"
	"github.com/zaidlab/folio/internal/pointer"
	"github.com/zaidlab/folio/internal/reveal"
	"github.com/zaidlab/folio/internal/scroll"
	"github.com/zaidlab/folio/internal/theme"
	"github.com/zaidlab/folio/internal/viewport"
)

const (
	settleDelay     = 150 * time.Millisecond
	revealDuration  = 600 * time.Millisecond
	statusDuration  = 3 * time.Second
	wheelStep       = 3
	defaultHeaderAt = 2
)

// Options configures a Model.
type Options struct {
	Content    *config.Content
	Preference *theme.Preference
	Logger     *logger.Logger
	Rand       *rand.Rand
	Width      int
	Height     int
	FPS        int
	Clipboard  func(string) error
	Now        func() time.Time
}

// page holds scroll state shared with frame callbacks.
type page struct {
	offset   int
	anim     *scroll.Animator
	stopAnim func()
}

// Model is the Bubble Tea model of the portfolio.
type Model struct {
	content  *config.Content
	settings config.Settings
	pref     *theme.Preference
	log      *logger.Logger
	rng      *rand.Rand
	now      func() time.Time
	copyFn   func(string) error
	fpsFlag  int

	classifier   *viewport.Classifier
	tracker      *pointer.Tracker
	loop         *frame.Loop
	field        *particles.Field
	fieldMode    viewport.Mode
	stopField    func()
	stopTheme    func()
	stopViewport func()
	meter        *scroll.Meter
	reveals      *reveal.Set
	lock         *cards.Lock
	services     *cards.Set
	projects     *cards.Set
	markdown     *markdownCache

	page      *page
	viewMode  ViewMode
	focus     int
	menuOpen  bool
	query     string
	visible   []int
	search    textinput.Model
	upload    textinput.Model
	uploadMsg string
	uploadErr bool
	status    string
	statusErr bool
	statusSeq int
	keys      keyMap
	help      help.Model

	width     int
	height    int
	resizeSeq int
	startedAt time.Time
	lastFrame time.Time
}

// NewModel builds the model and mounts the particle field for the initial size.
func NewModel(opts Options) Model {
	content := opts.Content
	if content == nil {
		content = config.Default()
	}
	log := opts.Logger
	if log == nil {
		log = logger.Discard()
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	copyFn := opts.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}
	pref := opts.Preference
	if pref == nil {
		pref = theme.NewPreference(nil, nil, log)
	}

	settings := content.Settings
	tune := tuningFor(settings, opts.FPS)

	width, height := opts.Width, opts.Height
	if width <= 0 {
		width = 80
	}
	if height <= 0 {
		height = 24
	}

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search projects by title or tag"
	search.CharLimit = 64

	upload := textinput.New()
	upload.Prompt = "file: "
	upload.Placeholder = "path/to/model.stl"
	upload.CharLimit = 256

	lock := &cards.Lock{}
	m := Model{
		content:    content,
		settings:   settings,
		pref:       pref,
		log:        log.Component("tui"),
		rng:        rng,
		now:        now,
		copyFn:     copyFn,
		fpsFlag:    opts.FPS,
		classifier: viewport.NewClassifier(width, tune.viewportAt),
		tracker:    pointer.NewTracker(pointer.Rect{}),
		loop:       frame.NewLoop(tune.fps),
		meter:      scroll.NewMeter(tune.jumpAt, theme.PaletteFor(pref.Mode()).ProgressStops),
		reveals:    reveal.NewSet(tune.revealAt),
		lock:       lock,
		services:   cards.NewSet(content.ServiceCards(), lock),
		projects:   cards.NewSet(content.ProjectCards(), lock),
		markdown:   newMarkdownCache(),
		page:       &page{anim: scroll.NewAnimator(tune.fps)},
		focus:      -1,
		search:     search,
		upload:     upload,
		keys:       defaultKeyMap(),
		help:       help.New(),
		width:      width,
		height:     height,
		startedAt:  now(),
	}
	m.help.Width = width
	m.visible = cards.Filter(m.projects.Cards(), "")

	meter := m.meter
	m.stopTheme = pref.Subscribe(func(mode theme.Mode) {
		meter.SetStops(theme.PaletteFor(mode).ProgressStops)
	})
	classifierLog := m.log
	m.stopViewport = m.classifier.Subscribe(func(mode viewport.Mode) {
		classifierLog.Debug("viewport mode changed to " + mode.String())
	})

	m.mountField(m.classifier.Mode())
	m.syncScroll(m.startedAt)
	return m
}

// tuning is the resolved form of the content settings that state holders are built from.
type tuning struct {
	fps        int
	viewportAt int
	revealAt   float64
	jumpAt     float64
}

// tuningFor resolves settings against the defaults. A positive fpsFlag overrides the
// content's frame rate.
func tuningFor(s config.Settings, fpsFlag int) tuning {
	t := tuning{
		fps:        fpsFlag,
		viewportAt: s.ViewportThreshold,
		revealAt:   s.RevealThreshold,
		jumpAt:     s.JumpThreshold,
	}
	if t.fps <= 0 {
		t.fps = s.FPS
	}
	if t.fps <= 0 {
		t.fps = frame.DefaultFPS
	}
	if t.viewportAt <= 0 {
		t.viewportAt = viewport.DefaultThreshold
	}
	if t.revealAt <= 0 {
		t.revealAt = reveal.DefaultThreshold
	}
	if t.jumpAt <= 0 {
		t.jumpAt = scroll.DefaultJumpThreshold
	}
	return t
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return frameCmd(m.loop.Interval())
}

func frameCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func settleCmd(seq int) tea.Cmd {
	return tea.Tick(settleDelay, func(time.Time) tea.Msg { return settleMsg{seq: seq} })
}

func clearStatusCmd(seq int) tea.Cmd {
	return tea.Tick(statusDuration, func(time.Time) tea.Msg { return clearStatusMsg{seq: seq} })
}

func copyLinkCmd(copyFn func(string) error, link cards.Link) tea.Cmd {
	return func() tea.Msg {
		return linkCopiedMsg{label: link.Label, url: link.URL, err: copyFn(link.URL)}
	}
}

// mountField replaces the particle field with one generated for mode. The previous
// field's frame subscription is always released first.
func (m *Model) mountField(mode viewport.Mode) {
	if m.stopField != nil {
		m.stopField()
	}
	cfg := m.settings.ParticleConfig()
	cfg.FPS = m.loop.FPS()
	now := m.now()
	m.field = particles.NewField(particles.Generate(m.rng, cfg, mode, now), cfg, mode)
	m.field.Step(now, m.tracker.Position())
	m.fieldMode = mode
	m.stopField = m.field.Start(m.loop, m.tracker.Position)
	m.log.Debug(fmt.Sprintf("particle field mounted for %s: %d particles, attraction %.2f",
		mode, len(m.field.Particles()), m.field.Strength()))
}

// Close releases subscriptions and any scroll lock held by an open card.
func (m Model) Close() {
	if m.stopTheme != nil {
		m.stopTheme()
	}
	if m.stopViewport != nil {
		m.stopViewport()
	}
	if m.stopField != nil {
		m.stopField()
	}
	if m.page.stopAnim != nil {
		m.page.stopAnim()
	}
	m.services.Unmount()
	m.projects.Unmount()
	m.log.Debug(fmt.Sprintf("page closed after %d frames", m.loop.Frames()))
}

func (m Model) mobile() bool {
	return m.classifier.Mode() == viewport.Mobile
}

func (m Model) headerThreshold() int {
	if m.settings.HeaderThreshold > 0 {
		return m.settings.HeaderThreshold
	}
	return defaultHeaderAt
}

func (m Model) compact() bool {
	return scroll.Scrolled(m.page.offset, m.headerThreshold())
}

func (m Model) headerHeight() int {
	h := 3
	if m.compact() {
		h = 2
	}
	if m.mobile() && m.menuOpen {
		h += len(navItems)
	}
	return h
}

// bodyTop is the first screen row of the page, below the progress bar and header.
func (m Model) bodyTop() int {
	return 1 + m.headerHeight()
}

func (m Model) bodyHeight() int {
	return max(m.height-m.bodyTop()-1, 1)
}

func (m Model) heroHeight() int {
	return max(m.height-4, 8)
}

// heroProgress is how far the hero has scrolled out of view, in [0,1].
func (m Model) heroProgress() float64 {
	return clamp01(float64(m.page.offset) / float64(m.heroHeight()))
}

func (m Model) themePalette() theme.Palette {
	return theme.PaletteFor(m.pref.Mode())
}

// layout builds the page without fades or hero artwork; positions are identical to the
// rendered page.
func (m Model) layout() document {
	shift, opacity := parallax(m.heroProgress(), m.classifier.Mode())
	return buildDocument(layoutInput{
		width:      m.width,
		heroHeight: m.heroHeight(),
		heroShift:  shift,
		heroCopy:   opacity > 0,
		content:    m.content,
		services:   m.services.Cards(),
		projects:   m.projects.Cards(),
		visible:    m.visible,
		query:      m.query,
		mobile:     m.mobile(),
		focus:      m.focus,
		year:       m.now().Year(),
		palette:    m.themePalette(),
	})
}

func (m Model) maxOffset(doc document) int {
	return max(doc.height-m.bodyHeight(), 0)
}

// syncScroll clamps the offset and propagates it to the meter, pointer container and
// reveal triggers.
func (m *Model) syncScroll(now time.Time) {
	doc := m.layout()
	limit := m.maxOffset(doc)
	if m.page.offset > limit {
		m.page.offset = limit
	}
	if m.page.offset < 0 {
		m.page.offset = 0
	}

	m.meter.Update(float64(m.page.offset), float64(doc.height), float64(m.bodyHeight()))
	m.tracker.SetContainer(pointer.Rect{
		X: 0,
		Y: float64(m.bodyTop() - m.page.offset),
		W: float64(m.width),
		H: float64(m.heroHeight()),
	})

	if m.revealsComplete() {
		return
	}
	view := reveal.Span{Start: m.page.offset, Height: m.bodyHeight()}
	ratios := make(map[string]float64, len(revealedSections))
	for _, id := range revealedSections {
		span, ok := doc.span(id)
		if !ok {
			continue
		}
		ratio := reveal.IntersectionRatio(span, view)
		if _, mounted := m.reveals.Trigger(id); !mounted {
			if m.reveals.Mount(id, ratio, now) {
				m.log.Debug("section revealed: " + id)
			}
			continue
		}
		ratios[id] = ratio
	}
	for _, id := range m.reveals.ObserveAll(ratios, now) {
		m.log.Debug("section revealed: " + id)
	}
}

// revealsComplete reports whether every revealed section is mounted and latched, after
// which scrolling no longer needs intersection ratios.
func (m Model) revealsComplete() bool {
	if m.reveals.Pending() > 0 {
		return false
	}
	for _, id := range revealedSections {
		if _, ok := m.reveals.Trigger(id); !ok {
			return false
		}
	}
	return true
}

// settle returns the reveal animation progress of section id at now.
func (m Model) settle(now time.Time) func(string) float64 {
	return func(id string) float64 {
		t, ok := m.reveals.Trigger(id)
		if !ok {
			return 1
		}
		return t.Settle(now, revealDuration)
	}
}

// scrollBy moves the page unless an open card holds the scroll lock.
func (m *Model) scrollBy(delta int) {
	if m.lock.Locked() {
		return
	}
	m.stopScrollAnimation()
	m.page.offset += delta
	m.syncScroll(m.now())
}

// scrollTo animates the page to row target.
func (m *Model) scrollTo(target int) {
	if m.lock.Locked() {
		return
	}
	target = min(max(target, 0), m.maxOffset(m.layout()))
	m.stopScrollAnimation()
	m.page.anim.Start(m.page.offset, target)
	if !m.page.anim.Active() {
		return
	}

	p := m.page
	p.stopAnim = m.loop.Subscribe(func(time.Time) {
		offset, done := p.anim.Step()
		p.offset = offset
		if done && p.stopAnim != nil {
			p.stopAnim()
			p.stopAnim = nil
		}
	})
}

func (m *Model) stopScrollAnimation() {
	m.page.anim.Stop()
	if m.page.stopAnim != nil {
		m.page.stopAnim()
		m.page.stopAnim = nil
	}
}

// scrollToSection animates to the top of section id.
func (m *Model) scrollToSection(id string) {
	if span, ok := m.layout().span(id); ok {
		m.scrollTo(span.Start)
	}
}

// activeSection is the section under the upper third of the body, for nav highlighting.
func (m Model) activeSection(doc document) string {
	anchor := m.page.offset + m.bodyHeight()/3
	for _, id := range sectionOrder {
		if span, ok := doc.span(id); ok && anchor >= span.Start && anchor < span.End() {
			return id
		}
	}
	return ""
}

// ensureVisible scrolls the focused target into view.
func (m *Model) ensureVisible() {
	doc := m.layout()
	if m.focus < 0 || m.focus >= len(doc.targets) {
		return
	}
	bx := doc.targets[m.focus].box
	switch {
	case bx.Y < m.page.offset:
		m.scrollTo(bx.Y - 1)
	case bx.Y+bx.H > m.page.offset+m.bodyHeight():
		m.scrollTo(bx.Y + bx.H - m.bodyHeight() + 1)
	}
}

func (m *Model) setStatus(text string, isErr bool) tea.Cmd {
	m.statusSeq++
	m.status = text
	m.statusErr = isErr
	return clearStatusCmd(m.statusSeq)
}

// openCard returns the set and index of the expanded card, if any.
func (m Model) openCard() (*cards.Set, int, bool) {
	if i, ok := m.services.Active(); ok {
		return m.services, i, true
	}
	if i, ok := m.projects.Active(); ok {
		return m.projects, i, true
	}
	return nil, -1, false
}

// applyContent swaps in reloaded content. Open cards are closed so the scroll lock is
// released before their sets are replaced.
func (m *Model) applyContent(c *config.Content) {
	m.services.Unmount()
	m.projects.Unmount()
	m.content = c
	m.settings = c.Settings
	m.retune()
	m.services = cards.NewSet(c.ServiceCards(), m.lock)
	m.projects = cards.NewSet(c.ProjectCards(), m.lock)
	m.visible = cards.Filter(m.projects.Cards(), m.query)
	m.focus = -1
	m.markdown.reset()
	if m.viewMode == ViewCard || m.viewMode == ViewUpload {
		m.viewMode = ViewPage
	}
	m.syncScroll(m.now())
}

// retune applies the current settings to the state holders built from them. Reveal
// latches survive; the particle field is regenerated for the new motion settings.
func (m *Model) retune() {
	tune := tuningFor(m.settings, m.fpsFlag)
	if tune.fps != m.loop.FPS() {
		m.stopScrollAnimation()
		m.loop.SetFPS(tune.fps)
		m.page.anim = scroll.NewAnimator(tune.fps)
	}
	m.classifier.SetThreshold(tune.viewportAt)
	if !m.mobile() {
		m.menuOpen = false
	}
	m.meter.SetJumpThreshold(tune.jumpAt)
	m.reveals.SetThreshold(tune.revealAt)
	m.mountField(m.classifier.Mode())
}

// Offset returns the current scroll row.
func (m Model) Offset() int {
	return m.page.offset
}

// Progress returns the scroll progress in [0,1].
func (m Model) Progress() float64 {
	return m.meter.Progress()
}

// GetViewMode returns the current view mode.
func (m Model) GetViewMode() ViewMode {
	return m.viewMode
}

// Revealed reports whether section id has been revealed.
func (m Model) Revealed(id string) bool {
	return m.reveals.Revealed(id)
}

// ScrollLocked reports whether an open card suspends scrolling.
func (m Model) ScrollLocked() bool {
	return m.lock.Locked()
}
