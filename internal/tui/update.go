package tui

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zaidlab/folio/internal/cards"
	"github.com/zaidlab/folio/internal/pointer"
	folioerrors "github.com/zaidlab/folio/pkg/errors"
)

// Update handles incoming messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.classifier.Resize(msg.Width)
		if !m.mobile() {
			m.menuOpen = false
		}
		m.resizeSeq++
		m.syncScroll(m.now())
		return m, settleCmd(m.resizeSeq)

	case settleMsg:
		if msg.seq != m.resizeSeq {
			return m, nil
		}
		if mode := m.classifier.Mode(); mode != m.fieldMode {
			m.mountField(mode)
		}
		return m, nil

	case frameMsg:
		now := time.Time(msg)
		m.loop.Tick(now)
		m.lastFrame = now
		m.syncScroll(now)
		return m, frameCmd(m.loop.Interval())

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case ContentReloadedMsg:
		if msg.Err != nil {
			return m, m.setStatus("content reload failed: "+reloadReason(msg.Err), true)
		}
		m.applyContent(msg.Content)
		return m, m.setStatus("content reloaded", false)

	case linkCopiedMsg:
		if msg.err != nil {
			m.log.Warn(msg.err, "clipboard unavailable")
			return m, m.setStatus(fmt.Sprintf("%s: %s", msg.label, msg.url), false)
		}
		return m, m.setStatus(fmt.Sprintf("copied %s link: %s", msg.label, msg.url), false)

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			m.statusErr = false
		}
		return m, nil
	}

	return m, nil
}

func reloadReason(err error) string {
	var validationErr *folioerrors.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}
	return err.Error()
}

// handleKeyPress routes keys based on the current view mode.
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.viewMode {
	case ViewSearch:
		return m.handleSearchKeys(msg)
	case ViewCard:
		return m.handleCardKeys(msg)
	case ViewUpload:
		return m.handleUploadKeys(msg)
	case ViewHelp:
		if key.Matches(msg, m.keys.Quit) {
			m.Close()
			return m, tea.Quit
		}
		m.viewMode = ViewPage
		return m, nil
	default:
		return m.handlePageKeys(msg)
	}
}

func (m Model) handlePageKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.scrollBy(-1)
	case key.Matches(msg, m.keys.Down):
		m.scrollBy(1)
	case key.Matches(msg, m.keys.PageUp):
		m.scrollBy(-m.bodyHeight())
	case key.Matches(msg, m.keys.PageDown):
		m.scrollBy(m.bodyHeight())
	case key.Matches(msg, m.keys.Top):
		m.scrollTo(0)
	case key.Matches(msg, m.keys.Bottom):
		m.scrollBy(m.maxOffset(m.layout()))
	case key.Matches(msg, m.keys.Next):
		m.moveFocus(1)
	case key.Matches(msg, m.keys.Prev):
		m.moveFocus(-1)
	case key.Matches(msg, m.keys.Open):
		doc := m.layout()
		if m.focus >= 0 && m.focus < len(doc.targets) {
			return m.activate(doc.targets[m.focus])
		}
	case key.Matches(msg, m.keys.Close):
		if m.menuOpen {
			m.menuOpen = false
			m.syncScroll(m.now())
		} else if m.query != "" {
			m.setQuery("")
		} else {
			m.focus = -1
		}
	case key.Matches(msg, m.keys.Work):
		m.scrollToSection(sectionProjects)
	case key.Matches(msg, m.keys.Search):
		m.viewMode = ViewSearch
		m.search.SetValue(m.query)
		m.search.CursorEnd()
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.Theme):
		m.toggleTheme()
	case key.Matches(msg, m.keys.Menu):
		if m.mobile() {
			m.menuOpen = !m.menuOpen
			m.syncScroll(m.now())
		}
	case key.Matches(msg, m.keys.Help):
		m.viewMode = ViewHelp
	}
	return m, nil
}

func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.Close()
		return m, tea.Quit
	case "esc":
		m.search.Blur()
		m.search.SetValue("")
		m.setQuery("")
		m.viewMode = ViewPage
		return m, nil
	case "enter":
		m.search.Blur()
		m.viewMode = ViewPage
		m.scrollToSection(sectionProjects)
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.setQuery(m.search.Value())
	return m, cmd
}

func (m Model) handleCardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	set, idx, ok := m.openCard()
	if !ok {
		m.viewMode = ViewPage
		return m, nil
	}

	switch s := msg.String(); {
	case key.Matches(msg, m.keys.Quit):
		m.Close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Close):
		m.closeCard()
	case key.Matches(msg, m.keys.Theme):
		m.toggleTheme()
	case key.Matches(msg, m.keys.Upload):
		if card, _ := set.Card(idx); card.Meta["estimate"] == "true" {
			m.viewMode = ViewUpload
			m.upload.SetValue("")
			m.uploadMsg = ""
			return m, m.upload.Focus()
		}
	case len(s) == 1 && s[0] >= '1' && s[0] <= '9':
		return m, m.activateLink(set, idx, int(s[0]-'1'))
	}
	return m, nil
}

func (m Model) handleUploadKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.Close()
		return m, tea.Quit
	case "esc":
		m.upload.Blur()
		m.viewMode = ViewCard
		return m, nil
	case "enter":
		name := m.upload.Value()
		if err := cards.ValidateUpload(name, m.uploadExtensions()); err != nil {
			var validationErr *folioerrors.ValidationError
			if errors.As(err, &validationErr) {
				m.uploadMsg = validationErr.Message
			} else {
				m.uploadMsg = err.Error()
			}
			m.uploadErr = true
			return m, nil
		}
		m.uploadMsg = fmt.Sprintf("Received %s. A price estimate will follow by email.", name)
		m.uploadErr = false
		m.upload.Blur()
		m.viewMode = ViewCard
		m.log.Info("estimate upload accepted")
		return m, nil
	}

	var cmd tea.Cmd
	m.upload, cmd = m.upload.Update(msg)
	return m, cmd
}

func (m *Model) setQuery(q string) {
	m.query = q
	m.visible = cards.Filter(m.projects.Cards(), q)
	m.focus = -1
	m.syncScroll(m.now())
}

func (m *Model) toggleTheme() {
	mode := m.pref.Toggle()
	m.log.Info("theme set to " + mode.String())
}

func (m *Model) moveFocus(delta int) {
	n := len(m.layout().targets)
	if n == 0 {
		m.focus = -1
		return
	}
	switch {
	case m.focus < 0 && delta > 0:
		m.focus = 0
	case m.focus < 0:
		m.focus = n - 1
	default:
		m.focus = ((m.focus+delta)%n + n) % n
	}
	m.ensureVisible()
}

// activate performs the click or enter action of a page target.
func (m Model) activate(t target) (tea.Model, tea.Cmd) {
	switch t.kind {
	case targetCTA:
		m.scrollToSection(sectionProjects)
	case targetService:
		m.openCardIn(m.services, t.index)
	case targetProject:
		m.openCardIn(m.projects, t.index)
	case targetContact:
		if m.content == nil || t.index >= len(m.content.Contact.Links) {
			return m, nil
		}
		l := m.content.Contact.Links[t.index]
		return m, copyLinkCmd(m.copyFn, cards.Link{Label: l.Label, URL: l.URL})
	}
	return m, nil
}

func (m *Model) openCardIn(set *cards.Set, i int) {
	if err := set.Open(i); err != nil {
		m.log.Debug("card not opened: " + err.Error())
		return
	}
	m.stopScrollAnimation()
	m.viewMode = ViewCard
	m.uploadMsg = ""
	m.uploadErr = false
}

func (m *Model) closeCard() {
	m.services.Close()
	m.projects.Close()
	m.upload.Blur()
	m.viewMode = ViewPage
}

// activateLink copies link j of the open card. The card stays open.
func (m *Model) activateLink(set *cards.Set, i, j int) tea.Cmd {
	link, err := set.ActivateLink(i, j)
	if err != nil {
		return nil
	}
	return copyLinkCmd(m.copyFn, link)
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action == tea.MouseActionMotion || msg.Action == tea.MouseActionPress {
		m.tracker.Handle(pointer.Event{Kind: pointer.Mouse, X: float64(msg.X), Y: float64(msg.Y)})
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scrollBy(-wheelStep)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.scrollBy(wheelStep)
		return m, nil
	}

	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	switch m.viewMode {
	case ViewCard, ViewUpload:
		return m.clickOverlay(msg.X, msg.Y)
	case ViewHelp:
		m.viewMode = ViewPage
		return m, nil
	case ViewSearch:
		m.search.Blur()
		m.viewMode = ViewPage
	}
	return m.clickPage(msg.X, msg.Y)
}

func (m Model) clickOverlay(x, y int) (tea.Model, tea.Cmd) {
	set, idx, ok := m.openCard()
	if !ok {
		m.viewMode = ViewPage
		return m, nil
	}
	card, _ := set.Card(idx)
	ov := m.cardOverlay(card, newStyles(m.themePalette()))

	for j, bx := range ov.links {
		if bx.contains(x, y) {
			return m, m.activateLink(set, idx, j)
		}
	}
	if ov.frame.contains(x, y) {
		return m, nil
	}

	set.Backdrop()
	m.upload.Blur()
	m.viewMode = ViewPage
	return m, nil
}

func (m Model) clickPage(x, y int) (tea.Model, tea.Cmd) {
	if y == m.height-1 {
		if bx, ok := m.jumpButton(); ok && bx.contains(x, y) {
			m.scrollTo(0)
		}
		return m, nil
	}

	doc := m.layout()
	if y < m.bodyTop() {
		hv := m.header(1, m.activeSection(doc), newStyles(m.themePalette()))
		for _, t := range hv.targets {
			if !t.box.contains(x, y) {
				continue
			}
			switch t.action {
			case actionBrand:
				m.scrollTo(0)
			case actionNav:
				m.menuOpen = false
				m.syncScroll(m.now())
				m.scrollToSection(t.section)
			case actionTheme:
				m.toggleTheme()
			case actionMenu:
				m.menuOpen = !m.menuOpen
				m.syncScroll(m.now())
			}
			break
		}
		return m, nil
	}

	row := m.page.offset + (y - m.bodyTop())
	if i, ok := doc.targetAt(x, row); ok {
		m.focus = i
		return m.activate(doc.targets[i])
	}
	return m, nil
}
