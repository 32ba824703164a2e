package tui

import (
	"bytes"
	"math/rand"
	"regexp"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/zaidlab/folio/internal/config"
	"github.com/zaidlab/folio/internal/logger"
	"github.com/zaidlab/folio/internal/store"
	"github.com/zaidlab/folio/internal/theme"
	"github.com/zaidlab/folio/internal/viewport"
)

var (
	testClock = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	ansiRegex = regexp.MustCompile("\x1b\\[[0-9;]*[a-zA-Z]")
)

type clipboardSpy struct {
	copied []string
	err    error
}

func (c *clipboardSpy) write(s string) error {
	c.copied = append(c.copied, s)
	return c.err
}

type fixture struct {
	store     *store.Memory
	clipboard *clipboardSpy
}

func newTestModel(t *testing.T, width, height int) (Model, fixture) {
	t.Helper()

	mem := store.NewMemory()
	spy := &clipboardSpy{}
	pref := theme.NewPreference(mem, func() bool { return true }, nil)
	m := NewModel(Options{
		Content:    config.Default(),
		Preference: pref,
		Rand:       rand.New(rand.NewSource(7)),
		Width:      width,
		Height:     height,
		Clipboard:  spy.write,
		Now:        func() time.Time { return testClock },
	})
	t.Cleanup(m.Close)
	return m, fixture{store: mem, clipboard: spy}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	updated, ok := next.(Model)
	require.True(t, ok)
	return updated, cmd
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		m, _ = update(t, m, k)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	tabKey   = tea.KeyMsg{Type: tea.KeyTab}
	enterKey = tea.KeyMsg{Type: tea.KeyEnter}
	escKey   = tea.KeyMsg{Type: tea.KeyEsc}
)

func stripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

func TestNewModelMountsField(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t, 120, 40)
	require.Equal(t, viewport.Desktop, m.fieldMode)
	require.Equal(t, 1, m.loop.Subscriptions())
	require.Len(t, m.field.Particles(), 25)
	require.Equal(t, ViewPage, m.GetViewMode())
	require.Zero(t, m.Offset())
}

func TestNewModelDefaults(t *testing.T) {
	t.Parallel()

	m := NewModel(Options{Rand: rand.New(rand.NewSource(1)), Now: func() time.Time { return testClock }})
	t.Cleanup(m.Close)

	require.Equal(t, 80, m.width)
	require.Equal(t, 24, m.height)
	require.Equal(t, viewport.Mobile, m.classifier.Mode())
	require.Equal(t, 4, m.projects.Len())
}

func TestGeometry(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t, 120, 40)
	require.False(t, m.compact())
	require.Equal(t, 3, m.headerHeight())
	require.Equal(t, 4, m.bodyTop())
	require.Equal(t, 35, m.bodyHeight())
	require.Equal(t, 36, m.heroHeight())
	require.Zero(t, m.heroProgress())
}

func TestCloseReleasesSubscriptionsAndLock(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t, 120, 40)
	m.openCardIn(m.projects, 0)
	require.True(t, m.ScrollLocked())

	m.Close()
	require.False(t, m.ScrollLocked())
	require.False(t, m.loop.Active())
}

func TestCloseReleasesViewportAndThemeSubscriptions(t *testing.T) {
	t.Parallel()

	buf := &bytes.Buffer{}
	log, err := logger.New(logger.Options{Level: "debug", Writer: buf})
	require.NoError(t, err)

	pref := theme.NewPreference(store.NewMemory(), func() bool { return true }, nil)
	m := NewModel(Options{
		Content:    config.Default(),
		Preference: pref,
		Logger:     log,
		Rand:       rand.New(rand.NewSource(4)),
		Width:      120,
		Height:     40,
		Now:        func() time.Time { return testClock },
	})

	m.classifier.Resize(60)
	require.Equal(t, 1, strings.Count(buf.String(), "viewport mode changed"))

	m.Close()
	require.Contains(t, buf.String(), "page closed after 0 frames")

	from, to := m.meter.Colors()
	m.classifier.Resize(120)
	pref.Toggle()
	require.Equal(t, 1, strings.Count(buf.String(), "viewport mode changed"))
	gotFrom, gotTo := m.meter.Colors()
	require.Equal(t, from, gotFrom, "theme changes no longer reach a closed page")
	require.Equal(t, to, gotTo)
}
