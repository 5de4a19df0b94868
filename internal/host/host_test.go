package host

import (
	"errors"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rusenback/updatepanel/internal/clipboard"
	"github.com/rusenback/updatepanel/internal/feed"
	"github.com/rusenback/updatepanel/internal/model"
	"github.com/rusenback/updatepanel/internal/panel"
)

type fakeSource struct {
	updates   chan model.Update
	errs      chan error
	connected bool
	cancelled bool
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		updates: make(chan model.Update, 8),
		errs:    make(chan error, 1),
	}
}

func (f *fakeSource) Name() string    { return "fake" }
func (f *fakeSource) Connected() bool { return f.connected }

func (f *fakeSource) Stream() (<-chan model.Update, <-chan error, func()) {
	return f.updates, f.errs, func() { f.cancelled = true }
}

func press(s string) tea.KeyMsg {
	if s == "ctrl+c" {
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	if s == "end" {
		return tea.KeyMsg{Type: tea.KeyEnd}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	hm, ok := next.(Model)
	require.True(t, ok)
	return hm, cmd
}

func newTestHost(src *fakeSource, f *feed.Feed, clip clipboard.Writer) Model {
	return New(src, f, []panel.Option{panel.WithClipboard(clip)}, WithPanelSize(80, 3))
}

func started(t *testing.T, src *fakeSource) (Model, tea.Cmd) {
	t.Helper()
	m := newTestHost(src, feed.New(0), nil)
	m, cmd := step(t, m, startMsg{})
	require.NotNil(t, cmd)
	return m, cmd
}

func TestUpdatesFlowIntoPanel(t *testing.T) {
	src := newFakeSource()
	src.connected = true
	m, wait := started(t, src)

	src.updates <- model.Update{Message: "Build started", Level: model.LevelInfo}
	m, wait = step(t, m, wait())
	assert.NotNil(t, wait)

	src.updates <- model.Update{Message: "Build done", Level: model.LevelSuccess}
	m, _ = step(t, m, wait())

	updates := m.Panel().Updates()
	require.Len(t, updates, 2)
	assert.Equal(t, "Build done", updates[0].Message)
	assert.Equal(t, "Build started", updates[1].Message)
	assert.True(t, m.Panel().Connected())
}

func TestStartIsIdempotent(t *testing.T) {
	src := newFakeSource()
	m, _ := started(t, src)
	_, cmd := step(t, m, startMsg{})
	assert.Nil(t, cmd)
}

func TestSourceErrorBecomesErrorUpdate(t *testing.T) {
	src := newFakeSource()
	m, wait := started(t, src)

	src.errs <- errors.New("connection refused")
	m, cmd := step(t, m, wait())
	assert.NotNil(t, cmd)

	updates := m.Panel().Updates()
	require.Len(t, updates, 1)
	assert.Equal(t, model.LevelError, updates[0].Level)
	assert.Equal(t, "fake: connection refused", updates[0].Message)
	assert.Equal(t, "SOURCE", updates[0].Step)
}

func TestClosedErrorChannelIsDropped(t *testing.T) {
	src := newFakeSource()
	m, wait := started(t, src)

	close(src.errs)
	m, wait = step(t, m, wait())
	assert.Nil(t, m.errs)

	src.updates <- model.Update{Message: "still here"}
	m, _ = step(t, m, wait())
	assert.Equal(t, 1, m.Feed().Len())
}

func TestSourceFinished(t *testing.T) {
	src := newFakeSource()
	src.connected = true
	m, wait := started(t, src)

	close(src.updates)
	m, cmd := step(t, m, wait())
	assert.Nil(t, cmd)
	assert.False(t, m.Connected())

	updates := m.Panel().Updates()
	require.Len(t, updates, 1)
	assert.Equal(t, "fake finished", updates[0].Message)
	assert.Contains(t, m.View(), "finished")
}

func TestHideAndShowPanel(t *testing.T) {
	src := newFakeSource()
	m := newTestHost(src, feed.New(0), nil)

	m, cmd := step(t, m, press("x"))
	require.NotNil(t, cmd)
	m, _ = step(t, m, cmd())
	assert.False(t, m.Visible())
	assert.NotContains(t, m.View(), "Live Updates")

	// Panel keys are not delivered while hidden.
	m, _ = step(t, m, press("m"))
	assert.False(t, m.Panel().Minimized())

	m, _ = step(t, m, press("u"))
	assert.True(t, m.Visible())
	assert.Contains(t, m.View(), "Live Updates")
}

func TestClearFeed(t *testing.T) {
	f := feed.New(0)
	f.Push(model.Update{Message: "a"}, model.Update{Message: "b"})
	m := newTestHost(newFakeSource(), f, nil)
	before := f.Version()

	m, _ = step(t, m, press("X"))
	assert.Equal(t, 0, f.Len())
	assert.Greater(t, f.Version(), before)
	assert.Empty(t, m.Panel().Updates())
}

func TestQuitStopsSource(t *testing.T) {
	for _, k := range []string{"q", "ctrl+c"} {
		t.Run(k, func(t *testing.T) {
			src := newFakeSource()
			m, _ := started(t, src)

			_, cmd := step(t, m, press(k))
			require.NotNil(t, cmd)
			assert.IsType(t, tea.QuitMsg{}, cmd())
			assert.True(t, src.cancelled)
		})
	}
}

func TestTickKeepsScroll(t *testing.T) {
	f := feed.New(0)
	for i := 0; i < 10; i++ {
		f.Push(model.Update{Message: fmt.Sprintf("update %d", i), Timestamp: time.Now()})
	}
	src := newFakeSource()
	m := newTestHost(src, f, nil)

	m, _ = step(t, m, press("end"))
	offset := m.Panel().ScrollOffset()
	require.Greater(t, offset, 0)

	src.connected = true
	m, cmd := step(t, m, tickMsg(time.Now()))
	assert.NotNil(t, cmd)
	assert.True(t, m.Connected())
	assert.True(t, m.Panel().Connected())
	assert.Equal(t, offset, m.Panel().ScrollOffset())
}

func TestWindowSizeFitsPanel(t *testing.T) {
	m := newTestHost(newFakeSource(), feed.New(0), nil)

	m, _ = step(t, m, tea.WindowSizeMsg{Width: 40, Height: 30})
	assert.Equal(t, 40, m.Panel().Width())

	m, _ = step(t, m, tea.WindowSizeMsg{Width: 200, Height: 30})
	assert.Equal(t, 80, m.Panel().Width())
}

func TestNarrowWindowNeverOverflows(t *testing.T) {
	m := newTestHost(newFakeSource(), feed.New(0), nil)

	m, _ = step(t, m, tea.WindowSizeMsg{Width: 12, Height: 30})
	assert.Equal(t, 12, m.Panel().Width())
	assert.LessOrEqual(t, lipgloss.Width(m.Panel().View()), 12)
}

type recordingClipboard struct {
	text string
}

func (r *recordingClipboard) Write(text string) error {
	r.text = text
	return nil
}

func TestCopyResultReachesPanel(t *testing.T) {
	f := feed.New(0)
	f.Push(model.Update{Message: "deployed", Timestamp: time.Now()})
	clip := &recordingClipboard{}
	m := newTestHost(newFakeSource(), f, clip)

	m, cmd := step(t, m, press("y"))
	require.NotNil(t, cmd)
	m, _ = step(t, m, cmd())

	assert.Contains(t, clip.text, "deployed")
	assert.Equal(t, panel.StatusCopied, m.Panel().Status())
}
