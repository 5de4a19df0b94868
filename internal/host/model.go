// Package host is the application around the panel. It owns the feed,
// the connectivity flag and whether the panel is shown, and pushes a
// fresh snapshot into the panel whenever any of them change.
package host

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rusenback/updatepanel/internal/feed"
	"github.com/rusenback/updatepanel/internal/model"
	"github.com/rusenback/updatepanel/internal/panel"
	"github.com/rusenback/updatepanel/internal/source"
)

// DefaultTickInterval is how often connectivity is checked.
const DefaultTickInterval = 2 * time.Second

// Model is the root bubbletea model.
type Model struct {
	src   source.Source
	feed  *feed.Feed
	panel panel.Model

	updates <-chan model.Update
	errs    <-chan error
	cancel  func()
	done    bool

	connected bool
	visible   bool
	tick      time.Duration

	width       int
	height      int
	panelWidth  int
	panelHeight int
}

// Message types for the bubbletea update loop
type tickMsg time.Time

type startMsg struct{}

type updateMsg struct {
	update model.Update
}

type streamErrMsg struct {
	err error
}

type streamClosedMsg struct{}

type errsClosedMsg struct{}

type hidePanelMsg struct{}

// Option configures a Model.
type Option func(*Model)

// WithTickInterval sets how often the source's connectivity is polled.
func WithTickInterval(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.tick = d
		}
	}
}

// WithPanelSize sets the largest size the panel is given.
func WithPanelSize(width, listHeight int) Option {
	return func(m *Model) {
		if width > 0 {
			m.panelWidth = width
		}
		if listHeight > 0 {
			m.panelHeight = listHeight
		}
	}
}

// New creates the host. The panel is built from panelOpts; the host adds
// its own hide callback.
func New(src source.Source, f *feed.Feed, panelOpts []panel.Option, opts ...Option) Model {
	m := Model{
		src:         src,
		feed:        f,
		visible:     true,
		tick:        DefaultTickInterval,
		panelWidth:  panel.DefaultWidth,
		panelHeight: panel.DefaultListHeight,
	}
	for _, opt := range opts {
		opt(&m)
	}

	panelOpts = append(panelOpts[:len(panelOpts):len(panelOpts)],
		panel.WithSize(m.panelWidth, m.panelHeight),
		panel.WithOnToggle(func() tea.Msg { return hidePanelMsg{} }),
	)
	m.panel = panel.New(panelOpts...).SetFeed(f.Snapshot(), false)
	return m
}

// Init starts the source and the connectivity ticker.
func (m Model) Init() tea.Cmd {
	return tea.Batch(func() tea.Msg { return startMsg{} }, tickCmd(m.tick))
}

// Visible reports whether the panel is shown.
func (m Model) Visible() bool { return m.visible }

// Connected reports the last known source connectivity.
func (m Model) Connected() bool { return m.connected }

// Panel returns the embedded panel.
func (m Model) Panel() panel.Model { return m.panel }

// Feed returns the feed the host owns.
func (m Model) Feed() *feed.Feed { return m.feed }
